package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"bravonest/internal/domain"
)

// Fallback strings shown whenever the AI call fails for any reason. Callers
// of this service never see an error.
const (
	recommendationFallback = "Unable to get AI recommendations at the moment. Please try again later."
	chatFallback           = "I apologize, but I cannot provide a response right now. Please try again later."
)

// RecommendationService wraps the generative API: one attempt per call, any
// failure absorbed into a fixed fallback string.
type RecommendationService struct {
	api GenerativeAPI
}

func NewRecommendationService(api GenerativeAPI) *RecommendationService {
	return &RecommendationService{api: api}
}

// GetRecommendations asks for restaurant suggestions matching the
// preferences.
func (s *RecommendationService) GetRecommendations(ctx context.Context, prefs domain.RecommendationPrefs) string {
	encoded, err := json.Marshal(prefs)
	if err != nil {
		log.Printf("[recommend] failed to encode preferences: %v", err)
		return recommendationFallback
	}

	prompt := fmt.Sprintf(`Based on these preferences: %s,
recommend 3 restaurants with specific dishes. Keep it concise and engaging.
Format as: Restaurant Name - Dish Name (brief description)`, encoded)

	text, err := s.api.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[recommend] AI call failed: %v", err)
		return recommendationFallback
	}
	if text == "" {
		return "No recommendations available"
	}
	return text
}

// GetChatResponse answers a free-text dining question.
func (s *RecommendationService) GetChatResponse(ctx context.Context, message string) string {
	prompt := fmt.Sprintf("You are a helpful restaurant assistant. Answer this question about food, restaurants, or dining: %s", message)

	text, err := s.api.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[recommend] AI chat call failed: %v", err)
		return chatFallback
	}
	if text == "" {
		return chatFallback
	}
	return text
}

var _ RecommendationServiceInterface = (*RecommendationService)(nil)
