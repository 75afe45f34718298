package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bravonest/internal/domain"
	"bravonest/internal/mocks"
	"bravonest/internal/service"
)

func TestRecommendationService_GetRecommendations(t *testing.T) {
	tests := []struct {
		name     string
		mockText string
		mockErr  error
		want     string
	}{
		{
			name:     "api text passes through",
			mockText: "Taco Town - Al Pastor (slow roasted)",
			want:     "Taco Town - Al Pastor (slow roasted)",
		},
		{
			name:    "api failure falls back",
			mockErr: assert.AnError,
			want:    "Unable to get AI recommendations at the moment. Please try again later.",
		},
		{
			name:     "empty text gets placeholder",
			mockText: "",
			want:     "No recommendations available",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockAPI := new(mocks.GenerativeAPI)
			svc := service.NewRecommendationService(mockAPI)

			mockAPI.On("Generate", mock.Anything, mock.AnythingOfType("string")).
				Return(testCase.mockText, testCase.mockErr).Once()

			got := svc.GetRecommendations(context.Background(), domain.RecommendationPrefs{Cuisine: "Mexican"})

			assert.Equal(t, testCase.want, got)
			mockAPI.AssertExpectations(t)
		})
	}
}

func TestRecommendationService_PromptCarriesPreferences(t *testing.T) {
	mockAPI := new(mocks.GenerativeAPI)
	svc := service.NewRecommendationService(mockAPI)

	var prompt string
	mockAPI.On("Generate", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { prompt = args.String(1) }).
		Return("ok", nil).Once()

	svc.GetRecommendations(context.Background(), domain.RecommendationPrefs{
		Cuisine: "Thai",
		Dietary: []string{"vegetarian"},
		Budget:  "$$",
	})

	assert.Contains(t, prompt, "Thai")
	assert.Contains(t, prompt, "vegetarian")
	assert.Contains(t, prompt, "recommend 3 restaurants")
}

func TestRecommendationService_GetChatResponse(t *testing.T) {
	tests := []struct {
		name     string
		mockText string
		mockErr  error
		want     string
	}{
		{
			name:     "api text passes through",
			mockText: "Try the pad thai.",
			want:     "Try the pad thai.",
		},
		{
			name:    "api failure falls back",
			mockErr: assert.AnError,
			want:    "I apologize, but I cannot provide a response right now. Please try again later.",
		},
		{
			name:     "empty text falls back",
			mockText: "",
			want:     "I apologize, but I cannot provide a response right now. Please try again later.",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockAPI := new(mocks.GenerativeAPI)
			svc := service.NewRecommendationService(mockAPI)

			mockAPI.On("Generate", mock.Anything, mock.AnythingOfType("string")).
				Return(testCase.mockText, testCase.mockErr).Once()

			got := svc.GetChatResponse(context.Background(), "what should I eat?")

			assert.Equal(t, testCase.want, got)
			mockAPI.AssertExpectations(t)
		})
	}
}
