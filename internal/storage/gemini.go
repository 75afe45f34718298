package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bravonest/internal/domain"
)

// GenerativeClient issues single-shot text-generation requests. One attempt
// per call: no retries, no streaming, no caching.
type GenerativeClient struct {
	endpoint string
	apiKey   string
	client   HTTPClient
	timeout  time.Duration
}

func NewGenerativeClient(endpoint, apiKey string, client HTTPClient, timeout time.Duration) *GenerativeClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &GenerativeClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   client,
		timeout:  timeout,
	}
}

type promptPart struct {
	Text string `json:"text"`
}

type promptContent struct {
	Parts []promptPart `json:"parts"`
}

type generateRequest struct {
	Contents []promptContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content promptContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends one prompt and returns the first candidate's text.
func (g *GenerativeClient) Generate(ctx context.Context, prompt string) (string, error) {
	const op = "Generate"

	if g.apiKey == "" {
		return "", domain.E(domain.KindExternalService, op, "no AI API key configured", nil)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	body := generateRequest{Contents: []promptContent{{Parts: []promptPart{{Text: prompt}}}}}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", domain.E(domain.KindExternalService, op, "failed to encode prompt", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"?key="+g.apiKey, bytes.NewReader(payload))
	if err != nil {
		return "", domain.E(domain.KindExternalService, op, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", domain.E(domain.KindExternalService, op, "AI request timed out", err)
		}
		return "", domain.E(domain.KindExternalService, op, "AI request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", domain.E(domain.KindExternalService, op, fmt.Sprintf("AI service returned status %d", resp.StatusCode), nil)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", domain.E(domain.KindExternalService, op, "malformed AI response", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", domain.E(domain.KindExternalService, op, "AI response had no candidates", nil)
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
