package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BRAVONEST_BACKEND_URL", "")
	t.Setenv("BRAVONEST_BACKEND_API_KEY", "")
	t.Setenv("BRAVONEST_AI_ENDPOINT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("BRAVONEST_REQUEST_TIMEOUT", "")
	t.Setenv("BRAVONEST_TRACKER_INTERVAL", "")

	cfg := Load()

	assert.Equal(t, "http://localhost:54321", cfg.BackendURL)
	assert.Equal(t, defaultAIEndpoint, cfg.AIEndpoint)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.TrackerInterval)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BRAVONEST_BACKEND_URL", "https://backend.example.com")
	t.Setenv("BRAVONEST_BACKEND_API_KEY", "anon-key")
	t.Setenv("GEMINI_API_KEY", "ai-key")
	t.Setenv("BRAVONEST_REQUEST_TIMEOUT", "3s")
	t.Setenv("BRAVONEST_TRACKER_INTERVAL", "250ms")

	cfg := Load()

	assert.Equal(t, "https://backend.example.com", cfg.BackendURL)
	assert.Equal(t, "anon-key", cfg.BackendAPIKey)
	assert.Equal(t, "ai-key", cfg.AIAPIKey)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.TrackerInterval)
}

func TestLoadRejectsBadDurations(t *testing.T) {
	t.Setenv("BRAVONEST_REQUEST_TIMEOUT", "soon")
	t.Setenv("BRAVONEST_TRACKER_INTERVAL", "-5s")

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.TrackerInterval)
}
