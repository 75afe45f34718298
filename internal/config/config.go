package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the client reads from the environment at startup.
type Config struct {
	// BackendURL is the base URL of the hosted data+auth backend.
	BackendURL string
	// BackendAPIKey is the public API key sent with every backend call.
	BackendAPIKey string
	// AIEndpoint is the text-generation endpoint.
	AIEndpoint string
	// AIAPIKey may be empty; recommendation calls then degrade to the
	// fixed fallback text instead of failing startup.
	AIAPIKey string
	// RequestTimeout bounds every backend and AI call.
	RequestTimeout time.Duration
	// TrackerInterval is how often the order-status simulator ticks.
	TrackerInterval time.Duration
}

const defaultAIEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"

// Load reads configuration from the environment, with a best-effort .env
// file load first.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file loaded:", err)
	}

	cfg := Config{
		BackendURL:      getEnv("BRAVONEST_BACKEND_URL", "http://localhost:54321"),
		BackendAPIKey:   os.Getenv("BRAVONEST_BACKEND_API_KEY"),
		AIEndpoint:      getEnv("BRAVONEST_AI_ENDPOINT", defaultAIEndpoint),
		AIAPIKey:        os.Getenv("GEMINI_API_KEY"),
		RequestTimeout:  getDuration("BRAVONEST_REQUEST_TIMEOUT", 10*time.Second),
		TrackerInterval: getDuration("BRAVONEST_TRACKER_INTERVAL", 5*time.Second),
	}

	if cfg.AIAPIKey == "" {
		log.Println("[config] GEMINI_API_KEY not set, recommendations will use fallback text")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("[config] invalid duration for %s, using %s", key, fallback)
	}
	return fallback
}
