package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the resolved runtime configuration for the CLI and server.
//
// Values come from process environment variables first, then from a .env file
// in the working directory. Every field has a usable default except the
// OpenAI API key, which gates all generation and retrieval features.
type Config struct {
	// OpenAI-compatible API access.
	APIKey          string
	BaseURL         string
	Model           string
	EmbeddingsModel string

	// Filesystem layout.
	RegsDir   string
	IndexPath string
	DBPath    string

	// Server settings.
	Addr                 string
	InviteToken          string
	MaxRequestsPerMinute int

	// Behavior toggles.
	DemoMode   bool
	PricePer1K float64
}

// ErrNotConfigured indicates a required capability has no credentials.
var ErrNotConfigured = fmt.Errorf("CLARYNT_OPENAI_API_KEY is not set")

// Load resolves configuration from the environment and an optional .env file.
func Load() (*Config, error) {
	// Best effort: a missing .env file is the normal case in production.
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:               getenv("CLARYNT_OPENAI_API_KEY", ""),
		BaseURL:              getenv("CLARYNT_OPENAI_BASE_URL", "https://api.openai.com/v1"),
		Model:                getenv("CLARYNT_MODEL", "gpt-5-nano"),
		EmbeddingsModel:      getenv("CLARYNT_EMBEDDINGS_MODEL", "text-embedding-3-small"),
		RegsDir:              getenv("CLARYNT_REGS_DIR", "regs"),
		IndexPath:            getenv("CLARYNT_INDEX_PATH", "regs_index.json"),
		DBPath:               getenv("CLARYNT_DB_PATH", "clarynt.db"),
		Addr:                 getenv("CLARYNT_ADDR", ":8080"),
		InviteToken:          getenv("CLARYNT_INVITE_TOKEN", ""),
		DemoMode:             getenv("CLARYNT_DEMO_MODE", "0") == "1",
		MaxRequestsPerMinute: 60,
		PricePer1K:           0.03,
	}

	if v := os.Getenv("CLARYNT_MAX_REQUESTS_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid CLARYNT_MAX_REQUESTS_PER_MINUTE: %q", v)
		}
		cfg.MaxRequestsPerMinute = n
	}
	if v := os.Getenv("CLARYNT_PRICE_PER_1K"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("invalid CLARYNT_PRICE_PER_1K: %q", v)
		}
		cfg.PricePer1K = f
	}

	return cfg, nil
}

// RequireAPIKey returns ErrNotConfigured when no API key is available.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return ErrNotConfigured
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
