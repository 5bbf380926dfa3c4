package config

import (
	"errors"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"CLARYNT_OPENAI_API_KEY", "CLARYNT_OPENAI_BASE_URL", "CLARYNT_MODEL",
		"CLARYNT_EMBEDDINGS_MODEL", "CLARYNT_REGS_DIR", "CLARYNT_INDEX_PATH",
		"CLARYNT_DB_PATH", "CLARYNT_ADDR", "CLARYNT_INVITE_TOKEN",
		"CLARYNT_DEMO_MODE", "CLARYNT_MAX_REQUESTS_PER_MINUTE", "CLARYNT_PRICE_PER_1K",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "gpt-5-nano" || cfg.EmbeddingsModel != "text-embedding-3-small" {
		t.Fatalf("model defaults: %s, %s", cfg.Model, cfg.EmbeddingsModel)
	}
	if cfg.RegsDir != "regs" || cfg.IndexPath != "regs_index.json" || cfg.DBPath != "clarynt.db" {
		t.Fatalf("path defaults: %+v", cfg)
	}
	if cfg.Addr != ":8080" || cfg.MaxRequestsPerMinute != 60 || cfg.PricePer1K != 0.03 {
		t.Fatalf("server defaults: %+v", cfg)
	}
	if cfg.DemoMode {
		t.Fatal("demo mode must default off")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CLARYNT_OPENAI_API_KEY", "sk-test")
	t.Setenv("CLARYNT_MODEL", "gpt-5")
	t.Setenv("CLARYNT_DEMO_MODE", "1")
	t.Setenv("CLARYNT_MAX_REQUESTS_PER_MINUTE", "10")
	t.Setenv("CLARYNT_PRICE_PER_1K", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "sk-test" || cfg.Model != "gpt-5" || !cfg.DemoMode {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.MaxRequestsPerMinute != 10 || cfg.PricePer1K != 0.5 {
		t.Fatalf("numeric overrides not applied: %+v", cfg)
	}
}

func TestLoad_RejectsBadNumbers(t *testing.T) {
	t.Setenv("CLARYNT_MAX_REQUESTS_PER_MINUTE", "zero")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric rate limit")
	}
	t.Setenv("CLARYNT_MAX_REQUESTS_PER_MINUTE", "")
	t.Setenv("CLARYNT_PRICE_PER_1K", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestRequireAPIKey(t *testing.T) {
	cfg := &Config{}
	if err := cfg.RequireAPIKey(); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v", err)
	}
	cfg.APIKey = "sk-test"
	if err := cfg.RequireAPIKey(); err != nil {
		t.Fatalf("err = %v", err)
	}
}
