package llm

import (
	"context"
	"fmt"

	"github.com/clarynt/clarynt/internal/config"
)

// Usage records token consumption for one generation call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add accumulates another call's usage into u.
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// Generator produces text from a system and user prompt.
//
// Generation output is not deterministic; implementations only guarantee that
// the returned Usage reflects the completed call.
type Generator interface {
	ModelID() string
	Generate(ctx context.Context, system, user string) (string, Usage, error)
}

// NewFromConfig returns a text generator for the resolved configuration.
func NewFromConfig(cfg *config.Config) (Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("generation model is not configured (set CLARYNT_MODEL)")
	}
	return NewOpenAI(cfg), nil
}
