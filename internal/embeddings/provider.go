package embeddings

import (
	"context"
	"fmt"

	"github.com/clarynt/clarynt/internal/config"
)

// Provider embeds text into fixed-length float vectors.
//
// Implementations must be deterministic for the same input text and model,
// and EmbedBatch must return one vector per input, in input order.
type Provider interface {
	ModelID() string
	Dim() int
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// NewFromConfig returns an embeddings provider for the resolved configuration.
func NewFromConfig(cfg *config.Config) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	if cfg.EmbeddingsModel == "" {
		return nil, fmt.Errorf("embeddings model is not configured (set CLARYNT_EMBEDDINGS_MODEL)")
	}
	return NewOpenAI(cfg), nil
}
