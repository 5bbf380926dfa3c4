package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clarynt/clarynt/internal/config"
)

type openAIGenerator struct {
	model   string
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAI constructs an OpenAI-compatible chat-completions generator.
//
// It uses the REST endpoint:
//
//	POST {baseURL}/chat/completions
func NewOpenAI(cfg *config.Config) Generator {
	return &openAIGenerator{
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (g *openAIGenerator) ModelID() string {
	return "openai:" + g.model
}

func (g *openAIGenerator) Generate(ctx context.Context, system, user string) (string, Usage, error) {
	reqBody := map[string]any{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", Usage{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", Usage{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", Usage{}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", Usage{}, fmt.Errorf("generation request failed: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage Usage `json:"usage"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", Usage{}, fmt.Errorf("cannot parse generation response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", Usage{}, fmt.Errorf("generation response has no choices")
	}

	content := parsed.Choices[0].Message.Content
	usage := parsed.Usage
	if usage.TotalTokens == 0 {
		// Some OpenAI-compatible backends omit usage entirely. Estimate the
		// prompt side so cost attribution stays roughly honest.
		usage.PromptTokens = EstimateTokens(system) + EstimateTokens(user)
		usage.CompletionTokens = EstimateTokens(content)
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}
	return content, usage, nil
}
