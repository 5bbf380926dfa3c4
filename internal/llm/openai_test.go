package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clarynt/clarynt/internal/config"
)

func TestGenerate_ParsesContentAndUsage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req struct {
			Model    string              `json:"model"`
			Messages []map[string]string `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0]["role"] != "system" || req.Messages[1]["role"] != "user" {
			t.Errorf("messages = %v", req.Messages)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "# Document\n\ngenerated"}},
			},
			"usage": map[string]int{"prompt_tokens": 100, "completion_tokens": 50, "total_tokens": 150},
		})
	}))
	defer srv.Close()

	g := NewOpenAI(&config.Config{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-5-nano"})
	content, usage, err := g.Generate(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatal(err)
	}
	if content != "# Document\n\ngenerated" {
		t.Fatalf("content = %q", content)
	}
	if usage.TotalTokens != 150 || usage.PromptTokens != 100 || usage.CompletionTokens != 50 {
		t.Fatalf("usage = %+v", usage)
	}
}

func TestGenerate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	g := NewOpenAI(&config.Config{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-5-nano"})
	if _, _, err := g.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestGenerate_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"bad key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewOpenAI(&config.Config{APIKey: "sk-bad", BaseURL: srv.URL, Model: "gpt-5-nano"})
	if _, _, err := g.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error on HTTP 401")
	}
}

func TestUsage_Add(t *testing.T) {
	var u Usage
	u.Add(Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15})
	u.Add(Usage{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3})
	if u.PromptTokens != 11 || u.CompletionTokens != 7 || u.TotalTokens != 18 {
		t.Fatalf("usage = %+v", u)
	}
}
