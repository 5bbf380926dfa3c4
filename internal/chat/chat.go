// Package chat answers SB 24-205 compliance questions grounded in retrieved
// sections of the Act.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clarynt/clarynt/internal/embeddings"
	"github.com/clarynt/clarynt/internal/llm"
	"github.com/clarynt/clarynt/internal/outcome"
	"github.com/clarynt/clarynt/internal/regindex"
)

const retrievalK = 5

// Request is one user question with optional classification context.
type Request struct {
	Message string          `json:"message" validate:"required"`
	Outcome outcome.Outcome `json:"outcome"`
	Role    string          `json:"role"`
}

// Citation points at a section of the Act the answer drew on.
type Citation struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

// Response is the assistant's answer with citations and follow-up prompts.
type Response struct {
	Message            string     `json:"message"`
	Citations          []Citation `json:"citations"`
	SuggestedQuestions []string   `json:"suggested_questions"`
	Usage              llm.Usage  `json:"usage"`
}

// Deps are the capabilities the assistant draws on. A nil Index degrades to
// answering without citations.
type Deps struct {
	Generator llm.Generator
	Provider  embeddings.Provider
	Index     *regindex.Index
}

// Ask answers one compliance question. The user's classification steers both
// retrieval and the suggested follow-ups.
func Ask(ctx context.Context, deps Deps, req Request) (*Response, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("message is empty")
	}

	title := "Unknown"
	if outcome.Known(req.Outcome) {
		title = outcome.Title(req.Outcome)
	}

	var (
		snips      []regindex.Chunk
		regContext string
	)
	if deps.Index != nil && deps.Provider != nil {
		query := fmt.Sprintf("User Classification: %s\nUser Question: %s\n", title, req.Message)
		chunks, err := regindex.Retrieve(ctx, deps.Provider, deps.Index, query, retrievalK)
		if err != nil {
			if !errors.Is(err, regindex.ErrRetrievalUnavailable) {
				return nil, fmt.Errorf("cannot retrieve law sections: %w", err)
			}
		} else {
			snips = chunks
			lines := make([]string, 0, len(chunks))
			for _, c := range chunks {
				lines = append(lines, fmt.Sprintf("[%s] %s - %s\n%s\n", c.Key, c.Title, c.Source, strings.TrimSpace(c.Text)))
			}
			regContext = strings.Join(lines, "\n")
		}
	}
	if regContext == "" {
		regContext = "<<No relevant sections found>>"
	}

	role := req.Role
	if role == "" {
		role = "unknown"
	}
	system := fmt.Sprintf(`You are a Colorado AI Act (SB 24-205) compliance advisor chatbot.

USER CONTEXT:
- Classification: %s
- Role: %s

Your job is to:
1. Answer questions using ONLY the provided SB 24-205 text below
2. Cite specific sections using format [SB 24-205 §X]
3. Focus on obligations relevant to their classification
4. Be concise and actionable (2-3 paragraphs max)
5. If the answer isn't in the provided text, say "I don't have that specific information in SB 24-205"

RELEVANT LAW SECTIONS FROM SB 24-205:
%s
`, title, role, regContext)

	answer, usage, err := deps.Generator.Generate(ctx, system, req.Message)
	if err != nil {
		return nil, fmt.Errorf("cannot generate chat response: %w", err)
	}

	resp := &Response{
		Message:            answer,
		Citations:          make([]Citation, 0, len(snips)),
		SuggestedQuestions: SuggestedQuestions(req.Outcome),
		Usage:              usage,
	}
	for _, c := range snips {
		resp.Citations = append(resp.Citations, Citation{Key: c.Key, Title: c.Title, Source: c.Source})
	}
	return resp, nil
}

// SuggestedQuestions returns follow-up prompts tailored to the user's
// classification.
func SuggestedQuestions(o outcome.Outcome) []string {
	switch o {
	case outcome.DeveloperHighRisk, outcome.BothHighRisk:
		return []string{
			"What documentation must I provide to deployers?",
			"What are my notification obligations to the Attorney General?",
			"What is 'reasonable care' for developers?",
		}
	case outcome.DeployerHighRisk:
		return []string{
			"How often must I conduct impact assessments?",
			"What is required in a risk management program?",
			"What are consumer notification requirements?",
		}
	default:
		return []string{
			"What is a 'consequential decision'?",
			"What is 'algorithmic discrimination'?",
			"When does SB 24-205 take effect?",
		}
	}
}
