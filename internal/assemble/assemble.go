package assemble

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/clarynt/clarynt/internal/llm"
	"github.com/clarynt/clarynt/internal/outcome"
)

// UsageSummary aggregates token usage across the documents of one set.
type UsageSummary struct {
	TotalTokens      int                        `json:"total_tokens"`
	PromptTokens     int                        `json:"prompt_tokens"`
	CompletionTokens int                        `json:"completion_tokens"`
	PerDocument      map[DocumentKind]llm.Usage `json:"per_document,omitempty"`
}

func (u *UsageSummary) add(kind DocumentKind, usage llm.Usage) {
	u.TotalTokens += usage.TotalTokens
	u.PromptTokens += usage.PromptTokens
	u.CompletionTokens += usage.CompletionTokens
	if u.PerDocument == nil {
		u.PerDocument = make(map[DocumentKind]llm.Usage)
	}
	u.PerDocument[kind] = usage
}

// DocumentSet is the output of one assembly run: the generated markdown per
// required document kind, plus aggregate usage.
type DocumentSet struct {
	ID        uuid.UUID               `json:"id"`
	Outcome   outcome.Outcome         `json:"outcome"`
	Title     string                  `json:"title"`
	Documents map[DocumentKind]string `json:"documents"`
	Usage     UsageSummary            `json:"usage"`
}

// Assemble generates every document the outcome requires, one goroutine per
// kind. A failed generation never fails the set: the failing kind gets an
// error placeholder document and the rest complete normally. Outcomes that
// require no documents return an empty set without calling the generator.
func Assemble(ctx context.Context, gen llm.Generator, o outcome.Outcome, answers map[string]string) (*DocumentSet, error) {
	set := &DocumentSet{
		ID:        uuid.New(),
		Outcome:   o,
		Title:     outcome.Title(o),
		Documents: make(map[DocumentKind]string),
	}

	kinds := RequiredKinds(o)
	if len(kinds) == 0 {
		return set, nil
	}

	type result struct {
		kind  DocumentKind
		text  string
		usage llm.Usage
		err   error
	}

	results := make([]result, len(kinds))
	var wg sync.WaitGroup
	for i, kind := range kinds {
		wg.Add(1)
		go func(i int, kind DocumentKind) {
			defer wg.Done()
			results[i] = result{kind: kind}
			system, user, err := BuildPrompt(kind, o, set.Title, answers)
			if err != nil {
				results[i].err = err
				return
			}
			text, usage, err := gen.Generate(ctx, system, user)
			results[i].text = text
			results[i].usage = usage
			results[i].err = err
		}(i, kind)
	}
	wg.Wait()

	for _, r := range results {
		if r.err != nil {
			set.Documents[r.kind] = fmt.Sprintf("# Error\n\nFailed to generate this document: %v", r.err)
			continue
		}
		set.Documents[r.kind] = r.text
		set.Usage.add(r.kind, r.usage)
	}
	return set, nil
}
