// Package report drafts the full compliance documentation report for one AI
// system, grounding its citations in retrieved regulatory excerpts.
package report

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/clarynt/clarynt/internal/embeddings"
	"github.com/clarynt/clarynt/internal/llm"
	"github.com/clarynt/clarynt/internal/regindex"
)

const retrievalK = 5

// metaBlockLimit caps how much uploaded metadata is inlined into the report.
const metaBlockLimit = 1800

// Input describes the AI system the report is about.
type Input struct {
	SystemName      string `json:"system_name" validate:"required"`
	IntendedPurpose string `json:"intended_purpose" validate:"required"`
	UseCase         string `json:"use_case" validate:"required"`
	RiskNotes       string `json:"risk_notes"`
	FreeTextNotes   string `json:"free_text_notes"`
}

// Source is one regulatory excerpt the report may cite.
type Source struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Source  string `json:"source"`
	Excerpt string `json:"excerpt"`
}

// Result is a drafted report plus the sources and usage behind it.
type Result struct {
	Report  string    `json:"report"`
	Sources []Source  `json:"sources"`
	Usage   llm.Usage `json:"usage"`
	CostUSD float64   `json:"cost_usd"`
}

// Deps are the capabilities report generation draws on. Index may be nil
// when no regulatory index has been built; the report then degrades to
// generation without citations.
type Deps struct {
	Generator  llm.Generator
	Provider   embeddings.Provider
	Index      *regindex.Index
	PricePer1K float64
}

const systemPrompt = "Precise compliance analyst. No overclaiming."

// Generate drafts a compliance report for in. Retrieval failure is never
// fatal: the report is generated without regulatory context and with no
// sources attached.
func Generate(ctx context.Context, deps Deps, in Input, modelMeta string) (*Result, error) {
	var (
		snips      []regindex.Chunk
		regContext string
	)
	if deps.Index != nil && deps.Provider != nil {
		query := retrievalQuery(in, modelMeta)
		chunks, err := regindex.Retrieve(ctx, deps.Provider, deps.Index, query, retrievalK)
		if err != nil {
			if !errors.Is(err, regindex.ErrRetrievalUnavailable) {
				return nil, fmt.Errorf("cannot retrieve regulatory context: %w", err)
			}
		} else {
			snips = chunks
			regContext = composeContext(chunks)
		}
	}

	report, usage, err := deps.Generator.Generate(ctx, systemPrompt, reportPrompt(in, modelMeta, regContext))
	if err != nil {
		return nil, fmt.Errorf("cannot generate report: %w", err)
	}

	res := &Result{
		Report:  report,
		Sources: make([]Source, 0, len(snips)),
		Usage:   usage,
		CostUSD: Cost(usage.TotalTokens, deps.PricePer1K),
	}
	for _, c := range snips {
		res.Sources = append(res.Sources, Source{
			Key:     c.Key,
			Title:   c.Title,
			Source:  c.Source,
			Excerpt: strings.TrimSpace(c.Text),
		})
	}
	return res, nil
}

// Cost converts a token count to USD at pricePer1K, rounded to 4 places.
func Cost(totalTokens int, pricePer1K float64) float64 {
	if totalTokens <= 0 {
		return 0
	}
	return math.Round(float64(totalTokens)/1000*pricePer1K*10000) / 10000
}

func retrievalQuery(in Input, modelMeta string) string {
	return fmt.Sprintf("NAME: %s\nPURPOSE: %s\nUSE_CASE: %s\nRISK:\n%s\nEXTRA:\n%s\nMODEL_META:\n%s\n",
		in.SystemName, in.IntendedPurpose, in.UseCase, in.RiskNotes, in.FreeTextNotes, modelMeta)
}

func composeContext(chunks []regindex.Chunk) string {
	lines := make([]string, 0, len(chunks))
	for _, c := range chunks {
		lines = append(lines, fmt.Sprintf("[%s] %s - %s\n%s\n", c.Key, c.Title, c.Source, strings.TrimSpace(c.Text)))
	}
	return strings.Join(lines, "\n")
}

// MetaBlock renders uploaded model metadata as a fenced section for
// inclusion in report output, truncated when oversized. Empty metadata
// renders nothing.
func MetaBlock(modelMeta string) string {
	if modelMeta == "" {
		return ""
	}
	snippet := strings.TrimSpace(modelMeta)
	if len(snippet) > metaBlockLimit {
		snippet = snippet[:metaBlockLimit] + "\n# ... truncated ..."
	}
	return fmt.Sprintf("\n### Model Metadata (Uploaded)\n\n```yaml\n%s\n```\n", snippet)
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func reportPrompt(in Input, modelMeta, regContext string) string {
	return fmt.Sprintf(`You are a Colorado AI Act (CAIA) compliance analyst. Using ONLY the regulatory excerpts below for citations, draft a
structured CAIA Compliance Documentation for the described AI system. Use [S#] inline citations only where supported.

REGULATORY EXCERPTS:
%s

SYSTEM INFO
- Name: %s
- Intended Purpose: %s
- Use-Case: %s

RISK NOTES:
%s

MODEL METADATA:
%s

Write the following sections: Scope and Applicability, System Description, Risk Classification, Developer Duties,
Deployer Duties, Algorithmic Discrimination Safeguards, Transparency and Notices, Impact Assessment Summary,
Incident Reporting, Recordkeeping, and Action Items.
`,
		orPlaceholder(regContext, "<<no retrieval in this mode>>"),
		in.SystemName,
		in.IntendedPurpose,
		in.UseCase,
		orPlaceholder(in.RiskNotes, "<<none provided>>"),
		orPlaceholder(modelMeta, "<<none provided>>"),
	)
}
