package assemble

import (
	"context"
	"fmt"
	"strings"

	"github.com/clarynt/clarynt/internal/llm"
	"github.com/clarynt/clarynt/internal/outcome"
)

// Checklist is a flat list of compliance action items with the usage of the
// call that produced it.
type Checklist struct {
	Items []string  `json:"checklist"`
	Usage llm.Usage `json:"usage"`
}

const checklistSystemPrompt = "You are a precise legal assistant. Output only a bulleted list."

// monitorOnlyItem is the checklist for outcomes with no compliance duties.
const monitorOnlyItem = "Monitor operations for changes that might trigger compliance obligations."

// GenerateChecklist produces the action-step checklist for an outcome.
// Outcomes outside the Act's scope get a single monitoring item without a
// generator call.
func GenerateChecklist(ctx context.Context, gen llm.Generator, regsDir string, o outcome.Outcome, answers map[string]string) (*Checklist, error) {
	switch o {
	case outcome.NotSubject, outcome.NotAISystem, outcome.NotDeveloper:
		return &Checklist{Items: []string{monitorOnlyItem}}, nil
	}

	title, requirements := outcome.Resolve(regsDir, o)
	user := checklistPrompt(title, requirements, answers)

	content, usage, err := gen.Generate(ctx, checklistSystemPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("cannot generate checklist for %s: %w", o, err)
	}
	return &Checklist{Items: parseBullets(content), Usage: usage}, nil
}

func checklistPrompt(title, requirements string, answers map[string]string) string {
	rendered := RenderAnswers(answers)
	if rendered == "" {
		rendered = "<<No specific answers provided yet>>"
	}
	return fmt.Sprintf(`You are an expert legal compliance assistant for the Colorado AI Act (CAIA).

CLASSIFICATION: %s

LEGAL REQUIREMENTS:
%s

USER'S DETAILED ANSWERS:
%s

TASK:
Generate a concise, bullet-point list of action steps required for this business to be fully compliant.
- Each item must be a singular responsibility.
- Each item must be 15 words or less.
- Address specific legal requirements from the provided text.
- Do NOT include random actions or guessing.
- ONLY include the bullet list.
- Denote bullet points with "*".

Example Output:
* Create Deployer safety plan
* Designate consumer inquiry contact
* Implement bias testing protocol
`, title, requirements, rendered)
}

// parseBullets extracts the text of "*" and "-" bullet lines, dropping
// anything else the model emitted around the list.
func parseBullets(content string) []string {
	items := []string{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "*") && !strings.HasPrefix(line, "-") {
			continue
		}
		item := strings.TrimSpace(strings.TrimLeft(line, "*- "))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
