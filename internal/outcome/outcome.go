// Package outcome maps Colorado AI Act classification outcomes to their
// titles and statutory requirement text.
package outcome

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Outcome identifies one classification outcome of the compliance assessment.
type Outcome string

const (
	NotSubject          Outcome = "outcome1" // no Colorado business nexus
	ExemptDeployer      Outcome = "outcome2"
	NotAISystem         Outcome = "outcome3"
	NotDeveloper        Outcome = "outcome4"
	GeneralAIDisclosure Outcome = "outcome5"
	NotRegulatedSystem  Outcome = "outcome6"
	DeveloperHighRisk   Outcome = "outcome7"
	DeployerHighRisk    Outcome = "outcome8"
	BothHighRisk        Outcome = "outcome9"
)

var titles = map[Outcome]string{
	NotSubject:          "Not Subject to the Colorado AI Act",
	ExemptDeployer:      "Exempt Deployer",
	NotAISystem:         "Not an AI System Under CAIA",
	NotDeveloper:        "Not a Developer Under CAIA",
	GeneralAIDisclosure: "General AI System with Disclosure Duty",
	NotRegulatedSystem:  "Not a Regulated System",
	DeveloperHighRisk:   "Developer of High-Risk AI System",
	DeployerHighRisk:    "Deployer of High-Risk AI System",
	BothHighRisk:        "Both Developer and Deployer of High-Risk AI System",
}

// requirementFiles maps outcomes to their per-outcome requirements document
// in the regs directory.
var requirementFiles = map[Outcome]string{
	ExemptDeployer:      "outcome2_exempt_deployer.md",
	GeneralAIDisclosure: "outcome5_general_ai_disclosure.md",
	NotRegulatedSystem:  "outcome6_not_regulated_system.md",
	DeveloperHighRisk:   "outcome7_developer_high_risk.md",
	DeployerHighRisk:    "outcome8_deployer_high_risk.md",
	BothHighRisk:        "outcome9_both_developer_deployer.md",
}

// All returns every known outcome in stable order.
func All() []Outcome {
	out := make([]Outcome, 0, len(titles))
	for o := range titles {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Known reports whether o is one of the enumerated outcomes.
func Known(o Outcome) bool {
	_, ok := titles[o]
	return ok
}

// Title returns the human-readable title for o, or the raw identifier for an
// unrecognized outcome.
func Title(o Outcome) string {
	if t, ok := titles[o]; ok {
		return t
	}
	return string(o)
}

// Resolve returns the title and full requirements text for o.
//
// Resolution is total: outcomes with a requirements file get its contents
// (or a "could not be loaded" placeholder when the file is unreadable),
// not-regulated outcomes get a canned summary, and unknown identifiers get a
// minimal placeholder. It never fails, because it sits in the hot path of
// every generation request.
func Resolve(regsDir string, o Outcome) (string, string) {
	title := Title(o)

	if name, ok := requirementFiles[o]; ok {
		b, err := os.ReadFile(filepath.Join(regsDir, name))
		if err != nil {
			return title, fmt.Sprintf("# %s\n\n*Requirements file could not be loaded. Please contact support.*", title)
		}
		return title, string(b)
	}

	if summary, ok := notRegulatedSummaries[o]; ok {
		return title, summary
	}

	return title, fmt.Sprintf("# %s\n\n*Classification details not available.*", title)
}
