package assemble

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/clarynt/clarynt/internal/llm"
	"github.com/clarynt/clarynt/internal/outcome"
)

// fakeGenerator returns a canned completion per call and can be told to fail
// on prompts containing a marker.
type fakeGenerator struct {
	mu       sync.Mutex
	calls    int
	failOn   string
	perCall  llm.Usage
	lastUser []string
}

func (g *fakeGenerator) ModelID() string { return "fake:gen" }

func (g *fakeGenerator) Generate(_ context.Context, _, user string) (string, llm.Usage, error) {
	g.mu.Lock()
	g.calls++
	g.lastUser = append(g.lastUser, user)
	g.mu.Unlock()
	if g.failOn != "" && strings.Contains(user, g.failOn) {
		return "", llm.Usage{}, fmt.Errorf("provider rejected request")
	}
	return "# Generated\n\ncontent", g.perCall, nil
}

func TestAssemble_GeneratesEveryRequiredKind(t *testing.T) {
	gen := &fakeGenerator{perCall: llm.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}}

	set, err := Assemble(context.Background(), gen, outcome.DeveloperHighRisk, map[string]string{"q1": "answer"})
	if err != nil {
		t.Fatal(err)
	}
	if set.Outcome != outcome.DeveloperHighRisk {
		t.Fatalf("outcome = %s", set.Outcome)
	}
	want := []DocumentKind{KindGeneralStatement, KindTechnicalSummary, KindEvaluationArtifact, KindPublicStatement}
	if len(set.Documents) != len(want) {
		t.Fatalf("documents = %d, want %d", len(set.Documents), len(want))
	}
	for _, k := range want {
		if set.Documents[k] == "" {
			t.Fatalf("missing document %s", k)
		}
	}
	if gen.calls != len(want) {
		t.Fatalf("generator calls = %d, want %d", gen.calls, len(want))
	}
	if set.Usage.TotalTokens != 60 || set.Usage.PromptTokens != 40 || set.Usage.CompletionTokens != 20 {
		t.Fatalf("usage = %+v", set.Usage)
	}
	if len(set.Usage.PerDocument) != len(want) {
		t.Fatalf("per-document usage entries = %d", len(set.Usage.PerDocument))
	}
}

func TestAssemble_OneFailureDoesNotSinkTheSet(t *testing.T) {
	// The risk management prompt is the only one naming NIST AI RMF.
	gen := &fakeGenerator{failOn: "NIST AI RMF", perCall: llm.Usage{TotalTokens: 15}}

	set, err := Assemble(context.Background(), gen, outcome.DeployerHighRisk, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Documents) != 5 {
		t.Fatalf("documents = %d, want 5", len(set.Documents))
	}
	failed := set.Documents[KindRiskManagement]
	if !strings.HasPrefix(failed, "# Error\n\nFailed to generate this document:") {
		t.Fatalf("failed kind placeholder = %q", failed)
	}
	for _, k := range []DocumentKind{KindImpactAssessment, KindConsumerNotice, KindAdverseAction, KindPublicStatement} {
		if strings.HasPrefix(set.Documents[k], "# Error") {
			t.Fatalf("%s should have succeeded", k)
		}
	}
	// Failed calls contribute no usage.
	if set.Usage.TotalTokens != 60 {
		t.Fatalf("usage = %d, want 60", set.Usage.TotalTokens)
	}
	if _, ok := set.Usage.PerDocument[KindRiskManagement]; ok {
		t.Fatal("failed kind must not appear in per-document usage")
	}
}

func TestAssemble_UnregulatedOutcomesSkipGeneration(t *testing.T) {
	gen := &fakeGenerator{}
	for _, o := range []outcome.Outcome{
		outcome.NotSubject,
		outcome.NotAISystem,
		outcome.NotDeveloper,
		outcome.NotRegulatedSystem,
		outcome.Outcome("outcome999"),
	} {
		set, err := Assemble(context.Background(), gen, o, nil)
		if err != nil {
			t.Fatalf("%s: %v", o, err)
		}
		if len(set.Documents) != 0 {
			t.Fatalf("%s: expected no documents", o)
		}
	}
	if gen.calls != 0 {
		t.Fatalf("generator must not be called, got %d calls", gen.calls)
	}
}

func TestRequiredKinds_ReturnsACopy(t *testing.T) {
	kinds := RequiredKinds(outcome.ExemptDeployer)
	if len(kinds) != 3 {
		t.Fatalf("kinds = %v", kinds)
	}
	kinds[0] = "mutated"
	if got := RequiredKinds(outcome.ExemptDeployer); got[0] != KindConsumerNotice {
		t.Fatal("table must not be mutable through the returned slice")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	answers := map[string]string{
		"q3_2": "Resume screening",
		"q1_1": "Yes",
		"q2_5": "",
		"q1_2": "HR decisions",
	}
	sys1, user1, err := BuildPrompt(KindImpactAssessment, outcome.DeployerHighRisk, "Deployer of High-Risk AI System", answers)
	if err != nil {
		t.Fatal(err)
	}
	sys2, user2, err := BuildPrompt(KindImpactAssessment, outcome.DeployerHighRisk, "Deployer of High-Risk AI System", answers)
	if err != nil {
		t.Fatal(err)
	}
	if sys1 != sys2 || user1 != user2 {
		t.Fatal("identical inputs must produce byte-identical prompts")
	}
	if !strings.Contains(user1, "**q1_1**: Yes") {
		t.Fatalf("answers not rendered: %q", user1)
	}
	if strings.Contains(user1, "q2_5") {
		t.Fatal("empty answers must be omitted")
	}
	if strings.Index(user1, "**q1_1**") > strings.Index(user1, "**q3_2**") {
		t.Fatal("answers must render in sorted key order")
	}
}

func TestBuildPrompt_RoleAwarePublicStatement(t *testing.T) {
	_, dev, err := BuildPrompt(KindPublicStatement, outcome.DeveloperHighRisk, "t", nil)
	if err != nil {
		t.Fatal(err)
	}
	_, dep, err := BuildPrompt(KindPublicStatement, outcome.DeployerHighRisk, "t", nil)
	if err != nil {
		t.Fatal(err)
	}
	_, both, err := BuildPrompt(KindPublicStatement, outcome.BothHighRisk, "t", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dev, "§ 6-1-1702(4)") || strings.Contains(dev, "§ 6-1-1703(4)") {
		t.Fatal("developer statement must cite only the developer duty")
	}
	if !strings.Contains(dep, "§ 6-1-1703(4)") || strings.Contains(dep, "§ 6-1-1702(4)") {
		t.Fatal("deployer statement must cite only the deployer duty")
	}
	if !strings.Contains(both, "BOTH a developer and deployer") {
		t.Fatal("combined role must get the combined requirements")
	}
}

func TestBuildPrompt_UnknownKind(t *testing.T) {
	if _, _, err := BuildPrompt(DocumentKind("bogus"), outcome.DeployerHighRisk, "t", nil); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestRenderAnswers_EmptyMap(t *testing.T) {
	if got := RenderAnswers(nil); got != "" {
		t.Fatalf("nil map: %q", got)
	}
	if got := RenderAnswers(map[string]string{"q1": ""}); got != "" {
		t.Fatalf("all-empty map: %q", got)
	}
}
