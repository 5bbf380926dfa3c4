package report

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/clarynt/clarynt/internal/llm"
	"github.com/clarynt/clarynt/internal/regindex"
)

type fakeGenerator struct {
	user  string
	fail  bool
	usage llm.Usage
}

func (g *fakeGenerator) ModelID() string { return "fake:gen" }

func (g *fakeGenerator) Generate(_ context.Context, _, user string) (string, llm.Usage, error) {
	g.user = user
	if g.fail {
		return "", llm.Usage{}, fmt.Errorf("provider down")
	}
	return "# Compliance Documentation\n\n[S1] applies.", g.usage, nil
}

type fakeProvider struct {
	vec  []float32
	fail bool
}

func (p *fakeProvider) ModelID() string { return "fake:embed" }
func (p *fakeProvider) Dim() int        { return len(p.vec) }

func (p *fakeProvider) Embed(_ context.Context, _ string) ([]float32, error) {
	if p.fail {
		return nil, fmt.Errorf("embeddings down")
	}
	return p.vec, nil
}

func (p *fakeProvider) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		v, err := p.Embed(context.Background(), texts[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func testIndex() *regindex.Index {
	return &regindex.Index{
		Manifest: regindex.Manifest{Dim: 2},
		Chunks: []regindex.Chunk{
			{Key: "S1", Title: "Duties", Source: "act.md", Text: "  deployer duties text  ", Embedding: []float32{1, 0}},
			{Key: "S2", Title: "Definitions", Source: "act.md", Text: "definitions text", Embedding: []float32{0, 1}},
		},
	}
}

func TestGenerate_WithRetrievalAttachesSources(t *testing.T) {
	gen := &fakeGenerator{usage: llm.Usage{TotalTokens: 2000}}
	deps := Deps{
		Generator:  gen,
		Provider:   &fakeProvider{vec: []float32{1, 0}},
		Index:      testIndex(),
		PricePer1K: 0.03,
	}
	in := Input{SystemName: "HireAI", IntendedPurpose: "screening", UseCase: "employment"}

	res, err := Generate(context.Background(), deps, in, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(res.Sources))
	}
	if res.Sources[0].Key != "S1" || res.Sources[0].Excerpt != "deployer duties text" {
		t.Fatalf("first source = %+v", res.Sources[0])
	}
	if res.CostUSD != 0.06 {
		t.Fatalf("cost = %v, want 0.06", res.CostUSD)
	}
	if !strings.Contains(gen.user, "[S1] Duties - act.md") {
		t.Fatalf("context lines missing from prompt: %q", gen.user)
	}
	if !strings.Contains(gen.user, "Name: HireAI") {
		t.Fatal("system info missing from prompt")
	}
}

func TestGenerate_RetrievalFailureDegrades(t *testing.T) {
	gen := &fakeGenerator{}
	deps := Deps{
		Generator: gen,
		Provider:  &fakeProvider{vec: []float32{1, 0}, fail: true},
		Index:     testIndex(),
	}

	res, err := Generate(context.Background(), deps, Input{SystemName: "X", IntendedPurpose: "p", UseCase: "u"}, "")
	if err != nil {
		t.Fatalf("retrieval failure must not fail the report: %v", err)
	}
	if len(res.Sources) != 0 {
		t.Fatalf("sources = %d, want 0", len(res.Sources))
	}
	if !strings.Contains(gen.user, "<<no retrieval in this mode>>") {
		t.Fatal("prompt must mark the missing context")
	}
}

func TestGenerate_NoIndexSkipsRetrieval(t *testing.T) {
	gen := &fakeGenerator{}
	res, err := Generate(context.Background(), Deps{Generator: gen}, Input{SystemName: "X", IntendedPurpose: "p", UseCase: "u"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Sources) != 0 {
		t.Fatal("expected no sources without an index")
	}
}

func TestGenerate_GeneratorFailureIsFatal(t *testing.T) {
	gen := &fakeGenerator{fail: true}
	if _, err := Generate(context.Background(), Deps{Generator: gen}, Input{SystemName: "X", IntendedPurpose: "p", UseCase: "u"}, ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestCost(t *testing.T) {
	if got := Cost(2000, 0.03); got != 0.06 {
		t.Fatalf("Cost(2000) = %v", got)
	}
	if got := Cost(1234, 0.03); got != 0.037 {
		t.Fatalf("Cost(1234) = %v", got)
	}
	if got := Cost(0, 0.03); got != 0 {
		t.Fatalf("Cost(0) = %v", got)
	}
}

func TestMetaBlock(t *testing.T) {
	if got := MetaBlock(""); got != "" {
		t.Fatalf("empty meta: %q", got)
	}
	got := MetaBlock("model: test\n")
	if !strings.Contains(got, "### Model Metadata (Uploaded)") || !strings.Contains(got, "model: test") {
		t.Fatalf("meta block = %q", got)
	}
	long := strings.Repeat("k: v\n", 600)
	got = MetaBlock(long)
	if !strings.Contains(got, "truncated") {
		t.Fatal("oversized metadata must be truncated")
	}
	if len(got) > metaBlockLimit+200 {
		t.Fatalf("truncated block still too large: %d", len(got))
	}
}

func TestNormalizeModelMeta(t *testing.T) {
	out, err := NormalizeModelMeta([]byte("model: hireai\nversion: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "model: hireai") {
		t.Fatalf("normalized = %q", out)
	}
	if _, err := NormalizeModelMeta([]byte("model: [unclosed")); err == nil {
		t.Fatal("invalid YAML must be rejected")
	}
	out, err = NormalizeModelMeta(nil)
	if err != nil || out != "" {
		t.Fatalf("empty input: %q, %v", out, err)
	}
}
