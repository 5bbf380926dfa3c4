package regindex

import "testing"

func TestKeywordSearch_AllTokensMustMatch(t *testing.T) {
	chunks := []Chunk{
		{Key: "S1", Title: "Definitions", Text: "algorithmic discrimination means unlawful differential treatment"},
		{Key: "S2", Title: "Duties", Text: "a deployer shall use reasonable care"},
		{Key: "S3", Title: "Enforcement", Text: "the attorney general has exclusive authority to enforce discrimination claims"},
	}

	hits := KeywordSearch(chunks, "discrimination", 10)
	if len(hits) != 2 || hits[0].Key != "S1" || hits[1].Key != "S3" {
		t.Fatalf("single token: %+v", hits)
	}

	hits = KeywordSearch(chunks, "algorithmic discrimination", 10)
	if len(hits) != 1 || hits[0].Key != "S1" {
		t.Fatalf("both tokens must match: %+v", hits)
	}

	if hits = KeywordSearch(chunks, "nonexistent term", 10); len(hits) != 0 {
		t.Fatalf("expected no hits, got %+v", hits)
	}
}

func TestKeywordSearch_MatchesMetadataAndHonorsLimit(t *testing.T) {
	chunks := []Chunk{
		{Key: "S1", Title: "Impact Assessments", Source: "duties.md", Text: "text one"},
		{Key: "S2", Title: "Other", Source: "impact.md", Text: "text two"},
		{Key: "S3", Title: "Impact Again", Source: "misc.md", Text: "text three"},
	}

	hits := KeywordSearch(chunks, "impact", 2)
	if len(hits) != 2 {
		t.Fatalf("limit not honored: %d hits", len(hits))
	}
	if hits[0].Key != "S1" || hits[1].Key != "S2" {
		t.Fatalf("expected index order, got %s,%s", hits[0].Key, hits[1].Key)
	}
}

func TestKeywordSearch_CaseInsensitive(t *testing.T) {
	chunks := []Chunk{{Key: "S1", Text: "High-Risk Artificial Intelligence System"}}
	if hits := KeywordSearch(chunks, "ARTIFICIAL intelligence", 5); len(hits) != 1 {
		t.Fatalf("case must not matter: %+v", hits)
	}
}
