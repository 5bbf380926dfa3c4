package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadDocuments_SortedWithTitles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("b_definitions.md", "# Definitions\n\nSome terms.")
	write("a_scope.md", "## Scope\n\nWho is covered.")
	write("notes.txt", "not markdown, must be ignored")

	docs, err := ReadDocuments(dir)
	if err != nil {
		t.Fatalf("ReadDocuments: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if filepath.Base(docs[0].Path) != "a_scope.md" {
		t.Fatalf("documents not sorted by path: %s first", docs[0].Path)
	}
	if docs[0].Title != "Scope" {
		t.Fatalf("title = %q, want Scope", docs[0].Title)
	}
	if docs[1].Title != "Definitions" {
		t.Fatalf("title = %q, want Definitions", docs[1].Title)
	}
}

func TestReadDocuments_TitleFallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "plain.md"), []byte("no heading here"), 0o644); err != nil {
		t.Fatal(err)
	}
	docs, err := ReadDocuments(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].Title != "plain.md" {
		t.Fatalf("expected filename fallback title, got %+v", docs)
	}
}

func TestReadDocuments_EmptyDir(t *testing.T) {
	docs, err := ReadDocuments(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no documents, got %d", len(docs))
	}
}

func TestSplit_WindowAdvancesBySizeMinusOverlap(t *testing.T) {
	text := strings.Repeat("a", 3000)
	chunks := Split(text, 1200, 150)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	// Offsets 0, 1050, 2100: full, full, tail of 900.
	if len(chunks[0]) != 1200 || len(chunks[1]) != 1200 || len(chunks[2]) != 900 {
		t.Fatalf("chunk lengths = %d,%d,%d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}

func TestSplit_ConsecutiveChunksOverlap(t *testing.T) {
	var b strings.Builder
	for b.Len() < 2500 {
		b.WriteString("colorado ai act section text ")
	}
	chunks := Split(b.String(), 1200, 150)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	tail := chunks[0][len(chunks[0])-100:]
	if !strings.Contains(chunks[1], tail[:50]) {
		t.Fatal("second chunk does not share text with the first")
	}
}

func TestSplit_ShortAndEmptyInput(t *testing.T) {
	if got := Split("short text", 1200, 150); len(got) != 1 || got[0] != "short text" {
		t.Fatalf("short input: %v", got)
	}
	if got := Split("", 1200, 150); len(got) != 0 {
		t.Fatalf("empty input should yield no chunks, got %v", got)
	}
	if got := Split("   \n\t  ", 1200, 150); len(got) != 0 {
		t.Fatalf("whitespace input should yield no chunks, got %v", got)
	}
}

func TestSplit_BadParametersFallBackToDefaults(t *testing.T) {
	text := strings.Repeat("x", DefaultChunkSize+10)
	if got := Split(text, 0, 0); len(got) != 2 {
		t.Fatalf("size 0 should use defaults, got %d chunks", len(got))
	}
	if got := Split(text, 100, 100); len(got) == 0 {
		t.Fatal("overlap >= size should still chunk")
	}
}
