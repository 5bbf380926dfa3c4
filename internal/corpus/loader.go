// Package corpus reads regulatory text documents and splits them into
// overlapping chunks suitable for embedding.
package corpus

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Default chunking parameters, tuned for statute-sized markdown sections.
const (
	DefaultChunkSize    = 1200
	DefaultChunkOverlap = 150
)

// Document is one source file of regulatory text.
type Document struct {
	Path    string
	Title   string
	Content string
}

var headingRe = regexp.MustCompile(`(?m)^#+\s*(.+)`)

// ReadDocuments returns every markdown document under dir, sorted by path.
//
// A missing or empty directory yields zero documents, not an error. Files
// that cannot be read are skipped so one bad file does not fail the load.
func ReadDocuments(dir string) ([]Document, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	docs := make([]Document, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		content := string(b)
		docs = append(docs, Document{
			Path:    p,
			Title:   extractTitle(content, filepath.Base(p)),
			Content: content,
		})
	}
	return docs, nil
}

// extractTitle returns the first markdown heading in content, or fallback.
func extractTitle(content, fallback string) string {
	if m := headingRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return fallback
}

// Split cuts text into chunks of at most size characters, with consecutive
// chunks sharing overlap characters. The window advances by size-overlap so
// a fact spanning a chunk boundary still lands whole in at least one chunk.
// Chunks that are empty after trimming are dropped.
func Split(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
		if overlap >= size {
			overlap = size / 8
		}
	}

	step := size - overlap
	var out []string
	for i := 0; i < len(text); i += step {
		end := i + size
		if end > len(text) {
			end = len(text)
		}
		c := strings.TrimSpace(text[i:end])
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
