package regindex

import "strings"

// KeywordSearch matches chunks by case-insensitive keyword matching over key,
// title, source, and text. All query tokens must match (AND semantics).
// Results keep index order. It serves as the fallback when the embedding
// capability is unavailable.
func KeywordSearch(chunks []Chunk, query string, limit int) []Chunk {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return []Chunk{}
	}

	out := []Chunk{}
	for _, c := range chunks {
		blob := strings.ToLower(strings.Join([]string{c.Key, c.Title, c.Source, c.Text}, "\n"))
		ok := true
		for _, tok := range tokens {
			if !strings.Contains(blob, tok) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func tokenize(q string) []string {
	parts := strings.Fields(strings.TrimSpace(q))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
