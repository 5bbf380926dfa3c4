package regindex

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/clarynt/clarynt/internal/embeddings"
)

// Cosine computes cosine similarity between two vectors of equal length.
// Similarity is 0 when either vector has zero norm.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrVectorLengthMismatch
	}
	var dot, na, nb float64
	for i := 0; i < len(a); i++ {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	den := math.Sqrt(na) * math.Sqrt(nb)
	if den == 0 {
		return 0, nil
	}
	return dot / den, nil
}

// Retrieve returns up to k chunks from idx ordered by descending cosine
// similarity to query. Ties keep index order, so results are deterministic.
//
// An empty index returns an empty result without calling the embedding
// capability. A query whose embedding dimension does not match the index
// fails fast rather than scoring garbage.
func Retrieve(ctx context.Context, prov embeddings.Provider, idx *Index, query string, k int) ([]Chunk, error) {
	if idx == nil || len(idx.Chunks) == 0 {
		return []Chunk{}, nil
	}

	qv, err := prov.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalUnavailable, err)
	}
	if idx.Manifest.Dim > 0 && len(qv) != idx.Manifest.Dim {
		return nil, fmt.Errorf("%w: query dim %d, index dim %d", ErrVectorLengthMismatch, len(qv), idx.Manifest.Dim)
	}

	type scored struct {
		chunk Chunk
		score float64
	}
	all := make([]scored, 0, len(idx.Chunks))
	for _, c := range idx.Chunks {
		s, err := Cosine(qv, c.Embedding)
		if err != nil {
			return nil, fmt.Errorf("score chunk %s: %w", c.Key, err)
		}
		all = append(all, scored{chunk: c, score: s})
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })

	if k > len(all) {
		k = len(all)
	}
	if k < 0 {
		k = 0
	}
	out := make([]Chunk, k)
	for i := 0; i < k; i++ {
		out[i] = all[i].chunk
	}
	return out, nil
}
