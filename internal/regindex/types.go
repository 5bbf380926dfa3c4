// Package regindex builds, caches, and queries the embedding index over the
// regulatory text corpus.
package regindex

// Manifest describes a cached index and how it was built.
//
// The fingerprint covers the corpus content and the build parameters; a
// cached index whose fingerprint no longer matches the corpus on disk is
// rebuilt rather than served stale.
type Manifest struct {
	IndexVersion int    `json:"index_version"`
	CreatedAt    string `json:"created_at"`
	ModelID      string `json:"model_id"`
	Dim          int    `json:"dim"`
	ChunkSize    int    `json:"chunk_size"`
	ChunkOverlap int    `json:"chunk_overlap"`
	Fingerprint  string `json:"fingerprint"`
}

// Chunk is one indexed slice of a source document.
type Chunk struct {
	Key       string    `json:"key"`
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
}

// Index is an ordered collection of embedded chunks. An index with zero
// chunks is valid; retrieval over it returns no results.
type Index struct {
	Manifest Manifest `json:"manifest"`
	Chunks   []Chunk  `json:"chunks"`
}

// IndexVersion is bumped whenever the cache layout or chunk key scheme
// changes, invalidating older cache files.
const IndexVersion = 1
