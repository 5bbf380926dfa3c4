package regindex

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/clarynt/clarynt/internal/corpus"
	"github.com/clarynt/clarynt/internal/embeddings"
)

// embedBatchSize bounds one embeddings request. The corpus is small, but a
// single oversized request is an easy way to hit provider payload limits.
const embedBatchSize = 64

// BuildOptions controls index building.
type BuildOptions struct {
	ChunkSize    int
	ChunkOverlap int
	// Force rebuilds even when a matching cache exists.
	Force bool
}

func (o *BuildOptions) normalize() {
	if o.ChunkSize <= 0 {
		o.ChunkSize = corpus.DefaultChunkSize
	}
	if o.ChunkOverlap <= 0 || o.ChunkOverlap >= o.ChunkSize {
		o.ChunkOverlap = corpus.DefaultChunkOverlap
	}
}

// BuildOrLoad returns the embedding index for corpusDir, reusing the cache at
// cachePath when it matches the current corpus and build parameters.
//
// A cache miss embeds every chunk via prov and persists the result before
// returning. Embedding failures are reported as ErrRetrievalUnavailable so
// callers can degrade to citation-free generation.
func BuildOrLoad(ctx context.Context, prov embeddings.Provider, corpusDir, cachePath string, opts BuildOptions) (*Index, error) {
	opts.normalize()

	docs, err := corpus.ReadDocuments(corpusDir)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", corpusDir, err)
	}
	fp := fingerprint(docs, opts.ChunkSize, opts.ChunkOverlap, prov.ModelID())

	if !opts.Force {
		if idx, err := Load(cachePath); err == nil {
			if idx.Manifest.IndexVersion == IndexVersion && idx.Manifest.Fingerprint == fp {
				return idx, nil
			}
		}
	}

	// Two processes racing to write the same cache would leave a torn file;
	// serialize builds on a sidecar lock.
	l := flock.New(cachePath + ".lock")
	if err := l.Lock(); err != nil {
		return nil, fmt.Errorf("cannot acquire index build lock: %w", err)
	}
	defer func() { _ = l.Unlock() }()

	// Another process may have finished the build while we waited.
	if !opts.Force {
		if idx, err := Load(cachePath); err == nil {
			if idx.Manifest.IndexVersion == IndexVersion && idx.Manifest.Fingerprint == fp {
				return idx, nil
			}
		}
	}

	idx, err := build(ctx, prov, docs, fp, opts)
	if err != nil {
		return nil, err
	}
	if err := write(cachePath, idx); err != nil {
		return nil, err
	}
	return idx, nil
}

func build(ctx context.Context, prov embeddings.Provider, docs []corpus.Document, fp string, opts BuildOptions) (*Index, error) {
	var chunks []Chunk
	var texts []string
	counter := 1
	for _, d := range docs {
		title := d.Title
		for _, piece := range corpus.Split(d.Content, opts.ChunkSize, opts.ChunkOverlap) {
			chunks = append(chunks, Chunk{
				Key:    fmt.Sprintf("S%d", counter),
				Source: filepath.Base(d.Path),
				Title:  title,
				Text:   piece,
			})
			texts = append(texts, piece)
			counter++
		}
	}

	dim := 0
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		vecs, err := prov.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRetrievalUnavailable, err)
		}
		for i, v := range vecs {
			if dim == 0 {
				dim = len(v)
			}
			if len(v) != dim {
				return nil, fmt.Errorf("embedding dim changed mid-build: got %d want %d", len(v), dim)
			}
			chunks[start+i].Embedding = v
		}
	}

	return &Index{
		Manifest: Manifest{
			IndexVersion: IndexVersion,
			CreatedAt:    time.Now().UTC().Format(time.RFC3339),
			ModelID:      prov.ModelID(),
			Dim:          dim,
			ChunkSize:    opts.ChunkSize,
			ChunkOverlap: opts.ChunkOverlap,
			Fingerprint:  fp,
		},
		Chunks: chunks,
	}, nil
}

// Load reads a cached index from path.
func Load(path string) (*Index, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read index cache %s: %w", path, err)
	}
	var idx Index
	if err := json.Unmarshal(b, &idx); err != nil {
		return nil, fmt.Errorf("invalid index cache %s: %w", path, err)
	}
	return &idx, nil
}

// write persists idx to path via a temp file and atomic rename, so readers
// never observe a partially written cache.
func write(path string, idx *Index) error {
	b, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("cannot marshal index: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create index dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("cannot create temp index file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("cannot write index cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("cannot install index cache %s: %w", path, err)
	}
	return nil
}
