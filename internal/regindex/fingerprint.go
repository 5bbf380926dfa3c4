package regindex

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/clarynt/clarynt/internal/corpus"
)

// fingerprint hashes the corpus content together with the chunking
// parameters and embedding model, so any of them changing invalidates the
// cached index.
func fingerprint(docs []corpus.Document, size, overlap int, modelID string) string {
	h := sha256.New()
	fmt.Fprintf(h, "v%d size=%d overlap=%d model=%s\n", IndexVersion, size, overlap, modelID)
	for _, d := range docs {
		ch := sha256.Sum256([]byte(d.Content))
		fmt.Fprintf(h, "%s %s\n", filepath.Base(d.Path), hex.EncodeToString(ch[:]))
	}
	return hex.EncodeToString(h.Sum(nil))
}
