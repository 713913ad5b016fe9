// Package scoring ranks content units against a target job context using
// cosine similarity in a shared vector space. The embedding backend is
// pluggable; a lexical TF-IDF fallback is always available.
package scoring

import "context"

// Mode identifies which embedding backend produced a score set.
type Mode string

// Embedding modes.
const (
	// ModeLexical is the TF-IDF fallback, available without any backend.
	ModeLexical Mode = "lexical"
	// ModeEmbedding is a semantic embedding backend (e.g. Gemini).
	ModeEmbedding Mode = "embedding"
)

// Embedder converts texts into vectors in a shared space. Vectors returned
// from a single call must be comparable with each other; callers embed the
// job context and all unit texts together.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float64, error)
	// Mode reports which backend this embedder is.
	Mode() Mode
}
