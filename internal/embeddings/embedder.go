// ABOUTME: Embedding interface and backend selection for article titles.
// ABOUTME: Backends map ordered text batches to index-aligned fixed-dimension vectors.
package embeddings

import (
	"context"
	"fmt"
)

// Embedder generates vector embeddings from text. Implementations must be
// order-preserving and deterministic for a fixed backend configuration, and
// must fail the whole batch when any single item cannot be encoded.
type Embedder interface {
	// Embed returns a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one embedding per input text, index-aligned.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the dimensionality of the output vectors.
	Dimensions() int
}

// Backend names accepted in configuration.
const (
	BackendLocal = "local"
	BackendHTTP  = "http"
)

// Options selects and configures an embedding backend.
type Options struct {
	Backend    string
	URL        string
	Model      string
	Dimensions int
}

// New constructs the configured embedding backend. The backend defaults to
// the local deterministic embedder when unset.
func New(opts Options) (Embedder, error) {
	switch opts.Backend {
	case "", BackendLocal:
		return NewLocalEmbedder(opts.Dimensions), nil
	case BackendHTTP:
		if opts.URL == "" {
			return nil, fmt.Errorf("embeddings: http backend requires a url")
		}
		return NewHTTPEmbedder(opts.URL, opts.Model, opts.Dimensions), nil
	default:
		return nil, fmt.Errorf("embeddings: unknown backend %q", opts.Backend)
	}
}
