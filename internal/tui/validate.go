// ABOUTME: Live validation of the HTTP embedding backend for the setup wizard.
// ABOUTME: Tests the backend by requesting an embedding for a single probe text.
package tui

import (
	"context"
	"fmt"

	"github.com/CodeAKrome/NewsKitten/internal/embeddings"
)

// ValidateBackend tests the embedding backend by performing one embed
// round-trip with the given model. The context allows cancellation when the
// user quits during validation.
func ValidateBackend(ctx context.Context, url, model string) error {
	embedder := embeddings.NewHTTPEmbedder(url, model, 0)

	vec, err := embedder.Embed(ctx, "newskitten setup probe")
	if err != nil {
		return err
	}
	if len(vec) == 0 {
		return fmt.Errorf("backend returned an empty embedding")
	}
	return nil
}
