// ABOUTME: Deterministic offline embedder built from hashed token directions.
// ABOUTME: Titles sharing tokens land close together, so clustering works without a model server.
package embeddings

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/CodeAKrome/NewsKitten/internal/vector"
)

// DefaultDimensions is the vector size of the local embedder.
const DefaultDimensions = 256

// LocalEmbedder is a deterministic bag-of-tokens embedder. Each token hashes
// to a fixed pseudo-random direction; a text embeds as the normalized sum of
// its token directions. The same text always produces the same vector, and
// texts sharing tokens have high cosine similarity.
type LocalEmbedder struct {
	dim int
}

// NewLocalEmbedder creates a local embedder with the given dimensionality,
// falling back to DefaultDimensions when non-positive.
func NewLocalEmbedder(dim int) *LocalEmbedder {
	if dim <= 0 {
		dim = DefaultDimensions
	}
	return &LocalEmbedder{dim: dim}
}

// Dimensions returns the output vector size.
func (e *LocalEmbedder) Dimensions() int {
	return e.dim
}

// Embed returns the normalized token-direction sum for text.
func (e *LocalEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vec := make([]float32, e.dim)
	for _, token := range tokenize(text) {
		addTokenDirection(vec, token)
	}
	vector.Normalize(vec)
	return vec, nil
}

// EmbedBatch embeds each text in order. Any item failure fails the batch.
func (e *LocalEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embeddings: encoding item %d: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// addTokenDirection accumulates the token's hashed unit direction into vec.
// A splitmix-style expansion of the FNV hash fills all dimensions.
func addTokenDirection(vec []float32, token string) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(token))
	state := h.Sum64()
	var buf [8]byte
	for i := range vec {
		state += 0x9e3779b97f4a7c15
		z := state
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		z ^= z >> 31
		binary.LittleEndian.PutUint64(buf[:], z)
		// Map to [-1, 1) from the low 32 bits.
		vec[i] += float32(int32(binary.LittleEndian.Uint32(buf[:4]))) / (1 << 31)
	}
}
