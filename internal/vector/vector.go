// ABOUTME: Vector math and BLOB encoding shared by the store, clusterer, and search path.
// ABOUTME: Wraps viant/vec for magnitudes and cosine distance over float32 slices.
package vector

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/viant/vec/search"
)

// CosineDistance returns 1 - cosine similarity between two vectors. A zero
// magnitude on either side yields the maximum distance of 1 so degenerate
// vectors rank last instead of erroring mid-scan.
func CosineDistance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("vector: empty vectors")
	}
	va := search.Float32s(a)
	ma := va.Magnitude()
	mb := search.Float32s(b).Magnitude()
	if ma == 0 || mb == 0 {
		return 1, nil
	}
	return float64(va.CosineDistanceWithMagnitudesNeon(b, ma, mb)), nil
}

// Normalize scales v to unit length in place. Zero vectors are left unchanged.
func Normalize(v []float32) {
	m := search.Float32s(v).Magnitude()
	if m == 0 {
		return
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / float64(m))
	}
}

// EncodeEmbedding encodes a vector as a little-endian sequence of IEEE 754
// float32 values for BLOB storage. Length is derived from the BLOB size on
// decode, so no prefix is written.
func EncodeEmbedding(vec []float32) []byte {
	if len(vec) == 0 {
		return nil
	}
	b := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

// DecodeEmbedding decodes a BLOB produced by EncodeEmbedding.
func DecodeEmbedding(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("vector: invalid embedding blob length %d (not multiple of 4)", len(b))
	}
	vec := make([]float32, len(b)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return vec, nil
}
