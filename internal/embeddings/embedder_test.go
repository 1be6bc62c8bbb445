// ABOUTME: Tests for the local and HTTP embedding backends.
// ABOUTME: Covers determinism, batch alignment, lazy initialization, and whole-batch failure.
package embeddings

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLocalEmbedderDeterministic(t *testing.T) {
	e := NewLocalEmbedder(64)
	ctx := context.Background()

	a, err := e.Embed(ctx, "Fed raises rates")
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}
	b, err := e.Embed(ctx, "Fed raises rates")
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same text produced different vectors at index %d", i)
		}
	}
}

func TestLocalEmbedderNormalized(t *testing.T) {
	e := NewLocalEmbedder(64)
	vec, err := e.Embed(context.Background(), "some article title")
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(norm)-1.0) > 0.001 {
		t.Errorf("expected unit-length vector, got norm %f", math.Sqrt(norm))
	}
}

func TestLocalEmbedderSharedTokensAreCloser(t *testing.T) {
	e := NewLocalEmbedder(128)
	ctx := context.Background()

	a, _ := e.Embed(ctx, "fed raises interest rates")
	b, _ := e.Embed(ctx, "fed hikes interest rates")
	c, _ := e.Embed(ctx, "local team wins championship")

	simAB := dot(a, b)
	simAC := dot(a, c)
	if simAB <= simAC {
		t.Errorf("expected overlapping titles to be closer: sim(a,b)=%f sim(a,c)=%f", simAB, simAC)
	}
}

func TestLocalEmbedderBatchOrder(t *testing.T) {
	e := NewLocalEmbedder(32)
	ctx := context.Background()
	texts := []string{"first title", "second title", "third title"}

	batch, err := e.EmbedBatch(ctx, texts)
	if err != nil {
		t.Fatalf("EmbedBatch error: %v", err)
	}
	if len(batch) != len(texts) {
		t.Fatalf("expected %d vectors, got %d", len(texts), len(batch))
	}
	for i, text := range texts {
		single, _ := e.Embed(ctx, text)
		for j := range single {
			if batch[i][j] != single[j] {
				t.Fatalf("batch vector %d differs from single embedding", i)
			}
		}
	}
}

func TestLocalEmbedderDimensions(t *testing.T) {
	if d := NewLocalEmbedder(0).Dimensions(); d != DefaultDimensions {
		t.Errorf("expected default dimensions %d, got %d", DefaultDimensions, d)
	}
	if d := NewLocalEmbedder(42).Dimensions(); d != 42 {
		t.Errorf("expected 42 dimensions, got %d", d)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	e, err := New(Options{})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if _, ok := e.(*LocalEmbedder); !ok {
		t.Errorf("expected local embedder by default, got %T", e)
	}

	e, err = New(Options{Backend: BackendHTTP, URL: "http://localhost:11434"})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if _, ok := e.(*HTTPEmbedder); !ok {
		t.Errorf("expected http embedder, got %T", e)
	}

	if _, err := New(Options{Backend: BackendHTTP}); err == nil {
		t.Error("expected error for http backend without url")
	}
	if _, err := New(Options{Backend: "carrier-pigeon"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestHTTPEmbedderBatch(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/api/embed" {
			t.Errorf("expected /api/embed, got %s", r.URL.Path)
		}
		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		vecs := make([][]float32, len(req.Input))
		for i := range req.Input {
			vecs[i] = []float32{float32(i), 1, 2}
		}
		_ = json.NewEncoder(w).Encode(embedResponse{Embeddings: vecs})
	}))
	defer server.Close()

	e := NewHTTPEmbedder(server.URL, "test-model", 0)
	vecs, err := e.EmbedBatch(context.Background(), []string{"one", "two"})
	if err != nil {
		t.Fatalf("EmbedBatch error: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vecs))
	}
	if e.Dimensions() != 3 {
		t.Errorf("expected learned dimension 3, got %d", e.Dimensions())
	}
	// One init probe plus one batch request.
	if requests != 2 {
		t.Errorf("expected 2 requests (probe + batch), got %d", requests)
	}

	// A second batch must not re-probe.
	if _, err := e.EmbedBatch(context.Background(), []string{"three"}); err != nil {
		t.Fatalf("EmbedBatch error: %v", err)
	}
	if requests != 3 {
		t.Errorf("expected 3 requests after second batch, got %d", requests)
	}
}

func TestHTTPEmbedderBackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("model load failed"))
	}))
	defer server.Close()

	e := NewHTTPEmbedder(server.URL, "test-model", 0)
	if _, err := e.EmbedBatch(context.Background(), []string{"one"}); err == nil {
		t.Fatal("expected initialization error for failing backend")
	}
	// Failed init is sticky for the process lifetime.
	if _, err := e.EmbedBatch(context.Background(), []string{"two"}); err == nil {
		t.Fatal("expected sticky initialization error")
	}
}

func TestHTTPEmbedderRaggedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Always return a single vector regardless of batch size.
		_ = json.NewEncoder(w).Encode(embedResponse{Embeddings: [][]float32{{1, 2, 3}}})
	}))
	defer server.Close()

	e := NewHTTPEmbedder(server.URL, "test-model", 0)
	if _, err := e.EmbedBatch(context.Background(), []string{"one", "two"}); err == nil {
		t.Fatal("expected error when backend returns wrong vector count")
	}
}

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}
