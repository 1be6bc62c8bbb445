// ABOUTME: HTTP client for an external embedding service (Ollama-compatible API).
// ABOUTME: Lazily verifies the backend once per process and embeds batches in one request.
package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// HTTPEmbedder calls a remote embedding service. The backend is probed once
// on first use; the probe also pins the output dimensionality for the life
// of the process.
type HTTPEmbedder struct {
	url    string
	model  string
	client *http.Client

	initOnce sync.Once
	initErr  error
	dim      int
}

// embedRequest is the JSON body sent to the embedding endpoint.
type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// embedResponse maps the embedding endpoint response.
type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// NewHTTPEmbedder creates an embedder backed by the service at url. The
// expected dimensionality may be zero, in which case it is learned from the
// first response.
func NewHTTPEmbedder(url, model string, dim int) *HTTPEmbedder {
	return &HTTPEmbedder{
		url:    strings.TrimRight(url, "/"),
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
		dim:    dim,
	}
}

// Dimensions returns the configured or learned vector size. Zero means the
// backend has not been probed yet.
func (e *HTTPEmbedder) Dimensions() int {
	return e.dim
}

// Embed returns the embedding for a single text.
func (e *HTTPEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch sends all texts in one request and returns index-aligned
// vectors. A backend failure or a ragged response fails the whole batch.
func (e *HTTPEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := e.initialize(ctx); err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, nil
	}

	vecs, err := e.post(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embeddings: backend returned %d vectors for %d texts", len(vecs), len(texts))
	}
	for i, vec := range vecs {
		if len(vec) != e.dim {
			return nil, fmt.Errorf("embeddings: item %d has dimension %d, want %d", i, len(vec), e.dim)
		}
	}
	return vecs, nil
}

// initialize probes the backend once per process with a single-token request
// and records the model's output dimensionality.
func (e *HTTPEmbedder) initialize(ctx context.Context) error {
	e.initOnce.Do(func() {
		vecs, err := e.post(ctx, []string{"ping"})
		if err != nil {
			e.initErr = fmt.Errorf("embeddings: backend initialization failed: %w", err)
			return
		}
		if len(vecs) == 0 || len(vecs[0]) == 0 {
			e.initErr = fmt.Errorf("embeddings: backend returned no vector during initialization")
			return
		}
		if e.dim == 0 {
			e.dim = len(vecs[0])
		} else if e.dim != len(vecs[0]) {
			e.initErr = fmt.Errorf("embeddings: backend dimension %d does not match configured %d", len(vecs[0]), e.dim)
		}
	})
	return e.initErr
}

func (e *HTTPEmbedder) post(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(embedRequest{Model: e.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("embeddings: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("embeddings: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embeddings: backend request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return nil, fmt.Errorf("embeddings: backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("embeddings: decode response: %w", err)
	}
	return parsed.Embeddings, nil
}
