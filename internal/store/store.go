// ABOUTME: Vector store contract for durable article collections.
// ABOUTME: Defines the record model, query results, and the collection-not-found sentinel.
package store

import (
	"context"
	"errors"
)

// ErrCollectionNotFound signals a query against a collection that was never
// created. The dispatcher turns it into guidance to run categorization first.
var ErrCollectionNotFound = errors.New("collection not found")

// Record is one persisted (id, vector, document, metadata) tuple. Re-adding
// the same id overwrites the prior record.
type Record struct {
	ID        string
	Document  string
	Metadata  map[string]string
	Embedding []float32
}

// QueryResult pairs a stored record with its distance from the query vector.
type QueryResult struct {
	Record
	Distance float64
}

// Store is a durable, named vector collection answering nearest-neighbor
// queries. Ranking is ascending by distance and deterministic for identical
// stored state and query.
type Store interface {
	// Upsert writes records by id, overwriting existing ones.
	Upsert(ctx context.Context, records []Record) error

	// Query returns up to k stored records closest to the query vector.
	Query(ctx context.Context, query []float32, k int) ([]QueryResult, error)

	// Count reports the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying collection handle.
	Close() error
}
