// ABOUTME: SQLite-backed vector collection using sqlx over the modernc driver.
// ABOUTME: Upserts are idempotent by id; queries scan, score by cosine distance, and rank ascending.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/CodeAKrome/NewsKitten/internal/vector"
)

const articlesSchema = `
CREATE TABLE IF NOT EXISTS articles (
    id TEXT PRIMARY KEY,
    document TEXT NOT NULL,
    metadata TEXT NOT NULL DEFAULT '{}',
    embedding BLOB NOT NULL
);`

// articleRow is the sqlx row mapping for the articles table.
type articleRow struct {
	ID        string `db:"id"`
	Document  string `db:"document"`
	Metadata  string `db:"metadata"`
	Embedding []byte `db:"embedding"`
}

// SQLiteStore is a Store persisted as one SQLite database file per
// collection inside the persist directory.
type SQLiteStore struct {
	db *sqlx.DB
}

// collectionPath returns the database file backing a named collection.
func collectionPath(persistDir, collection string) string {
	return filepath.Join(persistDir, collection+".db")
}

// Open opens or creates the named collection under persistDir.
func Open(persistDir, collection string) (*SQLiteStore, error) {
	if err := os.MkdirAll(persistDir, 0750); err != nil {
		return nil, fmt.Errorf("store: create persist dir: %w", err)
	}
	db, err := sqlx.Open("sqlite", collectionPath(persistDir, collection))
	if err != nil {
		return nil, fmt.Errorf("store: open collection %s: %w", collection, err)
	}
	if _, err := db.Exec(articlesSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// OpenExisting opens the named collection for querying. It fails with
// ErrCollectionNotFound when no categorize run has created it yet.
func OpenExisting(persistDir, collection string) (*SQLiteStore, error) {
	path := collectionPath(persistDir, collection)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, collection)
		}
		return nil, fmt.Errorf("store: stat collection %s: %w", collection, err)
	}
	return Open(persistDir, collection)
}

// Upsert writes all records in one transaction, replacing rows that share an
// id so repeated categorize runs do not grow the collection.
func (s *SQLiteStore) Upsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PreparexContext(ctx,
		`INSERT OR REPLACE INTO articles (id, document, metadata, embedding) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("store: record with empty id")
		}
		meta, err := json.Marshal(rec.Metadata)
		if err != nil {
			return fmt.Errorf("store: marshal metadata for %s: %w", rec.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.Document, string(meta), vector.EncodeEmbedding(rec.Embedding)); err != nil {
			return fmt.Errorf("store: upsert %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit upsert: %w", err)
	}
	return nil
}

// Query scans the collection, scores every record by cosine distance to the
// query vector, and returns the k closest ranked ascending. Ties break by id
// so ranking is deterministic for identical stored state.
func (s *SQLiteStore) Query(ctx context.Context, query []float32, k int) ([]QueryResult, error) {
	if k <= 0 {
		return nil, nil
	}

	var rows []articleRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, document, metadata, embedding FROM articles`); err != nil {
		return nil, fmt.Errorf("store: query scan: %w", err)
	}

	results := make([]QueryResult, 0, len(rows))
	for _, row := range rows {
		emb, err := vector.DecodeEmbedding(row.Embedding)
		if err != nil {
			return nil, fmt.Errorf("store: record %s: %w", row.ID, err)
		}
		dist, err := vector.CosineDistance(query, emb)
		if err != nil {
			return nil, fmt.Errorf("store: record %s: %w", row.ID, err)
		}
		meta := map[string]string{}
		if err := json.Unmarshal([]byte(row.Metadata), &meta); err != nil {
			return nil, fmt.Errorf("store: record %s metadata: %w", row.ID, err)
		}
		results = append(results, QueryResult{
			Record: Record{
				ID:        row.ID,
				Document:  row.Document,
				Metadata:  meta,
				Embedding: emb,
			},
			Distance: dist,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].ID < results[j].ID
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Count reports the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM articles`); err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ensure SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
