// Package store implements the vector index contract on local SQLite.
// Passage text is embedded on upsert via a pluggable embedding engine;
// similarity search embeds the query and ranks stored vectors by cosine
// similarity. The collection is append-only: ids are never reused and
// deletion is whole-collection only.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "modernc.org/sqlite"

	"trackpulse/internal/embedding"
	"trackpulse/internal/logging"
	"trackpulse/internal/types"
)

// LocalIndex is a SQLite-backed vector index.
type LocalIndex struct {
	db     *sql.DB
	engine embedding.Engine
	mu     sync.RWMutex
	dbPath string
}

// Open initializes the SQLite database at the given path and binds it to
// an embedding engine.
func Open(path string, engine embedding.Engine) (*LocalIndex, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	idx := &LocalIndex{db: db, engine: engine, dbPath: path}
	if err := idx.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Store("opened local index at %s (engine=%s)", path, engine.Name())
	return idx, nil
}

// initialize creates the passages table.
func (s *LocalIndex) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS passages (
		id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		embedding TEXT NOT NULL,
		metadata TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Upsert embeds and stores passages, returning how many were written.
func (s *LocalIndex) Upsert(ctx context.Context, passages []types.Passage) (int, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Upsert")
	defer timer.Stop()

	if len(passages) == 0 {
		return 0, nil
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}
	vectors, err := s.engine.EmbedDocuments(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding failed: %w", err)
	}
	if len(vectors) != len(passages) {
		return 0, fmt.Errorf("embedding count mismatch: %d != %d", len(vectors), len(passages))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR REPLACE INTO passages (id, content, embedding, metadata) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for i, p := range passages {
		embJSON, err := json.Marshal(vectors[i])
		if err != nil {
			return 0, fmt.Errorf("failed to encode embedding: %w", err)
		}
		metaJSON, err := json.Marshal(p.Metadata)
		if err != nil {
			return 0, fmt.Errorf("failed to encode metadata for %s: %w", p.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.Text, string(embJSON), string(metaJSON)); err != nil {
			return 0, fmt.Errorf("failed to store passage %s: %w", p.ID, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	logging.StoreDebug("upserted %d passages", count)
	return count, nil
}

// SimilaritySearch embeds the query and returns the topK stored passages
// ranked by cosine similarity.
func (s *LocalIndex) SimilaritySearch(ctx context.Context, query string, topK int) ([]types.SearchHit, error) {
	timer := logging.StartTimer(logging.CategoryStore, "SimilaritySearch")
	defer timer.Stop()

	if topK <= 0 {
		topK = 10
	}

	queryVec, err := s.engine.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, embedding, metadata FROM passages")
	if err != nil {
		return nil, fmt.Errorf("failed to read passages: %w", err)
	}
	defer rows.Close()

	var hits []types.SearchHit
	skipped := 0
	for rows.Next() {
		var id, embJSON, metaJSON string
		if err := rows.Scan(&id, &embJSON, &metaJSON); err != nil {
			return nil, fmt.Errorf("failed to scan passage: %w", err)
		}

		var vec []float32
		if err := json.Unmarshal([]byte(embJSON), &vec); err != nil {
			skipped++
			continue
		}
		score, err := embedding.CosineSimilarity(queryVec, vec)
		if err != nil {
			skipped++
			continue
		}

		var meta types.Metadata
		if metaJSON != "" {
			_ = json.Unmarshal([]byte(metaJSON), &meta)
		}
		hits = append(hits, types.SearchHit{ID: id, Score: score, Metadata: meta})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate passages: %w", err)
	}
	if skipped > 0 {
		logging.Get(logging.CategoryStore).Warn("similarity search skipped %d unreadable vectors", skipped)
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > topK {
		hits = hits[:topK]
	}

	logging.StoreDebug("similarity search %q returned %d hits (topK=%d)", query, len(hits), topK)
	return hits, nil
}

// DeleteAll removes every passage in the collection.
func (s *LocalIndex) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM passages"); err != nil {
		return fmt.Errorf("failed to delete passages: %w", err)
	}
	logging.Store("deleted all passages")
	return nil
}

// Count returns the number of stored passages.
func (s *LocalIndex) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM passages").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count passages: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *LocalIndex) Close() error {
	return s.db.Close()
}
