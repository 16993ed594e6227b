package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a SQLite database. Descriptions are
// embedded at Put time and persisted alongside the entry, so Search only
// embeds the query.
type SQLiteStore struct {
	db       *sql.DB
	embedder Embedder
}

// NewSQLiteStore opens (or creates) the database at path and runs migrations.
func NewSQLiteStore(path string, e Embedder) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("tool store: open: %w", err)
	}

	// Enable WAL mode for better concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("tool store: wal: %w", err)
	}

	s := &SQLiteStore{db: db, embedder: e}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS tools (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL,
			embedding   BLOB NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("tool store: migrate: %w", err)
	}
	return nil
}

// Put indexes the entry under id, replacing any previous entry.
func (s *SQLiteStore) Put(ctx context.Context, id string, e Entry) error {
	vec, err := s.embedder.Embed(e.Description)
	if err != nil {
		return fmt.Errorf("tool store: embed %q: %w", id, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tools (id, name, description, embedding)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, description=excluded.description, embedding=excluded.embedding
	`, id, e.Name, e.Description, encodeVector(vec))
	if err != nil {
		return fmt.Errorf("tool store: put: %w", err)
	}
	return nil
}

// Search embeds the query and ranks every stored entry by cosine similarity.
func (s *SQLiteStore) Search(ctx context.Context, query string, limit int) ([]string, error) {
	qvec, err := s.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("tool store: embed query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, embedding FROM tools`)
	if err != nil {
		return nil, fmt.Errorf("tool store: search: %w", err)
	}
	defer rows.Close()

	var items []scored
	for rows.Next() {
		var id string
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, fmt.Errorf("tool store: scan: %w", err)
		}
		vec, err := decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("tool store: entry %q: %w", id, err)
		}
		if len(vec) != len(qvec) {
			return nil, fmt.Errorf("tool store: entry %q: dimension mismatch (%d vs %d)", id, len(vec), len(qvec))
		}
		items = append(items, scored{id: id, score: cosine(qvec, vec)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tool store: search: %w", err)
	}

	return rank(items, limit), nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// encodeVector packs a float64 vector as little-endian bytes.
func encodeVector(vec []float64) []byte {
	buf := make([]byte, 8*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return buf
}

func decodeVector(buf []byte) ([]float64, error) {
	if len(buf)%8 != 0 {
		return nil, fmt.Errorf("malformed embedding (%d bytes)", len(buf))
	}
	vec := make([]float64, len(buf)/8)
	for i := range vec {
		vec[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[8*i:]))
	}
	return vec, nil
}
