package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store. Entries are embedded at Put time and
// scored against the query embedding at Search time.
type MemoryStore struct {
	embedder Embedder
	mu       sync.RWMutex
	entries  map[string]memEntry
}

type memEntry struct {
	entry  Entry
	vector []float64
}

// NewMemoryStore creates an empty in-memory store using the given embedder.
func NewMemoryStore(e Embedder) *MemoryStore {
	return &MemoryStore{
		embedder: e,
		entries:  make(map[string]memEntry),
	}
}

// Put indexes the entry under id, replacing any previous entry.
func (s *MemoryStore) Put(_ context.Context, id string, e Entry) error {
	vec, err := s.embedder.Embed(e.Description)
	if err != nil {
		return fmt.Errorf("store: embed %q: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memEntry{entry: e, vector: vec}
	return nil
}

// Search ranks all entries by cosine similarity to the query embedding.
func (s *MemoryStore) Search(_ context.Context, query string, limit int) ([]string, error) {
	qvec, err := s.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("store: embed query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]scored, 0, len(s.entries))
	for id, e := range s.entries {
		items = append(items, scored{id: id, score: cosine(qvec, e.vector)})
	}
	return rank(items, limit), nil
}

// Get returns the entry stored under id.
func (s *MemoryStore) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e.entry, ok
}

// Len returns the number of indexed entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
