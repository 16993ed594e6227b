// Package store indexes tool descriptions for semantic retrieval. The agent
// treats it as an opaque collaborator: callers populate it before any run,
// the agent only calls Search.
package store

import "context"

// Entry is the indexable record for one tool.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Store is the semantic index over tool descriptions. Search returns tool
// ids ranked by relevance; for a fixed store state and embedder the ranking
// is deterministic, with ties broken by id.
type Store interface {
	// Put indexes (or re-indexes) the entry under the given tool id.
	Put(ctx context.Context, id string, e Entry) error
	// Search returns up to limit tool ids ranked by relevance to query.
	// A limit <= 0 means no limit.
	Search(ctx context.Context, query string, limit int) ([]string, error)
}
