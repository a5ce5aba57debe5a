package storage

import (
	"context"
	"encoding/json"
)

// Store is the persistence contract for feature documents. Documents are
// whole JSON values keyed by stable feature keys; writes replace the whole
// document (last-write-wins).
type Store interface {
	// Get returns the raw document for key, or errors.ErrNotFound when absent.
	Get(ctx context.Context, key string) (json.RawMessage, error)

	// Set replaces the document for key.
	Set(ctx context.Context, key string, doc json.RawMessage) error

	// Remove deletes the document for key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error

	// GetAll returns a snapshot of every stored document.
	GetAll(ctx context.Context) (map[string]json.RawMessage, error)
}
