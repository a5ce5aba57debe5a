package storage

import (
	"context"
	"encoding/json"
	"sync"

	poperrors "github.com/popdeck/pop/internal/errors"
)

// MemoryStore is an in-memory Store used by tests and by the dashboard's
// read-only preview mode.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]json.RawMessage)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[key]
	if !ok {
		return nil, poperrors.NotFound(key)
	}
	out := make(json.RawMessage, len(doc))
	copy(out, doc)
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, doc json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := make(json.RawMessage, len(doc))
	copy(stored, doc)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = stored
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
	return nil
}

func (s *MemoryStore) GetAll(ctx context.Context) (map[string]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make(map[string]json.RawMessage, len(s.docs))
	for key, doc := range s.docs {
		out := make(json.RawMessage, len(doc))
		copy(out, doc)
		all[key] = out
	}
	return all, nil
}
