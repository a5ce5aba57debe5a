package feature

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/popdeck/pop/internal/storage"
)

// Load decodes the document at key. An absent or unparsable document yields
// def() so readers never see a missing document.
func Load[T any](ctx context.Context, s storage.Store, key string, def func() T) T {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return def()
	}

	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		slog.Warn("Unparsable document, using defaults", "key", key, "error", err)
		return def()
	}
	return doc
}

// Save marshals and writes the whole document. Last write wins.
func Save[T any](ctx context.Context, s storage.Store, key string, doc T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}
