package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	poperrors "github.com/popdeck/pop/internal/errors"
)

// DiskStore persists one JSON document per key under the workspace docs
// directory. Keys are flat; diskv handles caching and atomic-enough writes
// for single-writer use.
type DiskStore struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskStore opens (creating if needed) a document store rooted at basePath.
func NewDiskStore(basePath string, cacheSizeMax int) (*DiskStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, poperrors.InvalidInput("document store base path required")
	}
	if cacheSizeMax <= 0 {
		cacheSizeMax = 1024 * 1024 // 1MB
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("ensure docs dir: %w", err)
	}

	return &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: flatTransform,
			InverseTransform:  flatInverse,
			CacheSizeMax:      uint64(cacheSizeMax),
		}),
		basePath: basePath,
	}, nil
}

func (s *DiskStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	val, err := s.d.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, poperrors.NotFound(key)
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return json.RawMessage(val), nil
}

func (s *DiskStore) Set(ctx context.Context, key string, doc json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return poperrors.InvalidInput("document key required")
	}
	if !json.Valid(doc) {
		return poperrors.InvalidInput(fmt.Sprintf("document for %s is not valid JSON", key))
	}
	if err := s.d.Write(key, doc); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *DiskStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.d.Erase(key); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("erase %s: %w", key, err)
	}
	return nil
}

func (s *DiskStore) GetAll(ctx context.Context) (map[string]json.RawMessage, error) {
	all := make(map[string]json.RawMessage)
	for key := range s.d.Keys(ctx.Done()) {
		val, err := s.d.Read(key)
		if err != nil {
			continue
		}
		all[key] = json.RawMessage(val)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return all, nil
}

// Documents are few and keys carry a common prefix, so a flat layout with
// the key as the file name is enough.
func flatTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: key + ".json"}
}

func flatInverse(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, ".json")
}
