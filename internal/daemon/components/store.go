package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/popdeck/pop/internal/config"
	"github.com/popdeck/pop/internal/daemon"
	"github.com/popdeck/pop/internal/feature"
	"github.com/popdeck/pop/internal/storage"
)

// StoreComponent owns the workspace document store and the exclusive
// workspace lock. Every other component reaches storage through it.
type StoreComponent struct {
	cfg         *config.Config
	workspaceID string
	store       *storage.DiskStore
	lock        *storage.FileLock
	initialized bool
	mu          sync.RWMutex
}

func NewStoreComponent(workspaceID string, cfg *config.Config) *StoreComponent {
	return &StoreComponent{
		cfg:         cfg,
		workspaceID: workspaceID,
	}
}

func (s *StoreComponent) Name() string {
	return "Store"
}

func (s *StoreComponent) Dependencies() []string {
	return []string{}
}

func (s *StoreComponent) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	workspacePath, err := storage.GetWorkspacePath(s.workspaceID, s.cfg.Daemon.WorkspacePath)
	if err != nil {
		return fmt.Errorf("resolve workspace path: %w", err)
	}
	if err := os.MkdirAll(workspacePath, 0755); err != nil {
		return fmt.Errorf("create workspace directory: %w", err)
	}

	lockCfg, err := s.lockConfig()
	if err != nil {
		return err
	}
	lock, err := storage.NewFileLock(s.workspaceID, workspacePath, lockCfg)
	if err != nil {
		return fmt.Errorf("acquire workspace lock: %w", err)
	}

	docsDir, err := storage.GetDocsDir(s.workspaceID, s.cfg.Daemon.WorkspacePath)
	if err != nil {
		lock.Unlock()
		return fmt.Errorf("resolve docs dir: %w", err)
	}
	store, err := storage.NewDiskStore(docsDir, s.cfg.Storage.CacheSizeMax)
	if err != nil {
		lock.Unlock()
		return fmt.Errorf("open document store: %w", err)
	}

	if err := feature.Seed(ctx, store, time.Now()); err != nil {
		lock.Unlock()
		return fmt.Errorf("seed workspace: %w", err)
	}

	s.lock = lock
	s.store = store
	s.initialized = true
	slog.Info("Store initialized", "component", s.Name(), "workspace", s.workspaceID, "docs_dir", docsDir)
	return nil
}

func (s *StoreComponent) lockConfig() (*storage.FileLockConfig, error) {
	lockTimeout, err := config.DurationOrDefault(s.cfg.Storage.LockTimeout, config.DefaultStorageLockTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse storage lock timeout: %w", err)
	}
	lockRetry, err := config.DurationOrDefault(s.cfg.Storage.LockRetry, config.DefaultStorageLockRetry)
	if err != nil {
		return nil, fmt.Errorf("parse storage lock retry: %w", err)
	}
	maxRetry := s.cfg.Storage.LockMaxRetry
	if maxRetry <= 0 {
		maxRetry = config.DefaultStorageLockMaxRetry
	}
	return &storage.FileLockConfig{
		LockTimeout:  lockTimeout,
		LockRetry:    lockRetry,
		LockMaxRetry: maxRetry,
	}, nil
}

func (s *StoreComponent) Start(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return fmt.Errorf("store not initialized")
	}
	return nil
}

func (s *StoreComponent) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lock != nil {
		s.lock.Unlock()
		s.lock = nil
	}
	s.initialized = false
	slog.Info("Store stopped", "component", s.Name())
	return nil
}

func (s *StoreComponent) Health(ctx context.Context) (*daemon.ComponentHealth, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return &daemon.ComponentHealth{Name: s.Name(), Healthy: false, Error: fmt.Errorf("not initialized")}, nil
	}
	if s.lock == nil || !s.lock.IsLocked() {
		return &daemon.ComponentHealth{Name: s.Name(), Healthy: false, Error: fmt.Errorf("workspace lock lost")}, nil
	}
	return &daemon.ComponentHealth{Name: s.Name(), Healthy: true}, nil
}

// Store exposes the document store. Valid after Init.
func (s *StoreComponent) Store() storage.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}
