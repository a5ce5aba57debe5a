package concurrency

import "sync"

// KeyedLockManager serializes work per key. The coordinator uses it to keep
// same-process read-modify-write cycles on one document from interleaving.
type KeyedLockManager struct {
	locks map[string]*sync.Mutex
	mu    sync.Mutex
}

func NewKeyedLockManager() *KeyedLockManager {
	return &KeyedLockManager{
		locks: make(map[string]*sync.Mutex),
	}
}

func (m *KeyedLockManager) Lock(key string) {
	m.mu.Lock()
	lock, ok := m.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[key] = lock
	}
	m.mu.Unlock()
	lock.Lock()
}

func (m *KeyedLockManager) Unlock(key string) {
	m.mu.Lock()
	lock, ok := m.locks[key]
	if ok {
		lock.Unlock()
	}
	m.mu.Unlock()
}
