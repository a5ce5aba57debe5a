package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quickLockConfig() *FileLockConfig {
	return &FileLockConfig{
		LockTimeout:  500 * time.Millisecond,
		LockRetry:    10 * time.Millisecond,
		LockMaxRetry: 3,
	}
}

func TestFileLock_AcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	fl, err := NewFileLock("default", dir, quickLockConfig())
	require.NoError(t, err)
	assert.True(t, fl.IsLocked())

	fl.Unlock()
	assert.False(t, fl.IsLocked())
}

func TestFileLock_SecondInstanceFails(t *testing.T) {
	dir := t.TempDir()

	fl, err := NewFileLock("default", dir, quickLockConfig())
	require.NoError(t, err)
	defer fl.Unlock()

	_, err = NewFileLock("default", dir, quickLockConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked by another instance")
}

func TestFileLock_ReacquireAfterRelease(t *testing.T) {
	dir := t.TempDir()

	first, err := NewFileLock("default", dir, quickLockConfig())
	require.NoError(t, err)
	first.Unlock()

	second, err := NewFileLock("default", dir, quickLockConfig())
	require.NoError(t, err)
	second.Unlock()
}

func TestCleanupStaleLocks_NoFile(t *testing.T) {
	require.NoError(t, CleanupStaleLocks(t.TempDir(), time.Minute, true))
}
