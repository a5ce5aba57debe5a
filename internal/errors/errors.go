package errors

import (
	"errors"
)

// Sentinel errors for different categories
var (
	// ErrInvalidInput - validation failure (surfaced as a toast in foreground surfaces, skipped silently in background checks)
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound - resource not found
	ErrNotFound = errors.New("not found")

	// ErrConflict - conflict (another writer got there first)
	ErrConflict = errors.New("conflict")

	// ErrTransient - transient error (host API hiccup, retry later)
	ErrTransient = errors.New("transient error")

	// ErrUnavailable - host API unavailable (notification surface down, permission denied); treated as a no-op at call sites
	ErrUnavailable = errors.New("unavailable")

	// ErrImportFailed - import parsing failure; no partial writes happened
	ErrImportFailed = errors.New("import failed")

	// ErrInternal - internal error
	ErrInternal = errors.New("internal error")
)
