// Package errors provides centralized error definitions and error handling
// utilities for the safekeep codebase. It defines domain-specific errors for
// the store and watcher subsystems, plus classification helpers.
//
// Everything here is best-effort by contract: autosave is a safety net
// layered atop a host application, so no error defined in this package is
// ever treated as fatal to the process.
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors for the watcher state machine.
var (
	// ErrAlreadyWatching is returned when Start is called on a watcher
	// that is already in the Watching state.
	ErrAlreadyWatching = errors.New("document already being watched")

	// ErrNotWatching is returned when an operation requires the watcher
	// to be in the Watching state.
	ErrNotWatching = errors.New("document not being watched")
)

// Sentinel errors for the session store.
var (
	// ErrSnapshotNotFound is returned when a snapshot file does not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrSessionNotFound is returned when a session directory does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidSnapshotName is returned when a snapshot name would escape
	// the session directory or is otherwise unusable as a filename.
	ErrInvalidSnapshotName = errors.New("invalid snapshot name")
)

// StoreError represents an error from the session store subsystem.
type StoreError struct {
	Op   string // The operation that failed (e.g., "write", "sweep")
	Path string // The filesystem path involved, if any
	Err  error  // The underlying error
}

// NewStoreError creates a StoreError for the given operation.
func NewStoreError(op, path string, err error) *StoreError {
	return &StoreError{Op: op, Path: path, Err: err}
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("store %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// WatchError represents an error from the document watcher subsystem.
type WatchError struct {
	Document string // Display name of the document
	Err      error  // The underlying error
}

// NewWatchError creates a WatchError for the given document.
func NewWatchError(document string, err error) *WatchError {
	return &WatchError{Document: document, Err: err}
}

// Error implements the error interface.
func (e *WatchError) Error() string {
	return fmt.Sprintf("watch %q: %v", e.Document, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *WatchError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err indicates a missing snapshot or session.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSnapshotNotFound) || errors.Is(err, ErrSessionNotFound)
}
