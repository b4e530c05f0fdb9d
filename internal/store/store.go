// Package store implements the on-disk session store for unsaved-document
// snapshots. The layout is a deliberate contract consumed by outside tools:
//
//	<root>/
//	  <session-id>/       e.g. 20240115-093000
//	    <display-name>    raw full-text snapshot, no framing
//
// A Store is bound to one session, identified by the timestamp captured at
// process start. Snapshot writes only ever touch the bound session's
// directory; the retention sweep only ever touches other, older sessions.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/safekeep/safekeep/internal/errors"
	"github.com/safekeep/safekeep/internal/logging"
)

// SessionIDFormat is the time layout for session directory names.
// Lexicographic order equals chronological order, and the name doubles as
// the parseable age key for the retention sweep.
const SessionIDFormat = "20060102-150405"

// NewSessionID formats a session id from the given start time.
func NewSessionID(start time.Time) string {
	return start.Format(SessionIDFormat)
}

// ParseSessionID parses a session directory name back into its start time.
func ParseSessionID(id string) (time.Time, error) {
	ts, err := time.ParseInLocation(SessionIDFormat, id, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a session id: %w", err)
	}
	return ts, nil
}

// Store provides access to the snapshot store for one session.
type Store struct {
	root      string
	sessionID string
	log       *logging.Logger
}

// New creates a Store rooted at root and bound to the given session id.
// Nothing is created on disk until the first snapshot write.
func New(root, sessionID string, log *logging.Logger) *Store {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Store{
		root:      root,
		sessionID: sessionID,
		log:       log.WithSession(sessionID),
	}
}

// Open creates a Store bound to a fresh session identified by start.
// Two sessions starting within the same second share a directory; the last
// writer wins, which is acceptable for a best-effort safety net.
func Open(root string, start time.Time, log *logging.Logger) *Store {
	return New(root, NewSessionID(start), log)
}

// Root returns the store root directory.
func (s *Store) Root() string { return s.root }

// SessionID returns the bound session's id.
func (s *Store) SessionID() string { return s.sessionID }

// SessionDir returns the bound session's directory path.
func (s *Store) SessionDir() string {
	return filepath.Join(s.root, s.sessionID)
}

// validateName rejects snapshot names that cannot be used as a filename
// inside the session directory. Display names never legitimately contain
// path separators; anything that does would escape the store layout.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return errors.ErrInvalidSnapshotName
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator) {
		return errors.ErrInvalidSnapshotName
	}
	return nil
}

// WriteSnapshot persists the full text of an unsaved document under its
// display name, creating the session directory on first use. The write is
// atomic: readers of the store never observe a partial snapshot.
func (s *Store) WriteSnapshot(name, text string) error {
	if err := validateName(name); err != nil {
		return errors.NewStoreError("write", name, err)
	}

	dir := s.SessionDir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		s.log.Info("creating session store directory", "path", dir)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.NewStoreError("write", dir, err)
		}
	}

	path := filepath.Join(dir, name)
	if err := atomicWriteFile(path, []byte(text), 0600); err != nil {
		return errors.NewStoreError("write", path, err)
	}

	s.log.Debug("snapshot stored", "name", name, "bytes", len(text))
	return nil
}

// RemoveSnapshot deletes the snapshot stored under name and, when it was the
// last file in the session directory, the directory itself. Removing a
// snapshot that does not exist returns ErrSnapshotNotFound.
func (s *Store) RemoveSnapshot(name string) error {
	if err := validateName(name); err != nil {
		return errors.NewStoreError("remove", name, err)
	}

	path := filepath.Join(s.SessionDir(), name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errors.NewStoreError("remove", path, errors.ErrSnapshotNotFound)
		}
		return errors.NewStoreError("remove", path, err)
	}
	s.log.Info("removed snapshot", "name", name)

	s.removeSessionDirIfEmpty()
	return nil
}

// removeSessionDirIfEmpty drops the session directory once no snapshots
// remain. Failure is logged, never propagated: an undeletable empty
// directory is reclaimed by a later sweep anyway.
func (s *Store) removeSessionDirIfEmpty() {
	dir := s.SessionDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error("failed to list session directory", "path", dir, "error", err)
		}
		return
	}
	if len(entries) > 0 {
		s.log.Debug("session directory still has snapshots", "count", len(entries))
		return
	}

	s.log.Info("removing empty session directory", "path", dir)
	if err := os.Remove(dir); err != nil {
		s.log.Error("failed to remove session directory", "path", dir, "error", err)
	}
}

// ReadSnapshot returns the stored text of a snapshot from any session.
// Used by recovery tooling; the autosave path itself never reads back.
func (s *Store) ReadSnapshot(sessionID, name string) (string, error) {
	if _, err := ParseSessionID(sessionID); err != nil {
		return "", errors.NewStoreError("read", sessionID, errors.ErrSessionNotFound)
	}
	if err := validateName(name); err != nil {
		return "", errors.NewStoreError("read", name, err)
	}

	path := filepath.Join(s.root, sessionID, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if _, statErr := os.Stat(filepath.Join(s.root, sessionID)); os.IsNotExist(statErr) {
				return "", errors.NewStoreError("read", path, errors.ErrSessionNotFound)
			}
			return "", errors.NewStoreError("read", path, errors.ErrSnapshotNotFound)
		}
		return "", errors.NewStoreError("read", path, err)
	}
	return string(data), nil
}

// atomicWriteFile writes data to path via a temp file and rename, so a crash
// mid-write can never leave a truncated snapshot behind.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Create temp file in same directory to ensure atomic rename
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on any error
	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
