package store

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/safekeep/safekeep/internal/errors"
)

// SessionInfo describes one session directory found under the store root.
type SessionInfo struct {
	ID        string    // Directory name, a formatted session id
	StartedAt time.Time // Parsed from the id
	Snapshots int       // Number of snapshot files inside
	Current   bool      // Whether this is the store's bound session
}

// Age returns the session's age at the given instant.
func (i SessionInfo) Age(now time.Time) time.Duration {
	return now.Sub(i.StartedAt)
}

// SweepResult summarizes one retention sweep.
type SweepResult struct {
	Removed []string // Session ids whose directories were deleted
	Kept    []string // Session ids younger than the retention threshold
	Skipped []string // Foreign entries that are not session ids
}

// Sessions lists the session directories under the store root in
// chronological order. Foreign entries (names that do not parse as session
// ids, or plain files) are logged and skipped. A missing root yields an
// empty listing, not an error.
func (s *Store) Sessions() ([]SessionInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug("store root does not exist", "path", s.root)
			return nil, nil
		}
		return nil, errors.NewStoreError("list", s.root, err)
	}

	var sessions []SessionInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			s.log.Warn("foreign file in store root", "name", entry.Name())
			continue
		}
		start, err := ParseSessionID(entry.Name())
		if err != nil {
			s.log.Warn("foreign directory in store root", "name", entry.Name())
			continue
		}

		count := 0
		if files, err := os.ReadDir(filepath.Join(s.root, entry.Name())); err == nil {
			count = len(files)
		}

		sessions = append(sessions, SessionInfo{
			ID:        entry.Name(),
			StartedAt: start,
			Snapshots: count,
			Current:   entry.Name() == s.sessionID,
		})
	}

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })
	return sessions, nil
}

// SweepOldSessions deletes every session directory older than retention,
// contents first, directory after. It runs once at process activation.
//
// The sweep is tolerant by design: a missing root is trivial success, an
// unparsable directory name is logged and skipped, the bound session is
// never touched, and a failure inside one session does not stop the sweep
// of the others. Per-session failures are joined into the returned error
// after every session has been visited.
func (s *Store) SweepOldSessions(now time.Time, retention time.Duration) (*SweepResult, error) {
	result := &SweepResult{}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug("store root does not exist, nothing to sweep", "path", s.root)
			return result, nil
		}
		return result, errors.NewStoreError("sweep", s.root, err)
	}

	// ReadDir returns sorted entries, so sessions are visited in
	// chronological order. Only for predictable logs.
	var failures []error
	for _, entry := range entries {
		name := entry.Name()

		start, err := ParseSessionID(name)
		if err != nil || !entry.IsDir() {
			s.log.Warn("skipping foreign entry in store root", "name", name)
			result.Skipped = append(result.Skipped, name)
			continue
		}

		if name == s.sessionID {
			// The live session is always kept, whatever the clock says.
			result.Kept = append(result.Kept, name)
			continue
		}

		age := now.Sub(start)
		if age < retention {
			s.log.Debug("session is too recent to sweep",
				"session", name, "age_days", float64(age)/float64(24*time.Hour))
			result.Kept = append(result.Kept, name)
			continue
		}

		s.log.Info("cleaning up storage for old session", "session", name)
		if err := s.removeSessionDir(name); err != nil {
			failures = append(failures, err)
			continue
		}
		result.Removed = append(result.Removed, name)
	}

	return result, errors.Join(failures...)
}

// removeSessionDir deletes every file inside the named session directory,
// then the directory itself.
func (s *Store) removeSessionDir(name string) error {
	dir := filepath.Join(s.root, name)

	files, err := os.ReadDir(dir)
	if err != nil {
		return errors.NewStoreError("sweep", dir, err)
	}

	var failures []error
	for _, file := range files {
		path := filepath.Join(dir, file.Name())
		s.log.Info("removing stale snapshot", "path", path)
		if err := os.Remove(path); err != nil {
			s.log.Error("failed to remove stale snapshot", "path", path, "error", err)
			failures = append(failures, errors.NewStoreError("sweep", path, err))
		}
	}

	if len(failures) > 0 {
		return errors.Join(failures...)
	}

	s.log.Info("removing directory for old session", "path", dir)
	if err := os.Remove(dir); err != nil {
		return errors.NewStoreError("sweep", dir, err)
	}
	return nil
}
