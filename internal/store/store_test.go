package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/safekeep/safekeep/internal/errors"
	"github.com/safekeep/safekeep/internal/logging"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return Open(t.TempDir(), time.Now(), logging.NopLogger())
}

func TestSessionID(t *testing.T) {
	t.Run("format round-trips", func(t *testing.T) {
		start := time.Date(2024, 1, 15, 9, 30, 0, 0, time.Local)

		id := NewSessionID(start)
		if id != "20240115-093000" {
			t.Errorf("NewSessionID = %q, want %q", id, "20240115-093000")
		}

		parsed, err := ParseSessionID(id)
		if err != nil {
			t.Fatalf("ParseSessionID failed: %v", err)
		}
		if !parsed.Equal(start) {
			t.Errorf("parsed %v, want %v", parsed, start)
		}
	})

	t.Run("ids sort chronologically", func(t *testing.T) {
		older := NewSessionID(time.Date(2023, 12, 31, 23, 59, 59, 0, time.Local))
		newer := NewSessionID(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
		if !(older < newer) {
			t.Errorf("expected %q < %q", older, newer)
		}
	})

	t.Run("rejects foreign names", func(t *testing.T) {
		for _, name := range []string{"", "lost+found", "2024-01-15", "20240115093000", "20241399-000000"} {
			if _, err := ParseSessionID(name); err == nil {
				t.Errorf("ParseSessionID(%q) should fail", name)
			}
		}
	})
}

func TestWriteSnapshot(t *testing.T) {
	t.Run("creates session directory lazily", func(t *testing.T) {
		s := newTestStore(t)

		if _, err := os.Stat(s.SessionDir()); !os.IsNotExist(err) {
			t.Fatal("session directory should not exist before first write")
		}

		if err := s.WriteSnapshot("Untitled Document 1", "hello"); err != nil {
			t.Fatalf("WriteSnapshot failed: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(s.SessionDir(), "Untitled Document 1"))
		if err != nil {
			t.Fatalf("snapshot file missing: %v", err)
		}
		if string(data) != "hello" {
			t.Errorf("snapshot content = %q, want %q", data, "hello")
		}
	})

	t.Run("overwrites on subsequent ticks", func(t *testing.T) {
		s := newTestStore(t)

		for _, text := range []string{"first", "second", "third"} {
			if err := s.WriteSnapshot("draft", text); err != nil {
				t.Fatalf("WriteSnapshot failed: %v", err)
			}
		}

		data, _ := os.ReadFile(filepath.Join(s.SessionDir(), "draft"))
		if string(data) != "third" {
			t.Errorf("snapshot content = %q, want last write", data)
		}
	})

	t.Run("leaves no temp artifacts", func(t *testing.T) {
		s := newTestStore(t)

		if err := s.WriteSnapshot("draft", strings.Repeat("x", 4096)); err != nil {
			t.Fatalf("WriteSnapshot failed: %v", err)
		}

		entries, err := os.ReadDir(s.SessionDir())
		if err != nil {
			t.Fatalf("ReadDir failed: %v", err)
		}
		if len(entries) != 1 || entries[0].Name() != "draft" {
			t.Errorf("unexpected session directory contents: %v", entries)
		}
	})

	t.Run("rejects names that escape the session directory", func(t *testing.T) {
		s := newTestStore(t)

		for _, name := range []string{"", ".", "..", "a/b", `a\b`, "../escape"} {
			err := s.WriteSnapshot(name, "text")
			if !errors.Is(err, errors.ErrInvalidSnapshotName) {
				t.Errorf("WriteSnapshot(%q) = %v, want ErrInvalidSnapshotName", name, err)
			}
		}

		if _, err := os.Stat(s.SessionDir()); !os.IsNotExist(err) {
			t.Error("rejected writes must not create the session directory")
		}
	})
}

func TestRemoveSnapshot(t *testing.T) {
	t.Run("removes file and empty session directory", func(t *testing.T) {
		s := newTestStore(t)

		if err := s.WriteSnapshot("draft", "text"); err != nil {
			t.Fatalf("WriteSnapshot failed: %v", err)
		}
		if err := s.RemoveSnapshot("draft"); err != nil {
			t.Fatalf("RemoveSnapshot failed: %v", err)
		}

		if _, err := os.Stat(s.SessionDir()); !os.IsNotExist(err) {
			t.Error("empty session directory should have been removed")
		}
	})

	t.Run("keeps session directory while other snapshots remain", func(t *testing.T) {
		s := newTestStore(t)

		_ = s.WriteSnapshot("one", "a")
		_ = s.WriteSnapshot("two", "b")

		if err := s.RemoveSnapshot("one"); err != nil {
			t.Fatalf("RemoveSnapshot failed: %v", err)
		}

		if _, err := os.Stat(filepath.Join(s.SessionDir(), "two")); err != nil {
			t.Errorf("remaining snapshot should survive: %v", err)
		}
		if _, err := os.Stat(s.SessionDir()); err != nil {
			t.Errorf("session directory should survive: %v", err)
		}
	})

	t.Run("missing snapshot yields ErrSnapshotNotFound", func(t *testing.T) {
		s := newTestStore(t)

		err := s.RemoveSnapshot("never-written")
		if !errors.Is(err, errors.ErrSnapshotNotFound) {
			t.Errorf("RemoveSnapshot = %v, want ErrSnapshotNotFound", err)
		}
	})
}

func TestReadSnapshot(t *testing.T) {
	t.Run("reads back from any session", func(t *testing.T) {
		root := t.TempDir()
		old := Open(root, time.Now().Add(-48*time.Hour), logging.NopLogger())
		if err := old.WriteSnapshot("notes", "recoverable text"); err != nil {
			t.Fatalf("WriteSnapshot failed: %v", err)
		}

		current := Open(root, time.Now(), logging.NopLogger())
		text, err := current.ReadSnapshot(old.SessionID(), "notes")
		if err != nil {
			t.Fatalf("ReadSnapshot failed: %v", err)
		}
		if text != "recoverable text" {
			t.Errorf("ReadSnapshot = %q", text)
		}
	})

	t.Run("distinguishes missing session from missing snapshot", func(t *testing.T) {
		s := newTestStore(t)
		_ = s.WriteSnapshot("exists", "x")

		_, err := s.ReadSnapshot(s.SessionID(), "absent")
		if !errors.Is(err, errors.ErrSnapshotNotFound) {
			t.Errorf("want ErrSnapshotNotFound, got %v", err)
		}

		_, err = s.ReadSnapshot("19990101-000000", "absent")
		if !errors.Is(err, errors.ErrSessionNotFound) {
			t.Errorf("want ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("rejects foreign session names", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.ReadSnapshot("../outside", "name")
		if !errors.Is(err, errors.ErrSessionNotFound) {
			t.Errorf("want ErrSessionNotFound, got %v", err)
		}
	})
}

func TestDisplayNameCollision(t *testing.T) {
	// Two unnamed documents sharing a display name write to the same file;
	// the second writer's ticks overwrite the first's. Documented behavior.
	s := newTestStore(t)

	if err := s.WriteSnapshot("Untitled Document 1", "from first document"); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	if err := s.WriteSnapshot("Untitled Document 1", "from second document"); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(s.SessionDir(), "Untitled Document 1"))
	if string(data) != "from second document" {
		t.Errorf("collision should overwrite silently, got %q", data)
	}
}
