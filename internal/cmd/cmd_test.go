package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/safekeep/safekeep/internal/config"
	"github.com/safekeep/safekeep/internal/store"
	"github.com/spf13/viper"
)

func seedStore(t *testing.T, ages ...time.Duration) string {
	t.Helper()

	root := t.TempDir()
	for _, age := range ages {
		id := store.NewSessionID(time.Now().Add(-age))
		dir := filepath.Join(root, id)
		if err := os.MkdirAll(dir, 0700); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "draft"), []byte("text"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func configureStore(t *testing.T, root string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults()
	viper.Set("store.root", root)
}

func TestRunSweep(t *testing.T) {
	t.Run("removes stale sessions", func(t *testing.T) {
		root := seedStore(t, 50*24*time.Hour, 24*time.Hour)
		configureStore(t, root)
		sweepDryRun = false
		sweepRetentionDays = 0

		if err := runSweep(sweepCmd, nil); err != nil {
			t.Fatalf("runSweep failed: %v", err)
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("expected 1 surviving session, got %d", len(entries))
		}
	})

	t.Run("dry-run deletes nothing", func(t *testing.T) {
		root := seedStore(t, 50*24*time.Hour, 24*time.Hour)
		configureStore(t, root)
		sweepDryRun = true
		t.Cleanup(func() { sweepDryRun = false })

		if err := runSweep(sweepCmd, nil); err != nil {
			t.Fatalf("runSweep failed: %v", err)
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 2 {
			t.Errorf("dry-run removed sessions: %d left, want 2", len(entries))
		}
	})

	t.Run("retention override applies", func(t *testing.T) {
		root := seedStore(t, 10*24*time.Hour)
		configureStore(t, root)
		sweepDryRun = false
		sweepRetentionDays = 7
		t.Cleanup(func() { sweepRetentionDays = 0 })

		if err := runSweep(sweepCmd, nil); err != nil {
			t.Fatalf("runSweep failed: %v", err)
		}

		entries, _ := os.ReadDir(root)
		if len(entries) != 0 {
			t.Errorf("expected the 10d session removed under 7d retention, %d left", len(entries))
		}
	})
}

func TestRunSessions(t *testing.T) {
	root := seedStore(t, 50*24*time.Hour, 24*time.Hour)
	configureStore(t, root)

	if err := runSessions(sessionsCmd, nil); err != nil {
		t.Fatalf("runSessions failed: %v", err)
	}

	// Listing must never mutate the store.
	entries, _ := os.ReadDir(root)
	if len(entries) != 2 {
		t.Errorf("sessions listing changed the store: %d entries left", len(entries))
	}
}

func TestRunRestore(t *testing.T) {
	root := t.TempDir()
	id := store.NewSessionID(time.Now().Add(-time.Hour))
	if err := os.MkdirAll(filepath.Join(root, id), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, id, "draft"), []byte("lost words"), 0600); err != nil {
		t.Fatal(err)
	}
	configureStore(t, root)

	out := filepath.Join(t.TempDir(), "recovered.txt")
	restoreOutput = out
	t.Cleanup(func() { restoreOutput = "" })

	if err := runRestore(restoreCmd, []string{id, "draft"}); err != nil {
		t.Fatalf("runRestore failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("recovered file missing: %v", err)
	}
	if string(data) != "lost words" {
		t.Errorf("recovered = %q, want %q", data, "lost words")
	}

	// The snapshot stays in the store after recovery.
	if _, err := os.Stat(filepath.Join(root, id, "draft")); err != nil {
		t.Errorf("snapshot should remain in the store: %v", err)
	}
}

func TestFormatAge(t *testing.T) {
	cases := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Minute, "30m old"},
		{3 * time.Hour, "3h old"},
		{50 * 24 * time.Hour, "50d old"},
	}
	for _, tc := range cases {
		if got := formatAge(tc.age); got != tc.want {
			t.Errorf("formatAge(%v) = %q, want %q", tc.age, got, tc.want)
		}
	}
}
