// Package watcher implements the per-document autosave lifecycle: while an
// untitled document stays untitled, its watcher periodically snapshots the
// full text into the current session's store directory; the first successful
// named save deletes the snapshot and retires the watcher for good.
package watcher

import (
	"sync"

	"github.com/safekeep/safekeep/internal/config"
	"github.com/safekeep/safekeep/internal/errors"
	"github.com/safekeep/safekeep/internal/logging"
	"github.com/safekeep/safekeep/internal/store"
)

// State is the lifecycle state of a watcher.
type State int

const (
	// StateInactive means no snapshot schedule is running. Terminal once
	// the document has been saved under a name.
	StateInactive State = iota

	// StateWatching means the recurring snapshot schedule is live.
	StateWatching
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateWatching:
		return "watching"
	default:
		return "unknown"
	}
}

// Watcher owns the autosave lifecycle for exactly one untitled document.
// A document that later gains a name never re-enters Watching.
//
// Ticks arrive on scheduler goroutines and saved notifications on the
// host's dispatch path; the mutex serializes them, so a tick can never race
// the snapshot deletion that follows a save.
type Watcher struct {
	mu    sync.Mutex
	state State

	doc   Document
	store *store.Store
	sched Scheduler
	notif Notifier
	cfg   config.AutosaveConfig
	log   *logging.Logger

	cancelTick func()
	offSaved   func()
}

// New creates a watcher for one document. Nothing runs until Start.
func New(doc Document, st *store.Store, sched Scheduler, notif Notifier, cfg config.AutosaveConfig, log *logging.Logger) *Watcher {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Watcher{
		doc:   doc,
		store: st,
		sched: sched,
		notif: notif,
		cfg:   cfg,
		log:   log.WithDocument(doc.DisplayName()),
	}
}

// State returns the watcher's current state.
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Start transitions Inactive -> Watching: register for the saved
// notification and schedule the recurring snapshot tick. It declines
// without error when autosave is disabled or the document already has a
// name; the watcher then stays Inactive forever and every later operation
// is a no-op. Starting an already-watching watcher is a bug in the caller
// and returns ErrAlreadyWatching.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateWatching {
		return errors.NewWatchError(w.doc.DisplayName(), errors.ErrAlreadyWatching)
	}

	if !w.cfg.Enabled {
		w.log.Warn("autosave is not enabled, unsaved document will not be protected")
		return nil
	}

	if !w.doc.Untitled() {
		w.log.Debug("document already has a name, skipping")
		return nil
	}

	w.state = StateWatching
	w.log.Debug("starting watch", "interval", w.cfg.Interval())

	w.offSaved = w.notif.OnSaved(w.handleSaved)
	w.cancelTick = w.sched.Every(w.cfg.Interval(), w.tick)

	return nil
}

// Stop handles teardown without a save (document closed, process exiting):
// the schedule and notification registration are torn down, but the
// snapshot stays on disk. Surviving exactly this kind of teardown is the
// point of the feature. No-op when not watching.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateWatching {
		return
	}

	w.log.Debug("stopping watch, snapshot left in place")
	w.teardownLocked()
}

// tick runs one autosave pass. Returning true keeps the schedule alive.
func (w *Watcher) tick() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	// A tick that raced teardown is dropped; returning false also tells
	// the scheduler to stop in case cancellation lost the race.
	if w.state != StateWatching {
		return false
	}

	if w.doc.Untouched() {
		w.log.Debug("document has not been touched, not storing")
		return true
	}

	name := w.doc.DisplayName()
	text := w.doc.FullText()

	if err := w.store.WriteSnapshot(name, text); err != nil {
		// Best effort: this tick's snapshot is lost, the next may succeed.
		w.log.Error("failed to store unsaved document", "error", err)
		return true
	}

	w.log.Info("stored unsaved document", "bytes", len(text))
	return true
}

// handleSaved runs on the host's "saved" notification, which only fires for
// real saves under a name. The watcher retires and its snapshot is removed.
func (w *Watcher) handleSaved() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateWatching {
		return
	}

	w.log.Debug("document saved under a name, retiring watcher")
	w.teardownLocked()

	name := w.doc.DisplayName()
	if err := w.store.RemoveSnapshot(name); err != nil {
		if errors.Is(err, errors.ErrSnapshotNotFound) {
			// No tick ever wrote a snapshot. Nothing to clean up.
			w.log.Debug("no snapshot to clean up")
			return
		}
		// The snapshot is still on disk; say so rather than pretending.
		w.log.Error("failed to clean up snapshot after save", "error", err)
	}
}

// teardownLocked cancels the tick schedule and the saved registration.
// Caller holds w.mu.
func (w *Watcher) teardownLocked() {
	w.state = StateInactive

	if w.cancelTick != nil {
		w.cancelTick()
		w.cancelTick = nil
	}
	if w.offSaved != nil {
		w.offSaved()
		w.offSaved = nil
	}
}
