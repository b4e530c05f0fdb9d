// Package app wires the autosave safety net into a host process: one App
// per process owns the configuration, the session store, the event bus and
// the scheduler, and tracks a watcher per open untitled document.
//
// The host integration calls Start once at activation (which runs the
// retention sweep over past sessions), OpenDocument/CloseDocument as
// documents come and go, DocumentSaved when the editor reports a real named
// save, and Shutdown at teardown.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/safekeep/safekeep/internal/config"
	"github.com/safekeep/safekeep/internal/event"
	"github.com/safekeep/safekeep/internal/logging"
	"github.com/safekeep/safekeep/internal/schedule"
	"github.com/safekeep/safekeep/internal/store"
	"github.com/safekeep/safekeep/internal/watcher"
)

// App owns the process-wide autosave state.
type App struct {
	cfg   *config.Config
	log   *logging.Logger
	bus   *event.Bus
	sched watcher.Scheduler
	store *store.Store
	now   func() time.Time

	mu       sync.Mutex
	watchers map[string]*watcher.Watcher
	nextID   int
}

// New assembles an App from the given configuration. The session id is
// captured here, once, from the clock; it identifies this process run for
// the rest of its life.
func New(cfg *config.Config, log *logging.Logger, opts ...Option) *App {
	if log == nil {
		log = logging.NopLogger()
	}

	a := &App{
		cfg:      cfg,
		log:      log,
		bus:      event.NewBus(),
		sched:    schedule.NewTicker(),
		now:      time.Now,
		watchers: make(map[string]*watcher.Watcher),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.store = store.Open(cfg.Store.ResolveRoot(), a.now(), log)
	return a
}

// SessionID returns the id of the current session.
func (a *App) SessionID() string { return a.store.SessionID() }

// Store returns the session store bound to the current session.
func (a *App) Store() *store.Store { return a.store }

// Bus returns the process event bus.
func (a *App) Bus() *event.Bus { return a.bus }

// Start runs process-activation work: a single retention sweep over past
// session directories. Sweep failures are logged, not propagated; a
// best-effort safety net must never block host startup.
func (a *App) Start() {
	result, err := a.store.SweepOldSessions(a.now(), a.cfg.Store.Retention())
	if err != nil {
		a.log.Error("retention sweep finished with failures", "error", err)
	}
	a.log.Info("retention sweep completed",
		"removed", len(result.Removed), "kept", len(result.Kept))
	a.bus.Publish(event.NewSweepCompletedEvent(len(result.Removed), len(result.Kept)))
}

// OpenDocument registers a document with the autosave system and returns
// the id the host must use in later DocumentSaved/CloseDocument calls.
// Watching only actually begins for untitled documents with the feature
// enabled; everything else gets a registered no-op watcher.
func (a *App) OpenDocument(doc watcher.Document) string {
	a.mu.Lock()
	a.nextID++
	id := fmt.Sprintf("doc-%d", a.nextID)
	notif := event.NewSavedNotifier(a.bus, id)
	w := watcher.New(doc, a.store, a.sched, notif, a.cfg.Autosave, a.log)
	a.watchers[id] = w
	a.mu.Unlock()

	if err := w.Start(); err != nil {
		a.log.Error("failed to start document watcher", "document_id", id, "error", err)
	}
	return id
}

// DocumentSaved reports that the document was successfully saved under a
// real name. The document's watcher (if any) retires and removes its
// snapshot. Unknown ids are ignored.
func (a *App) DocumentSaved(id, path string) {
	a.mu.Lock()
	_, known := a.watchers[id]
	delete(a.watchers, id)
	a.mu.Unlock()

	if !known {
		a.log.Debug("saved notification for unknown document", "document_id", id)
		return
	}
	a.bus.Publish(event.NewDocumentSavedEvent(id, path))
}

// CloseDocument reports that the document went away without a named save.
// The watcher is torn down but its snapshot stays on disk for recovery.
func (a *App) CloseDocument(id string) {
	a.mu.Lock()
	w, known := a.watchers[id]
	delete(a.watchers, id)
	a.mu.Unlock()

	if !known {
		return
	}
	w.Stop()
	a.bus.Publish(event.NewDocumentClosedEvent(id))
}

// Shutdown tears down all remaining watchers, leaving their snapshots on
// disk. Called at process deactivation.
func (a *App) Shutdown() {
	a.mu.Lock()
	remaining := make([]*watcher.Watcher, 0, len(a.watchers))
	for _, w := range a.watchers {
		remaining = append(remaining, w)
	}
	a.watchers = make(map[string]*watcher.Watcher)
	a.mu.Unlock()

	for _, w := range remaining {
		w.Stop()
	}
	a.log.Debug("autosave shut down", "watchers_stopped", len(remaining))
}
