package app

import (
	"time"

	"github.com/safekeep/safekeep/internal/watcher"
)

// Option configures an App during construction.
type Option func(*App)

// WithScheduler substitutes the recurring-timer implementation.
// Tests inject a scheduler that fires synchronously.
func WithScheduler(s watcher.Scheduler) Option {
	return func(a *App) { a.sched = s }
}

// WithClock substitutes the time source used for the session id and the
// retention sweep.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}
