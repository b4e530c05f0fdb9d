// Package schedule provides the recurring-timer capability document watchers
// run their autosave ticks on. The production implementation is backed by
// time.Ticker; tests substitute a fake that fires synchronously.
package schedule

import (
	"sync"
	"time"
)

// Ticker schedules recurring callbacks on goroutines backed by time.Ticker.
// The zero value is ready to use.
type Ticker struct{}

// NewTicker creates a Ticker scheduler.
func NewTicker() *Ticker {
	return &Ticker{}
}

// Every invokes fn at the given interval until fn returns false or the
// returned cancel function is called. The first invocation happens one full
// interval after scheduling, never immediately. Cancel is idempotent.
//
// Cancellation stops future firings; a callback already executing when
// cancel is called may complete. Callers that need a hard cutoff (the
// watcher does) must gate the callback body on their own state.
func (t *Ticker) Every(interval time.Duration, fn func() bool) (cancel func()) {
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				// Re-check stop so a cancel that raced the tick wins.
				select {
				case <-stop:
					return
				default:
				}
				if !fn() {
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stop) })
	}
}
