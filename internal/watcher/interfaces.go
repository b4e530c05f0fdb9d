package watcher

import "time"

// Document is the slice of the host editor's buffer API the watcher needs.
// The host owns the buffer; the watcher only ever reads it.
type Document interface {
	// DisplayName returns the name the editor shows for the document
	// (e.g., "Untitled Document 1"). Doubles as the snapshot filename;
	// not guaranteed unique across open documents.
	DisplayName() string

	// Untitled reports whether the document has no assigned file path.
	// Only untitled documents are watched.
	Untitled() bool

	// Untouched reports whether the document has had no edits since it
	// was opened or created. Untouched documents are never snapshotted.
	Untouched() bool

	// FullText returns the document's complete current text.
	FullText() string
}

// Scheduler schedules the recurring autosave tick. The callback returning
// false stops the schedule; the returned cancel function stops it from the
// outside and must be idempotent.
type Scheduler interface {
	Every(interval time.Duration, fn func() bool) (cancel func())
}

// Notifier delivers the host's "saved under a real name" notification for
// one document. The host never fires it for autosave snapshot churn. The
// returned off function removes the registration and must be idempotent.
type Notifier interface {
	OnSaved(handler func()) (off func())
}
