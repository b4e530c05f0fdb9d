// Package event provides a pub-sub event bus for decoupled communication
// between the host-integration layer and document watchers.
//
// The host editor reports document lifecycle changes (saves, closes) to the
// integration layer, which publishes them here; each watcher subscribes only
// to the saved notification for its own document. Components never call each
// other directly, which keeps the watcher testable with a bus that fires
// synchronously from the test body.
//
// # Main Types
//
//   - [Event]: Interface all events implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub dispatcher, safe for concurrent use
//   - [SavedNotifier]: Per-document adapter exposing the "saved" subscription
//     a watcher consumes
//
// # Event Type Naming Convention
//
// Event types follow the pattern "category.action":
//   - document.saved, document.closed
//   - snapshot.written
//   - sweep.completed
//
// # Thread Safety
//
// The [Bus] is safe for concurrent use. Handlers are called synchronously and
// protected against panics - a panicking handler will not prevent other
// handlers from being called.
package event
