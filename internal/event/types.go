package event

import "time"

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "document.saved").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Document Lifecycle Events
// -----------------------------------------------------------------------------

// DocumentSavedEvent is emitted when the host editor reports that a document
// was successfully saved under a real name. The host never emits it for the
// autosave snapshots this system writes itself.
type DocumentSavedEvent struct {
	baseEvent
	DocumentID string // Process-internal id of the document (e.g., "doc-3")
	Path       string // Path the document was saved to, if the host reports one
}

// NewDocumentSavedEvent creates a DocumentSavedEvent.
func NewDocumentSavedEvent(documentID, path string) DocumentSavedEvent {
	return DocumentSavedEvent{
		baseEvent:  newBaseEvent(TypeDocumentSaved),
		DocumentID: documentID,
		Path:       path,
	}
}

// DocumentClosedEvent is emitted when a document is closed without a save
// (tab closed, process teardown). Snapshots are deliberately left on disk.
type DocumentClosedEvent struct {
	baseEvent
	DocumentID string // Process-internal id of the document
}

// NewDocumentClosedEvent creates a DocumentClosedEvent.
func NewDocumentClosedEvent(documentID string) DocumentClosedEvent {
	return DocumentClosedEvent{
		baseEvent:  newBaseEvent(TypeDocumentClosed),
		DocumentID: documentID,
	}
}

// -----------------------------------------------------------------------------
// Store Events
// -----------------------------------------------------------------------------

// SnapshotWrittenEvent is emitted after an autosave tick persists a snapshot.
type SnapshotWrittenEvent struct {
	baseEvent
	DocumentID string // Process-internal id of the document
	Name       string // Display name the snapshot was stored under
	Bytes      int    // Size of the snapshot in bytes
}

// NewSnapshotWrittenEvent creates a SnapshotWrittenEvent.
func NewSnapshotWrittenEvent(documentID, name string, bytes int) SnapshotWrittenEvent {
	return SnapshotWrittenEvent{
		baseEvent:  newBaseEvent(TypeSnapshotWritten),
		DocumentID: documentID,
		Name:       name,
		Bytes:      bytes,
	}
}

// SweepCompletedEvent is emitted when the startup retention sweep finishes.
type SweepCompletedEvent struct {
	baseEvent
	Removed int // Number of session directories removed
	Kept    int // Number of session directories retained
}

// NewSweepCompletedEvent creates a SweepCompletedEvent.
func NewSweepCompletedEvent(removed, kept int) SweepCompletedEvent {
	return SweepCompletedEvent{
		baseEvent: newBaseEvent(TypeSweepCompleted),
		Removed:   removed,
		Kept:      kept,
	}
}

// Event type identifiers.
const (
	TypeDocumentSaved   = "document.saved"
	TypeDocumentClosed  = "document.closed"
	TypeSnapshotWritten = "snapshot.written"
	TypeSweepCompleted  = "sweep.completed"
)
