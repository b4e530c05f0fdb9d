package event

// SavedNotifier narrows the bus to the one subscription a document watcher
// needs: "my document was saved under a real name." The watcher never sees
// events for other documents, so two open documents with colliding display
// names still tear down independently.
type SavedNotifier struct {
	bus        *Bus
	documentID string
}

// NewSavedNotifier creates a notifier bound to one document id.
func NewSavedNotifier(bus *Bus, documentID string) *SavedNotifier {
	return &SavedNotifier{bus: bus, documentID: documentID}
}

// OnSaved registers handler to run when this notifier's document is saved
// under a name. It returns an off function that removes the registration;
// off is idempotent and safe to call from inside the handler.
func (n *SavedNotifier) OnSaved(handler func()) (off func()) {
	id := n.bus.Subscribe(TypeDocumentSaved, func(e Event) {
		saved, ok := e.(DocumentSavedEvent)
		if !ok || saved.DocumentID != n.documentID {
			return
		}
		handler()
	})
	return func() { n.bus.Unsubscribe(id) }
}
