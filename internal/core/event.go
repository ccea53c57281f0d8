package core

import "devchat/internal/store"

// EventKind is a notification the hub emits to clients.
type EventKind int

const (
	// EventHistory delivers recent room history to the joining client only.
	EventHistory EventKind = iota
	// EventMessage notifies the room about a persisted chat message.
	EventMessage
	// EventCleared notifies the room that its history was deleted.
	EventCleared
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	Room     string
	Message  store.Message
	Messages []store.Message // for EventHistory
}
