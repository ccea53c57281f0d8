package store

import (
	"context"
	"time"
)

// Message is a persisted chat message. Rooms are not stored entities;
// the room name on each message is the only grouping key.
type Message struct {
	ID        int64
	Room      string
	Sender    string
	Text      string
	CreatedAt time.Time
}

// MessageStore is an append-only log of chat messages partitioned by room.
type MessageStore interface {
	// AppendMessage persists a message. It assigns CreatedAt when zero and
	// writes the server-assigned ID back into msg, so the caller holds the
	// fully materialized record afterwards. Callers must reject blank text
	// before calling; the store does not re-validate.
	AppendMessage(ctx context.Context, msg *Message) error

	// RoomHistory returns up to limit of the most recent messages in room,
	// ordered ascending by time (oldest first). An empty or unknown room
	// yields an empty result, not an error.
	RoomHistory(ctx context.Context, room string, limit int) ([]Message, error)

	// ClearRoom deletes every message whose room matches exactly. The
	// delete is a single statement, so readers never observe a partially
	// cleared room.
	ClearRoom(ctx context.Context, room string) error

	// Close closes the underlying database connection.
	Close() error
}
