package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"devchat/internal/store"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event: %+v", ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// memStore is an in-memory MessageStore substitute for hub tests.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	messages []store.Message
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) AppendMessage(_ context.Context, msg *store.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	m.nextID++
	msg.ID = m.nextID
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *memStore) RoomHistory(_ context.Context, room string, limit int) ([]store.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var history []store.Message
	for _, msg := range m.messages {
		if msg.Room == room {
			history = append(history, msg)
		}
	}
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history, nil
}

func (m *memStore) ClearRoom(_ context.Context, room string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.messages[:0]
	for _, msg := range m.messages {
		if msg.Room != room {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	return nil
}

func (m *memStore) Close() error { return nil }

func (m *memStore) count(room string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, msg := range m.messages {
		if msg.Room == room {
			n++
		}
	}
	return n
}
