package sqlite

import (
	"context"
	"testing"
	"time"

	"devchat/internal/store"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendMessageMaterializesRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	msg := store.Message{Room: "lobby", Sender: "alice", Text: "hi"}
	if err := s.AppendMessage(ctx, &msg); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if msg.ID == 0 {
		t.Fatal("expected server-assigned id")
	}
	if msg.CreatedAt.IsZero() {
		t.Fatal("expected server-assigned timestamp")
	}

	// An explicit timestamp is preserved.
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	msg2 := store.Message{Room: "lobby", Sender: "bob", Text: "hello", CreatedAt: ts}
	if err := s.AppendMessage(ctx, &msg2); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if !msg2.CreatedAt.Equal(ts) {
		t.Fatalf("expected timestamp %v preserved, got %v", ts, msg2.CreatedAt)
	}
	if msg2.ID <= msg.ID {
		t.Fatalf("expected monotonically increasing ids, got %d after %d", msg2.ID, msg.ID)
	}
}

func TestRoomHistoryOrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	texts := []string{"one", "two", "three", "four", "five", "six", "seven"}
	for i, text := range texts {
		msg := store.Message{
			Room:      "lobby",
			Sender:    "alice",
			Text:      text,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := s.AppendMessage(ctx, &msg); err != nil {
			t.Fatalf("append %q failed: %v", text, err)
		}
	}
	other := store.Message{Room: "other", Sender: "bob", Text: "elsewhere", CreatedAt: base}
	if err := s.AppendMessage(ctx, &other); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	history, err := s.RoomHistory(ctx, "lobby", 5)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}

	// The five most recent, oldest first.
	want := []string{"three", "four", "five", "six", "seven"}
	if len(history) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(history))
	}
	for i, msg := range history {
		if msg.Text != want[i] {
			t.Fatalf("expected %q at index %d, got %q", want[i], i, msg.Text)
		}
		if i > 0 && history[i-1].CreatedAt.After(msg.CreatedAt) {
			t.Fatalf("history not ascending at index %d", i)
		}
	}

	full, err := s.RoomHistory(ctx, "lobby", 100)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(full) != len(texts) {
		t.Fatalf("expected %d messages, got %d", len(texts), len(full))
	}
}

func TestRoomHistoryUnknownRoom(t *testing.T) {
	s := newTestStore(t)

	history, err := s.RoomHistory(context.Background(), "ghost", 100)
	if err != nil {
		t.Fatalf("expected no error for unknown room, got %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(history))
	}
}

func TestClearRoomLeavesOtherRoomsIntact(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, room := range []string{"lobby", "lobby", "other"} {
		msg := store.Message{Room: room, Sender: "alice", Text: "hi"}
		if err := s.AppendMessage(ctx, &msg); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	if err := s.ClearRoom(ctx, "lobby"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	cleared, err := s.RoomHistory(ctx, "lobby", 100)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(cleared) != 0 {
		t.Fatalf("expected lobby cleared, got %d messages", len(cleared))
	}

	kept, err := s.RoomHistory(ctx, "other", 100)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("expected other room untouched, got %d messages", len(kept))
	}

	// Clearing an already-empty room is not an error.
	if err := s.ClearRoom(ctx, "lobby"); err != nil {
		t.Fatalf("clear of empty room failed: %v", err)
	}
}
