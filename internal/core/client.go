package core

import "github.com/google/uuid"

// Client is a live connection as seen by the hub. The transport layer
// feeds Commands and drains Events; the hub owns Rooms and done.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event
	Rooms    map[string]struct{}

	done chan struct{}
}

// NewClient constructs a client with initialized channels.
func NewClient() *Client {
	return &Client{
		ID:       uuid.NewString(),
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 16),
		Rooms:    make(map[string]struct{}),
		done:     make(chan struct{}),
	}
}

// send delivers an event without blocking. A slow consumer loses the
// event; delivery is best-effort with no retry.
func (c *Client) send(ev *Event) {
	select {
	case c.Events <- ev:
	default:
	}
}
