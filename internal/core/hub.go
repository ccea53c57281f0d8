package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"devchat/internal/store"
)

// HistoryLimit caps how many messages a joining client receives.
const HistoryLimit = 100

type clientCommand struct {
	client *Client
	cmd    *Command
}

// Hub routes commands from clients to rooms and the message store. All
// hub state is owned by the Run loop, so handlers run to completion one
// at a time and no locking is needed.
type Hub struct {
	store store.MessageStore // nil when the store was unavailable at startup
	log   *zerolog.Logger

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
	done       chan struct{}

	rooms   map[string]*Room
	clients map[*Client]struct{}
}

// NewHub creates a hub backed by the given store. A nil store degrades
// the relay: joins yield empty history, sends and clears are dropped.
func NewHub(st store.MessageStore, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		store:      st,
		log:        logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand),
		done:       make(chan struct{}),
		rooms:      make(map[string]*Room),
		clients:    make(map[*Client]struct{}),
	}
}

// RegisterClient hands a new connection to the hub. It is a no-op once
// the hub has stopped.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// UnregisterClient removes a disconnected client from every room it
// joined. In-flight store operations are not aborted.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run processes registrations and client commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.addClient(ctx, c)
		case c := <-h.unregister:
			h.removeClient(c)
		case cc := <-h.commands:
			h.handle(ctx, cc.client, cc.cmd)
		}
	}
}

func (h *Hub) addClient(ctx context.Context, c *Client) {
	h.clients[c] = struct{}{}
	h.log.Debug().Str("client_id", c.ID).Msg("client registered")

	go h.pumpCommands(ctx, c)
}

// pumpCommands forwards one client's commands into the hub loop until the
// client is unregistered or the hub stops.
func (h *Hub) pumpCommands(ctx context.Context, c *Client) {
	for {
		select {
		case cmd := <-c.Commands:
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-c.done:
				return
			case <-ctx.Done():
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) removeClient(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}

	for name := range c.Rooms {
		if room, ok := h.rooms[name]; ok {
			room.RemoveClient(c)
			if room.Empty() {
				delete(h.rooms, name)
			}
		}
	}

	delete(h.clients, c)
	close(c.done)
	close(c.Events)
	h.log.Debug().Str("client_id", c.ID).Msg("client unregistered")
}

func (h *Hub) handle(ctx context.Context, c *Client, cmd *Command) {
	// A command may still be queued after its client disconnected.
	if _, ok := h.clients[c]; !ok {
		return
	}

	switch cmd.Kind {
	case CommandJoinRoom:
		h.handleJoin(ctx, c, cmd.Room)
	case CommandSendMessage:
		h.handleSend(ctx, cmd)
	case CommandClearChat:
		h.handleClear(ctx, cmd.Room)
	}
}

// handleJoin subscribes the client and replies with recent history to the
// requester only. Rejoining an already-joined room is a no-op membership
// update that still refreshes history.
func (h *Hub) handleJoin(ctx context.Context, c *Client, name string) {
	room, ok := h.rooms[name]
	if !ok {
		room = NewRoom(name)
		h.rooms[name] = room
	}
	room.AddClient(c)
	c.Rooms[name] = struct{}{}

	history := []store.Message{}
	if h.store != nil {
		msgs, err := h.store.RoomHistory(ctx, name, HistoryLimit)
		if err != nil {
			h.log.Error().Err(err).Str("room", name).Msg("load history failed")
		} else {
			history = msgs
		}
	}

	c.send(&Event{Kind: EventHistory, Room: name, Messages: history})
}

// handleSend persists the message and fans it out to every subscriber of
// the room, sender included. Blank text is dropped before persistence;
// store failures are logged and produce no broadcast and no client error.
func (h *Hub) handleSend(ctx context.Context, cmd *Command) {
	if strings.TrimSpace(cmd.Message.Text) == "" {
		return
	}
	if h.store == nil {
		h.log.Warn().Str("room", cmd.Room).Msg("store unavailable, message dropped")
		return
	}

	msg := cmd.Message
	if err := h.store.AppendMessage(ctx, &msg); err != nil {
		h.log.Error().Err(err).Str("room", cmd.Room).Msg("append message failed")
		return
	}

	if room, ok := h.rooms[cmd.Room]; ok {
		room.Broadcast(&Event{Kind: EventMessage, Room: cmd.Room, Message: msg})
	}
}

// handleClear deletes the room's history and notifies current subscribers.
func (h *Hub) handleClear(ctx context.Context, name string) {
	if h.store == nil {
		h.log.Warn().Str("room", name).Msg("store unavailable, clear dropped")
		return
	}
	if err := h.store.ClearRoom(ctx, name); err != nil {
		h.log.Error().Err(err).Str("room", name).Msg("clear room failed")
		return
	}

	if room, ok := h.rooms[name]; ok {
		room.Broadcast(&Event{Kind: EventCleared, Room: name})
	}
}
