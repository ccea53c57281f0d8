package core

import "devchat/internal/store"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the client to a room and requests history.
	CommandJoinRoom CommandKind = iota
	// CommandSendMessage persists a chat message and fans it out to the room.
	CommandSendMessage
	// CommandClearChat deletes a room's history and notifies the room.
	CommandClearChat
)

// Command represents an action requested by a client.
type Command struct {
	Kind    CommandKind
	Room    string
	Message store.Message
}
