package proto

import (
	"encoding/json"
	"time"
)

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoinRoom    = "join_room"
	InboundTypeSendMessage = "send_message"
	InboundTypeClearChat   = "clear_chat"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventLoadHistory    = "load_history"
	EventReceiveMessage = "receive_message"
	EventChatCleared    = "chat_cleared"
)

// JoinRoomData requests to join a specific room.
type JoinRoomData struct {
	Room string `json:"room"`
}

// SendMessageData is a chat message from the client. The sender is a
// free-form display name; no identity is bound to it.
type SendMessageData struct {
	Room   string `json:"room"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// ClearChatData requests deletion of a room's history.
type ClearChatData struct {
	Room string `json:"room"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// MessageData is a materialized message as echoed to clients.
type MessageData struct {
	ID     int64     `json:"id"`
	Room   string    `json:"room"`
	Sender string    `json:"sender"`
	Text   string    `json:"text"`
	Time   time.Time `json:"time"`
}

// HistoryData carries recent room history, oldest first, to the client
// that just joined.
type HistoryData struct {
	Room     string        `json:"room"`
	Messages []MessageData `json:"messages"`
}

// ClearedData notifies the room that its history was deleted.
type ClearedData struct {
	Room string `json:"room"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
