package http

import (
	"encoding/json"

	"devchat/internal/core"
	"devchat/internal/proto"
	"devchat/internal/store"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoinRoom:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandJoinRoom,
			Room: join.Room,
		}, nil, nil
	case proto.InboundTypeSendMessage:
		var msg proto.SendMessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandSendMessage,
			Room: msg.Room,
			Message: store.Message{
				// ID and CreatedAt are assigned by the store on append.
				Room:   msg.Room,
				Sender: msg.Sender,
				Text:   msg.Text,
			},
		}, nil, nil
	case proto.InboundTypeClearChat:
		var clear proto.ClearChatData
		if err := json.Unmarshal(inbound.Data, &clear); err != nil {
			return nil, nil, err
		}
		if clear.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandClearChat,
			Room: clear.Room,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventReceiveMessage,
			Data:  messageData(event.Message),
		}
	case core.EventHistory:
		messages := make([]proto.MessageData, 0, len(event.Messages))
		for _, msg := range event.Messages {
			messages = append(messages, messageData(msg))
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventLoadHistory,
			Data: proto.HistoryData{
				Room:     event.Room,
				Messages: messages,
			},
		}
	case core.EventCleared:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventChatCleared,
			Data:  proto.ClearedData{Room: event.Room},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func messageData(msg store.Message) proto.MessageData {
	return proto.MessageData{
		ID:     msg.ID,
		Room:   msg.Room,
		Sender: msg.Sender,
		Text:   msg.Text,
		Time:   msg.CreatedAt,
	}
}
