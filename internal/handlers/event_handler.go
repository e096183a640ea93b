package handlers

import (
	"encoding/json"
	"log"

	"github.com/thereayou/whisper/internal/handlers/dto"
	"github.com/thereayou/whisper/internal/store"
	ws "github.com/thereayou/whisper/internal/websocket"
)

// EventHandler обрабатывает входящие события живых соединений
type EventHandler struct {
	store  *store.Store
	hub    *ws.Hub
	typing *ws.TypingTracker
}

func NewEventHandler(s *store.Store, hub *ws.Hub, typing *ws.TypingTracker) *EventHandler {
	return &EventHandler{store: s, hub: hub, typing: typing}
}

func (h *EventHandler) HandleMessage(client *ws.Client, msg *ws.Message) error {
	switch msg.Type {
	case ws.TypeMessage:
		return h.handleChatMessage(client, msg)

	case ws.TypeMessageSeen:
		return h.handleMessageSeen(client, msg)

	case ws.TypeTyping:
		return h.handleTyping(client, msg, true)

	case ws.TypeStopTyping:
		return h.handleTyping(client, msg, false)

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		return nil
	}
}

func (h *EventHandler) handleChatMessage(client *ws.Client, msg *ws.Message) error {
	var payload dto.SendMessageRequest
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return ws.ErrInvalidMessage
	}

	stored, notif, err := h.store.SendMessage(client.UserID, payload.ReceiverID, payload.Content)
	if err != nil {
		return err
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	envelope := ws.Message{
		Type:      ws.TypeMessage,
		UserID:    client.UserID,
		Data:      data,
		Timestamp: stored.CreatedAt,
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	h.hub.SendToUser(payload.ReceiverID, raw)
	// Эхо на остальные вкладки отправителя, исходное соединение пропускаем
	h.hub.SendToUserExcept(client.UserID, client.ID, raw)

	h.hub.PublishToUser(payload.ReceiverID, ws.TypeNotification, notif)

	return nil
}

func (h *EventHandler) handleMessageSeen(client *ws.Client, msg *ws.Message) error {
	var payload dto.SeenPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return ws.ErrInvalidMessage
	}

	stored, changed, err := h.store.Messages.MarkSeen(payload.MessageID, client.UserID)
	if err != nil {
		return err
	}

	if changed {
		h.hub.PublishToUser(stored.SenderID, ws.TypeMessageSeen, dto.SeenPayload{
			MessageID: stored.ID,
			SeenAt:    stored.SeenAt,
		})
	}
	return nil
}

func (h *EventHandler) handleTyping(client *ws.Client, msg *ws.Message, start bool) error {
	var payload dto.TypingPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return ws.ErrInvalidMessage
	}

	if start {
		h.typing.Start(client.UserID, payload.TargetID)
	} else {
		h.typing.Stop(client.UserID, payload.TargetID)
	}
	return nil
}
