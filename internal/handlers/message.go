package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/whisper/internal/handlers/dto"
	"github.com/thereayou/whisper/internal/middleware"
	"github.com/thereayou/whisper/internal/store"
	ws "github.com/thereayou/whisper/internal/websocket"
)

type MessageHandler struct {
	store *store.Store
	hub   *ws.Hub
}

func NewMessageHandler(s *store.Store, hub *ws.Hub) *MessageHandler {
	return &MessageHandler{store: s, hub: hub}
}

// Send отправляет сообщение через HTTP (альтернатива WebSocket)
func (h *MessageHandler) Send(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, notif, err := h.store.SendMessage(userID, req.ReceiverID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	// Получателю — сообщение и уведомление, отправителю — эхо на другие вкладки
	h.hub.PublishToUser(req.ReceiverID, ws.TypeMessage, msg)
	h.hub.PublishToUser(req.ReceiverID, ws.TypeNotification, notif)
	h.hub.PublishToUser(userID, ws.TypeMessage, msg)

	c.JSON(http.StatusCreated, msg)
}

// Conversation возвращает переписку с другом в порядке отправки.
// Чтение ничего не помечает прочитанным: mark-seen — отдельная операция.
func (h *MessageHandler) Conversation(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	friendID, err := uuid.Parse(c.Param("friendId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	messages, err := h.store.ListConversation(userID, friendID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// Delete удаляет сообщение, разрешено только отправителю
func (h *MessageHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	messageID, err := uuid.Parse(c.Param("messageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	if err := h.store.Messages.Delete(messageID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "message deleted successfully"})
}

// MarkSeen помечает сообщение прочитанным и оповещает отправителя.
// Повторный вызов — идемпотентный no-op без дублирования события.
func (h *MessageHandler) MarkSeen(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	messageID, err := uuid.Parse(c.Param("messageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	msg, changed, err := h.store.Messages.MarkSeen(messageID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if changed {
		h.hub.PublishToUser(msg.SenderID, ws.TypeMessageSeen, dto.SeenPayload{
			MessageID: msg.ID,
			SeenAt:    msg.SeenAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "message marked as seen"})
}
