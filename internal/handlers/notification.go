package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/whisper/internal/middleware"
	"github.com/thereayou/whisper/internal/store"
)

type NotificationHandler struct {
	store *store.Store
}

func NewNotificationHandler(s *store.Store) *NotificationHandler {
	return &NotificationHandler{store: s}
}

// List возвращает уведомления (свежие первыми) и счетчик непрочитанных
func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	c.JSON(http.StatusOK, gin.H{
		"notifications": h.store.Notifications.List(userID),
		"unread":        h.store.Notifications.UnreadCount(userID),
	})
}

// MarkRead помечает одно уведомление прочитанным
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.store.Notifications.MarkRead(userID, notificationID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	h.store.Notifications.MarkAllRead(userID)

	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}

// Delete удаляет одно уведомление получателя
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.store.Notifications.Delete(userID, notificationID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification deleted successfully"})
}

func (h *NotificationHandler) ClearAll(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	h.store.Notifications.ClearAll(userID)

	c.JSON(http.StatusOK, gin.H{"message": "all notifications cleared"})
}
