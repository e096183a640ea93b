package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/thereayou/whisper/internal/handlers/dto"
	"github.com/thereayou/whisper/internal/middleware"
	"github.com/thereayou/whisper/internal/models"
	"github.com/thereayou/whisper/internal/store"
	ws "github.com/thereayou/whisper/internal/websocket"
)

type FriendHandler struct {
	store *store.Store
	hub   *ws.Hub
}

func NewFriendHandler(s *store.Store, hub *ws.Hub) *FriendHandler {
	return &FriendHandler{store: s, hub: hub}
}

// SendRequest создает заявку в друзья и оповещает получателя
func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.FriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notif, err := h.store.RequestFriend(userID, req.ReceiverID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Рассылка после выхода из store
	requester, err := h.store.Users.Get(userID)
	if err == nil {
		h.hub.PublishToUser(req.ReceiverID, ws.TypeFriendRequest, publicUser(h.hub, requester))
	}
	h.hub.PublishToUser(req.ReceiverID, ws.TypeNotification, notif)

	c.JSON(http.StatusCreated, gin.H{"message": "friend request sent successfully"})
}

// Accept принимает заявку и возвращает карточку нового друга
func (h *FriendHandler) Accept(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	requesterID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	res, err := h.store.AcceptFriend(userID, requesterID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.PublishToUser(requesterID, ws.TypeFriendAccepted, publicUser(h.hub, res.Recipient))
	h.hub.PublishToUser(requesterID, ws.TypeNotification, res.RequesterNotification)
	// Свое уведомление принявшему — на остальные его вкладки
	h.hub.PublishToUser(userID, ws.TypeNotification, res.RecipientNotification)

	c.JSON(http.StatusOK, publicUser(h.hub, res.Requester))
}

// Reject отклоняет заявку, пара возвращается в исходное состояние
func (h *FriendHandler) Reject(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	requesterID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.store.Friends.Reject(userID, requesterID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "friend request rejected successfully"})
}

// Remove разрывает дружбу
func (h *FriendHandler) Remove(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	friendID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.store.Friends.Remove(userID, friendID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "friend removed successfully"})
}

// List возвращает друзей с живыми статусами
func (h *FriendHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	c.JSON(http.StatusOK, h.userViews(h.store.Friends.Friends(userID)))
}

// PendingRequests возвращает входящие заявки
func (h *FriendHandler) PendingRequests(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	c.JSON(http.StatusOK, h.userViews(h.store.Friends.PendingFor(userID)))
}

func (h *FriendHandler) userViews(ids []uuid.UUID) []models.PublicUser {
	return lo.FilterMap(ids, func(id uuid.UUID, _ int) (models.PublicUser, bool) {
		user, err := h.store.Users.Get(id)
		if err != nil {
			return models.PublicUser{}, false
		}
		return publicUser(h.hub, user), true
	})
}
