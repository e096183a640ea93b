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

type UserHandler struct {
	store *store.Store
	hub   *ws.Hub
}

func NewUserHandler(s *store.Store, hub *ws.Hub) *UserHandler {
	return &UserHandler{store: s, hub: hub}
}

// UpdateProfile обновляет username и/или аватар текущего пользователя
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.Users.UpdateProfile(userID, req.Username, req.ProfilePic)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"profilePic": user.ProfilePic,
	})
}

// SearchUsers ищет пользователей по подстроке username/email
func (h *UserHandler) SearchUsers(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, []models.PublicUser{})
		return
	}

	found := h.store.Users.Search(query, userID)
	result := lo.Map(found, func(u models.User, _ int) models.PublicUser {
		return publicUser(h.hub, u)
	})

	c.JSON(http.StatusOK, result)
}
