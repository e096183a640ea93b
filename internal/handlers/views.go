package handlers

import (
	"github.com/thereayou/whisper/internal/models"
	ws "github.com/thereayou/whisper/internal/websocket"
)

// publicUser собирает публичное представление с живым статусом присутствия
func publicUser(hub *ws.Hub, u models.User) models.PublicUser {
	return models.PublicUser{
		ID:         u.ID,
		Username:   u.Username,
		ProfilePic: u.ProfilePic,
		Status:     hub.Status(u.ID),
	}
}
