package models

import (
	"github.com/google/uuid"
	"time"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ProfilePic   string    `json:"profilePic"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser — публичное представление пользователя (поиск, списки друзей, заявки)
type PublicUser struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	ProfilePic string    `json:"profilePic"`
	Status     string    `json:"status"` // online | offline
}
