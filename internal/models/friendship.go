package models

import (
	"github.com/google/uuid"
	"time"
)

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship — единственное ребро для неупорядоченной пары пользователей.
// Requester всегда указывает, кто отправил заявку, даже после принятия.
type Friendship struct {
	Requester uuid.UUID        `json:"requesterId"`
	Recipient uuid.UUID        `json:"recipientId"`
	Status    FriendshipStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// Peer возвращает второго участника ребра
func (f *Friendship) Peer(userID uuid.UUID) uuid.UUID {
	if f.Requester == userID {
		return f.Recipient
	}
	return f.Requester
}
