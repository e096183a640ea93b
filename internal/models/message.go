package models

import (
	"github.com/google/uuid"
	"time"
)

type Message struct {
	ID         uuid.UUID  `json:"id"`
	SenderID   uuid.UUID  `json:"senderId"`
	ReceiverID uuid.UUID  `json:"receiverId"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"timestamp"`
	Seen       bool       `json:"seen"`
	SeenAt     *time.Time `json:"seenAt"`
}
