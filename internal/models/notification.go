package models

import (
	"github.com/google/uuid"
	"time"
)

type NotificationType string

const (
	NotificationFriendRequest NotificationType = "friend_request"
	NotificationMessage       NotificationType = "message"
	NotificationSystem        NotificationType = "system"
)

type Notification struct {
	ID         uuid.UUID        `json:"id"`
	Type       NotificationType `json:"type"`
	SenderID   uuid.UUID        `json:"senderId,omitempty"`
	SenderName string           `json:"senderName,omitempty"`
	ReceiverID uuid.UUID        `json:"receiverId"`
	Content    string           `json:"content"`
	Read       bool             `json:"read"`
	CreatedAt  time.Time        `json:"timestamp"`
}
