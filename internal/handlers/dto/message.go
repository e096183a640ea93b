package dto

import (
	"time"

	"github.com/google/uuid"
)

// SendMessageRequest — тело HTTP-отправки и payload WS-события message
type SendMessageRequest struct {
	ReceiverID uuid.UUID `json:"receiverId" binding:"required"`
	Content    string    `json:"content" binding:"required"`
}

// SeenPayload — payload события message_seen в обе стороны
type SeenPayload struct {
	MessageID uuid.UUID  `json:"messageId"`
	SeenAt    *time.Time `json:"seenAt,omitempty"`
}

// TypingPayload — payload входящих typing/stop_typing
type TypingPayload struct {
	TargetID uuid.UUID `json:"targetId"`
}

// TypingEvent — payload исходящих typing/stop_typing
type TypingEvent struct {
	UserID   uuid.UUID `json:"userId"`
	IsTyping bool      `json:"isTyping"`
}
