package websocket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewClient_SendBuffer(t *testing.T) {
	hub := NewHub(stubFriends{})
	user := uuid.New()

	c := NewClient(hub, nil, user, 8)
	require.Equal(t, 8, cap(c.Send))
	require.Equal(t, user, c.UserID)

	// ноль и меньше — размер по умолчанию
	c = NewClient(hub, nil, user, 0)
	require.Equal(t, defaultSendBuffer, cap(c.Send))
}
