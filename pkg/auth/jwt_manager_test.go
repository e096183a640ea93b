package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateVerify(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := manager.Generate(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := manager.Verify(token)
	require.NoError(t, err)
	require.Equal(t, userID, got)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("another-secret", time.Hour)

	token, err := manager.Generate(uuid.New())
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate(uuid.New())
	require.NoError(t, err)

	_, err = manager.Verify(token)
	require.Error(t, err)
}

func TestJWTManager_Expiry(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate(uuid.New())
	require.NoError(t, err)

	exp, err := manager.Expiry(token)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
}

func TestExtractTokenFromHeader(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)

	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, err := ExtractTokenFromHeader(req)
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	req.Header.Set("Authorization", "abc.def.ghi")
	_, err = ExtractTokenFromHeader(req)
	require.Error(t, err)

	req.Header.Del("Authorization")
	_, err = ExtractTokenFromHeader(req)
	require.Error(t, err)
}
