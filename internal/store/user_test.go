package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/whisper/internal/models"
	apperr "github.com/thereayou/whisper/pkg/errors"
)

func newUser(username, email string) models.User {
	return models.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now(),
	}
}

func TestUserStore_InsertAndLookup(t *testing.T) {
	s := NewUserStore()
	alice := newUser("alice", "alice@example.com")

	require.NoError(t, s.Insert(alice))

	got, err := s.Get(alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)

	byEmail, err := s.GetByEmail("ALICE@example.com")
	require.NoError(t, err)
	require.Equal(t, alice.ID, byEmail.ID)
}

func TestUserStore_InsertConflicts(t *testing.T) {
	s := NewUserStore()
	require.NoError(t, s.Insert(newUser("alice", "alice@example.com")))

	err := s.Insert(newUser("bob", "alice@example.com"))
	require.ErrorIs(t, err, apperr.ErrEmailTaken)

	err = s.Insert(newUser("alice", "other@example.com"))
	require.ErrorIs(t, err, apperr.ErrUsernameTaken)
}

func TestUserStore_RemoveClearsAllIndexes(t *testing.T) {
	s := NewUserStore()
	alice := newUser("alice", "alice@example.com")
	require.NoError(t, s.Insert(alice))

	require.NoError(t, s.Remove(alice.ID))

	_, err := s.Get(alice.ID)
	require.ErrorIs(t, err, apperr.ErrUserNotFound)
	_, err = s.GetByEmail("alice@example.com")
	require.ErrorIs(t, err, apperr.ErrUserNotFound)

	// username снова свободен
	require.NoError(t, s.Insert(newUser("alice", "new@example.com")))
}

func TestUserStore_UpdateProfile(t *testing.T) {
	s := NewUserStore()
	alice := newUser("alice", "alice@example.com")
	bob := newUser("bob", "bob@example.com")
	require.NoError(t, s.Insert(alice))
	require.NoError(t, s.Insert(bob))

	_, err := s.UpdateProfile(alice.ID, "bob", "")
	require.ErrorIs(t, err, apperr.ErrUsernameTaken)

	updated, err := s.UpdateProfile(alice.ID, "alice2", "pic.png")
	require.NoError(t, err)
	require.Equal(t, "alice2", updated.Username)
	require.Equal(t, "pic.png", updated.ProfilePic)

	// старый username освободился, новый занят
	require.NoError(t, s.Insert(newUser("alice", "third@example.com")))
	err = s.Insert(newUser("alice2", "fourth@example.com"))
	require.ErrorIs(t, err, apperr.ErrUsernameTaken)
}

func TestUserStore_Search(t *testing.T) {
	s := NewUserStore()
	alice := newUser("Alice", "alice@example.com")
	bob := newUser("bob", "bob@example.com")
	require.NoError(t, s.Insert(alice))
	require.NoError(t, s.Insert(bob))

	found := s.Search("ali", bob.ID)
	require.Len(t, found, 1)
	require.Equal(t, alice.ID, found[0].ID)

	// сам себя в поиске не видит
	found = s.Search("ali", alice.ID)
	require.Empty(t, found)

	require.Empty(t, s.Search("", bob.ID))
}
