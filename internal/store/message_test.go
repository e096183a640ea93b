package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/whisper/internal/models"
	apperr "github.com/thereayou/whisper/pkg/errors"
)

// makeFriends готовит двух зарегистрированных друзей
func makeFriends(t *testing.T, s *Store) (models.User, models.User) {
	t.Helper()

	alice := newUser("alice", "alice@example.com")
	bob := newUser("bob", "bob@example.com")
	require.NoError(t, s.Users.Insert(alice))
	require.NoError(t, s.Users.Insert(bob))

	_, err := s.RequestFriend(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = s.AcceptFriend(bob.ID, alice.ID)
	require.NoError(t, err)

	return alice, bob
}

func TestStore_SendMessageRequiresFriendship(t *testing.T) {
	s := New()
	alice := newUser("alice", "alice@example.com")
	carol := newUser("carol", "carol@example.com")
	require.NoError(t, s.Users.Insert(alice))
	require.NoError(t, s.Users.Insert(carol))

	_, _, err := s.SendMessage(alice.ID, carol.ID, "hi")
	require.ErrorIs(t, err, apperr.ErrNotFriends)
}

func TestStore_SendMessageValidation(t *testing.T) {
	s := New()
	alice, bob := makeFriends(t, s)

	_, _, err := s.SendMessage(alice.ID, bob.ID, "   ")
	require.ErrorIs(t, err, apperr.ErrEmptyMessage)

	_, _, err = s.SendMessage(alice.ID, uuid.New(), "hi")
	require.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestStore_SendMessageAndNotification(t *testing.T) {
	s := New()
	alice, bob := makeFriends(t, s)

	msg, notif, err := s.SendMessage(alice.ID, bob.ID, "hi")
	require.NoError(t, err)
	require.Equal(t, alice.ID, msg.SenderID)
	require.Equal(t, bob.ID, msg.ReceiverID)
	require.False(t, msg.Seen)
	require.Nil(t, msg.SeenAt)

	require.Equal(t, models.NotificationMessage, notif.Type)
	require.Equal(t, bob.ID, notif.ReceiverID)
	require.Equal(t, "New message from alice", notif.Content)

	conv, err := s.ListConversation(bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, conv, 1)
	require.Equal(t, msg.ID, conv[0].ID)
}

// Конкурентные отправки с обеих сторон: все сообщения на месте,
// порядок arrival неубывающий для любого читателя
func TestStore_ConversationOrderUnderConcurrentAppend(t *testing.T) {
	s := New()
	alice, bob := makeFriends(t, s)

	const perSide = 50
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < perSide; i++ {
			_, _, err := s.SendMessage(alice.ID, bob.ID, fmt.Sprintf("a%d", i))
			require.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < perSide; i++ {
			_, _, err := s.SendMessage(bob.ID, alice.ID, fmt.Sprintf("b%d", i))
			require.NoError(t, err)
		}
	}()
	wg.Wait()

	conv, err := s.ListConversation(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, conv, 2*perSide)

	for i := 1; i < len(conv); i++ {
		require.False(t, conv[i].CreatedAt.Before(conv[i-1].CreatedAt))
	}
}

func TestMessageStore_MarkSeenMonotonic(t *testing.T) {
	s := New()
	alice, bob := makeFriends(t, s)

	msg, _, err := s.SendMessage(alice.ID, bob.ID, "hi")
	require.NoError(t, err)

	seen, changed, err := s.Messages.MarkSeen(msg.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, changed)
	require.True(t, seen.Seen)
	require.NotNil(t, seen.SeenAt)
	firstSeenAt := *seen.SeenAt

	// повтор — идемпотентный no-op, seenAt не двигается
	again, changed, err := s.Messages.MarkSeen(msg.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, changed)
	require.True(t, again.Seen)
	require.Equal(t, firstSeenAt, *again.SeenAt)
}

func TestMessageStore_MarkSeenOnlyReceiver(t *testing.T) {
	s := New()
	alice, bob := makeFriends(t, s)

	msg, _, err := s.SendMessage(alice.ID, bob.ID, "hi")
	require.NoError(t, err)

	_, _, err = s.Messages.MarkSeen(msg.ID, alice.ID)
	require.ErrorIs(t, err, apperr.ErrNotReceiver)

	_, _, err = s.Messages.MarkSeen(uuid.New(), bob.ID)
	require.ErrorIs(t, err, apperr.ErrMessageNotFound)
}

func TestMessageStore_DeleteOnlySender(t *testing.T) {
	s := New()
	alice, bob := makeFriends(t, s)

	msg, _, err := s.SendMessage(bob.ID, alice.ID, "from bob")
	require.NoError(t, err)

	// alice не отправитель
	require.ErrorIs(t, s.Messages.Delete(msg.ID, alice.ID), apperr.ErrNotSender)

	require.NoError(t, s.Messages.Delete(msg.ID, bob.ID))
	require.ErrorIs(t, s.Messages.Delete(msg.ID, bob.ID), apperr.ErrMessageNotFound)

	conv, err := s.ListConversation(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Empty(t, conv)
}

func TestStore_ListConversationIsReadOnly(t *testing.T) {
	s := New()
	alice, bob := makeFriends(t, s)

	msg, _, err := s.SendMessage(alice.ID, bob.ID, "hi")
	require.NoError(t, err)

	// чтение не трогает seen
	for i := 0; i < 3; i++ {
		conv, err := s.ListConversation(bob.ID, alice.ID)
		require.NoError(t, err)
		require.Len(t, conv, 1)
		require.False(t, conv[0].Seen)
	}

	_, _, err = s.Messages.MarkSeen(msg.ID, bob.ID)
	require.NoError(t, err)
}
