package store

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apperr "github.com/thereayou/whisper/pkg/errors"
)

func TestFriendStore_RequestAcceptFlow(t *testing.T) {
	s := NewFriendStore()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, s.Request(a, b))

	// у получателя ровно одна входящая заявка
	pending := s.PendingFor(b)
	require.Len(t, pending, 1)
	require.Equal(t, a, pending[0])
	require.Empty(t, s.PendingFor(a))
	require.False(t, s.AreFriends(a, b))

	require.NoError(t, s.Accept(b, a))
	require.True(t, s.AreFriends(a, b))
	require.Empty(t, s.PendingFor(b))
	require.Equal(t, []uuid.UUID{b}, s.Friends(a))
	require.Equal(t, []uuid.UUID{a}, s.Friends(b))
}

func TestFriendStore_DuplicateRequestConflicts(t *testing.T) {
	s := NewFriendStore()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, s.Request(a, b))

	// повтор в ту же сторону и встречная заявка — оба Conflict
	require.ErrorIs(t, s.Request(a, b), apperr.ErrAlreadyFriendsOrPending)
	require.ErrorIs(t, s.Request(b, a), apperr.ErrAlreadyFriendsOrPending)

	require.NoError(t, s.Accept(b, a))
	require.ErrorIs(t, s.Request(a, b), apperr.ErrAlreadyFriendsOrPending)
}

func TestFriendStore_SelfRequest(t *testing.T) {
	s := NewFriendStore()
	a := uuid.New()

	require.ErrorIs(t, s.Request(a, a), apperr.ErrSelfFriendRequest)
}

func TestFriendStore_AcceptRejectRequireMatchingPending(t *testing.T) {
	s := NewFriendStore()
	a, b := uuid.New(), uuid.New()

	require.ErrorIs(t, s.Accept(b, a), apperr.ErrFriendRequestNotFound)

	require.NoError(t, s.Request(a, b))
	// принять может только адресат заявки
	require.ErrorIs(t, s.Accept(a, b), apperr.ErrFriendRequestNotFound)

	require.NoError(t, s.Reject(b, a))
	require.ErrorIs(t, s.Reject(b, a), apperr.ErrFriendRequestNotFound)

	// после отказа пара свободна для новой заявки
	require.NoError(t, s.Request(b, a))
}

func TestFriendStore_RemoveOnlyAccepted(t *testing.T) {
	s := NewFriendStore()
	a, b := uuid.New(), uuid.New()

	require.ErrorIs(t, s.Remove(a, b), apperr.ErrFriendshipNotFound)

	require.NoError(t, s.Request(a, b))
	require.ErrorIs(t, s.Remove(a, b), apperr.ErrFriendshipNotFound)

	require.NoError(t, s.Accept(b, a))
	require.NoError(t, s.Remove(b, a))
	require.False(t, s.AreFriends(a, b))
}

// Одновременные встречные заявки: ровно одно pending ребро и один Conflict
func TestFriendStore_ConcurrentMutualRequests(t *testing.T) {
	for i := 0; i < 100; i++ {
		s := NewFriendStore()
		a, b := uuid.New(), uuid.New()

		var wg sync.WaitGroup
		errs := make([]error, 2)

		wg.Add(2)
		go func() {
			defer wg.Done()
			errs[0] = s.Request(a, b)
		}()
		go func() {
			defer wg.Done()
			errs[1] = s.Request(b, a)
		}()
		wg.Wait()

		conflicts := 0
		for _, err := range errs {
			if err != nil {
				require.ErrorIs(t, err, apperr.ErrAlreadyFriendsOrPending)
				conflicts++
			}
		}
		require.Equal(t, 1, conflicts)
		require.Equal(t, 1, len(s.PendingFor(a))+len(s.PendingFor(b)))
	}
}
