package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/whisper/internal/models"
	apperr "github.com/thereayou/whisper/pkg/errors"
)

// FriendStore — машина состояний дружбы для неупорядоченных пар.
// Инвариант: не больше одного ребра на пару, pending всегда помнит инициатора.
type FriendStore struct {
	mu    sync.RWMutex
	edges map[pair]*models.Friendship
}

func NewFriendStore() *FriendStore {
	return &FriendStore{edges: make(map[pair]*models.Friendship)}
}

// Request создает pending ребро requester -> recipient.
// Вторая одновременная заявка (в любом направлении) видит первую и падает с Conflict.
func (s *FriendStore) Request(requester, recipient uuid.UUID) error {
	if requester == recipient {
		return apperr.ErrSelfFriendRequest
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairOf(requester, recipient)
	if _, ok := s.edges[key]; ok {
		return apperr.ErrAlreadyFriendsOrPending
	}

	s.edges[key] = &models.Friendship{
		Requester: requester,
		Recipient: recipient,
		Status:    models.FriendshipPending,
		CreatedAt: time.Now(),
	}
	return nil
}

// Accept переводит pending ребро requester -> recipient в accepted
func (s *FriendStore) Accept(recipient, requester uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	edge, ok := s.edges[pairOf(requester, recipient)]
	if !ok || edge.Status != models.FriendshipPending || edge.Requester != requester {
		return apperr.ErrFriendRequestNotFound
	}

	edge.Status = models.FriendshipAccepted
	return nil
}

// Reject удаляет pending ребро, пара возвращается в состояние none
func (s *FriendStore) Reject(recipient, requester uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairOf(requester, recipient)
	edge, ok := s.edges[key]
	if !ok || edge.Status != models.FriendshipPending || edge.Requester != requester {
		return apperr.ErrFriendRequestNotFound
	}

	delete(s.edges, key)
	return nil
}

// Remove разрывает принятую дружбу
func (s *FriendStore) Remove(userA, userB uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairOf(userA, userB)
	edge, ok := s.edges[key]
	if !ok || edge.Status != models.FriendshipAccepted {
		return apperr.ErrFriendshipNotFound
	}

	delete(s.edges, key)
	return nil
}

func (s *FriendStore) AreFriends(userA, userB uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edge, ok := s.edges[pairOf(userA, userB)]
	return ok && edge.Status == models.FriendshipAccepted
}

// Friends возвращает всех принятых друзей пользователя
func (s *FriendStore) Friends(userID uuid.UUID) []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]uuid.UUID, 0)
	for _, edge := range s.edges {
		if edge.Status != models.FriendshipAccepted {
			continue
		}
		if edge.Requester == userID || edge.Recipient == userID {
			result = append(result, edge.Peer(userID))
		}
	}
	return result
}

// PendingFor возвращает входящие заявки: кто отправил заявку этому пользователю
func (s *FriendStore) PendingFor(userID uuid.UUID) []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]uuid.UUID, 0)
	for _, edge := range s.edges {
		if edge.Status == models.FriendshipPending && edge.Recipient == userID {
			result = append(result, edge.Requester)
		}
	}
	return result
}

// RemoveAllFor удаляет все ребра пользователя (каскад при удалении аккаунта),
// возвращает бывших друзей для оповещения
func (s *FriendStore) RemoveAllFor(userID uuid.UUID) []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	peers := make([]uuid.UUID, 0)
	for key, edge := range s.edges {
		if edge.Requester != userID && edge.Recipient != userID {
			continue
		}
		if edge.Status == models.FriendshipAccepted {
			peers = append(peers, edge.Peer(userID))
		}
		delete(s.edges, key)
	}
	return peers
}
