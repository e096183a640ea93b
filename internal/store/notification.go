package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/thereayou/whisper/internal/models"
	apperr "github.com/thereayou/whisper/pkg/errors"
)

// NotificationStore хранит уведомления по получателям в порядке поступления
type NotificationStore struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID][]*models.Notification
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{byUser: make(map[uuid.UUID][]*models.Notification)}
}

// Push добавляет уведомление в конец очереди получателя
func (s *NotificationStore) Push(n models.Notification) models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := n
	s.byUser[n.ReceiverID] = append(s.byUser[n.ReceiverID], &stored)
	return stored
}

// List возвращает уведомления получателя, свежие первыми
func (s *NotificationStore) List(recipientID uuid.UUID) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq := s.byUser[recipientID]
	result := make([]models.Notification, len(seq))
	for i, n := range seq {
		result[len(seq)-1-i] = *n
	}
	return result
}

// UnreadCount считает непрочитанные по той же очереди, что и List
func (s *NotificationStore) UnreadCount(recipientID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.byUser[recipientID] {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead идемпотентно помечает уведомление прочитанным
func (s *NotificationStore) MarkRead(recipientID, notificationID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.byUser[recipientID] {
		if n.ID == notificationID {
			n.Read = true
			return nil
		}
	}
	return apperr.ErrNotificationNotFound
}

func (s *NotificationStore) MarkAllRead(recipientID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.byUser[recipientID] {
		n.Read = true
	}
}

// Delete удаляет уведомление, чужие для получателя не видны
func (s *NotificationStore) Delete(recipientID, notificationID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.byUser[recipientID]
	for i, n := range seq {
		if n.ID == notificationID {
			s.byUser[recipientID] = append(seq[:i], seq[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotificationNotFound
}

func (s *NotificationStore) ClearAll(recipientID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byUser, recipientID)
}

// RemoveAllFor — каскад при удалении аккаунта, возвращает число удаленных
func (s *NotificationStore) RemoveAllFor(recipientID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.byUser[recipientID])
	delete(s.byUser, recipientID)
	return removed
}
