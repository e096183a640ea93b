package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/whisper/internal/models"
	apperr "github.com/thereayou/whisper/pkg/errors"
)

// MessageStore хранит переписки по неупорядоченным парам пользователей.
// Порядок внутри пары — порядок добавления, сериализованный мьютексом.
type MessageStore struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*models.Message
	byPair map[pair][]*models.Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		byID:   make(map[uuid.UUID]*models.Message),
		byPair: make(map[pair][]*models.Message),
	}
}

// Append добавляет сообщение в конец переписки пары и возвращает сохраненную запись
func (s *MessageStore) Append(senderID, receiverID uuid.UUID, content string) models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := &models.Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now(),
	}

	key := pairOf(senderID, receiverID)
	s.byID[msg.ID] = msg
	s.byPair[key] = append(s.byPair[key], msg)

	return *msg
}

func (s *MessageStore) Get(id uuid.UUID) (models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.byID[id]
	if !ok {
		return models.Message{}, apperr.ErrMessageNotFound
	}
	return *msg, nil
}

// Conversation возвращает копию переписки пары в порядке добавления
func (s *MessageStore) Conversation(userA, userB uuid.UUID) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq := s.byPair[pairOf(userA, userB)]
	result := make([]models.Message, len(seq))
	for i, msg := range seq {
		result[i] = *msg
	}
	return result
}

// MarkSeen помечает сообщение прочитанным. Флаг монотонный: повторный вызов —
// идемпотентный no-op, changed=false, событие отправителю не нужно.
func (s *MessageStore) MarkSeen(messageID, viewerID uuid.UUID) (models.Message, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.byID[messageID]
	if !ok {
		return models.Message{}, false, apperr.ErrMessageNotFound
	}
	if msg.ReceiverID != viewerID {
		return models.Message{}, false, apperr.ErrNotReceiver
	}
	if msg.Seen {
		return *msg, false, nil
	}

	now := time.Now()
	msg.Seen = true
	msg.SeenAt = &now
	return *msg, true, nil
}

// Delete удаляет сообщение, разрешено только отправителю
func (s *MessageStore) Delete(messageID, requesterID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.byID[messageID]
	if !ok {
		return apperr.ErrMessageNotFound
	}
	if msg.SenderID != requesterID {
		return apperr.ErrNotSender
	}

	key := pairOf(msg.SenderID, msg.ReceiverID)
	seq := s.byPair[key]
	for i, m := range seq {
		if m.ID == messageID {
			s.byPair[key] = append(seq[:i], seq[i+1:]...)
			break
		}
	}
	delete(s.byID, messageID)

	return nil
}

// RemoveAllFor удаляет все сообщения с участием пользователя, возвращает их количество
func (s *MessageStore) RemoveAllFor(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, seq := range s.byPair {
		if key.lo != userID && key.hi != userID {
			continue
		}
		for _, msg := range seq {
			delete(s.byID, msg.ID)
			removed++
		}
		delete(s.byPair, key)
	}
	return removed
}
