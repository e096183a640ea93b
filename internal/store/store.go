package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/whisper/internal/models"
	apperr "github.com/thereayou/whisper/pkg/errors"
)

// Store — единое in-memory состояние сервера. Каждая коллекция залочена
// независимо; операции, задевающие несколько коллекций, берут локи строго в
// порядке Users -> Friends -> Messages -> Notifications (здесь — последовательными
// вызовами, лок каждой коллекции отпускается до обращения к следующей).
// Рассылка событий по соединениям всегда происходит в хендлерах, уже после
// выхода из Store.
type Store struct {
	Users         *UserStore
	Friends       *FriendStore
	Messages      *MessageStore
	Notifications *NotificationStore
}

func New() *Store {
	return &Store{
		Users:         NewUserStore(),
		Friends:       NewFriendStore(),
		Messages:      NewMessageStore(),
		Notifications: NewNotificationStore(),
	}
}

// RequestFriend создает заявку requester -> recipient и уведомление получателю
func (s *Store) RequestFriend(requesterID, recipientID uuid.UUID) (models.Notification, error) {
	requester, err := s.Users.Get(requesterID)
	if err != nil {
		return models.Notification{}, err
	}
	if _, err := s.Users.Get(recipientID); err != nil {
		return models.Notification{}, err
	}

	if err := s.Friends.Request(requesterID, recipientID); err != nil {
		return models.Notification{}, err
	}

	notif := s.Notifications.Push(models.Notification{
		ID:         uuid.New(),
		Type:       models.NotificationFriendRequest,
		SenderID:   requester.ID,
		SenderName: requester.Username,
		ReceiverID: recipientID,
		Content:    fmt.Sprintf("%s sent you a friend request", requester.Username),
		CreatedAt:  time.Now(),
	})
	return notif, nil
}

type AcceptResult struct {
	Requester models.User
	Recipient models.User

	// Уведомления обеим сторонам, как в системном сценарии принятия заявки
	RecipientNotification models.Notification
	RequesterNotification models.Notification
}

// AcceptFriend принимает заявку requester -> recipient
func (s *Store) AcceptFriend(recipientID, requesterID uuid.UUID) (AcceptResult, error) {
	requester, err := s.Users.Get(requesterID)
	if err != nil {
		return AcceptResult{}, err
	}
	recipient, err := s.Users.Get(recipientID)
	if err != nil {
		return AcceptResult{}, err
	}

	if err := s.Friends.Accept(recipientID, requesterID); err != nil {
		return AcceptResult{}, err
	}

	now := time.Now()
	forRecipient := s.Notifications.Push(models.Notification{
		ID:         uuid.New(),
		Type:       models.NotificationSystem,
		ReceiverID: recipientID,
		Content:    fmt.Sprintf("You are now friends with %s", requester.Username),
		CreatedAt:  now,
	})
	forRequester := s.Notifications.Push(models.Notification{
		ID:         uuid.New(),
		Type:       models.NotificationSystem,
		ReceiverID: requesterID,
		Content:    fmt.Sprintf("%s accepted your friend request", recipient.Username),
		CreatedAt:  now,
	})

	return AcceptResult{
		Requester:             requester,
		Recipient:             recipient,
		RecipientNotification: forRecipient,
		RequesterNotification: forRequester,
	}, nil
}

// SendMessage проверяет дружбу, кладет сообщение в переписку и создает
// уведомление получателю
func (s *Store) SendMessage(senderID, receiverID uuid.UUID, content string) (models.Message, models.Notification, error) {
	if strings.TrimSpace(content) == "" {
		return models.Message{}, models.Notification{}, apperr.ErrEmptyMessage
	}

	sender, err := s.Users.Get(senderID)
	if err != nil {
		return models.Message{}, models.Notification{}, err
	}
	if _, err := s.Users.Get(receiverID); err != nil {
		return models.Message{}, models.Notification{}, err
	}

	if !s.Friends.AreFriends(senderID, receiverID) {
		return models.Message{}, models.Notification{}, apperr.ErrNotFriends
	}

	msg := s.Messages.Append(senderID, receiverID, content)

	notif := s.Notifications.Push(models.Notification{
		ID:         uuid.New(),
		Type:       models.NotificationMessage,
		SenderID:   sender.ID,
		SenderName: sender.Username,
		ReceiverID: receiverID,
		Content:    fmt.Sprintf("New message from %s", sender.Username),
		CreatedAt:  msg.CreatedAt,
	})

	return msg, notif, nil
}

// ListConversation отдает переписку, только если стороны — друзья.
// Чтение ничего не мутирует и повторяемо.
func (s *Store) ListConversation(viewerID, friendID uuid.UUID) ([]models.Message, error) {
	if !s.Friends.AreFriends(viewerID, friendID) {
		return nil, apperr.ErrNotFriends
	}
	return s.Messages.Conversation(viewerID, friendID), nil
}

type CascadeResult struct {
	// Бывшие друзья: им нужно обновить списки и статусы
	FormerFriends        []uuid.UUID
	MessagesRemoved      int
	NotificationsRemoved int
}

// DeleteUser удаляет аккаунт со всеми зависимыми записями: дружбы, заявки,
// переписки, уведомления. После возврата ни одна коллекция не ссылается на id.
func (s *Store) DeleteUser(userID uuid.UUID) (CascadeResult, error) {
	if err := s.Users.Remove(userID); err != nil {
		return CascadeResult{}, err
	}

	res := CascadeResult{}
	res.FormerFriends = s.Friends.RemoveAllFor(userID)
	res.MessagesRemoved = s.Messages.RemoveAllFor(userID)
	res.NotificationsRemoved = s.Notifications.RemoveAllFor(userID)
	return res, nil
}
