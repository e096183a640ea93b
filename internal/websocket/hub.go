package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MessageType определяет типы событий
type MessageType string

const (
	// Системные типы
	TypePing MessageType = "ping"
	TypePong MessageType = "pong"

	// Сообщения и уведомления
	TypeMessage      MessageType = "message"
	TypeMessageSeen  MessageType = "message_seen"
	TypeNotification MessageType = "notification"

	// Дружба и присутствие
	TypeFriendRequest  MessageType = "friend_request"
	TypeFriendAccepted MessageType = "friend_accepted"
	TypeFriendStatus   MessageType = "friend_status"

	// Индикатор набора текста
	TypeTyping     MessageType = "typing"
	TypeStopTyping MessageType = "stop_typing"
)

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

type Message struct {
	Type      MessageType     `json:"type"`
	UserID    uuid.UUID       `json:"user_id"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// FriendSource отдает принятых друзей пользователя для рассылки статусов
type FriendSource interface {
	Friends(userID uuid.UUID) []uuid.UUID
}

type Hub struct {
	clients map[uuid.UUID]*Client

	// Клиенты по UserID (один пользователь может иметь несколько соединений)
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	friends FriendSource

	// Каналы для регистрации/отмены регистрации
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Вызывается, когда закрылось последнее соединение пользователя
	OnUserOffline func(userID uuid.UUID)

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub(friends FriendSource) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		friends:     friends,
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			if wentOnline := h.registerClient(client); wentOnline {
				// Лок реестра уже отпущен, рассылка его не держит
				h.notifyFriendStatus(client.UserID, StatusOnline)
			}

		case client := <-h.unregister:
			if wentOffline := h.unregisterClient(client); wentOffline {
				h.notifyFriendStatus(client.UserID, StatusOffline)
				if h.OnUserOffline != nil {
					h.OnUserOffline(client.UserID)
				}
			}

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub и закрывает все соединения.
// Send-каналы не закрываем: читающая pump еще может отвечать на входящее
// событие, а запись в закрытый канал — паника. Осиротевшие каналы доберет GC.
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
	h.clients = make(map[uuid.UUID]*Client)
	h.userClients = make(map[uuid.UUID]map[uuid.UUID]*Client)
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// Unregister отменяет регистрацию клиента.
// После Stop цикл Run уже не читает канал, поэтому не виснем на нем.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// registerClient возвращает true, если это первое соединение пользователя
func (h *Hub) registerClient(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	first := false
	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
		first = true
	}
	h.userClients[client.UserID][client.ID] = client

	log.Printf("Client registered: %s (User: %s)", client.ID, client.UserID)
	return first
}

// unregisterClient возвращает true, если закрылось последнее соединение пользователя.
// Повторный unregister того же клиента — no-op, не ошибка.
func (h *Hub) unregisterClient(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return false
	}

	last := false
	if userClients, ok := h.userClients[client.UserID]; ok {
		delete(userClients, client.ID)
		if len(userClients) == 0 {
			delete(h.userClients, client.UserID)
			last = true
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)

	log.Printf("Client unregistered: %s (User: %s)", client.ID, client.UserID)
	return last
}

// CloseUser рвет все соединения пользователя (удаление аккаунта).
// Только Conn.Close: снятие регистрации и закрытие Send-канала идут обычным
// путем через ReadPump -> Unregister -> Run, когда pump соединения завершится.
// Закрывать Send здесь нельзя: ReadPump может быть посреди обработки события
// и еще написать в канал.
func (h *Hub) CloseUser(userID uuid.UUID) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.userClients[userID] {
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
}

// SendToUser доставляет данные на все живые соединения пользователя.
// Доставка best-effort: переполненная очередь соединения просто пропускается.
func (h *Hub) SendToUser(userID uuid.UUID, data []byte) {
	h.SendToUserExcept(userID, uuid.Nil, data)
}

// SendToUserExcept — то же, но без одного соединения (эхо на прочие вкладки отправителя)
func (h *Hub) SendToUserExcept(userID, excludeID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.userClients[userID] {
		if client.ID == excludeID {
			continue
		}
		select {
		case client.Send <- data:
		default:
			log.Printf("Client %s send channel full", client.ID)
		}
	}
}

// PublishToUser упаковывает событие в конверт и рассылает по соединениям пользователя
func (h *Hub) PublishToUser(userID uuid.UUID, msgType MessageType, payload interface{}) error {
	data, err := marshalEvent(msgType, payload)
	if err != nil {
		return err
	}
	h.SendToUser(userID, data)
	return nil
}

// PublishToUsers — одно событие нескольким пользователям (статусы всем друзьям)
func (h *Hub) PublishToUsers(userIDs []uuid.UUID, msgType MessageType, payload interface{}) error {
	data, err := marshalEvent(msgType, payload)
	if err != nil {
		return err
	}
	for _, id := range userIDs {
		h.SendToUser(id, data)
	}
	return nil
}

func marshalEvent(msgType MessageType, payload interface{}) ([]byte, error) {
	msg := Message{
		Type:      msgType,
		Timestamp: time.Now(),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Data = data
	}
	return json.Marshal(msg)
}

func (h *Hub) notifyFriendStatus(userID uuid.UUID, status string) {
	friendIDs := h.friends.Friends(userID)
	if len(friendIDs) == 0 {
		return
	}

	payload := map[string]interface{}{
		"userId": userID,
		"status": status,
	}
	if err := h.PublishToUsers(friendIDs, TypeFriendStatus, payload); err != nil {
		log.Printf("Failed to publish friend status: %v", err)
	}
}

// IsOnline — у пользователя есть хотя бы одно живое соединение
func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.userClients[userID]) > 0
}

// Status возвращает online/offline для публичных представлений
func (h *Hub) Status(userID uuid.UUID) string {
	if h.IsOnline(userID) {
		return StatusOnline
	}
	return StatusOffline
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// GetOnlineUsers возвращает список онлайн пользователей
func (h *Hub) GetOnlineUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uuid.UUID, 0, len(h.userClients))
	for userID := range h.userClients {
		users = append(users, userID)
	}
	return users
}
