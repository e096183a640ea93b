package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTypingTTL — сколько флаг "печатает" живет без обновления
const DefaultTypingTTL = 3 * time.Second

type typingKey struct {
	sender uuid.UUID
	target uuid.UUID
}

type typingState struct {
	// Номер поколения таймера: сработавший таймер устаревшего поколения
	// не имеет права сбросить флаг, который уже переустановили
	gen   uint64
	timer *time.Timer
}

// TypingTracker держит флаг набора текста для пары (отправитель, адресат)
// с авто-сбросом по TTL. notify вызывается вне лока при каждом переходе
// false->true и true->false; обновление уже взведенного флага событие не шлет.
type TypingTracker struct {
	mu     sync.Mutex
	ttl    time.Duration
	states map[typingKey]*typingState
	notify func(senderID, targetID uuid.UUID, typing bool)
}

func NewTypingTracker(ttl time.Duration, notify func(senderID, targetID uuid.UUID, typing bool)) *TypingTracker {
	if ttl <= 0 {
		ttl = DefaultTypingTTL
	}
	return &TypingTracker{
		ttl:    ttl,
		states: make(map[typingKey]*typingState),
		notify: notify,
	}
}

// Start взводит или продлевает флаг. Событие уходит только на первый переход,
// продление таймера на каждое нажатие клавиши рассылку не дублирует.
func (t *TypingTracker) Start(senderID, targetID uuid.UUID) {
	key := typingKey{sender: senderID, target: targetID}

	t.mu.Lock()
	st, ok := t.states[key]
	if ok {
		st.gen++
		gen := st.gen
		st.timer.Stop()
		st.timer = time.AfterFunc(t.ttl, func() { t.expire(key, gen) })
		t.mu.Unlock()
		return
	}

	st = &typingState{}
	st.timer = time.AfterFunc(t.ttl, func() { t.expire(key, 0) })
	t.states[key] = st
	t.mu.Unlock()

	t.notify(senderID, targetID, true)
}

// Stop — явный сброс (stop_typing или смена открытого чата).
// Отменяет ожидающий таймер, чтобы не было второго false-события.
func (t *TypingTracker) Stop(senderID, targetID uuid.UUID) {
	key := typingKey{sender: senderID, target: targetID}

	t.mu.Lock()
	st, ok := t.states[key]
	if ok {
		st.timer.Stop()
		delete(t.states, key)
	}
	t.mu.Unlock()

	if ok {
		t.notify(senderID, targetID, false)
	}
}

// StopAllFrom сбрасывает все флаги пользователя (последнее соединение закрылось)
func (t *TypingTracker) StopAllFrom(senderID uuid.UUID) {
	t.mu.Lock()
	targets := make([]uuid.UUID, 0)
	for key, st := range t.states {
		if key.sender == senderID {
			st.timer.Stop()
			delete(t.states, key)
			targets = append(targets, key.target)
		}
	}
	t.mu.Unlock()

	for _, target := range targets {
		t.notify(senderID, target, false)
	}
}

// IsTyping — текущее состояние флага
func (t *TypingTracker) IsTyping(senderID, targetID uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.states[typingKey{sender: senderID, target: targetID}]
	return ok
}

// expire срабатывает по TTL; устаревшее поколение молча выходит
func (t *TypingTracker) expire(key typingKey, gen uint64) {
	t.mu.Lock()
	st, ok := t.states[key]
	if !ok || st.gen != gen {
		t.mu.Unlock()
		return
	}
	delete(t.states, key)
	t.mu.Unlock()

	t.notify(key.sender, key.target, false)
}
