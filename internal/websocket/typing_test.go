package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type typingEvent struct {
	sender uuid.UUID
	target uuid.UUID
	typing bool
}

func newTestTracker(t *testing.T, ttl time.Duration) (*TypingTracker, chan typingEvent) {
	t.Helper()

	events := make(chan typingEvent, 16)
	tracker := NewTypingTracker(ttl, func(senderID, targetID uuid.UUID, typing bool) {
		events <- typingEvent{sender: senderID, target: targetID, typing: typing}
	})
	return tracker, events
}

func recvTyping(t *testing.T, events chan typingEvent) typingEvent {
	t.Helper()

	select {
	case ev := <-events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no typing event in time")
		return typingEvent{}
	}
}

func requireNoTyping(t *testing.T, events chan typingEvent, d time.Duration) {
	t.Helper()

	select {
	case ev := <-events:
		t.Fatalf("unexpected typing event: %+v", ev)
	case <-time.After(d):
	}
}

func TestTypingTracker_StartEmitsOnceThenExpires(t *testing.T) {
	tracker, events := newTestTracker(t, 50*time.Millisecond)
	alice, bob := uuid.New(), uuid.New()

	tracker.Start(alice, bob)

	ev := recvTyping(t, events)
	require.Equal(t, typingEvent{sender: alice, target: bob, typing: true}, ev)
	require.True(t, tracker.IsTyping(alice, bob))

	// повторный Start в пределах TTL событие не дублирует
	tracker.Start(alice, bob)
	requireNoTyping(t, events, 20*time.Millisecond)

	// по истечении TTL приходит ровно одно false-событие
	ev = recvTyping(t, events)
	require.Equal(t, typingEvent{sender: alice, target: bob, typing: false}, ev)
	require.False(t, tracker.IsTyping(alice, bob))

	requireNoTyping(t, events, 100*time.Millisecond)
}

func TestTypingTracker_RefreshExtendsWindow(t *testing.T) {
	tracker, events := newTestTracker(t, 80*time.Millisecond)
	alice, bob := uuid.New(), uuid.New()

	tracker.Start(alice, bob)
	recvTyping(t, events)

	// продлеваем флаг до истечения первого таймера
	time.Sleep(50 * time.Millisecond)
	tracker.Start(alice, bob)

	// первый таймер уже должен был сработать, но поколение его обесценило
	time.Sleep(50 * time.Millisecond)
	require.True(t, tracker.IsTyping(alice, bob))

	ev := recvTyping(t, events)
	require.False(t, ev.typing)
	require.False(t, tracker.IsTyping(alice, bob))
}

func TestTypingTracker_ExplicitStop(t *testing.T) {
	tracker, events := newTestTracker(t, 50*time.Millisecond)
	alice, bob := uuid.New(), uuid.New()

	tracker.Start(alice, bob)
	recvTyping(t, events)

	tracker.Stop(alice, bob)

	ev := recvTyping(t, events)
	require.Equal(t, typingEvent{sender: alice, target: bob, typing: false}, ev)

	// отмененный таймер не шлет второе false-событие
	requireNoTyping(t, events, 100*time.Millisecond)

	// Stop без взведенного флага — no-op
	tracker.Stop(alice, bob)
	requireNoTyping(t, events, 20*time.Millisecond)
}

func TestTypingTracker_StopAllFrom(t *testing.T) {
	tracker, events := newTestTracker(t, time.Second)
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()

	tracker.Start(alice, bob)
	tracker.Start(alice, carol)
	tracker.Start(bob, alice)
	for i := 0; i < 3; i++ {
		recvTyping(t, events)
	}

	tracker.StopAllFrom(alice)

	targets := map[uuid.UUID]bool{}
	for i := 0; i < 2; i++ {
		ev := recvTyping(t, events)
		require.Equal(t, alice, ev.sender)
		require.False(t, ev.typing)
		targets[ev.target] = true
	}
	require.True(t, targets[bob])
	require.True(t, targets[carol])

	// чужие флаги не тронуты
	require.True(t, tracker.IsTyping(bob, alice))
	require.False(t, tracker.IsTyping(alice, bob))
	require.False(t, tracker.IsTyping(alice, carol))
}

func TestTypingTracker_PairsAreIndependent(t *testing.T) {
	tracker, events := newTestTracker(t, 50*time.Millisecond)
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()

	tracker.Start(alice, bob)
	tracker.Start(alice, carol)
	recvTyping(t, events)
	recvTyping(t, events)

	tracker.Stop(alice, bob)
	ev := recvTyping(t, events)
	require.Equal(t, bob, ev.target)

	require.True(t, tracker.IsTyping(alice, carol))
}
