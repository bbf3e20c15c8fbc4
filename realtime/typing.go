package realtime

import (
	"log/slog"
	"sync"
	"time"

	"wavechat/domain/event"
)

// TypingCoordinator tracks the ephemeral Idle -> Typing -> Idle state per
// (conversation, sender). Nothing here is persisted; a disconnect simply
// drops the state.
type TypingCoordinator struct {
	mu          sync.Mutex
	broadcaster IBroadcaster
	log         *slog.Logger
	ttl         time.Duration
	active      map[typingKey]*typingState
}

type typingKey struct {
	conversationID string
	senderID       string
}

// gen guards against a stale expiry: a timer that fired just before a
// keystroke re-armed it still runs its callback once the mutex frees up,
// and that callback must not tear down the re-armed state.
type typingState struct {
	timer *time.Timer
	gen   uint64
	stop  func()
}

func NewTypingCoordinator(broadcaster IBroadcaster, ttl time.Duration, log *slog.Logger) *TypingCoordinator {
	return &TypingCoordinator{
		broadcaster: broadcaster,
		log:         log,
		ttl:         ttl,
		active:      make(map[typingKey]*typingState),
	}
}

// KeystrokeDirect signals typing in a one-to-one conversation. The first
// keystroke broadcasts start-typing to the receiver and arms the inactivity
// timer; later keystrokes only re-arm it (debounce, no re-broadcast).
func (t *TypingCoordinator) KeystrokeDirect(senderID, senderName, receiverID string) {
	t.keystroke(
		typingKey{conversationID: receiverID, senderID: senderID},
		func() {
			t.broadcaster.ToUser(receiverID, event.StartTyping{SenderID: senderID, SenderName: senderName})
		},
		func() {
			t.broadcaster.ToUser(receiverID, event.StopTyping{SenderID: senderID})
		},
	)
}

// KeystrokeGroup signals typing in a group room, sender excluded.
func (t *TypingCoordinator) KeystrokeGroup(senderID, senderName, groupID string) {
	t.keystroke(
		typingKey{conversationID: groupID, senderID: senderID},
		func() {
			t.broadcaster.ToRoomExcept(groupID, senderID, event.StartTyping{SenderID: senderID, SenderName: senderName, GroupID: groupID})
		},
		func() {
			t.broadcaster.ToRoomExcept(groupID, senderID, event.StopTyping{SenderID: senderID, GroupID: groupID})
		},
	)
}

// StopDirect transitions to Idle explicitly (blur or send).
func (t *TypingCoordinator) StopDirect(senderID, receiverID string) {
	t.stop(typingKey{conversationID: receiverID, senderID: senderID})
}

func (t *TypingCoordinator) StopGroup(senderID, groupID string) {
	t.stop(typingKey{conversationID: groupID, senderID: senderID})
}

// Forget drops all typing state of a sender without broadcasting, used on
// disconnect where the state is implicitly Idle.
func (t *TypingCoordinator) Forget(senderID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key, state := range t.active {
		if key.senderID == senderID {
			state.timer.Stop()
			delete(t.active, key)
		}
	}
}

func (t *TypingCoordinator) keystroke(key typingKey, start, stop func()) {
	t.mu.Lock()
	if state, ok := t.active[key]; ok {
		// Re-arm under a new generation. Stop() may miss a timer that
		// already fired; its pending expiry sees the old generation and
		// becomes a no-op.
		state.gen++
		state.timer.Stop()
		state.timer = t.armTimer(key, state.gen)
		t.mu.Unlock()
		return
	}
	state := &typingState{stop: stop}
	state.timer = t.armTimer(key, state.gen)
	t.active[key] = state
	t.mu.Unlock()

	start()
}

func (t *TypingCoordinator) armTimer(key typingKey, gen uint64) *time.Timer {
	return time.AfterFunc(t.ttl, func() {
		t.expire(key, gen)
	})
}

func (t *TypingCoordinator) stop(key typingKey) {
	t.mu.Lock()
	state, ok := t.active[key]
	if ok {
		state.timer.Stop()
		delete(t.active, key)
	}
	t.mu.Unlock()

	if ok {
		state.stop()
	}
}

func (t *TypingCoordinator) expire(key typingKey, gen uint64) {
	t.mu.Lock()
	state, ok := t.active[key]
	if ok && state.gen != gen {
		// A keystroke re-armed the timer after this expiry fired.
		t.mu.Unlock()
		return
	}
	if ok {
		delete(t.active, key)
	}
	t.mu.Unlock()

	if ok {
		state.stop()
	}
}
