package realtime

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"wavechat/domain/event"
)

// fakeSink records every envelope it receives.
type fakeSink struct {
	mu        sync.Mutex
	envelopes []event.Envelope
}

func (f *fakeSink) Send(e event.Envelope) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.envelopes = append(f.envelopes, e)
	return nil
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.envelopes)
}

func (f *fakeSink) last() event.Envelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.envelopes[len(f.envelopes)-1]
}

func TestRegistry_MultiDevicePresence(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())

	phone, laptop := &fakeSink{}, &fakeSink{}
	registry.Register("alice", "conn-phone", phone)
	registry.Register("alice", "conn-laptop", laptop)
	registry.Register("bob", "conn-bob", &fakeSink{})

	req.Equal([]string{"alice", "bob"}, registry.OnlineUserIDs())
	req.Len(registry.SinksForUser("alice"), 2)

	// Dropping one device keeps the user online
	registry.Unregister("conn-phone")
	req.True(registry.IsOnline("alice"))
	req.Len(registry.SinksForUser("alice"), 1)

	// Dropping the last device takes the user offline
	registry.Unregister("conn-laptop")
	req.False(registry.IsOnline("alice"))
	req.Equal([]string{"bob"}, registry.OnlineUserIDs())
}

func TestRegistry_UnregisterIsIdempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())

	registry.Register("alice", "conn-1", &fakeSink{})
	registry.Unregister("conn-1")
	registry.Unregister("conn-1")
	registry.Unregister("never-existed")

	req.Empty(registry.OnlineUserIDs())
}

func TestRegistry_RoomMembership(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())

	alice1, alice2, bob := &fakeSink{}, &fakeSink{}, &fakeSink{}
	registry.Register("alice", "conn-a1", alice1)
	registry.Register("alice", "conn-a2", alice2)
	registry.Register("bob", "conn-b", bob)

	// Joining subscribes every live connection of the user
	registry.JoinRoom("alice", "group-1")
	registry.JoinRoom("bob", "group-1")
	req.Len(registry.SinksForRoom("group-1"), 3)

	// Except filters by user, not by connection
	req.Len(registry.SinksForRoomExcept("group-1", "alice"), 1)

	registry.LeaveRoom("alice", "group-1")
	req.Len(registry.SinksForRoom("group-1"), 1)

	registry.DropRoom("group-1")
	req.Empty(registry.SinksForRoom("group-1"))
}

func TestRegistry_JoinRoomForOfflineUserIsNoOp(t *testing.T) {
	registry := NewRegistry(slog.Default())
	registry.JoinRoom("ghost", "group-1")
	require.Empty(t, registry.SinksForRoom("group-1"))
}

func TestRegistry_SetRoomsReplacesSubscriptions(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())

	registry.Register("alice", "conn-1", &fakeSink{})
	registry.JoinRoom("alice", "group-old")

	registry.SetRooms("conn-1", []string{"group-a", "group-b"})

	req.Empty(registry.SinksForRoom("group-old"))
	req.Len(registry.SinksForRoom("group-a"), 1)
	req.Len(registry.SinksForRoom("group-b"), 1)
}

func TestRegistry_UnregisterCleansRooms(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())

	registry.Register("alice", "conn-1", &fakeSink{})
	registry.JoinRoom("alice", "group-1")
	registry.Unregister("conn-1")

	req.Empty(registry.SinksForRoom("group-1"))
}

func TestBroadcaster_PresenceSnapshotReachesEveryConnection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	broadcaster := NewBroadcaster(registry, slog.Default())

	alice, bob := &fakeSink{}, &fakeSink{}
	registry.Register("alice", "conn-a", alice)
	registry.Register("bob", "conn-b", bob)

	broadcaster.PresenceSnapshot()

	req.Equal(1, alice.count())
	req.Equal(1, bob.count())
	envelope := alice.last()
	req.Equal("presence-snapshot", envelope.Event)
	snapshot, ok := envelope.Data.(event.PresenceSnapshot)
	req.True(ok)
	req.Equal([]string{"alice", "bob"}, snapshot.OnlineUserIDs)
}

func TestBroadcaster_ToRoomDeliversOncePerConnection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	broadcaster := NewBroadcaster(registry, slog.Default())

	alice := &fakeSink{}
	registry.Register("alice", "conn-a", alice)
	registry.JoinRoom("alice", "group-1")
	// A second join of the same room must not double deliveries
	registry.JoinRoom("alice", "group-1")

	broadcaster.ToRoom("group-1", event.StartTyping{SenderID: "bob", GroupID: "group-1"})
	req.Equal(1, alice.count())
}
