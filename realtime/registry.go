//go:generate go run go.uber.org/mock/mockgen -source=registry.go -destination=../mocks/mock_registry.go -package=mocks
// Package realtime tracks live connections, their room subscriptions, and
// event delivery to them. All state lives in this single process; a
// multi-instance deployment would need a shared broadcast backbone instead.
package realtime

import (
	"log/slog"
	"sort"
	"sync"

	"wavechat/domain/event"
)

// EventSink is one live connection's write side.
type EventSink interface {
	Send(e event.Envelope) error
}

type Set map[string]struct{}

// IRoomRegistry is the slice of the registry that lifecycle handlers need:
// keeping room subscriptions in sync with persisted group membership.
type IRoomRegistry interface {
	JoinRoom(userID, groupID string)
	LeaveRoom(userID, groupID string)
	DropRoom(groupID string)
}

// Registry is the single source of truth for who is online. A user may hold
// several connections at once (multi-device); every delivery fans out to all
// of them.
type Registry struct {
	mu    sync.RWMutex
	log   *slog.Logger
	conns map[string]*connection // connID -> connection
	users map[string]Set         // userID -> connIDs
	rooms map[string]Set         // groupID -> connIDs
}

type connection struct {
	userID  string
	sink    EventSink
	roomIDs Set
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		log:   log,
		conns: make(map[string]*connection),
		users: make(map[string]Set),
		rooms: make(map[string]Set),
	}
}

// Register adds a live authenticated connection. The caller broadcasts the
// presence snapshot afterwards, in the same handling turn.
func (r *Registry) Register(userID, connID string, sink EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[connID] = &connection{userID: userID, sink: sink, roomIDs: make(Set)}
	if _, ok := r.users[userID]; !ok {
		r.users[userID] = make(Set)
	}
	r.users[userID][connID] = struct{}{}
	r.log.Debug("connection registered", "userId", userID, "connId", connID)
}

// Unregister removes a connection and all its room subscriptions.
// Unknown connIDs are a no-op, so disconnect handlers stay idempotent.
func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[connID]
	if !ok {
		return
	}
	delete(r.conns, connID)

	if connIDs, ok := r.users[conn.userID]; ok {
		delete(connIDs, connID)
		if len(connIDs) == 0 {
			delete(r.users, conn.userID)
		}
	}
	for groupID := range conn.roomIDs {
		r.removeFromRoom(groupID, connID)
	}
	r.log.Debug("connection unregistered", "userId", conn.userID, "connId", connID)
}

// JoinRoom subscribes every live connection of userID to the group room.
// A user with no live connection is a deferred no-op; they resync on their
// next connect.
func (r *Registry) JoinRoom(userID, groupID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for connID := range r.users[userID] {
		r.addToRoom(groupID, connID)
	}
}

// LeaveRoom removes every live connection of userID from the group room.
func (r *Registry) LeaveRoom(userID, groupID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for connID := range r.users[userID] {
		conn, ok := r.conns[connID]
		if !ok {
			continue
		}
		delete(conn.roomIDs, groupID)
		r.removeFromRoom(groupID, connID)
	}
}

// DropRoom removes a room entirely, used when a group is deleted.
func (r *Registry) DropRoom(groupID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for connID := range r.rooms[groupID] {
		if conn, ok := r.conns[connID]; ok {
			delete(conn.roomIDs, groupID)
		}
	}
	delete(r.rooms, groupID)
}

// SetRooms replaces a connection's full room set, the join-all-groups resync
// performed right after connect.
func (r *Registry) SetRooms(connID string, groupIDs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[connID]
	if !ok {
		return
	}
	for groupID := range conn.roomIDs {
		r.removeFromRoom(groupID, connID)
	}
	conn.roomIDs = make(Set)
	for _, groupID := range groupIDs {
		r.addToRoom(groupID, connID)
	}
}

// SinksForUser returns the write side of every live connection of a user.
func (r *Registry) SinksForUser(userID string) []EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sinks []EventSink
	for connID := range r.users[userID] {
		if conn, ok := r.conns[connID]; ok {
			sinks = append(sinks, conn.sink)
		}
	}
	return sinks
}

// SinksForRoom returns each subscribed connection exactly once, so a
// broadcast can never deliver twice to the same connection.
func (r *Registry) SinksForRoom(groupID string) []EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roomSinks(groupID, "")
}

// SinksForRoomExcept skips the given user's own connections, used by group
// typing signals.
func (r *Registry) SinksForRoomExcept(groupID, exceptUserID string) []EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roomSinks(groupID, exceptUserID)
}

func (r *Registry) AllSinks() []EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sinks := make([]EventSink, 0, len(r.conns))
	for _, conn := range r.conns {
		sinks = append(sinks, conn.sink)
	}
	return sinks
}

// OnlineUserIDs returns the sorted set of users holding at least one live
// connection.
func (r *Registry) OnlineUserIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.users))
	for userID := range r.users {
		ids = append(ids, userID)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users[userID]) > 0
}

// Callers must hold r.mu.
func (r *Registry) addToRoom(groupID, connID string) {
	conn, ok := r.conns[connID]
	if !ok {
		return
	}
	conn.roomIDs[groupID] = struct{}{}
	if _, ok := r.rooms[groupID]; !ok {
		r.rooms[groupID] = make(Set)
	}
	r.rooms[groupID][connID] = struct{}{}
}

// Callers must hold r.mu. Empty room sets are removed to avoid leaking
// entries for deleted groups.
func (r *Registry) removeFromRoom(groupID, connID string) {
	if members, ok := r.rooms[groupID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.rooms, groupID)
		}
	}
}

// Callers must hold r.mu (read).
func (r *Registry) roomSinks(groupID, exceptUserID string) []EventSink {
	var sinks []EventSink
	for connID := range r.rooms[groupID] {
		conn, ok := r.conns[connID]
		if !ok {
			continue
		}
		if exceptUserID != "" && conn.userID == exceptUserID {
			continue
		}
		sinks = append(sinks, conn.sink)
	}
	return sinks
}
