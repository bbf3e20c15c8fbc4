//go:generate go run go.uber.org/mock/mockgen -source=broadcaster.go -destination=../mocks/mock_broadcaster.go -package=mocks
package realtime

import (
	"log/slog"

	"wavechat/domain/event"
)

type IBroadcaster interface {
	ToAll(e event.DomainEvent)
	ToUser(userID string, e event.DomainEvent)
	ToRoom(groupID string, e event.DomainEvent)
	ToRoomExcept(groupID, exceptUserID string, e event.DomainEvent)
	PresenceSnapshot()
}

// Broadcaster delivers events to live connections through the registry.
// Delivery is fire-and-forget: a failed or missing connection is skipped,
// never queued or retried. Durable history is the recovery path.
type Broadcaster struct {
	registry *Registry
	log      *slog.Logger
}

func NewBroadcaster(registry *Registry, log *slog.Logger) *Broadcaster {
	return &Broadcaster{registry: registry, log: log}
}

func (b *Broadcaster) ToAll(e event.DomainEvent) {
	b.send(b.registry.AllSinks(), e)
}

func (b *Broadcaster) ToUser(userID string, e event.DomainEvent) {
	b.send(b.registry.SinksForUser(userID), e)
}

func (b *Broadcaster) ToRoom(groupID string, e event.DomainEvent) {
	b.send(b.registry.SinksForRoom(groupID), e)
}

func (b *Broadcaster) ToRoomExcept(groupID, exceptUserID string, e event.DomainEvent) {
	b.send(b.registry.SinksForRoomExcept(groupID, exceptUserID), e)
}

// PresenceSnapshot pushes the full online-user set to every connection.
// Broadcasting the whole set on each change is fine at this scale; a larger
// deployment would diff instead.
func (b *Broadcaster) PresenceSnapshot() {
	b.ToAll(event.PresenceSnapshot{OnlineUserIDs: b.registry.OnlineUserIDs()})
}

func (b *Broadcaster) send(sinks []EventSink, e event.DomainEvent) {
	envelope := event.Wrap(e)
	for _, sink := range sinks {
		if err := sink.Send(envelope); err != nil {
			b.log.Debug("event delivery skipped", "event", e.Name(), "error", err)
		}
	}
}
