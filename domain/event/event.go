// Package event defines the realtime events emitted to live connections.
// Event names and payload shapes are a contract shared with clients.
package event

import "wavechat/domain"

// DomainEvent is anything that can be pushed to a live connection.
type DomainEvent interface {
	Name() string
}

// Envelope is the JSON frame written to a connection.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func Wrap(e DomainEvent) Envelope {
	return Envelope{Event: e.Name(), Data: e}
}

// PresenceSnapshot carries the full online-user set. Broadcast to every
// connection whenever the registry changes.
type PresenceSnapshot struct {
	OnlineUserIDs []string `json:"onlineUserIds"`
}

func (PresenceSnapshot) Name() string { return "presence-snapshot" }

// NewDirectMessage is delivered to the receiver's connections and to the
// sender's own connections for multi-device echo. Clients must de-duplicate
// by message id.
type NewDirectMessage struct {
	Message domain.DirectMessage `json:"message"`
}

func (NewDirectMessage) Name() string { return "new-direct-message" }

// NewGroupMessage is broadcast to the group room, sender included.
type NewGroupMessage struct {
	Message domain.GroupMessage `json:"message"`
}

func (NewGroupMessage) Name() string { return "new-group-message" }

// StartTyping is sent to the counterpart (direct) or the room minus the
// sender (group). GroupID is empty for direct conversations.
type StartTyping struct {
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName,omitempty"`
	GroupID    string `json:"groupId,omitempty"`
}

func (StartTyping) Name() string { return "start-typing" }

type StopTyping struct {
	SenderID string `json:"senderId"`
	GroupID  string `json:"groupId,omitempty"`
}

func (StopTyping) Name() string { return "stop-typing" }

// GroupCreated is emitted to each new member's connections, creator excluded.
type GroupCreated struct {
	Group     domain.Group `json:"group"`
	CreatedBy string       `json:"createdBy"`
}

func (GroupCreated) Name() string { return "group-created" }

type MemberAdded struct {
	GroupID        string       `json:"groupId"`
	Group          domain.Group `json:"group"`
	AffectedUserID string       `json:"affectedUserId"`
}

func (MemberAdded) Name() string { return "member-added" }

type MemberRemoved struct {
	GroupID        string       `json:"groupId"`
	Group          domain.Group `json:"group"`
	AffectedUserID string       `json:"affectedUserId"`
}

func (MemberRemoved) Name() string { return "member-removed" }

// GroupUpdated carries the full refreshed snapshot after a rename or
// picture change.
type GroupUpdated struct {
	GroupID string       `json:"groupId"`
	Group   domain.Group `json:"group"`
}

func (GroupUpdated) Name() string { return "group-updated" }

// GroupDeleted is emitted directly to each former member's connections,
// since the room subscription is already gone.
type GroupDeleted struct {
	GroupID   string `json:"groupId"`
	GroupName string `json:"groupName"`
	DeletedBy string `json:"deletedBy"`
}

func (GroupDeleted) Name() string { return "group-deleted" }

// ProfileUpdated is broadcast to every connection after a profile change,
// so cached avatars and names refresh without a full pull.
type ProfileUpdated struct {
	User domain.User `json:"user"`
}

func (ProfileUpdated) Name() string { return "profile-updated" }

// MarkedRead is sent to the reader's own connections so multi-device badge
// counts stay consistent. ConversationID is a userID for direct
// conversations and a groupID for group conversations.
type MarkedRead struct {
	ConversationID string `json:"conversationId"`
}

func (MarkedRead) Name() string { return "marked-read" }
