// This file defines message entities and related rules.
// Messages are immutable once created, except for read state.
package domain

import (
	"time"

	"wavechat/errors"
)

// Payload carries the optional content of a message. At least one of
// Text, Image or Document must be present.
type Payload struct {
	Text         string `json:"text,omitempty"`
	Image        string `json:"image,omitempty"`
	Document     string `json:"document,omitempty"`
	DocumentName string `json:"documentName,omitempty"`
}

func (p Payload) Validate() error {
	if p.Text == "" && p.Image == "" && p.Document == "" {
		return errors.ErrEmptyPayload
	}
	return nil
}

// DirectMessage is a one-to-one message. Immutable except for the Read flag.
type DirectMessage struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Payload
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReadReceipt marks that one recipient has seen a group message.
type ReadReceipt struct {
	UserID string    `json:"userId"`
	ReadAt time.Time `json:"readAt"`
}

// GroupMessage is a message broadcast to a group room. Immutable except for
// read-receipt additions.
type GroupMessage struct {
	ID       string `json:"id"`
	GroupID  string `json:"groupId"`
	SenderID string `json:"senderId"`
	Payload
	ReadBy    []ReadReceipt `json:"readBy"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ReadByUser reports whether userID already has a read receipt.
func (m GroupMessage) ReadByUser(userID string) bool {
	for _, r := range m.ReadBy {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// MarkReadBy appends a read receipt for userID if absent.
// Returns false when the receipt already existed.
func (m *GroupMessage) MarkReadBy(userID string, at time.Time) bool {
	if m.ReadByUser(userID) {
		return false
	}
	m.ReadBy = append(m.ReadBy, ReadReceipt{UserID: userID, ReadAt: at})
	return true
}
