package domain

import (
	"sort"
	"strings"
	"time"
)

// DirectConversationKey returns a stable key for the pair (a, b),
// independent of who sent first.
func DirectConversationKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + ":" + b
}

// Activity is the ordering key of a conversation list entry.
type Activity struct {
	LastMessageAt *time.Time // nil when the conversation has no messages yet
	CreatedAt     time.Time
}

// Before reports whether a sorts ahead of b in a conversation list.
// Conversations with messages are ordered by most recent message, descending.
// Conversations without messages sort before all conversations with messages,
// newest-created-first among themselves.
func (a Activity) Before(b Activity) bool {
	switch {
	case a.LastMessageAt == nil && b.LastMessageAt == nil:
		return a.CreatedAt.After(b.CreatedAt)
	case a.LastMessageAt == nil:
		return true
	case b.LastMessageAt == nil:
		return false
	default:
		return a.LastMessageAt.After(*b.LastMessageAt)
	}
}

// SortByActivity orders a conversation list in place using the Activity rules.
func SortByActivity[T any](items []T, key func(T) Activity) {
	sort.SliceStable(items, func(i, j int) bool {
		return key(items[i]).Before(key(items[j]))
	})
}
