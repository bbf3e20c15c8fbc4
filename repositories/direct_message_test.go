package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"wavechat/domain"
)

func directMessage(sender, receiver, text string, at time.Time) domain.DirectMessage {
	return domain.DirectMessage{
		ID:         uuid.NewString(),
		SenderID:   sender,
		ReceiverID: receiver,
		Payload:    domain.Payload{Text: text},
		CreatedAt:  at,
	}
}

func TestDirectMessageRepository_ConversationIsChronological(t *testing.T) {
	req := require.New(t)
	repository := NewDirectMessageRepository(openTestDB(t), slog.Default())

	at := time.Now().UTC()
	// Stored out of order on purpose; both directions belong to the same
	// conversation.
	req.NoError(repository.Store(directMessage("bob", "alice", "second", at.Add(time.Minute))))
	req.NoError(repository.Store(directMessage("alice", "bob", "first", at)))
	req.NoError(repository.Store(directMessage("alice", "bob", "third", at.Add(2*time.Minute))))

	messages, err := repository.Conversation("alice", "bob")
	req.NoError(err)
	req.Len(messages, 3)
	req.Equal("first", messages[0].Text)
	req.Equal("second", messages[1].Text)
	req.Equal("third", messages[2].Text)

	// The pair key is symmetric
	reversed, err := repository.Conversation("bob", "alice")
	req.NoError(err)
	req.Equal(messages, reversed)
}

func TestDirectMessageRepository_MarkReadIsDirectional(t *testing.T) {
	req := require.New(t)
	repository := NewDirectMessageRepository(openTestDB(t), slog.Default())

	at := time.Now().UTC()
	fromBob := directMessage("bob", "alice", "hi alice", at)
	fromAlice := directMessage("alice", "bob", "hi bob", at.Add(time.Second))
	req.NoError(repository.Store(fromBob))
	req.NoError(repository.Store(fromAlice))

	// Alice reads bob's messages; her own stay untouched
	marked, err := repository.MarkRead("bob", "alice")
	req.NoError(err)
	req.Equal([]string{fromBob.ID}, marked)

	messages, err := repository.Conversation("alice", "bob")
	req.NoError(err)
	for _, msg := range messages {
		if msg.SenderID == "bob" {
			req.True(msg.Read)
		} else {
			req.False(msg.Read)
		}
	}

	// A second pass finds nothing left to mark
	marked, err = repository.MarkRead("bob", "alice")
	req.NoError(err)
	req.Empty(marked)
}

func TestDirectMessageRepository_UnreadCount(t *testing.T) {
	req := require.New(t)
	repository := NewDirectMessageRepository(openTestDB(t), slog.Default())

	at := time.Now().UTC()
	req.NoError(repository.Store(directMessage("bob", "alice", "one", at)))
	req.NoError(repository.Store(directMessage("bob", "alice", "two", at.Add(time.Second))))
	req.NoError(repository.Store(directMessage("alice", "bob", "reply", at.Add(2*time.Second))))

	count, err := repository.UnreadCount("bob", "alice")
	req.NoError(err)
	req.Equal(2, count)

	_, err = repository.MarkRead("bob", "alice")
	req.NoError(err)

	count, err = repository.UnreadCount("bob", "alice")
	req.NoError(err)
	req.Zero(count)
}

func TestDirectMessageRepository_LatestAt(t *testing.T) {
	req := require.New(t)
	repository := NewDirectMessageRepository(openTestDB(t), slog.Default())

	// Empty conversation has no timestamp
	latest, err := repository.LatestAt("alice", "bob")
	req.NoError(err)
	req.Nil(latest)

	at := time.Now().UTC().Truncate(time.Microsecond)
	req.NoError(repository.Store(directMessage("alice", "bob", "old", at.Add(-time.Hour))))
	req.NoError(repository.Store(directMessage("bob", "alice", "new", at)))

	latest, err = repository.LatestAt("alice", "bob")
	req.NoError(err)
	req.NotNil(latest)
	req.True(latest.Equal(at))
}
