package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wavechat/errors"
)

func TestPayload_Validate(t *testing.T) {
	t.Run("should reject a payload with no content at all", func(t *testing.T) {
		req := require.New(t)
		err := Payload{}.Validate()
		req.ErrorIs(err, errors.ErrEmptyPayload)
	})

	t.Run("should accept text only", func(t *testing.T) {
		require.NoError(t, Payload{Text: "hello"}.Validate())
	})

	t.Run("should accept an attachment without text", func(t *testing.T) {
		req := require.New(t)
		req.NoError(Payload{Image: "/uploads/a.png"}.Validate())
		req.NoError(Payload{Document: "/uploads/a.pdf", DocumentName: "a.pdf"}.Validate())
	})
}

func TestGroupMessage_MarkReadBy(t *testing.T) {
	req := require.New(t)
	at := time.Now().UTC()
	msg := GroupMessage{ID: "m1", GroupID: "g1", SenderID: "alice"}

	// First receipt is recorded
	req.True(msg.MarkReadBy("bob", at))
	req.True(msg.ReadByUser("bob"))
	req.Len(msg.ReadBy, 1)

	// A second mark by the same user is a no-op
	req.False(msg.MarkReadBy("bob", at.Add(time.Minute)))
	req.Len(msg.ReadBy, 1)
	req.Equal(at, msg.ReadBy[0].ReadAt)

	// Other users accumulate their own receipts
	req.True(msg.MarkReadBy("clara", at))
	req.Len(msg.ReadBy, 2)
	req.False(msg.ReadByUser("dave"))
}
