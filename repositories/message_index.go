//go:generate go run go.uber.org/mock/mockgen -source=message_index.go -destination=../mocks/mock_message_index.go -package=mocks
package repositories

import (
	"context"
	"log/slog"

	"github.com/blugelabs/bluge"
)

type IMessageIndex interface {
	Index(id, conversationID, senderID, text string) error
	Search(ctx context.Context, terms string, conversationIDs []string, limit int) ([]Hit, error)
	DeleteConversation(ctx context.Context, conversationID string) error
}

// Hit is one full-text search result. The caller resolves the id against
// the message stores.
type Hit struct {
	MessageID      string `json:"messageId"`
	ConversationID string `json:"conversationId"`
}

// MessageIndex maintains a Bluge full-text index over message text.
// Indexing is best-effort: the durable store is the source of truth and a
// failed index write never aborts a send.
type MessageIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewMessageIndex(writer *bluge.Writer, log *slog.Logger) IMessageIndex {
	return &MessageIndex{writer: writer, log: log}
}

func (ix *MessageIndex) Index(id, conversationID, senderID, text string) error {
	if text == "" {
		return nil
	}
	doc := bluge.NewDocument(id).
		AddField(bluge.NewTextField("text", text)).
		AddField(bluge.NewKeywordField("conversation", conversationID).StoreValue()).
		AddField(bluge.NewKeywordField("sender", senderID))
	return ix.writer.Update(doc.ID(), doc)
}

// Search matches terms against message text, restricted to the given
// conversation ids so a user can only ever see messages from conversations
// they belong to.
func (ix *MessageIndex) Search(ctx context.Context, terms string, conversationIDs []string, limit int) ([]Hit, error) {
	if len(conversationIDs) == 0 {
		return nil, nil
	}

	scope := bluge.NewBooleanQuery().SetMinShould(1)
	for _, id := range conversationIDs {
		scope.AddShould(bluge.NewTermQuery(id).SetField("conversation"))
	}
	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(terms).SetField("text")).
		AddMust(scope)

	reader, err := ix.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	it, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, err
	}

	var hits []Hit
	for {
		match, err := it.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			break
		}
		var hit Hit
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.MessageID = string(value)
			case "conversation":
				hit.ConversationID = string(value)
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// DeleteConversation drops all indexed documents of one conversation, the
// index side of a group deletion cascade. Best-effort like Index.
func (ix *MessageIndex) DeleteConversation(ctx context.Context, conversationID string) error {
	reader, err := ix.writer.Reader()
	if err != nil {
		return err
	}
	defer reader.Close()

	query := bluge.NewTermQuery(conversationID).SetField("conversation")
	it, err := reader.Search(ctx, bluge.NewTopNSearch(10000, query))
	if err != nil {
		return err
	}

	var ids []string
	for {
		match, err := it.Next()
		if err != nil {
			return err
		}
		if match == nil {
			break
		}
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				ids = append(ids, string(value))
			}
			return true
		})
		if err != nil {
			return err
		}
	}
	for _, id := range ids {
		if err := ix.writer.Delete(bluge.Identifier(id)); err != nil {
			ix.log.Warn("index delete failed", "id", id, "error", err)
		}
	}
	return nil
}
