//go:generate go run go.uber.org/mock/mockgen -source=direct_message.go -destination=../mocks/mock_direct_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"wavechat/domain"
)

type IDirectMessageRepository interface {
	Store(msg domain.DirectMessage) error
	Conversation(a, b string) ([]domain.DirectMessage, error)
	MarkRead(senderID, receiverID string) ([]string, error)
	UnreadCount(senderID, receiverID string) (int, error)
	LatestAt(a, b string) (*time.Time, error)
}

type DirectMessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewDirectMessageRepository(db *badger.DB, log *slog.Logger) IDirectMessageRepository {
	return &DirectMessageRepository{db: db, log: log}
}

// Keys are "dm:{pairKey}:{timestamp_padded}:{id}". The 19-digit zero padding
// makes lexicographic order equal chronological order, and the message id
// disambiguates two messages persisted in the same nanosecond.
func dmKey(msg domain.DirectMessage) []byte {
	pair := domain.DirectConversationKey(msg.SenderID, msg.ReceiverID)
	return []byte(fmt.Sprintf("dm:%s:%019d:%s", pair, msg.CreatedAt.UnixNano(), msg.ID))
}

func dmPrefix(a, b string) []byte {
	return []byte("dm:" + domain.DirectConversationKey(a, b) + ":")
}

func (r *DirectMessageRepository) Store(msg domain.DirectMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(dmKey(msg), data)
	})
}

// Conversation returns both directions of the (a, b) exchange in
// chronological order.
func (r *DirectMessageRepository) Conversation(a, b string) ([]domain.DirectMessage, error) {
	var messages []domain.DirectMessage
	err := r.db.View(func(txn *badger.Txn) error {
		return r.scan(txn, dmPrefix(a, b), func(msg domain.DirectMessage) {
			messages = append(messages, msg)
		})
	})
	return messages, err
}

// MarkRead flags every unread message from senderID to receiverID within a
// single transaction and returns the ids it touched.
func (r *DirectMessageRepository) MarkRead(senderID, receiverID string) ([]string, error) {
	var marked []string
	err := r.db.Update(func(txn *badger.Txn) error {
		prefix := dmPrefix(senderID, receiverID)
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		type pending struct {
			key  []byte
			data []byte
		}
		var updates []pending
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			err := item.Value(func(val []byte) error {
				var msg domain.DirectMessage
				if err := json.Unmarshal(val, &msg); err != nil {
					return err
				}
				if msg.SenderID != senderID || msg.Read {
					return nil
				}
				msg.Read = true
				data, err := json.Marshal(msg)
				if err != nil {
					return err
				}
				updates = append(updates, pending{key: key, data: data})
				marked = append(marked, msg.ID)
				return nil
			})
			if err != nil {
				return err
			}
		}
		// Writes happen after the iterator is drained; badger forbids
		// mutating keys under an open iterator.
		it.Close()
		for _, u := range updates {
			if err := txn.Set(u.key, u.data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return marked, nil
}

// UnreadCount counts messages authored by senderID that receiverID has not
// read yet.
func (r *DirectMessageRepository) UnreadCount(senderID, receiverID string) (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		return r.scan(txn, dmPrefix(senderID, receiverID), func(msg domain.DirectMessage) {
			if msg.SenderID == senderID && !msg.Read {
				count++
			}
		})
	})
	return count, err
}

// LatestAt returns the timestamp of the most recent message between a and b,
// or nil when the conversation is empty. A reverse seek on the padded key
// finds it without scanning the whole conversation.
func (r *DirectMessageRepository) LatestAt(a, b string) (*time.Time, error) {
	var latest *time.Time
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := dmPrefix(a, b)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		it.Seek(seekKey)
		if !it.ValidForPrefix(prefix) {
			return nil
		}
		return it.Item().Value(func(val []byte) error {
			var msg domain.DirectMessage
			if err := json.Unmarshal(val, &msg); err != nil {
				return err
			}
			latest = &msg.CreatedAt
			return nil
		})
	})
	return latest, err
}

func (r *DirectMessageRepository) scan(txn *badger.Txn, prefix []byte, fn func(domain.DirectMessage)) error {
	options := badger.DefaultIteratorOptions
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		err := it.Item().Value(func(val []byte) error {
			var msg domain.DirectMessage
			if err := json.Unmarshal(val, &msg); err != nil {
				return err
			}
			fn(msg)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
