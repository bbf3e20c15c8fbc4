//go:generate go run go.uber.org/mock/mockgen -source=group_message.go -destination=../mocks/mock_group_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"wavechat/domain"
)

type IGroupMessageRepository interface {
	Store(msg domain.GroupMessage) error
	ListByGroup(groupID string) ([]domain.GroupMessage, error)
	AddReadReceipts(groupID, userID string, at time.Time) ([]string, error)
	UnreadCount(groupID, userID string) (int, error)
	LatestAt(groupID string) (*time.Time, error)
	DeleteByGroup(groupID string) (int, error)
}

type GroupMessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewGroupMessageRepository(db *badger.DB, log *slog.Logger) IGroupMessageRepository {
	return &GroupMessageRepository{db: db, log: log}
}

// Same padded-timestamp scheme as direct messages, scoped by group.
func gmKey(msg domain.GroupMessage) []byte {
	return []byte(fmt.Sprintf("gm:%s:%019d:%s", msg.GroupID, msg.CreatedAt.UnixNano(), msg.ID))
}

func gmPrefix(groupID string) []byte {
	return []byte("gm:" + groupID + ":")
}

func (r *GroupMessageRepository) Store(msg domain.GroupMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gmKey(msg), data)
	})
}

func (r *GroupMessageRepository) ListByGroup(groupID string) ([]domain.GroupMessage, error) {
	var messages []domain.GroupMessage
	err := r.db.View(func(txn *badger.Txn) error {
		return r.scan(txn, gmPrefix(groupID), func(msg domain.GroupMessage) {
			messages = append(messages, msg)
		})
	})
	return messages, err
}

// AddReadReceipts appends a receipt for userID to every message it has not
// read yet, skipping the user's own messages. The push-if-absent check and
// the writes share one transaction, so a receipt is never duplicated.
func (r *GroupMessageRepository) AddReadReceipts(groupID, userID string, at time.Time) ([]string, error) {
	var marked []string
	err := r.db.Update(func(txn *badger.Txn) error {
		prefix := gmPrefix(groupID)
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
				var msg domain.GroupMessage
				if err := json.Unmarshal(val, &msg); err != nil {
					return err
				}
				if msg.SenderID == userID || !msg.MarkReadBy(userID, at) {
					return nil
				}
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

// UnreadCount counts messages authored by someone else without a read
// receipt from userID.
func (r *GroupMessageRepository) UnreadCount(groupID, userID string) (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		return r.scan(txn, gmPrefix(groupID), func(msg domain.GroupMessage) {
			if msg.SenderID != userID && !msg.ReadByUser(userID) {
				count++
			}
		})
	})
	return count, err
}

func (r *GroupMessageRepository) LatestAt(groupID string) (*time.Time, error) {
	var latest *time.Time
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := gmPrefix(groupID)
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
			var msg domain.GroupMessage
			if err := json.Unmarshal(val, &msg); err != nil {
				return err
			}
			latest = &msg.CreatedAt
			return nil
		})
	})
	return latest, err
}

// DeleteByGroup removes every message of a group, the cascade for group
// deletion. Returns the number of deleted messages.
func (r *GroupMessageRepository) DeleteByGroup(groupID string) (int, error) {
	deleted := 0
	err := r.db.Update(func(txn *badger.Txn) error {
		prefix := gmPrefix(groupID)
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *GroupMessageRepository) scan(txn *badger.Txn, prefix []byte, fn func(domain.GroupMessage)) error {
	options := badger.DefaultIteratorOptions
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		err := it.Item().Value(func(val []byte) error {
			var msg domain.GroupMessage
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
