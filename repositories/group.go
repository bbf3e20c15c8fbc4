//go:generate go run go.uber.org/mock/mockgen -source=group.go -destination=../mocks/mock_group_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"wavechat/domain"
	"wavechat/errors"
)

type IGroupRepository interface {
	Create(group domain.Group) error
	Get(id string) (domain.Group, error)
	Mutate(id string, mutate func(*domain.Group) error) (domain.Group, error)
	Delete(id string) error
	ListByMember(userID string) ([]domain.Group, error)
}

type GroupRepository struct {
	db *badger.DB
}

func NewGroupRepository(db *badger.DB) IGroupRepository {
	return &GroupRepository{db: db}
}

func groupKey(id string) []byte { return []byte("group:" + id) }

func (r *GroupRepository) Create(group domain.Group) error {
	data, err := json.Marshal(group)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(groupKey(group.ID), data)
	})
}

// Mutate applies a read-modify-write within a single transaction, so two
// concurrent mutations on the same group can never overwrite each other.
// Badger detects the read-write conflict and the losing transaction is
// retried against the fresh snapshot. An error from the mutate callback
// aborts without writing.
func (r *GroupRepository) Mutate(id string, mutate func(*domain.Group) error) (domain.Group, error) {
	for {
		var group domain.Group
		err := r.db.Update(func(txn *badger.Txn) error {
			item, err := txn.Get(groupKey(id))
			if stderrors.Is(err, badger.ErrKeyNotFound) {
				return errors.ErrGroupNotFound
			}
			if err != nil {
				return err
			}
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &group)
			}); err != nil {
				return err
			}
			if err := mutate(&group); err != nil {
				return err
			}
			data, err := json.Marshal(group)
			if err != nil {
				return fmt.Errorf("marshal failed: %w", err)
			}
			return txn.Set(groupKey(id), data)
		})
		if stderrors.Is(err, badger.ErrConflict) {
			continue
		}
		if err != nil {
			return domain.Group{}, err
		}
		return group, nil
	}
}

func (r *GroupRepository) Get(id string) (domain.Group, error) {
	var group domain.Group
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(groupKey(id))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrGroupNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &group)
		})
	})
	return group, err
}

func (r *GroupRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(groupKey(id)); stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrGroupNotFound
		}
		return txn.Delete(groupKey(id))
	})
}

// ListByMember scans all groups and keeps those containing userID.
// Group counts stay small at this system's scale, so a full prefix scan
// beats maintaining a reverse index.
func (r *GroupRepository) ListByMember(userID string) ([]domain.Group, error) {
	var groups []domain.Group
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte("group:")
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var group domain.Group
				if err := json.Unmarshal(val, &group); err != nil {
					return err
				}
				if group.HasMember(userID) {
					groups = append(groups, group)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return groups, err
}
