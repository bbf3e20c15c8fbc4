//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"wavechat/domain"
	"wavechat/errors"
)

type IUserRepository interface {
	Create(fullName, email, passwordHash string) (domain.User, error)
	GetByEmail(email string) (domain.User, string, error)
	GetByID(id string) (domain.User, error)
	UpdateProfilePic(id, url string) (domain.User, error)
	UpdatePassword(email, passwordHash string) error
	ListOthers(userID string) ([]domain.User, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

// userRecord is the stored shape. The hash stays inside the repository;
// callers only ever see domain.User.
type userRecord struct {
	domain.User
	PasswordHash string `json:"passwordHash"`
}

// Keys are written twice, by email and by id, so both lookups are a single
// point read. Both writes happen in one transaction.
func emailKey(email string) []byte { return []byte("user:email:" + email) }
func idKey(id string) []byte       { return []byte("user:id:" + id) }

func (r *UserRepository) Create(fullName, email, passwordHash string) (domain.User, error) {
	record := userRecord{
		User: domain.User{
			ID:        uuid.NewString(),
			FullName:  fullName,
			Email:     email,
			CreatedAt: time.Now().UTC(),
		},
		PasswordHash: passwordHash,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return domain.User{}, fmt.Errorf("marshal failed: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(emailKey(email)); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if err := txn.Set(emailKey(email), data); err != nil {
			return err
		}
		return txn.Set(idKey(record.ID), data)
	})
	if err != nil {
		return domain.User{}, err
	}
	return record.User, nil
}

func (r *UserRepository) GetByEmail(email string) (domain.User, string, error) {
	record, err := r.get(emailKey(email))
	if err != nil {
		return domain.User{}, "", err
	}
	return record.User, record.PasswordHash, nil
}

func (r *UserRepository) GetByID(id string) (domain.User, error) {
	record, err := r.get(idKey(id))
	if err != nil {
		return domain.User{}, err
	}
	return record.User, nil
}

func (r *UserRepository) UpdateProfilePic(id, url string) (domain.User, error) {
	var record userRecord
	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(idKey(id))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrUserNotFound
		}
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		}); err != nil {
			return err
		}
		record.ProfilePic = url
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if err := txn.Set(idKey(id), data); err != nil {
			return err
		}
		return txn.Set(emailKey(record.Email), data)
	})
	if err != nil {
		return domain.User{}, err
	}
	return record.User, nil
}

// UpdatePassword swaps the stored hash, keyed by email since the reset
// flow runs unauthenticated. Both stored copies update in one transaction.
func (r *UserRepository) UpdatePassword(email, passwordHash string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(emailKey(email))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrUserNotFound
		}
		if err != nil {
			return err
		}
		var record userRecord
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		}); err != nil {
			return err
		}
		record.PasswordHash = passwordHash
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if err := txn.Set(emailKey(email), data); err != nil {
			return err
		}
		return txn.Set(idKey(record.ID), data)
	})
}

// ListOthers returns every user except userID, for the conversation sidebar.
func (r *UserRepository) ListOthers(userID string) ([]domain.User, error) {
	var users []domain.User
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte("user:id:")
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record userRecord
				if err := json.Unmarshal(val, &record); err != nil {
					return err
				}
				if record.ID != userID {
					users = append(users, record.User)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return users, err
}

func (r *UserRepository) get(key []byte) (userRecord, error) {
	var record userRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrUserNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	return record, err
}
