// Package store persists the session token and user profile between runs
// in a single bbolt file.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/campusmaster/campus/pkg/domain"
)

// Fixed storage keys.
const (
	TokenKey = "campusmaster_token"
	UserKey  = "campusmaster_user"
)

var bucket = []byte("campusmaster")

// lockTimeout bounds the wait for another process holding the file.
const lockTimeout = 2 * time.Second

// Store is a key/value store for the client session. A nil *Store, or one
// opened with an empty path, has no backend: reads return zero values and
// writes do nothing.
type Store struct {
	db     *bbolt.DB
	logger *log.Logger
}

// Open opens (or creates) the store file at path. An empty path yields a
// Store with no backend.
func Open(path string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if path == "" {
		return &Store{logger: logger}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: lockTimeout})
	if err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("store.Open: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// GetToken returns the persisted token, or "" when absent.
func (s *Store) GetToken() string {
	return string(s.get(TokenKey))
}

// SetToken persists the token.
func (s *Store) SetToken(token string) {
	s.put(TokenKey, []byte(token))
}

// RemoveToken deletes the persisted token.
func (s *Store) RemoveToken() {
	s.remove(TokenKey)
}

// GetUser returns the persisted user, or nil when absent. A value that no
// longer decodes is treated as absent.
func (s *Store) GetUser() *domain.User {
	data := s.get(UserKey)
	if len(data) == 0 {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		s.logger.Printf("store: discarding unreadable %s: %v", UserKey, err)
		return nil
	}
	return &u
}

// SetUser persists the user as JSON. A nil user removes it.
func (s *Store) SetUser(u *domain.User) {
	if u == nil {
		s.RemoveUser()
		return
	}
	data, err := json.Marshal(u)
	if err != nil {
		s.logger.Printf("store: encode %s: %v", UserKey, err)
		return
	}
	s.put(UserKey, data)
}

// RemoveUser deletes the persisted user.
func (s *Store) RemoveUser() {
	s.remove(UserKey)
}

// ClearAll removes both the token and the user.
func (s *Store) ClearAll() {
	if s == nil || s.db == nil {
		return
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if err := b.Delete([]byte(TokenKey)); err != nil {
			return err
		}
		return b.Delete([]byte(UserKey))
	})
	if err != nil {
		s.logger.Printf("store: clear: %v", err)
	}
}

func (s *Store) get(key string) []byte {
	if s == nil || s.db == nil {
		return nil
	}
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			// v is only valid inside the transaction.
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		s.logger.Printf("store: read %s: %v", key, err)
		return nil
	}
	return out
}

func (s *Store) put(key string, value []byte) {
	if s == nil || s.db == nil {
		return
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), value)
	})
	if err != nil {
		s.logger.Printf("store: write %s: %v", key, err)
	}
}

func (s *Store) remove(key string) {
	if s == nil || s.db == nil {
		return
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
	if err != nil {
		s.logger.Printf("store: delete %s: %v", key, err)
	}
}
