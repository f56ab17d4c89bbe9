package boltstore

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tdex-network/keyvault/pkg/kvstore"
	bolt "go.etcd.io/bbolt"
)

const (
	// DefaultDBTimeout is the time to wait for the file lock of the DB.
	DefaultDBTimeout = 5 * time.Second
)

var (
	// RootBucketName is the name of the bucket holding all entries.
	RootBucketName = []byte("root")
)

type boltStore struct {
	lock sync.RWMutex
	db   *bolt.DB
}

// NewStore creates a bolt instance of the kvstore.Store interface.
func NewStore(datadir, filename string) (kvstore.Store, error) {
	if _, err := os.Stat(datadir); os.IsNotExist(err) {
		if err := os.MkdirAll(datadir, os.ModeDir|0755); err != nil {
			return nil, err
		}
	}

	db, err := bolt.Open(
		filepath.Join(datadir, filename), 0600,
		&bolt.Options{Timeout: DefaultDBTimeout},
	)
	if err != nil {
		return nil, err
	}

	// If the store's bucket doesn't exist, create it.
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(RootBucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &boltStore{db: db}, nil
}

func (s *boltStore) Get(key string) ([]byte, error) {
	if err := kvstore.ValidateKey(key); err != nil {
		return nil, err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.db == nil {
		return nil, kvstore.ErrStoreClosed
	}

	var value []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(RootBucketName)
		if bucket == nil {
			return ErrRootBucketNotFound
		}

		v := bucket.Get([]byte(key))
		if v == nil {
			return nil
		}
		// Values are only valid for the life of the transaction.
		value = make([]byte, len(v))
		copy(value, v)
		return nil
	}); err != nil {
		return nil, err
	}

	return value, nil
}

func (s *boltStore) Set(key string, value []byte) error {
	if err := kvstore.ValidateEntry(key, value); err != nil {
		return err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.db == nil {
		return kvstore.ErrStoreClosed
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(RootBucketName)
		if bucket == nil {
			return ErrRootBucketNotFound
		}
		return bucket.Put([]byte(key), value)
	})
}

func (s *boltStore) Remove(key string) error {
	if err := kvstore.ValidateKey(key); err != nil {
		return err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.db == nil {
		return kvstore.ErrStoreClosed
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(RootBucketName)
		if bucket == nil {
			return ErrRootBucketNotFound
		}
		return bucket.Delete([]byte(key))
	})
}

// Close closes the underlying database.
func (s *boltStore) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
