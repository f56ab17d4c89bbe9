package inmemorystore

import (
	"sync"

	"github.com/tdex-network/keyvault/pkg/kvstore"
)

// Store is a kvstore.Store keeping its entries in memory. It is meant for
// tests and ephemeral sessions, nothing survives the process.
type Store struct {
	lock    sync.RWMutex
	entries map[string][]byte
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{entries: map[string][]byte{}}
}

func (s *Store) Get(key string) ([]byte, error) {
	if err := kvstore.ValidateKey(key); err != nil {
		return nil, err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return copyBytes(value), nil
}

func (s *Store) Set(key string, value []byte) error {
	if err := kvstore.ValidateEntry(key, value); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.entries[key] = copyBytes(value)
	return nil
}

func (s *Store) Remove(key string) error {
	if err := kvstore.ValidateKey(key); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *Store) Close() error {
	return nil
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
