package networkstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/lightningnetwork/lnd/clock"
)

var (
	// ErrMissingNetworkID is returned when writing a value without specifying
	// the network it belongs to.
	ErrMissingNetworkID = errors.New("network id must not be null")
	// ErrNullBackend ...
	ErrNullBackend = errors.New("backend store must not be null")
)

// Backend is the store holding the whole network map as a single value.
// It is satisfied by *versionedstore.Store.
type Backend interface {
	Get(v interface{}) (bool, error)
	Set(v interface{}) error
}

// Entry is the value stored for a single network.
type Entry struct {
	NetworkID string          `json:"networkId"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Map indexes the entries by network id.
type Map map[string]Entry

// Option customizes a Store.
type Option func(*Store)

// WithClock sets the source of the entries' timestamps.
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// Store keeps an independent value for every network, and tracks which one
// has been written most recently.
type Store struct {
	lock    sync.Mutex
	backend Backend
	clock   clock.Clock
}

// New returns a network scoped store persisting its map through backend.
func New(backend Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, ErrNullBackend
	}

	s := &Store{
		backend: backend,
		clock:   clock.NewDefaultClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get decodes the value of the given network into v and returns whether it
// exists.
func (s *Store) Get(networkID string, v interface{}) (bool, error) {
	if len(networkID) <= 0 {
		return false, nil
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	m, err := s.readMap()
	if err != nil {
		return false, err
	}
	entry, ok := m[networkID]
	if !ok {
		return false, nil
	}
	return true, decodeEntry(entry, v)
}

// GetLatest decodes into v the value of the most recently written network
// and returns its id. It returns false if no network has a value.
func (s *Store) GetLatest(v interface{}) (string, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	m, err := s.readMap()
	if err != nil {
		return "", false, err
	}

	latest, ok := latestEntry(m)
	if !ok {
		return "", false, nil
	}
	return latest.NetworkID, true, decodeEntry(latest, v)
}

// Set stores v as the value of the given network. The whole map is
// rewritten.
func (s *Store) Set(networkID string, v interface{}) error {
	if len(networkID) <= 0 {
		return ErrMissingNetworkID
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s value: %w", networkID, err)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	m, err := s.readMap()
	if err != nil {
		return err
	}

	timestamp := s.clock.Now().UnixMilli()
	// Keep the write order observable even when the clock is too coarse or
	// moved backwards.
	if latest, ok := latestEntry(m); ok && timestamp <= latest.Timestamp {
		timestamp = latest.Timestamp + 1
	}

	m[networkID] = Entry{
		NetworkID: networkID,
		Timestamp: timestamp,
		Data:      data,
	}
	return s.backend.Set(m)
}

// Remove deletes the value of the given network. Removing a missing network
// is not an error.
func (s *Store) Remove(networkID string) error {
	if len(networkID) <= 0 {
		return nil
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	m, err := s.readMap()
	if err != nil {
		return err
	}
	if _, ok := m[networkID]; !ok {
		return nil
	}

	delete(m, networkID)
	return s.backend.Set(m)
}

// NetworkIDs returns the sorted ids of all networks with a value.
func (s *Store) NetworkIDs() ([]string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	m, err := s.readMap()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) readMap() (Map, error) {
	m := Map{}
	found, err := s.backend.Get(&m)
	if err != nil {
		return nil, err
	}
	if !found || m == nil {
		return Map{}, nil
	}
	return m, nil
}

func latestEntry(m Map) (Entry, bool) {
	var (
		latest Entry
		found  bool
	)
	for _, entry := range m {
		if !found || entry.Timestamp > latest.Timestamp {
			latest = entry
			found = true
		}
	}
	return latest, found
}

func decodeEntry(entry Entry, v interface{}) error {
	if err := json.Unmarshal(entry.Data, v); err != nil {
		return fmt.Errorf("decoding %s value: %w", entry.NetworkID, err)
	}
	return nil
}
