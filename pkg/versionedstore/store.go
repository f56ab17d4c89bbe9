package versionedstore

import (
	"encoding/json"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/keyvault/pkg/kvstore"
)

// Store wraps a raw key/value store and keeps the record stored at a single
// key in the shape expected by the latest known schema version.
type Store struct {
	lock sync.Mutex

	store         kvstore.Store
	key           string
	latestVersion int
}

// New returns a versioned store for the given key. The latest version is
// the number of migrations plus one. Any stored record older than that is
// migrated before New returns.
func New(
	store kvstore.Store, key string, migrations []Migration,
) (*Store, error) {
	if store == nil {
		return nil, ErrNullStore
	}
	if len(key) <= 0 {
		return nil, ErrNullKey
	}
	for i, m := range migrations {
		if m.Migrate == nil {
			return nil, fmt.Errorf("migration #%d: %w", i+1, ErrNullMigration)
		}
	}

	s := &Store{
		store:         store,
		key:           key,
		latestVersion: len(migrations) + 1,
	}
	if err := s.syncVersions(migrations); err != nil {
		return nil, err
	}
	return s, nil
}

// Key returns the storage key of the record.
func (s *Store) Key() string {
	return s.key
}

// LatestVersion returns the version written by Set.
func (s *Store) LatestVersion() int {
	return s.latestVersion
}

// Get decodes the stored data into v and returns whether a record exists.
func (s *Store) Get(v interface{}) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	r, err := s.read()
	if err != nil || r == nil {
		return false, err
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return false, fmt.Errorf("decoding %s data: %w", s.key, err)
	}
	return true, nil
}

// Set replaces the stored record with v at the latest version.
func (s *Store) Set(v interface{}) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.write(s.latestVersion, v)
}

// Remove deletes the record.
func (s *Store) Remove() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.store.Remove(s.key)
}

// Version returns the version of the stored record, if any.
func (s *Store) Version() (int, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	r, err := s.read()
	if err != nil || r == nil {
		return 0, false, err
	}
	return r.Version, true, nil
}

// Update reads the stored data into v, calls updateFn and persists v if
// updateFn succeeds, holding the store lock for the whole cycle.
func (s *Store) Update(v interface{}, updateFn func(found bool) error) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	r, err := s.read()
	if err != nil {
		return err
	}
	found := r != nil
	if found {
		if err := json.Unmarshal(r.Data, v); err != nil {
			return fmt.Errorf("decoding %s data: %w", s.key, err)
		}
	}

	if err := updateFn(found); err != nil {
		return err
	}
	return s.write(s.latestVersion, v)
}

func (s *Store) read() (*record, error) {
	buf, err := s.store.Get(s.key)
	if err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, nil
	}
	r, err := decodeRecord(buf)
	if err != nil {
		return nil, fmt.Errorf("decoding %s record: %w", s.key, err)
	}
	return r, nil
}

func (s *Store) write(version int, v interface{}) error {
	buf, err := encodeRecord(version, v)
	if err != nil {
		return fmt.Errorf("encoding %s record: %w", s.key, err)
	}
	return s.store.Set(s.key, buf)
}

// syncVersions ensures the stored record is consistent with the latest known
// version, applying any migration that has not been made yet. If the
// latest known version is lower than the record's one, it fails to prevent
// accidental reversions.
func (s *Store) syncVersions(migrations []Migration) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	r, err := s.read()
	if err != nil {
		return err
	}
	// Nothing stored yet, the first Set writes the latest version.
	if r == nil {
		return nil
	}

	curVersion := r.Version
	switch {
	case curVersion < 1:
		return fmt.Errorf("%s: %w", s.key, ErrInvalidVersion)

	case curVersion > s.latestVersion:
		log.Errorf(
			"refusing to revert %s from version %d to lower version %d",
			s.key, curVersion, s.latestVersion,
		)
		return fmt.Errorf("%s: %w", s.key, ErrDowngradeNotSupported)

	case curVersion == s.latestVersion:
		return nil
	}

	log.Infof(
		"migrating %s: latest_version=%d, stored_version=%d",
		s.key, s.latestVersion, curVersion,
	)

	data, err := decodeGeneric(r.Data)
	if err != nil {
		return fmt.Errorf("decoding %s data: %w", s.key, err)
	}

	// Migrations are applied in memory, the record is written only once the
	// whole chain succeeded.
	for i, m := range getMigrations(migrations, curVersion) {
		version := curVersion + i + 1
		log.Debugf("applying %s migration #%d: %s", s.key, version, m.Description)

		data, err = m.Migrate(data)
		if err != nil {
			log.Errorf("unable to apply %s migration #%d: %v", s.key, version, err)
			return fmt.Errorf("%s migration #%d (%s): %w", s.key, version, m.Description, err)
		}
		if isDiscarded(data) {
			log.Infof(
				"%s migration #%d discarded the record, removing it", s.key, version,
			)
			return s.store.Remove(s.key)
		}
	}

	return s.write(s.latestVersion, data)
}
