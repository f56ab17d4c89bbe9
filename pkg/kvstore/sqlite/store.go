package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/keyvault/pkg/kvstore"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL
);
`

type sqliteStore struct {
	lock sync.RWMutex
	db   *sql.DB
}

// NewStore opens (or creates if not exists) the sqlite database at the given
// path. Parent directories are created if needed. The special path
// ":memory:" opens a private in-memory database.
func NewStore(path string) (kvstore.Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps in-memory databases alive and serializes
	// writers.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling WAL mode: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	log.Debugf("sqlite store initialized at %s", path)
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Get(key string) ([]byte, error) {
	if err := kvstore.ValidateKey(key); err != nil {
		return nil, err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.db == nil {
		return nil, kvstore.ErrStoreClosed
	}

	var value []byte
	err := s.db.QueryRow(
		"SELECT value FROM entries WHERE key = ?", key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting entry %s: %w", key, err)
	}
	return value, nil
}

func (s *sqliteStore) Set(key string, value []byte) error {
	if err := kvstore.ValidateEntry(key, value); err != nil {
		return err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.db == nil {
		return kvstore.ErrStoreClosed
	}

	if _, err := s.db.Exec(`
		INSERT INTO entries (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value); err != nil {
		return fmt.Errorf("setting entry %s: %w", key, err)
	}
	return nil
}

func (s *sqliteStore) Remove(key string) error {
	if err := kvstore.ValidateKey(key); err != nil {
		return err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.db == nil {
		return kvstore.ErrStoreClosed
	}

	if _, err := s.db.Exec("DELETE FROM entries WHERE key = ?", key); err != nil {
		return fmt.Errorf("removing entry %s: %w", key, err)
	}
	return nil
}

func (s *sqliteStore) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
