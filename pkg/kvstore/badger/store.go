package badgerstore

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/keyvault/pkg/kvstore"
	"github.com/timshannon/badgerhold/v4"
)

const (
	gcInterval     = 30 * time.Minute
	gcDiscardRatio = 0.5
)

// entry is the record persisted for every key of the store.
type entry struct {
	Key   string
	Value []byte
}

type badgerStore struct {
	lock  sync.RWMutex
	store *badgerhold.Store
	quit  chan struct{}
}

// NewStore opens (or creates if not exists) the badger store in the given
// directory. An empty baseDbDir opens an in-memory store.
func NewStore(
	baseDbDir string, logger badger.Logger,
) (kvstore.Store, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, "keyvault")
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, err
	}

	s := &badgerStore{store: store, quit: make(chan struct{})}
	if len(dbDir) > 0 {
		go s.runValueLogGC()
	}
	return s, nil
}

func (s *badgerStore) Get(key string) ([]byte, error) {
	if err := kvstore.ValidateKey(key); err != nil {
		return nil, err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.store == nil {
		return nil, kvstore.ErrStoreClosed
	}

	var e entry
	if err := s.store.Get(key, &e); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return e.Value, nil
}

func (s *badgerStore) Set(key string, value []byte) error {
	if err := kvstore.ValidateEntry(key, value); err != nil {
		return err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.store == nil {
		return kvstore.ErrStoreClosed
	}

	return s.store.Upsert(key, &entry{Key: key, Value: value})
}

func (s *badgerStore) Remove(key string) error {
	if err := kvstore.ValidateKey(key); err != nil {
		return err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.store == nil {
		return kvstore.ErrStoreClosed
	}

	if err := s.store.Delete(key, entry{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (s *badgerStore) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.store == nil {
		return nil
	}
	close(s.quit)
	err := s.store.Close()
	s.store = nil
	return err
}

func (s *badgerStore) runValueLogGC() {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			s.lock.RLock()
			if s.store != nil {
				if err := s.store.Badger().RunValueLogGC(gcDiscardRatio); err != nil &&
					!errors.Is(err, badger.ErrNoRewrite) {
					log.Error(err)
				}
			}
			s.lock.RUnlock()
		}
	}
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
