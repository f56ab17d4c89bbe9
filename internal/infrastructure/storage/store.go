package storage

import (
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/keyvault/pkg/kvstore"
	badgerstore "github.com/tdex-network/keyvault/pkg/kvstore/badger"
	boltstore "github.com/tdex-network/keyvault/pkg/kvstore/bolt"
	inmemorystore "github.com/tdex-network/keyvault/pkg/kvstore/inmemory"
	sqlitestore "github.com/tdex-network/keyvault/pkg/kvstore/sqlite"
)

const (
	DBTypeBadger   = "badger"
	DBTypeBolt     = "bolt"
	DBTypeSqlite   = "sqlite"
	DBTypeInMemory = "inmemory"

	dbDirName      = "db"
	boltFilename   = "keyvault.db"
	sqliteFilename = "keyvault.sqlite"
)

// SupportedDBTypes ...
var SupportedDBTypes = map[string]struct{}{
	DBTypeBadger:   {},
	DBTypeBolt:     {},
	DBTypeSqlite:   {},
	DBTypeInMemory: {},
}

// OpenStore opens the raw store of the given type inside datadir.
func OpenStore(dbType, datadir string) (kvstore.Store, error) {
	dbDir := filepath.Join(datadir, dbDirName)

	switch dbType {
	case DBTypeInMemory:
		return inmemorystore.NewStore(), nil
	case DBTypeBadger:
		return badgerstore.NewStore(dbDir, log.StandardLogger())
	case DBTypeBolt:
		return boltstore.NewStore(dbDir, boltFilename)
	case DBTypeSqlite:
		return sqlitestore.NewStore(filepath.Join(dbDir, sqliteFilename))
	default:
		return nil, fmt.Errorf("unknown db type %q", dbType)
	}
}
