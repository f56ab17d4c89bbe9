package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
	"github.com/tdex-network/keyvault/internal/core/domain"
	"github.com/tdex-network/keyvault/internal/infrastructure/storage"
	"github.com/tdex-network/keyvault/pkg/wallet"
)

const (
	// DatadirKey is the local data directory to store the database
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey selects the raw store backend, one of badger, bolt, sqlite
	// or inmemory
	DBTypeKey = "DB_TYPE"
	// NetworkTypeKey is the network new profiles are created for
	NetworkTypeKey = "NETWORK_TYPE"
	// CoinTypeKey overrides the coin type level of the derivation paths
	// computed with the path commands. It defaults to the one of the network
	CoinTypeKey = "COIN_TYPE"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("keyvault", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("KEYVAULT")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, storage.DBTypeBadger)
	vip.SetDefault(NetworkTypeKey, string(domain.NetworkMainnet))

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func GetNetworkType() domain.NetworkType {
	return domain.NetworkType(strings.ToLower(GetString(NetworkTypeKey)))
}

// GetCoinType returns the configured coin type, or the one of the
// configured network if not set.
func GetCoinType() uint32 {
	if vip.IsSet(CoinTypeKey) {
		return vip.GetUint32(CoinTypeKey)
	}
	return GetNetworkType().CoinType()
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	dbType := GetString(DBTypeKey)
	if _, ok := storage.SupportedDBTypes[dbType]; !ok {
		return fmt.Errorf(
			"%s must be one of badger, bolt, sqlite or inmemory, got %q",
			DBTypeKey, dbType,
		)
	}

	if err := GetNetworkType().Validate(); err != nil {
		return err
	}

	if vip.IsSet(CoinTypeKey) {
		coinType := vip.GetInt64(CoinTypeKey)
		if coinType < 0 || coinType > int64(wallet.MaxHardenedValue) {
			return fmt.Errorf("%s must be in the hardened range", CoinTypeKey)
		}
	}

	return nil
}

func initDatadir() error {
	if GetString(DBTypeKey) == storage.DBTypeInMemory {
		return nil
	}
	datadir := GetDatadir()
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
