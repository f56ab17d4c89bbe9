package storage

import (
	"fmt"

	"github.com/lightningnetwork/lnd/clock"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/keyvault/internal/core/domain"
	"github.com/tdex-network/keyvault/internal/core/ports"
	"github.com/tdex-network/keyvault/pkg/kvstore"
	"github.com/tdex-network/keyvault/pkg/networkstore"
	"github.com/tdex-network/keyvault/pkg/versionedstore"
)

type repoManager struct {
	store        kvstore.Store
	profileRepo  domain.ProfileRepository
	accountRepo  domain.AccountRepository
	settingsRepo domain.SettingsRepository
}

// NewRepoManager migrates the records of the given store to the latest
// schema and returns the repositories built on top of it.
func NewRepoManager(
	store kvstore.Store, clk clock.Clock,
) (ports.RepoManager, error) {
	if clk == nil {
		clk = clock.NewDefaultClock()
	}

	profileStore, err := versionedstore.New(
		store, domain.ProfilesKey, domain.ProfileMigrations,
	)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", domain.ProfilesKey, err)
	}

	accountStore, err := versionedstore.New(
		store, domain.AccountsKey, domain.AccountMigrations,
	)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", domain.AccountsKey, err)
	}

	settingsBackend, err := versionedstore.New(store, domain.SettingsKey, nil)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", domain.SettingsKey, err)
	}
	settingsStore, err := networkstore.New(
		settingsBackend, networkstore.WithClock(clk),
	)
	if err != nil {
		return nil, err
	}

	return &repoManager{
		store:        store,
		profileRepo:  newProfileRepository(profileStore),
		accountRepo:  newAccountRepository(accountStore),
		settingsRepo: newSettingsRepository(settingsStore),
	}, nil
}

func (m *repoManager) ProfileRepository() domain.ProfileRepository {
	return m.profileRepo
}

func (m *repoManager) AccountRepository() domain.AccountRepository {
	return m.accountRepo
}

func (m *repoManager) SettingsRepository() domain.SettingsRepository {
	return m.settingsRepo
}

func (m *repoManager) Close() {
	if err := m.store.Close(); err != nil {
		log.WithError(err).Warn("failed to close store")
	}
}
