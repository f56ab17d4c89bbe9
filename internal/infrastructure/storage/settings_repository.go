package storage

import (
	"context"

	"github.com/tdex-network/keyvault/internal/core/domain"
	"github.com/tdex-network/keyvault/pkg/networkstore"
)

type settingsRepository struct {
	store *networkstore.Store
}

func newSettingsRepository(store *networkstore.Store) domain.SettingsRepository {
	return &settingsRepository{store}
}

func (r *settingsRepository) SetSettings(
	_ context.Context, networkID string, settings domain.NetworkSettings,
) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return r.store.Set(networkID, settings)
}

func (r *settingsRepository) GetSettings(
	_ context.Context, networkID string,
) (*domain.NetworkSettings, error) {
	var settings domain.NetworkSettings
	found, err := r.store.Get(networkID, &settings)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrSettingsNotFound
	}
	return &settings, nil
}

func (r *settingsRepository) GetLatestSettings(
	_ context.Context,
) (string, *domain.NetworkSettings, error) {
	var settings domain.NetworkSettings
	networkID, found, err := r.store.GetLatest(&settings)
	if err != nil {
		return "", nil, err
	}
	if !found {
		return "", nil, domain.ErrSettingsNotFound
	}
	return networkID, &settings, nil
}

func (r *settingsRepository) DeleteSettings(
	_ context.Context, networkID string,
) error {
	return r.store.Remove(networkID)
}

func (r *settingsRepository) GetNetworks(_ context.Context) ([]string, error) {
	return r.store.NetworkIDs()
}
