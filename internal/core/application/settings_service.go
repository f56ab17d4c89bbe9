package application

import (
	"context"
	"errors"

	"github.com/tdex-network/keyvault/internal/core/domain"
	"github.com/tdex-network/keyvault/internal/core/ports"
)

// SettingsService manages the per-network settings.
type SettingsService interface {
	Set(ctx context.Context, networkID string, settings domain.NetworkSettings) error
	Get(ctx context.Context, networkID string) (*domain.NetworkSettings, error)
	Latest(ctx context.Context) (string, *domain.NetworkSettings, error)
	Remove(ctx context.Context, networkID string) error
	Networks(ctx context.Context) ([]string, error)
	SetDefaultAccount(ctx context.Context, networkID, accountID string) error
}

type settingsService struct {
	repoManager ports.RepoManager
}

func NewSettingsService(repoManager ports.RepoManager) SettingsService {
	return &settingsService{repoManager}
}

func (s *settingsService) Set(
	ctx context.Context, networkID string, settings domain.NetworkSettings,
) error {
	return s.repoManager.SettingsRepository().SetSettings(ctx, networkID, settings)
}

func (s *settingsService) Get(
	ctx context.Context, networkID string,
) (*domain.NetworkSettings, error) {
	return s.repoManager.SettingsRepository().GetSettings(ctx, networkID)
}

func (s *settingsService) Latest(
	ctx context.Context,
) (string, *domain.NetworkSettings, error) {
	return s.repoManager.SettingsRepository().GetLatestSettings(ctx)
}

func (s *settingsService) Remove(ctx context.Context, networkID string) error {
	return s.repoManager.SettingsRepository().DeleteSettings(ctx, networkID)
}

func (s *settingsService) Networks(ctx context.Context) ([]string, error) {
	return s.repoManager.SettingsRepository().GetNetworks(ctx)
}

// SetDefaultAccount selects the account used by default on the given
// network, creating the network settings if missing.
func (s *settingsService) SetDefaultAccount(
	ctx context.Context, networkID, accountID string,
) error {
	if _, err := s.repoManager.AccountRepository().GetAccount(
		ctx, accountID,
	); err != nil {
		return err
	}

	repo := s.repoManager.SettingsRepository()
	settings, err := repo.GetSettings(ctx, networkID)
	if err != nil {
		if !errors.Is(err, domain.ErrSettingsNotFound) {
			return err
		}
		settings = &domain.NetworkSettings{}
	}
	settings.DefaultAccountID = accountID
	return repo.SetSettings(ctx, networkID, *settings)
}
