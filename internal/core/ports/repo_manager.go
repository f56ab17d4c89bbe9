package ports

import "github.com/tdex-network/keyvault/internal/core/domain"

// RepoManager gives access to all the repositories backed by the same raw
// store.
type RepoManager interface {
	ProfileRepository() domain.ProfileRepository
	AccountRepository() domain.AccountRepository
	SettingsRepository() domain.SettingsRepository
	Close()
}
