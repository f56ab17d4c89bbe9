package domain

import "context"

// ProfileRepository persists the profiles, indexed by name.
type ProfileRepository interface {
	AddProfile(ctx context.Context, profile Profile) error
	GetProfile(ctx context.Context, name string) (*Profile, error)
	GetAllProfiles(ctx context.Context) ([]Profile, error)
	UpdateProfile(
		ctx context.Context,
		name string,
		updateFn func(p *Profile) (*Profile, error),
	) error
	DeleteProfile(ctx context.Context, name string) error
}

// AccountRepository persists the accounts of all profiles, indexed by id.
// Account names are unique within a profile.
type AccountRepository interface {
	AddAccount(ctx context.Context, account Account) error
	GetAccount(ctx context.Context, id string) (*Account, error)
	GetAccountsByProfile(ctx context.Context, profileName string) ([]Account, error)
	UpdateAccount(
		ctx context.Context,
		id string,
		updateFn func(a *Account) (*Account, error),
	) error
	// UpdateAccountsByProfile applies updateFn to every account of the
	// profile and persists the result only if all updates succeed.
	UpdateAccountsByProfile(
		ctx context.Context,
		profileName string,
		updateFn func(a *Account) (*Account, error),
	) error
	DeleteAccount(ctx context.Context, id string) error
	DeleteAccountsByProfile(ctx context.Context, profileName string) error
}

// SettingsRepository persists the settings of every network, remembering
// the one updated most recently.
type SettingsRepository interface {
	SetSettings(ctx context.Context, networkID string, settings NetworkSettings) error
	GetSettings(ctx context.Context, networkID string) (*NetworkSettings, error)
	GetLatestSettings(ctx context.Context) (string, *NetworkSettings, error)
	DeleteSettings(ctx context.Context, networkID string) error
	GetNetworks(ctx context.Context) ([]string, error)
}
