package application

import (
	"context"

	"github.com/lightningnetwork/lnd/clock"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/keyvault/internal/core/domain"
	"github.com/tdex-network/keyvault/internal/core/ports"
	"github.com/tdex-network/keyvault/pkg/wallet"
)

// AccountService manages the accounts of the profiles.
type AccountService interface {
	AddSeedAccount(
		ctx context.Context, profileName, accountName, password string,
	) (*domain.Account, error)
	AddSeedAccountAt(
		ctx context.Context, profileName, accountName string, seedIndex int,
		password string,
	) (*domain.Account, error)
	ImportPrivateKeyAccount(
		ctx context.Context, profileName, accountName, privateKey, password string,
	) (*domain.Account, error)
	LinkRemoteAccount(
		ctx context.Context, accountID string, remoteIndex int, password string,
	) (*domain.Account, error)
	ListAccounts(ctx context.Context, profileName string) ([]domain.Account, error)
	RevealPrivateKey(ctx context.Context, accountID, password string) (string, error)
	RenameAccount(ctx context.Context, accountID, name string) error
	SetDefaultAccount(ctx context.Context, profileName, accountID string) error
	RemoveAccount(ctx context.Context, accountID, password string) error
}

type accountService struct {
	repoManager ports.RepoManager
	clock       clock.Clock
}

func NewAccountService(
	repoManager ports.RepoManager, clk clock.Clock,
) AccountService {
	if clk == nil {
		clk = clock.NewDefaultClock()
	}
	return &accountService{repoManager, clk}
}

// AddSeedAccount derives a new account at the first account index not used
// by any other account of the profile.
func (s *accountService) AddSeedAccount(
	ctx context.Context, profileName, accountName, password string,
) (*domain.Account, error) {
	profile, w, err := s.unlockWallet(ctx, profileName, password)
	if err != nil {
		return nil, err
	}

	paths, err := s.seedPaths(ctx, profileName)
	if err != nil {
		return nil, err
	}
	path, err := profile.Deriver().NextAccountPath(paths)
	if err != nil {
		return nil, err
	}

	return s.addSeedAccount(ctx, profile, w, accountName, path, password)
}

func (s *accountService) AddSeedAccountAt(
	ctx context.Context, profileName, accountName string, seedIndex int,
	password string,
) (*domain.Account, error) {
	profile, w, err := s.unlockWallet(ctx, profileName, password)
	if err != nil {
		return nil, err
	}

	path, err := profile.Deriver().PathForSeedIndex(seedIndex)
	if err != nil {
		return nil, err
	}

	paths, err := s.seedPaths(ctx, profileName)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if p == path.String() {
			return nil, ErrAccountAlreadyDerived
		}
	}

	return s.addSeedAccount(ctx, profile, w, accountName, path, password)
}

func (s *accountService) ImportPrivateKeyAccount(
	ctx context.Context, profileName, accountName, privateKey, password string,
) (*domain.Account, error) {
	if _, err := s.unlockProfile(ctx, profileName, password); err != nil {
		return nil, err
	}

	account, err := domain.NewPrivateKeyAccount(
		profileName, accountName, privateKey, password, s.clock.Now(),
	)
	if err != nil {
		return nil, err
	}
	if err := s.repoManager.AccountRepository().AddAccount(
		ctx, *account,
	); err != nil {
		return nil, err
	}

	log.Infof("imported account %s in profile %s", account.Name, profileName)
	return account, nil
}

// LinkRemoteAccount derives the remote key of a seed account.
func (s *accountService) LinkRemoteAccount(
	ctx context.Context, accountID string, remoteIndex int, password string,
) (*domain.Account, error) {
	account, err := s.repoManager.AccountRepository().GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	_, w, err := s.unlockWallet(ctx, account.ProfileName, password)
	if err != nil {
		return nil, err
	}

	var linked *domain.Account
	if err := s.repoManager.AccountRepository().UpdateAccount(
		ctx, accountID,
		func(a *domain.Account) (*domain.Account, error) {
			if err := a.LinkRemote(w, remoteIndex, password); err != nil {
				return nil, err
			}
			linked = a
			return a, nil
		},
	); err != nil {
		return nil, err
	}

	log.Infof("linked remote key %s to account %s", linked.RemotePath, linked.Name)
	return linked, nil
}

func (s *accountService) ListAccounts(
	ctx context.Context, profileName string,
) ([]domain.Account, error) {
	if _, err := s.repoManager.ProfileRepository().GetProfile(
		ctx, profileName,
	); err != nil {
		return nil, err
	}
	return s.repoManager.AccountRepository().GetAccountsByProfile(
		ctx, profileName,
	)
}

func (s *accountService) RevealPrivateKey(
	ctx context.Context, accountID, password string,
) (string, error) {
	account, err := s.repoManager.AccountRepository().GetAccount(ctx, accountID)
	if err != nil {
		return "", err
	}
	return account.PrivateKey(password)
}

func (s *accountService) RenameAccount(
	ctx context.Context, accountID, name string,
) error {
	return s.repoManager.AccountRepository().UpdateAccount(
		ctx, accountID,
		func(a *domain.Account) (*domain.Account, error) {
			if err := a.Rename(name); err != nil {
				return nil, err
			}
			return a, nil
		},
	)
}

func (s *accountService) SetDefaultAccount(
	ctx context.Context, profileName, accountID string,
) error {
	account, err := s.repoManager.AccountRepository().GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if account.ProfileName != profileName {
		return ErrAccountNotInProfile
	}

	return s.repoManager.ProfileRepository().UpdateProfile(
		ctx, profileName,
		func(p *domain.Profile) (*domain.Profile, error) {
			p.DefaultAccountID = accountID
			return p, nil
		},
	)
}

// RemoveAccount deletes the account. If it is the default account of its
// profile, the profile is left without default.
func (s *accountService) RemoveAccount(
	ctx context.Context, accountID, password string,
) error {
	account, err := s.repoManager.AccountRepository().GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	profile, err := s.unlockProfile(ctx, account.ProfileName, password)
	if err != nil {
		return err
	}

	if err := s.repoManager.AccountRepository().DeleteAccount(
		ctx, accountID,
	); err != nil {
		return err
	}

	if profile.DefaultAccountID == accountID {
		if err := s.repoManager.ProfileRepository().UpdateProfile(
			ctx, profile.Name,
			func(p *domain.Profile) (*domain.Profile, error) {
				p.DefaultAccountID = ""
				return p, nil
			},
		); err != nil {
			return err
		}
	}

	log.Infof("removed account %s from profile %s", account.Name, profile.Name)
	return nil
}

func (s *accountService) addSeedAccount(
	ctx context.Context, profile *domain.Profile, w *wallet.Wallet,
	accountName string, path wallet.HDPath, password string,
) (*domain.Account, error) {
	account, err := domain.NewSeedAccount(
		profile.Name, accountName, w, path, password, s.clock.Now(),
	)
	if err != nil {
		return nil, err
	}
	if err := s.repoManager.AccountRepository().AddAccount(
		ctx, *account,
	); err != nil {
		return nil, err
	}

	log.Infof(
		"derived account %s at %s in profile %s",
		account.Name, account.Path, profile.Name,
	)
	return account, nil
}

// seedPaths returns the paths of the seed accounts of the profile.
func (s *accountService) seedPaths(
	ctx context.Context, profileName string,
) ([]string, error) {
	accounts, err := s.repoManager.AccountRepository().GetAccountsByProfile(
		ctx, profileName,
	)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(accounts))
	for _, a := range accounts {
		if a.Type == domain.AccountTypeSeed {
			paths = append(paths, a.Path)
		}
	}
	return paths, nil
}

func (s *accountService) unlockProfile(
	ctx context.Context, profileName, password string,
) (*domain.Profile, error) {
	profile, err := s.repoManager.ProfileRepository().GetProfile(ctx, profileName)
	if err != nil {
		return nil, err
	}
	if !profile.IsValidPassword(password) {
		return nil, domain.ErrInvalidPassword
	}
	return profile, nil
}

func (s *accountService) unlockWallet(
	ctx context.Context, profileName, password string,
) (*domain.Profile, *wallet.Wallet, error) {
	profile, err := s.repoManager.ProfileRepository().GetProfile(ctx, profileName)
	if err != nil {
		return nil, nil, err
	}
	w, err := profile.Wallet(password)
	if err != nil {
		return nil, nil, err
	}
	return profile, w, nil
}
