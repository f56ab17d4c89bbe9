package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lightningnetwork/lnd/clock"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/keyvault/internal/core/domain"
	"github.com/tdex-network/keyvault/internal/core/ports"
	"github.com/tdex-network/keyvault/pkg/wallet"
)

// SeedEntropySize is the entropy, in bits, of the generated mnemonics.
const SeedEntropySize = 256

// ProfileService manages the lifecycle of profiles and of their encrypted
// mnemonic.
type ProfileService interface {
	GenSeed(ctx context.Context) ([]string, error)
	CreateProfile(ctx context.Context, args CreateProfileArgs) (*domain.Profile, error)
	RestoreProfile(
		ctx context.Context, args CreateProfileArgs, seedIndexes []int,
	) (*domain.Profile, error)
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	GetProfile(ctx context.Context, name string) (*domain.Profile, error)
	CheckPassword(ctx context.Context, name, password string) error
	ChangePassword(
		ctx context.Context, name, currentPassword, newPassword string,
	) error
	RevealMnemonic(ctx context.Context, name, password string) ([]string, error)
	DeleteProfile(ctx context.Context, name, password string) error
}

// CreateProfileArgs is the struct given to CreateProfile and RestoreProfile.
type CreateProfileArgs struct {
	Name           string
	NetworkType    domain.NetworkType
	GenerationHash string
	Mnemonic       []string
	Password       string
	PasswordHint   string
}

type profileService struct {
	repoManager ports.RepoManager
	clock       clock.Clock
}

func NewProfileService(
	repoManager ports.RepoManager, clk clock.Clock,
) ProfileService {
	if clk == nil {
		clk = clock.NewDefaultClock()
	}
	return &profileService{repoManager, clk}
}

func (s *profileService) GenSeed(_ context.Context) ([]string, error) {
	return GenSeed()
}

// GenSeed returns a new 24 words mnemonic.
func GenSeed() ([]string, error) {
	w, err := wallet.NewWallet(wallet.NewWalletOpts{
		EntropySize: SeedEntropySize,
	})
	if err != nil {
		return nil, err
	}
	mnemonic, err := w.Mnemonic()
	if err != nil {
		return nil, err
	}
	return strings.Fields(mnemonic), nil
}

func (s *profileService) CreateProfile(
	ctx context.Context, args CreateProfileArgs,
) (*domain.Profile, error) {
	return s.RestoreProfile(ctx, args, nil)
}

// RestoreProfile creates a profile from an existing mnemonic and derives one
// seed account for each of the given indexes. The first index, or 0 if none
// is given, becomes the default account.
func (s *profileService) RestoreProfile(
	ctx context.Context, args CreateProfileArgs, seedIndexes []int,
) (*domain.Profile, error) {
	if len(seedIndexes) <= 0 {
		seedIndexes = []int{0}
	}

	mnemonic, err := wallet.ValidateMnemonic(args.Mnemonic)
	if err != nil {
		return nil, err
	}

	profile, err := domain.NewProfile(domain.NewProfileArgs{
		Name:           args.Name,
		NetworkType:    args.NetworkType,
		GenerationHash: args.GenerationHash,
		Mnemonic:       mnemonic,
		Password:       args.Password,
		PasswordHint:   args.PasswordHint,
	}, s.clock.Now())
	if err != nil {
		return nil, err
	}

	w, err := profile.Wallet(args.Password)
	if err != nil {
		return nil, err
	}

	deriver := profile.Deriver()
	accounts := make([]*domain.Account, 0, len(seedIndexes))
	seen := make(map[int]struct{}, len(seedIndexes))
	for _, index := range seedIndexes {
		if _, ok := seen[index]; ok {
			continue
		}
		seen[index] = struct{}{}

		path, err := deriver.PathForSeedIndex(index)
		if err != nil {
			return nil, err
		}
		account, err := domain.NewSeedAccount(
			profile.Name, domain.SeedAccountName(index), w, path,
			args.Password, s.clock.Now(),
		)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	profile.DefaultAccountID = accounts[0].ID

	profileRepo := s.repoManager.ProfileRepository()
	if _, err := profileRepo.GetProfile(ctx, profile.Name); err == nil {
		return nil, domain.ErrProfileAlreadyExists
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	// Accounts are stored first and removed again if the restore fails.
	accountRepo := s.repoManager.AccountRepository()
	added := make([]string, 0, len(accounts))
	for _, account := range accounts {
		if err := accountRepo.AddAccount(ctx, *account); err != nil {
			s.removeAccounts(ctx, added)
			return nil, err
		}
		added = append(added, account.ID)
	}

	if err := profileRepo.AddProfile(ctx, *profile); err != nil {
		s.removeAccounts(ctx, added)
		return nil, err
	}

	log.Infof(
		"created profile %s on %s with %d account(s)",
		profile.Name, profile.NetworkType, len(accounts),
	)
	return profile, nil
}

func (s *profileService) ListProfiles(
	ctx context.Context,
) ([]domain.Profile, error) {
	return s.repoManager.ProfileRepository().GetAllProfiles(ctx)
}

func (s *profileService) GetProfile(
	ctx context.Context, name string,
) (*domain.Profile, error) {
	return s.repoManager.ProfileRepository().GetProfile(ctx, name)
}

func (s *profileService) CheckPassword(
	ctx context.Context, name, password string,
) error {
	_, err := s.unlock(ctx, name, password)
	return err
}

// ChangePassword re-encrypts the seed of the profile and every secret of its
// accounts with the new password. Accounts are updated first and restored
// if the profile cannot be updated.
func (s *profileService) ChangePassword(
	ctx context.Context, name, currentPassword, newPassword string,
) error {
	if len(newPassword) <= 0 {
		return domain.ErrNullPassword
	}
	if _, err := s.unlock(ctx, name, currentPassword); err != nil {
		return err
	}

	accountRepo := s.repoManager.AccountRepository()
	if err := accountRepo.UpdateAccountsByProfile(
		ctx, name, changeAccountPassword(currentPassword, newPassword),
	); err != nil {
		return fmt.Errorf("re-encrypting accounts: %w", err)
	}

	if err := s.repoManager.ProfileRepository().UpdateProfile(
		ctx, name,
		func(p *domain.Profile) (*domain.Profile, error) {
			if err := p.ChangePassword(currentPassword, newPassword); err != nil {
				return nil, err
			}
			return p, nil
		},
	); err != nil {
		if rerr := accountRepo.UpdateAccountsByProfile(
			ctx, name, changeAccountPassword(newPassword, currentPassword),
		); rerr != nil {
			log.WithError(rerr).Errorf(
				"failed to restore accounts of profile %s", name,
			)
		}
		return fmt.Errorf("re-encrypting seed: %w", err)
	}

	log.Infof("changed password of profile %s", name)
	return nil
}

func (s *profileService) RevealMnemonic(
	ctx context.Context, name, password string,
) ([]string, error) {
	profile, err := s.unlock(ctx, name, password)
	if err != nil {
		return nil, err
	}
	mnemonic, err := profile.Mnemonic(password)
	if err != nil {
		return nil, err
	}
	return strings.Fields(mnemonic), nil
}

// DeleteProfile removes the profile together with all its accounts.
func (s *profileService) DeleteProfile(
	ctx context.Context, name, password string,
) error {
	if _, err := s.unlock(ctx, name, password); err != nil {
		return err
	}

	if err := s.repoManager.AccountRepository().DeleteAccountsByProfile(
		ctx, name,
	); err != nil {
		return err
	}
	if err := s.repoManager.ProfileRepository().DeleteProfile(
		ctx, name,
	); err != nil {
		return err
	}

	log.Infof("deleted profile %s", name)
	return nil
}

func (s *profileService) unlock(
	ctx context.Context, name, password string,
) (*domain.Profile, error) {
	profile, err := s.repoManager.ProfileRepository().GetProfile(ctx, name)
	if err != nil {
		return nil, err
	}
	if !profile.IsValidPassword(password) {
		return nil, domain.ErrInvalidPassword
	}
	return profile, nil
}

func (s *profileService) removeAccounts(ctx context.Context, ids []string) {
	accountRepo := s.repoManager.AccountRepository()
	for _, id := range ids {
		if err := accountRepo.DeleteAccount(ctx, id); err != nil {
			log.WithError(err).Errorf("failed to remove account %s", id)
		}
	}
}

func changeAccountPassword(
	currentPassword, newPassword string,
) func(*domain.Account) (*domain.Account, error) {
	return func(a *domain.Account) (*domain.Account, error) {
		if err := a.ChangePassword(currentPassword, newPassword); err != nil {
			return nil, fmt.Errorf("account %s: %w", a.Name, err)
		}
		return a, nil
	}
}
