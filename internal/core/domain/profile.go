package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/tdex-network/keyvault/pkg/wallet"
)

// Profile is a named wallet holding an encrypted mnemonic for a given network.
type Profile struct {
	Name             string      `json:"name"`
	NetworkType      NetworkType `json:"networkType"`
	GenerationHash   string      `json:"generationHash"`
	EncryptedSeed    string      `json:"encryptedSeed"`
	PasswordHint     string      `json:"passwordHint,omitempty"`
	DefaultAccountID string      `json:"defaultAccountId,omitempty"`
	CreatedAt        int64       `json:"createdAt"`
}

// NewProfileArgs is the struct given to NewProfile.
type NewProfileArgs struct {
	Name           string
	NetworkType    NetworkType
	GenerationHash string
	Mnemonic       string
	Password       string
	PasswordHint   string
}

func (a NewProfileArgs) validate() error {
	if len(strings.TrimSpace(a.Name)) <= 0 {
		return ErrNullName
	}
	if err := a.NetworkType.Validate(); err != nil {
		return err
	}
	if len(a.GenerationHash) <= 0 {
		return ErrNullGenerationHash
	}
	if len(a.Password) <= 0 {
		return ErrNullPassword
	}
	if _, err := wallet.ValidateMnemonic(strings.Fields(a.Mnemonic)); err != nil {
		return err
	}
	return nil
}

// NewProfile validates the mnemonic and returns a profile holding it
// encrypted with the given password.
func NewProfile(args NewProfileArgs, now time.Time) (*Profile, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	mnemonic, _ := wallet.ValidateMnemonic(strings.Fields(args.Mnemonic))
	encryptedSeed, err := wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  mnemonic,
		Passphrase: args.Password,
	})
	if err != nil {
		return nil, err
	}

	return &Profile{
		Name:           strings.TrimSpace(args.Name),
		NetworkType:    args.NetworkType,
		GenerationHash: args.GenerationHash,
		EncryptedSeed:  encryptedSeed,
		PasswordHint:   args.PasswordHint,
		CreatedAt:      now.Unix(),
	}, nil
}

// Mnemonic returns the plaintext mnemonic of the profile.
func (p *Profile) Mnemonic(password string) (string, error) {
	mnemonic, err := wallet.Decrypt(wallet.DecryptOpts{
		CypherText: p.EncryptedSeed,
		Passphrase: password,
	})
	if err != nil {
		if errors.Is(err, wallet.ErrDecryptionFailed) {
			return "", ErrInvalidPassword
		}
		return "", err
	}
	return mnemonic, nil
}

// IsValidPassword returns whether the password opens the profile's seed.
func (p *Profile) IsValidPassword(password string) bool {
	_, err := p.Mnemonic(password)
	return err == nil
}

// Wallet returns the HD wallet restored from the profile's mnemonic.
func (p *Profile) Wallet(password string) (*wallet.Wallet, error) {
	mnemonic, err := p.Mnemonic(password)
	if err != nil {
		return nil, err
	}
	return wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: mnemonic,
		Network:  p.NetworkType.Params(),
	})
}

// Deriver returns the path deriver for the profile's network.
func (p *Profile) Deriver() wallet.Deriver {
	return wallet.NewDeriver(p.NetworkType.CoinType())
}

// ChangePassword re-encrypts the seed with the new password.
func (p *Profile) ChangePassword(currentPassword, newPassword string) error {
	if len(newPassword) <= 0 {
		return ErrNullPassword
	}
	mnemonic, err := p.Mnemonic(currentPassword)
	if err != nil {
		return err
	}

	encryptedSeed, err := wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  mnemonic,
		Passphrase: newPassword,
	})
	if err != nil {
		return err
	}
	p.EncryptedSeed = encryptedSeed
	return nil
}
