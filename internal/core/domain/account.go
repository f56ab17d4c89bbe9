package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tdex-network/keyvault/pkg/wallet"
)

// AccountType tells how the key of an account has been obtained.
type AccountType string

const (
	AccountTypeSeed       AccountType = "seed"
	AccountTypePrivateKey AccountType = "privatekey"
)

// Validate ...
func (t AccountType) Validate() error {
	switch t {
	case AccountTypeSeed, AccountTypePrivateKey:
		return nil
	default:
		return ErrInvalidAccountType
	}
}

// Account is a key pair owned by a profile. Seed accounts carry the path
// their key is derived at, imported ones do not. An account can be linked to
// a remote key used for delegated operations.
type Account struct {
	ID                        string      `json:"id"`
	ProfileName               string      `json:"profileName"`
	Name                      string      `json:"name"`
	Type                      AccountType `json:"type"`
	Path                      string      `json:"path,omitempty"`
	PublicKey                 string      `json:"publicKey"`
	ExtendedPublicKey         string      `json:"extendedPublicKey,omitempty"`
	EncryptedPrivateKey       string      `json:"encryptedPrivateKey"`
	RemotePath                string      `json:"remotePath,omitempty"`
	RemotePublicKey           string      `json:"remotePublicKey,omitempty"`
	EncryptedRemotePrivateKey string      `json:"encryptedRemotePrivateKey,omitempty"`
	CreatedAt                 int64       `json:"createdAt"`
}

// SeedAccountName returns the name given to the seed account derived at the
// given seed index when a profile is created or restored.
func SeedAccountName(index int) string {
	return fmt.Sprintf("Seed Account %d", index+1)
}

// NewSeedAccount derives the key pair at path from the wallet and returns an
// account holding the private key encrypted with password.
func NewSeedAccount(
	profileName, name string, w *wallet.Wallet, path wallet.HDPath,
	password string, now time.Time,
) (*Account, error) {
	if err := validateNames(profileName, name); err != nil {
		return nil, err
	}

	opts := wallet.DeriveKeyPairOpts{Path: path}
	prvkey, pubkey, err := w.DeriveKeyPair(opts)
	if err != nil {
		return nil, err
	}
	xpub, err := w.ExtendedPublicKey(opts)
	if err != nil {
		return nil, err
	}
	encryptedPrvkey, err := encrypt(prvkey, password)
	if err != nil {
		return nil, err
	}

	return &Account{
		ID:                  uuid.New().String(),
		ProfileName:         profileName,
		Name:                strings.TrimSpace(name),
		Type:                AccountTypeSeed,
		Path:                path.String(),
		PublicKey:           pubkey,
		ExtendedPublicKey:   xpub,
		EncryptedPrivateKey: encryptedPrvkey,
		CreatedAt:           now.Unix(),
	}, nil
}

// NewPrivateKeyAccount returns an account for an imported private key, in
// hex format.
func NewPrivateKeyAccount(
	profileName, name, privateKey, password string, now time.Time,
) (*Account, error) {
	if err := validateNames(profileName, name); err != nil {
		return nil, err
	}

	privateKey = strings.ToLower(strings.TrimSpace(privateKey))
	pubkey, err := wallet.PublicKeyFromPrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	encryptedPrvkey, err := encrypt(privateKey, password)
	if err != nil {
		return nil, err
	}

	return &Account{
		ID:                  uuid.New().String(),
		ProfileName:         profileName,
		Name:                strings.TrimSpace(name),
		Type:                AccountTypePrivateKey,
		PublicKey:           pubkey,
		EncryptedPrivateKey: encryptedPrvkey,
		CreatedAt:           now.Unix(),
	}, nil
}

// IsLinked returns whether the account has a remote key.
func (a *Account) IsLinked() bool {
	return len(a.RemotePublicKey) > 0
}

// LinkRemote derives the remote key at the given remote index of the
// account path and stores it encrypted with password.
func (a *Account) LinkRemote(
	w *wallet.Wallet, remoteIndex int, password string,
) error {
	if a.Type != AccountTypeSeed {
		return ErrAccountNotDerived
	}
	if a.IsLinked() {
		return ErrAccountAlreadyLinked
	}

	path, err := wallet.RemoteAccountPath(a.Path, remoteIndex)
	if err != nil {
		return err
	}
	prvkey, pubkey, err := w.DeriveKeyPair(wallet.DeriveKeyPairOpts{Path: path})
	if err != nil {
		return err
	}
	encryptedPrvkey, err := encrypt(prvkey, password)
	if err != nil {
		return err
	}

	a.RemotePath = path.String()
	a.RemotePublicKey = pubkey
	a.EncryptedRemotePrivateKey = encryptedPrvkey
	return nil
}

// PrivateKey returns the plaintext private key of the account.
func (a *Account) PrivateKey(password string) (string, error) {
	return decrypt(a.EncryptedPrivateKey, password)
}

// RemotePrivateKey returns the plaintext remote private key of the account.
func (a *Account) RemotePrivateKey(password string) (string, error) {
	if !a.IsLinked() {
		return "", nil
	}
	return decrypt(a.EncryptedRemotePrivateKey, password)
}

// Rename ...
func (a *Account) Rename(name string) error {
	name = strings.TrimSpace(name)
	if len(name) <= 0 {
		return ErrNullName
	}
	a.Name = name
	return nil
}

// ChangePassword re-encrypts every secret of the account with the new
// password.
func (a *Account) ChangePassword(currentPassword, newPassword string) error {
	if len(newPassword) <= 0 {
		return ErrNullPassword
	}

	prvkey, err := a.PrivateKey(currentPassword)
	if err != nil {
		return err
	}
	encryptedPrvkey, err := encrypt(prvkey, newPassword)
	if err != nil {
		return err
	}

	var encryptedRemotePrvkey string
	if a.IsLinked() {
		remotePrvkey, err := a.RemotePrivateKey(currentPassword)
		if err != nil {
			return err
		}
		if encryptedRemotePrvkey, err = encrypt(remotePrvkey, newPassword); err != nil {
			return err
		}
	}

	a.EncryptedPrivateKey = encryptedPrvkey
	a.EncryptedRemotePrivateKey = encryptedRemotePrvkey
	return nil
}

func validateNames(profileName, name string) error {
	if len(profileName) <= 0 || len(strings.TrimSpace(name)) <= 0 {
		return ErrNullName
	}
	return nil
}

func encrypt(plaintext, password string) (string, error) {
	if len(password) <= 0 {
		return "", ErrNullPassword
	}
	return wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  plaintext,
		Passphrase: password,
	})
}

func decrypt(cyphertext, password string) (string, error) {
	plaintext, err := wallet.Decrypt(wallet.DecryptOpts{
		CypherText: cyphertext,
		Passphrase: password,
	})
	if err != nil {
		if errors.Is(err, wallet.ErrDecryptionFailed) {
			return "", ErrInvalidPassword
		}
		return "", err
	}
	return plaintext, nil
}
