package wallet

import (
	"errors"

	"github.com/btcsuite/btcd/chaincfg"
)

var (
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic must not be null")
	// ErrNullSeed ...
	ErrNullSeed = errors.New("seed must not be null")
	// ErrNullMasterKey ...
	ErrNullMasterKey = errors.New("master key must not be null")
	// ErrNullPrivateKey ...
	ErrNullPrivateKey = errors.New("private key must not be null")

	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrInvalidPrivateKey ...
	ErrInvalidPrivateKey = errors.New(
		"private key must be a 32 byte array in hex format",
	)

	// ErrDecryptionFailed is returned when a cypher cannot be opened, either
	// because the passphrase is wrong or the envelope is corrupted.
	ErrDecryptionFailed = errors.New("failed to decrypt cypher")

	// ErrInvalidPath is returned for strings that do not match the
	// m/44'/coin'/account'/change'/address' grammar.
	ErrInvalidPath = errors.New(
		"derivation path must be in the form m/44'/coin'/account'/change'/address'",
	)
	// ErrInvalidLevel ...
	ErrInvalidLevel = errors.New("derivation path level is out of range")
	// ErrInvalidDelta is returned when shifting a level would make it negative
	// or overflow the hardened range.
	ErrInvalidDelta = errors.New(
		"delta moves derivation path level out of the hardened range",
	)
	// ErrInvalidSeedIndex ...
	ErrInvalidSeedIndex = errors.New("seed index must be in the range [0,9]")
	// ErrInvalidRemoteIndex ...
	ErrInvalidRemoteIndex = errors.New("remote index must be in the range [1,10]")
)

// Wallet holds a mnemonic and its master extended key, allowing to derive
// the key pairs of the accounts of a profile
type Wallet struct {
	mnemonic  string
	masterKey string
	network   *chaincfg.Params
}

// NewWalletOpts is the struct given to the NewWallet method
type NewWalletOpts struct {
	EntropySize int
	Network     *chaincfg.Params
}

func (o NewWalletOpts) validate() error {
	if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewWallet creates a new wallet from a freshly generated mnemonic of
// EntropySize bits
func NewWallet(opts NewWalletOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	mnemonic, err := generateMnemonic(opts.EntropySize)
	if err != nil {
		return nil, err
	}

	return NewWalletFromMnemonic(NewWalletFromMnemonicOpts{
		Mnemonic: joinMnemonic(mnemonic),
		Network:  opts.Network,
	})
}

// NewWalletFromMnemonicOpts is the struct given to the NewWalletFromMnemonic
// method
type NewWalletFromMnemonicOpts struct {
	Mnemonic string
	Network  *chaincfg.Params
}

func (o NewWalletFromMnemonicOpts) validate() error {
	if len(o.Mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if !isMnemonicValid(o.Mnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

// NewWalletFromMnemonic generates the seed and the master key of the
// provided mnemonic
func NewWalletFromMnemonic(opts NewWalletFromMnemonicOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	network := opts.Network
	if network == nil {
		network = &chaincfg.MainNetParams
	}

	seed := generateSeedFromMnemonic(opts.Mnemonic)
	masterKey, err := generateMasterKey(seed, network)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		mnemonic:  opts.Mnemonic,
		masterKey: masterKey,
		network:   network,
	}, nil
}

func (w *Wallet) validate() error {
	if len(w.mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if !isMnemonicValid(w.mnemonic) {
		return ErrInvalidMnemonic
	}
	if len(w.masterKey) <= 0 {
		return ErrNullMasterKey
	}
	return nil
}

// Mnemonic is getter for the wallet mnemonic
func (w *Wallet) Mnemonic() (string, error) {
	if err := w.validate(); err != nil {
		return "", err
	}
	return w.mnemonic, nil
}
