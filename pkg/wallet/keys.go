package wallet

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// DeriveKeyPairOpts is the struct given to DeriveKeyPair and
// ExtendedPublicKey methods
type DeriveKeyPairOpts struct {
	Path HDPath
}

func (o DeriveKeyPairOpts) validate() error {
	if o.Path[LevelPurpose] != Purpose {
		return ErrInvalidPath
	}
	return nil
}

// DeriveKeyPair derives the key pair at the given path and returns the
// private key and the compressed public key, both in hex format
func (w *Wallet) DeriveKeyPair(opts DeriveKeyPairOpts) (string, string, error) {
	if err := opts.validate(); err != nil {
		return "", "", err
	}
	if err := w.validate(); err != nil {
		return "", "", err
	}

	key, err := w.derive(opts.Path)
	if err != nil {
		return "", "", err
	}

	prvkey, err := key.ECPrivKey()
	if err != nil {
		return "", "", err
	}

	return hex.EncodeToString(prvkey.Serialize()),
		hex.EncodeToString(prvkey.PubKey().SerializeCompressed()), nil
}

// ExtendedPublicKey returns the extended public key in base58 format for the
// given path
func (w *Wallet) ExtendedPublicKey(opts DeriveKeyPairOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	if err := w.validate(); err != nil {
		return "", err
	}

	key, err := w.derive(opts.Path)
	if err != nil {
		return "", err
	}

	xpub, err := key.Neuter()
	if err != nil {
		return "", err
	}
	return xpub.String(), nil
}

func (w *Wallet) derive(path HDPath) (*hdkeychain.ExtendedKey, error) {
	key, err := hdkeychain.NewKeyFromString(w.masterKey)
	if err != nil {
		return nil, err
	}
	for _, step := range path.ToBIP32() {
		key, err = key.Derive(step)
		if err != nil {
			return nil, err
		}
	}
	return key, nil
}

// PublicKeyFromPrivateKey validates a private key in hex format and returns
// its compressed public key, in hex format as well
func PublicKeyFromPrivateKey(privateKey string) (string, error) {
	if len(privateKey) <= 0 {
		return "", ErrNullPrivateKey
	}
	buf, err := hex.DecodeString(privateKey)
	if err != nil || len(buf) != btcec.PrivKeyBytesLen {
		return "", ErrInvalidPrivateKey
	}

	_, pubkey := btcec.PrivKeyFromBytes(buf)
	return hex.EncodeToString(pubkey.SerializeCompressed()), nil
}
