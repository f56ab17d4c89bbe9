package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestWallet(t *testing.T) *Wallet {
	wallet, err := NewWalletFromMnemonic(NewWalletFromMnemonicOpts{
		Mnemonic: testMnemonic,
	})
	require.NoError(t, err)
	return wallet
}

func TestDeriveKeyPair(t *testing.T) {
	wallet := newTestWallet(t)
	deriver := NewDeriver(DefaultCoinType)

	first, err := deriver.PathForSeedIndex(0)
	require.NoError(t, err)
	second, err := deriver.PathForSeedIndex(1)
	require.NoError(t, err)

	prvkey, pubkey, err := wallet.DeriveKeyPair(DeriveKeyPairOpts{Path: first})
	require.NoError(t, err)
	require.Len(t, prvkey, 64)
	require.Len(t, pubkey, 66)

	expectedPubkey, err := PublicKeyFromPrivateKey(prvkey)
	require.NoError(t, err)
	require.Equal(t, expectedPubkey, pubkey)

	samePrvkey, samePubkey, err := wallet.DeriveKeyPair(DeriveKeyPairOpts{Path: first})
	require.NoError(t, err)
	require.Equal(t, prvkey, samePrvkey)
	require.Equal(t, pubkey, samePubkey)

	otherPrvkey, otherPubkey, err := wallet.DeriveKeyPair(DeriveKeyPairOpts{Path: second})
	require.NoError(t, err)
	require.NotEqual(t, prvkey, otherPrvkey)
	require.NotEqual(t, pubkey, otherPubkey)

	_, _, err = wallet.DeriveKeyPair(DeriveKeyPairOpts{})
	require.Equal(t, ErrInvalidPath, err)
}

func TestExtendedPublicKey(t *testing.T) {
	wallet := newTestWallet(t)

	xpub, err := wallet.ExtendedPublicKey(DeriveKeyPairOpts{
		Path: NewDeriver(DefaultCoinType).DefaultPath(),
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(xpub, "xpub"))
}

func TestPublicKeyFromPrivateKey(t *testing.T) {
	pubkey, err := PublicKeyFromPrivateKey(
		"0000000000000000000000000000000000000000000000000000000000000001",
	)
	require.NoError(t, err)
	require.Equal(
		t,
		"0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		pubkey,
	)

	tests := []struct {
		privateKey string
		err        error
	}{
		{"", ErrNullPrivateKey},
		{"zz", ErrInvalidPrivateKey},
		{"0001", ErrInvalidPrivateKey},
	}
	for _, tt := range tests {
		_, err := PublicKeyFromPrivateKey(tt.privateKey)
		require.Equal(t, tt.err, err)
	}
}
