package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt(t *testing.T) {
	tests := []struct {
		plaintext  string
		passphrase string
	}{
		{"super secret message", "supersecurekey"},
		{"987654321", "password"},
		{"", "password"},
		{"exactly sixteen!", "p"},
		{"unicode ✓ ünïcödé 秘密", "pässwörd"},
		{strings.Repeat("leave dice fine decrease ", 12), ""},
	}

	for _, tt := range tests {
		cyphertext, err := Encrypt(EncryptOpts{
			PlainText:  tt.plaintext,
			Passphrase: tt.passphrase,
		})
		require.NoError(t, err)
		require.True(t, len(cyphertext) > headerHexLen)

		revealedtext, err := Decrypt(DecryptOpts{
			CypherText: cyphertext,
			Passphrase: tt.passphrase,
		})
		require.NoError(t, err)
		assert.Equal(t, tt.plaintext, revealedtext)
	}
}

func TestEncryptIsRandomized(t *testing.T) {
	opts := EncryptOpts{
		PlainText:  "987654321",
		Passphrase: "password",
	}

	first, err := Encrypt(opts)
	require.NoError(t, err)
	second, err := Encrypt(opts)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.NotEqual(t, first[:saltHexLen], second[:saltHexLen])
	require.NotEqual(t, first[saltHexLen:headerHexLen], second[saltHexLen:headerHexLen])
}

func TestDecryptWithWrongPassphrase(t *testing.T) {
	cyphertext, err := Encrypt(EncryptOpts{
		PlainText:  "987654321",
		Passphrase: "password",
	})
	require.NoError(t, err)

	revealedtext, err := Decrypt(DecryptOpts{
		CypherText: cyphertext,
		Passphrase: "wrongpass",
	})
	require.ErrorIs(t, err, ErrDecryptionFailed)
	require.Empty(t, revealedtext)

	require.Equal(t, "987654321", DecryptOrEmpty(cyphertext, "password"))
	require.Equal(t, "", DecryptOrEmpty(cyphertext, "wrongpass"))
}

func TestFailingDecrypt(t *testing.T) {
	valid, err := Encrypt(EncryptOpts{
		PlainText:  "super secret message",
		Passphrase: "supersecurekey",
	})
	require.NoError(t, err)

	tests := []struct {
		name       string
		cyphertext string
	}{
		{"empty", ""},
		{"too_short", valid[:headerHexLen]},
		{"not_hex_salt", "zz" + valid[2:]},
		{"not_hex_iv", valid[:saltHexLen] + "zz" + valid[saltHexLen+2:]},
		{"not_base64", valid[:headerHexLen] + "!!!!"},
		{"truncated_block", valid[:headerHexLen] + "AAAAAAAA"},
		{"plain_text", "supersecretmessage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			revealedtext, err := Decrypt(DecryptOpts{
				CypherText: tt.cyphertext,
				Passphrase: "supersecurekey",
			})
			require.ErrorIs(t, err, ErrDecryptionFailed)
			require.Empty(t, revealedtext)

			require.NotPanics(t, func() {
				require.Empty(t, DecryptOrEmpty(tt.cyphertext, "supersecurekey"))
			})
		})
	}
}

func TestDeriveKey(t *testing.T) {
	key, salt, err := DeriveKey([]byte("password"), nil)
	require.NoError(t, err)
	require.Len(t, key, KeySize)
	require.Len(t, salt, SaltSize)

	sameKey, sameSalt, err := DeriveKey([]byte("password"), salt)
	require.NoError(t, err)
	require.Equal(t, key, sameKey)
	require.Equal(t, salt, sameSalt)

	otherKey, _, err := DeriveKey([]byte("wrongpass"), salt)
	require.NoError(t, err)
	require.NotEqual(t, key, otherKey)
}
