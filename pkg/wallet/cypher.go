package wallet

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length in bytes of the random salt prefixed to every
	// cypher.
	SaltSize = 16
	// IVSize is the length in bytes of the AES-CBC initialization vector.
	IVSize = aes.BlockSize
	// KeySize is the length in bytes of the derived AES-256 key.
	KeySize = 32
	// KeyDerivationIterations is the number of PBKDF2 rounds used to stretch
	// the passphrase. Changing it makes existing cyphers unreadable.
	KeyDerivationIterations = 2000

	saltHexLen   = SaltSize * 2
	ivHexLen     = IVSize * 2
	headerHexLen = saltHexLen + ivHexLen
)

// EncryptOpts is the struct given to Encrypt method
type EncryptOpts struct {
	PlainText  string
	Passphrase string
}

// Encrypt encrypts (with AES-256-CBC) a plaintext with the provided
// passphrase. The returned cypher is the concatenation of the hex encoded
// salt and iv, followed by the base64 encoded ciphertext.
func Encrypt(opts EncryptOpts) (string, error) {
	key, salt, err := DeriveKey([]byte(opts.Passphrase), nil)
	if err != nil {
		return "", err
	}

	iv := make([]byte, IVSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	blockCipher, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	data := pkcs7Pad([]byte(opts.PlainText), aes.BlockSize)
	ciphertext := make([]byte, len(data))
	cipher.NewCBCEncrypter(blockCipher, iv).CryptBlocks(ciphertext, data)

	return hex.EncodeToString(salt) +
		hex.EncodeToString(iv) +
		base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptOpts is the struct given to Decrypt method
type DecryptOpts struct {
	CypherText string
	Passphrase string
}

// Decrypt decrypts (with AES-256-CBC) a cyphertext with the provided
// passphrase. A wrong passphrase and a malformed cypher are not told apart,
// both result in ErrDecryptionFailed.
func Decrypt(opts DecryptOpts) (string, error) {
	salt, iv, ciphertext, ok := splitCypher(opts.CypherText)
	if !ok {
		return "", ErrDecryptionFailed
	}

	key, _, err := DeriveKey([]byte(opts.Passphrase), salt)
	if err != nil {
		return "", err
	}

	blockCipher, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	data := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(blockCipher, iv).CryptBlocks(data, ciphertext)

	plaintext, ok := pkcs7Unpad(data, aes.BlockSize)
	if !ok || !utf8.Valid(plaintext) {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// DecryptOrEmpty behaves like Decrypt but returns an empty string instead of
// an error. Callers relying on this cannot distinguish a failure from an
// empty secret.
func DecryptOrEmpty(cypherText, passphrase string) string {
	plaintext, err := Decrypt(DecryptOpts{
		CypherText: cypherText,
		Passphrase: passphrase,
	})
	if err != nil {
		return ""
	}
	return plaintext
}

// DeriveKey derives a 32 byte array key from a custom passhprase. A random
// salt is generated if none is given.
func DeriveKey(passphrase, salt []byte) ([]byte, []byte, error) {
	if salt == nil {
		salt = make([]byte, SaltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, nil, err
		}
	}
	key := pbkdf2.Key(
		passphrase, salt, KeyDerivationIterations, KeySize, sha256.New,
	)
	return key, salt, nil
}

func splitCypher(cypherText string) (salt, iv, ciphertext []byte, ok bool) {
	if len(cypherText) <= headerHexLen {
		return
	}

	var err error
	if salt, err = hex.DecodeString(cypherText[:saltHexLen]); err != nil {
		return
	}
	if iv, err = hex.DecodeString(cypherText[saltHexLen:headerHexLen]); err != nil {
		return
	}
	ciphertext, err = base64.StdEncoding.DecodeString(cypherText[headerHexLen:])
	if err != nil {
		return
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return
	}

	ok = true
	return
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, false
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, false
		}
	}
	return data[:len(data)-padLen], true
}
