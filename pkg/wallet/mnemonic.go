package wallet

import "strings"

// ValidateMnemonic normalizes the given words and makes sure they form a
// valid bip39 mnemonic
func ValidateMnemonic(mnemonic []string) (string, error) {
	words := make([]string, 0, len(mnemonic))
	for _, w := range mnemonic {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, strings.ToLower(w))
		}
	}
	if len(words) <= 0 {
		return "", ErrNullMnemonic
	}

	m := joinMnemonic(words)
	if !isMnemonicValid(m) {
		return "", ErrInvalidMnemonic
	}
	return m, nil
}
