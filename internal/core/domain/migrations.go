package domain

import (
	"github.com/google/uuid"
	"github.com/tdex-network/keyvault/pkg/versionedstore"
)

const (
	// ProfilesKey is the storage key of the profile book.
	ProfilesKey = "profiles"
	// AccountsKey is the storage key of the account book.
	AccountsKey = "accounts"
	// SettingsKey is the storage key of the per-network settings.
	SettingsKey = "settings"
)

// ProfileMigrations upgrade the profile book to the current schema.
var ProfileMigrations = []versionedstore.Migration{
	{
		Description: "index profiles by name",
		Migrate:     indexProfilesByName,
	},
	{
		Description: "rename encryptedMnemonic to encryptedSeed",
		Migrate:     renameEncryptedMnemonic,
	},
}

// AccountMigrations upgrade the account book to the current schema.
var AccountMigrations = []versionedstore.Migration{
	{
		Description: "flatten accounts grouped by profile",
		Migrate:     flattenAccounts,
	},
	{
		Description: "infer account type",
		Migrate:     inferAccountType,
	},
}

// v1 profiles were stored as a list.
func indexProfilesByName(data interface{}) (interface{}, error) {
	switch profiles := data.(type) {
	case map[string]interface{}:
		return profiles, nil
	case []interface{}:
		book := make(map[string]interface{}, len(profiles))
		for _, p := range profiles {
			profile, ok := p.(map[string]interface{})
			if !ok {
				continue
			}
			name, _ := profile["name"].(string)
			if len(name) <= 0 {
				continue
			}
			book[name] = profile
		}
		return book, nil
	default:
		return nil, nil
	}
}

func renameEncryptedMnemonic(data interface{}) (interface{}, error) {
	book, ok := data.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	for _, p := range book {
		profile, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		if mnemonic, ok := profile["encryptedMnemonic"]; ok {
			if _, ok := profile["encryptedSeed"]; !ok {
				profile["encryptedSeed"] = mnemonic
			}
			delete(profile, "encryptedMnemonic")
		}
	}
	return book, nil
}

// v1 accounts were stored as lists keyed by profile name. Books in any other
// shape cannot be recovered and are dropped.
func flattenAccounts(data interface{}) (interface{}, error) {
	byProfile, ok := data.(map[string]interface{})
	if !ok {
		return nil, nil
	}

	book := make(map[string]interface{})
	for profileName, list := range byProfile {
		accounts, ok := list.([]interface{})
		if !ok {
			return nil, nil
		}
		for _, a := range accounts {
			account, ok := a.(map[string]interface{})
			if !ok {
				continue
			}
			id, _ := account["id"].(string)
			if len(id) <= 0 {
				id = uuid.New().String()
				account["id"] = id
			}
			account["profileName"] = profileName
			book[id] = account
		}
	}
	return book, nil
}

func inferAccountType(data interface{}) (interface{}, error) {
	book, ok := data.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	for _, a := range book {
		account, ok := a.(map[string]interface{})
		if !ok {
			continue
		}
		if _, ok := account["type"]; ok {
			continue
		}
		accountType := AccountTypeSeed
		if path, _ := account["path"].(string); len(path) <= 0 {
			accountType = AccountTypePrivateKey
		}
		account["type"] = string(accountType)
	}
	return book, nil
}
