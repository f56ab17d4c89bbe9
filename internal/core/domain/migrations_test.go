package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/keyvault/internal/core/domain"
	inmemorystore "github.com/tdex-network/keyvault/pkg/kvstore/inmemory"
	"github.com/tdex-network/keyvault/pkg/versionedstore"
)

func TestProfileMigrations(t *testing.T) {
	kv := inmemorystore.NewStore()
	v1 := `{"version":1,"data":[
		{"name":"alice","networkType":"mainnet","generationHash":"abc","encryptedMnemonic":"cypher1"},
		{"name":"bob","networkType":"testnet","generationHash":"xyz","encryptedSeed":"cypher2"},
		{"networkType":"testnet"},
		"garbage"
	]}`
	require.NoError(t, kv.Set(domain.ProfilesKey, []byte(v1)))

	store, err := versionedstore.New(kv, domain.ProfilesKey, domain.ProfileMigrations)
	require.NoError(t, err)

	version, found, err := store.Version()
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 3, version)

	var book map[string]domain.Profile
	found, err = store.Get(&book)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, book, 2)
	require.Equal(t, "cypher1", book["alice"].EncryptedSeed)
	require.Equal(t, domain.NetworkMainnet, book["alice"].NetworkType)
	require.Equal(t, "cypher2", book["bob"].EncryptedSeed)
}

func TestAccountMigrations(t *testing.T) {
	t.Run("flatten", func(t *testing.T) {
		kv := inmemorystore.NewStore()
		v1 := `{"version":1,"data":{
			"alice":[
				{"id":"a1","name":"main","path":"m/44'/4343'/0'/0'/0'","publicKey":"pub1"},
				{"name":"imported","publicKey":"pub2"}
			],
			"bob":[
				{"id":"b1","name":"main","type":"seed","path":"m/44'/1'/0'/0'/0'"}
			]
		}}`
		require.NoError(t, kv.Set(domain.AccountsKey, []byte(v1)))

		store, err := versionedstore.New(kv, domain.AccountsKey, domain.AccountMigrations)
		require.NoError(t, err)

		var book map[string]domain.Account
		found, err := store.Get(&book)
		require.NoError(t, err)
		require.True(t, found)
		require.Len(t, book, 3)

		require.Equal(t, "alice", book["a1"].ProfileName)
		require.Equal(t, domain.AccountTypeSeed, book["a1"].Type)
		require.Equal(t, "bob", book["b1"].ProfileName)

		var imported domain.Account
		for id, a := range book {
			if a.Name == "imported" {
				imported = a
				require.Equal(t, id, a.ID)
			}
		}
		require.NotEmpty(t, imported.ID)
		require.Equal(t, domain.AccountTypePrivateKey, imported.Type)
	})

	t.Run("discard", func(t *testing.T) {
		kv := inmemorystore.NewStore()
		v1 := `{"version":1,"data":{"alice":"not a list"}}`
		require.NoError(t, kv.Set(domain.AccountsKey, []byte(v1)))

		store, err := versionedstore.New(kv, domain.AccountsKey, domain.AccountMigrations)
		require.NoError(t, err)

		_, found, err := store.Version()
		require.NoError(t, err)
		require.False(t, found)

		buf, err := kv.Get(domain.AccountsKey)
		require.NoError(t, err)
		require.Nil(t, buf)
	})

	t.Run("v2", func(t *testing.T) {
		kv := inmemorystore.NewStore()
		v2 := `{"version":2,"data":{"a1":{"id":"a1","profileName":"alice","name":"main","path":"m/44'/4343'/0'/0'/0'"}}}`
		require.NoError(t, kv.Set(domain.AccountsKey, []byte(v2)))

		store, err := versionedstore.New(kv, domain.AccountsKey, domain.AccountMigrations)
		require.NoError(t, err)

		var book map[string]domain.Account
		_, err = store.Get(&book)
		require.NoError(t, err)
		require.Equal(t, domain.AccountTypeSeed, book["a1"].Type)
	})
}
