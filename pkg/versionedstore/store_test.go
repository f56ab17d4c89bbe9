package versionedstore_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	inmemorystore "github.com/tdex-network/keyvault/pkg/kvstore/inmemory"
	"github.com/tdex-network/keyvault/pkg/versionedstore"
)

const testKey = "test"

var (
	toString = versionedstore.Migration{
		Description: "number to string",
		Migrate: func(data interface{}) (interface{}, error) {
			return fmt.Sprint(data), nil
		},
	}
	appendA = versionedstore.Migration{
		Description: "append A",
		Migrate: func(data interface{}) (interface{}, error) {
			return data.(string) + "A", nil
		},
	}
	appendZ = versionedstore.Migration{
		Description: "append Z",
		Migrate: func(data interface{}) (interface{}, error) {
			return data.(string) + "Z", nil
		},
	}
	discard = versionedstore.Migration{
		Description: "discard",
		Migrate: func(data interface{}) (interface{}, error) {
			return nil, nil
		},
	}
)

func TestVersionedStore(t *testing.T) {
	t.Run("GetSetRemove", testGetSetRemove)
	t.Run("MigrationChain", testMigrationChain)
	t.Run("PartialMigration", testPartialMigration)
	t.Run("DowngradeNotSupported", testDowngradeNotSupported)
	t.Run("DiscardRecord", testDiscardRecord)
	t.Run("DiscardRecordWithTypedNil", testDiscardRecordWithTypedNil)
	t.Run("FailingMigration", testFailingMigration)
	t.Run("StructuredData", testStructuredData)
	t.Run("Update", testUpdate)
	t.Run("InvalidArguments", testInvalidArguments)
}

func testGetSetRemove(t *testing.T) {
	raw := inmemorystore.NewStore()

	store, err := versionedstore.New(raw, testKey, []versionedstore.Migration{toString})
	require.NoError(t, err)
	require.Equal(t, 2, store.LatestVersion())
	require.Equal(t, testKey, store.Key())

	var value string
	found, err := store.Get(&value)
	require.NoError(t, err)
	require.False(t, found)

	_, found, err = store.Version()
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Set("hello"))

	found, err = store.Get(&value)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "hello", value)

	version, found, err := store.Version()
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 2, version)

	buf, err := raw.Get(testKey)
	require.NoError(t, err)
	require.JSONEq(t, `{"version":2,"data":"hello"}`, string(buf))

	require.NoError(t, store.Remove())
	found, err = store.Get(&value)
	require.NoError(t, err)
	require.False(t, found)
}

func testMigrationChain(t *testing.T) {
	raw := inmemorystore.NewStore()

	initial, err := versionedstore.New(raw, testKey, nil)
	require.NoError(t, err)
	require.NoError(t, initial.Set(123))

	migrations := []versionedstore.Migration{toString, appendA, appendZ}
	store, err := versionedstore.New(raw, testKey, migrations)
	require.NoError(t, err)

	var value string
	found, err := store.Get(&value)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "123AZ", value)

	version, _, err := store.Version()
	require.NoError(t, err)
	require.Equal(t, 4, version)

	// Opening the store again at the latest version is a no-op.
	store, err = versionedstore.New(raw, testKey, migrations)
	require.NoError(t, err)

	found, err = store.Get(&value)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "123AZ", value)

	version, _, err = store.Version()
	require.NoError(t, err)
	require.Equal(t, 4, version)
}

func testPartialMigration(t *testing.T) {
	raw := inmemorystore.NewStore()
	require.NoError(t, raw.Set(testKey, []byte(`{"version":2,"data":"123"}`)))

	store, err := versionedstore.New(
		raw, testKey, []versionedstore.Migration{toString, appendA, appendZ},
	)
	require.NoError(t, err)

	var value string
	_, err = store.Get(&value)
	require.NoError(t, err)
	require.Equal(t, "123AZ", value)
}

func testDowngradeNotSupported(t *testing.T) {
	raw := inmemorystore.NewStore()
	require.NoError(t, raw.Set(testKey, []byte(`{"version":4,"data":"123AZ"}`)))

	_, err := versionedstore.New(
		raw, testKey, []versionedstore.Migration{toString, appendA},
	)
	require.ErrorIs(t, err, versionedstore.ErrDowngradeNotSupported)

	buf, err := raw.Get(testKey)
	require.NoError(t, err)
	require.Equal(t, `{"version":4,"data":"123AZ"}`, string(buf))
}

func testDiscardRecord(t *testing.T) {
	raw := inmemorystore.NewStore()
	require.NoError(t, raw.Set(testKey, []byte(`{"version":1,"data":123}`)))

	store, err := versionedstore.New(
		raw, testKey, []versionedstore.Migration{toString, discard, appendZ},
	)
	require.NoError(t, err)

	var value string
	found, err := store.Get(&value)
	require.NoError(t, err)
	require.False(t, found)

	buf, err := raw.Get(testKey)
	require.NoError(t, err)
	require.Nil(t, buf)

	// A new record starts directly at the latest version.
	require.NoError(t, store.Set("fresh"))
	version, _, err := store.Version()
	require.NoError(t, err)
	require.Equal(t, 4, version)
}

func testDiscardRecordWithTypedNil(t *testing.T) {
	tests := []struct {
		name   string
		result interface{}
	}{
		{"nil_map", map[string]interface{}(nil)},
		{"nil_slice", []interface{}(nil)},
		{"nil_pointer", (*string)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := inmemorystore.NewStore()
			require.NoError(t, raw.Set(testKey, []byte(`{"version":1,"data":{"a":1}}`)))

			result := tt.result
			discardTyped := versionedstore.Migration{
				Description: "discard with typed nil",
				Migrate: func(data interface{}) (interface{}, error) {
					return result, nil
				},
			}

			store, err := versionedstore.New(
				raw, testKey, []versionedstore.Migration{discardTyped},
			)
			require.NoError(t, err)

			buf, err := raw.Get(testKey)
			require.NoError(t, err)
			require.Nil(t, buf)

			found, err := store.Get(&map[string]int{})
			require.NoError(t, err)
			require.False(t, found)
		})
	}
}

func testFailingMigration(t *testing.T) {
	raw := inmemorystore.NewStore()
	require.NoError(t, raw.Set(testKey, []byte(`{"version":1,"data":123}`)))

	expectedErr := errors.New("something went wrong")
	failing := versionedstore.Migration{
		Description: "failing",
		Migrate: func(interface{}) (interface{}, error) {
			return nil, expectedErr
		},
	}

	_, err := versionedstore.New(
		raw, testKey, []versionedstore.Migration{toString, failing, appendZ},
	)
	require.ErrorIs(t, err, expectedErr)

	// Partial results must not be persisted.
	buf, err := raw.Get(testKey)
	require.NoError(t, err)
	require.Equal(t, `{"version":1,"data":123}`, string(buf))
}

func testStructuredData(t *testing.T) {
	type profile struct {
		Name          string `json:"name"`
		EncryptedSeed string `json:"encryptedSeed"`
		Accounts      int    `json:"accounts"`
	}

	raw := inmemorystore.NewStore()
	require.NoError(t, raw.Set(
		testKey, []byte(`{"version":1,"data":{"name":"alice","seed":"abc","accounts":18446744073709551615}}`),
	))

	renameSeed := versionedstore.Migration{
		Description: "rename seed to encryptedSeed",
		Migrate: func(data interface{}) (interface{}, error) {
			m, ok := data.(map[string]interface{})
			if !ok {
				return nil, nil
			}
			m["encryptedSeed"] = m["seed"]
			delete(m, "seed")
			m["accounts"] = 2
			return m, nil
		},
	}

	store, err := versionedstore.New(raw, testKey, []versionedstore.Migration{renameSeed})
	require.NoError(t, err)

	var p profile
	found, err := store.Get(&p)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, profile{Name: "alice", EncryptedSeed: "abc", Accounts: 2}, p)
}

func testUpdate(t *testing.T) {
	store, err := versionedstore.New(inmemorystore.NewStore(), testKey, nil)
	require.NoError(t, err)

	counters := map[string]int{}
	err = store.Update(&counters, func(found bool) error {
		require.False(t, found)
		counters["a"] = 1
		return nil
	})
	require.NoError(t, err)

	counters = map[string]int{}
	err = store.Update(&counters, func(found bool) error {
		require.True(t, found)
		counters["a"]++
		return nil
	})
	require.NoError(t, err)

	expectedErr := errors.New("abort")
	err = store.Update(&counters, func(bool) error {
		counters["a"] = 100
		return expectedErr
	})
	require.ErrorIs(t, err, expectedErr)

	stored := map[string]int{}
	_, err = store.Get(&stored)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"a": 2}, stored)
}

func testInvalidArguments(t *testing.T) {
	_, err := versionedstore.New(nil, testKey, nil)
	require.ErrorIs(t, err, versionedstore.ErrNullStore)

	_, err = versionedstore.New(inmemorystore.NewStore(), "", nil)
	require.ErrorIs(t, err, versionedstore.ErrNullKey)

	_, err = versionedstore.New(
		inmemorystore.NewStore(), testKey, []versionedstore.Migration{{}},
	)
	require.ErrorIs(t, err, versionedstore.ErrNullMigration)

	raw := inmemorystore.NewStore()
	require.NoError(t, raw.Set(testKey, []byte(`{"version":0,"data":1}`)))
	_, err = versionedstore.New(raw, testKey, []versionedstore.Migration{toString})
	require.ErrorIs(t, err, versionedstore.ErrInvalidVersion)
}
