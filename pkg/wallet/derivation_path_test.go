package wallet

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHDPath(t *testing.T) {
	tests := []struct {
		input  string
		output HDPath
		err    error
	}{
		{"m/44'/4343'/0'/0'/0'", HDPath{44, 4343, 0, 0, 0}, nil},
		{"m/44'/1'/3'/2'/1'", HDPath{44, 1, 3, 2, 1}, nil},
		{"  m/44'/4343'/9'/0'/0'\n", HDPath{44, 4343, 9, 0, 0}, nil},
		{"m/44'/4343'/2147483647'/0'/0'", HDPath{44, 4343, MaxHardenedValue, 0, 0}, nil},

		{"", HDPath{}, ErrInvalidPath},
		{"m", HDPath{}, ErrInvalidPath},
		{"m/", HDPath{}, ErrInvalidPath},
		{"m/44'/4343'/0'/0'", HDPath{}, ErrInvalidPath},         // missing level
		{"m/44'/4343'/0'/0'/0'/0'", HDPath{}, ErrInvalidPath},   // extra level
		{"m/44'/4343'/0'/0/0'", HDPath{}, ErrInvalidPath},       // not hardened
		{"/44'/4343'/0'/0'/0'", HDPath{}, ErrInvalidPath},       // missing m
		{"44'/4343'/0'/0'/0'/0'", HDPath{}, ErrInvalidPath},     // relative
		{"m/84'/4343'/0'/0'/0'", HDPath{}, ErrInvalidPath},      // wrong purpose
		{"m/44'/4343'/-1'/0'/0'", HDPath{}, ErrInvalidPath},     // negative
		{"m/44'/4343'/+1'/0'/0'", HDPath{}, ErrInvalidPath},     // sign
		{"m/44'/4343'/0x1'/0'/0'", HDPath{}, ErrInvalidPath},    // hex
		{"m/44'/4343'/2147483648'/0'/0'", HDPath{}, ErrInvalidPath}, // overflow
		{"m/44'/4343'/'/0'/0'", HDPath{}, ErrInvalidPath},
		{"m/44'/4343'//0'/0'", HDPath{}, ErrInvalidPath},
	}

	for _, tt := range tests {
		path, err := ParseHDPath(tt.input)
		if tt.err != nil {
			require.ErrorIs(t, err, tt.err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.output, path)
	}
}

func TestHDPathString(t *testing.T) {
	path := HDPath{44, 4343, 3, 2, 1}
	require.Equal(t, "m/44'/4343'/3'/2'/1'", path.String())

	parsed, err := ParseHDPath(path.String())
	require.NoError(t, err)
	require.Equal(t, path, parsed)

	require.Equal(t, []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + 4343,
		hdkeychain.HardenedKeyStart + 3,
		hdkeychain.HardenedKeyStart + 2,
		hdkeychain.HardenedKeyStart + 1,
	}, path.ToBIP32())
}

func TestPathForSeedIndex(t *testing.T) {
	deriver := NewDeriver(DefaultCoinType)

	for i := 0; i <= MaxSeedIndex; i++ {
		path, err := deriver.PathForSeedIndex(i)
		require.NoError(t, err)
		require.Equal(t, HDPath{44, 4343, uint32(i), 0, 0}, path)
	}

	for _, i := range []int{-1, 10, 100} {
		_, err := deriver.PathForSeedIndex(i)
		require.ErrorIs(t, err, ErrInvalidSeedIndex)
	}

	require.Equal(t, "m/44'/4343'/0'/0'/0'", deriver.DefaultPath().String())
	require.Equal(t, "m/44'/1'/0'/0'/0'", NewDeriver(TestnetCoinType).DefaultPath().String())
}

func TestParseSeedIndex(t *testing.T) {
	index, err := ParseSeedIndex("7")
	require.NoError(t, err)
	require.Equal(t, 7, index)

	for _, str := range []string{"", " ", "-1", "10", "1.5", "null", "undefined"} {
		_, err := ParseSeedIndex(str)
		require.ErrorIs(t, err, ErrInvalidSeedIndex, str)
	}
}

func TestShiftLevel(t *testing.T) {
	t.Run("increment", func(t *testing.T) {
		path, err := IncrementPathLevel("m/44'/4343'/0'/0'/0'", LevelAccount, 1)
		require.NoError(t, err)
		require.Equal(t, "m/44'/4343'/1'/0'/0'", path)

		path, err = IncrementPathLevel("m/44'/4343'/0'/0'/0'", LevelAddress, 5)
		require.NoError(t, err)
		require.Equal(t, "m/44'/4343'/0'/0'/5'", path)
	})

	t.Run("decrement", func(t *testing.T) {
		path, err := DecrementPathLevel("m/44'/4343'/3'/0'/0'", LevelAccount, 2)
		require.NoError(t, err)
		require.Equal(t, "m/44'/4343'/1'/0'/0'", path)

		path, err = DecrementPathLevel("m/44'/4343'/3'/0'/0'", LevelAccount, 3)
		require.NoError(t, err)
		require.Equal(t, "m/44'/4343'/0'/0'/0'", path)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := DecrementPathLevel("m/44'/4343'/0'/0'/0'", LevelAccount, 1)
		require.ErrorIs(t, err, ErrInvalidDelta)

		_, err = IncrementPathLevel("m/44'/4343'/1'/0'/0'", LevelAccount, -2)
		require.ErrorIs(t, err, ErrInvalidDelta)

		_, err = IncrementPathLevel("m/44'/4343'/2147483647'/0'/0'", LevelAccount, 1)
		require.ErrorIs(t, err, ErrInvalidDelta)

		_, err = IncrementPathLevel("m/44'/4343'/0'/0/0", LevelAccount, 1)
		require.ErrorIs(t, err, ErrInvalidPath)

		_, err = IncrementPathLevel("m/44'/4343'/0'/0'/0'", Level(5), 1)
		require.ErrorIs(t, err, ErrInvalidLevel)
	})

	t.Run("immutable", func(t *testing.T) {
		path := HDPath{44, 4343, 1, 0, 0}
		shifted, err := path.IncrementLevel(LevelChange, 1)
		require.NoError(t, err)
		require.Equal(t, HDPath{44, 4343, 1, 0, 0}, path)
		require.Equal(t, HDPath{44, 4343, 1, 1, 0}, shifted)
	})
}

func TestRemoteAccountPath(t *testing.T) {
	accountPath := "m/44'/4343'/2'/0'/0'"

	for r := MinRemoteIndex; r <= MaxRemoteIndex; r++ {
		path, err := RemoteAccountPath(accountPath, r)
		require.NoError(t, err)
		require.Equal(t, HDPath{44, 4343, 2, uint32(r), 0}, path)
	}

	for _, r := range []int{-1, 0, 11} {
		_, err := RemoteAccountPath(accountPath, r)
		require.ErrorIs(t, err, ErrInvalidRemoteIndex)
	}

	_, err := RemoteAccountPath("m/44'/4343'/2'", 1)
	require.ErrorIs(t, err, ErrInvalidPath)

	for _, str := range []string{"", "0", "11", "null"} {
		_, err := ParseRemoteIndex(str)
		require.ErrorIs(t, err, ErrInvalidRemoteIndex, str)
	}
}

func TestNextAccountPath(t *testing.T) {
	deriver := NewDeriver(DefaultCoinType)
	pathAt := func(i int) string {
		return HDPath{44, 4343, uint32(i), 0, 0}.String()
	}

	tests := []struct {
		name     string
		known    []string
		expected int
	}{
		{"empty", nil, 0},
		{"gap_at_start", []string{pathAt(1), pathAt(2)}, 0},
		{"contiguous", []string{pathAt(0), pathAt(1), pathAt(2)}, 3},
		{"gap_in_middle", []string{pathAt(0), pathAt(2), pathAt(3)}, 1},
		{"unordered_duplicates", []string{pathAt(2), pathAt(0), pathAt(0), pathAt(1)}, 3},
		{"remote_paths_share_account", []string{pathAt(0), "m/44'/4343'/1'/1'/0'"}, 2},
		{"beyond_seed_range", []string{
			pathAt(0), pathAt(1), pathAt(2), pathAt(3), pathAt(4),
			pathAt(5), pathAt(6), pathAt(7), pathAt(8), pathAt(9),
		}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := deriver.NextAccountPath(tt.known)
			require.NoError(t, err)
			require.Equal(t, pathAt(tt.expected), path.String())
		})
	}

	_, err := deriver.NextAccountPath([]string{pathAt(0), "m/0/0"})
	require.ErrorIs(t, err, ErrInvalidPath)
}
