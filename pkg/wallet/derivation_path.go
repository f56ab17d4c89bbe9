package wallet

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

const (
	// Purpose is the BIP44 purpose, first level of every HDPath.
	Purpose uint32 = 44
	// DefaultCoinType is the coin type of main network accounts.
	DefaultCoinType uint32 = 4343
	// TestnetCoinType is the coin type shared by all test networks.
	TestnetCoinType uint32 = 1

	// MaxHardenedValue is the max value for hardened indexes of BIP32
	// derivation paths
	MaxHardenedValue = math.MaxUint32 - hdkeychain.HardenedKeyStart

	// MaxSeedIndex is the highest index accepted by PathForSeedIndex.
	MaxSeedIndex = 9
	// MinRemoteIndex and MaxRemoteIndex bound the change level values of
	// remote account paths.
	MinRemoteIndex = 1
	MaxRemoteIndex = 10

	pathLevels = 5
)

// Level identifies one of the hardened segments of an HDPath.
type Level int

const (
	LevelPurpose Level = iota
	LevelCoinType
	LevelAccount
	LevelChange
	LevelAddress
)

var levelNames = map[Level]string{
	LevelPurpose:  "purpose",
	LevelCoinType: "coin type",
	LevelAccount:  "account",
	LevelChange:   "change",
	LevelAddress:  "address",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

func (l Level) validate() error {
	if l < LevelPurpose || l > LevelAddress {
		return ErrInvalidLevel
	}
	return nil
}

// HDPath is the internal representation of a fully hardened derivation path
// m/44'/coin'/account'/change'/address'. Segments are stored without the
// hardened offset.
type HDPath [pathLevels]uint32

// ParseHDPath converts a derivation path string to the internal
// representation
func ParseHDPath(strPath string) (HDPath, error) {
	var path HDPath

	elems := strings.Split(strings.TrimSpace(strPath), "/")
	if len(elems) != pathLevels+1 || containsEmptyString(elems) {
		return path, ErrInvalidPath
	}
	if elems[0] != "m" {
		return path, ErrInvalidPath
	}

	for i, elem := range elems[1:] {
		if !strings.HasSuffix(elem, "'") {
			return path, ErrInvalidPath
		}
		elem = strings.TrimSuffix(elem, "'")
		value, err := strconv.ParseUint(elem, 10, 32)
		if err != nil || value > uint64(MaxHardenedValue) {
			return path, ErrInvalidPath
		}
		path[i] = uint32(value)
	}

	if path[LevelPurpose] != Purpose {
		return path, ErrInvalidPath
	}
	return path, nil
}

// String converts a derivation path to its canonical representation
func (p HDPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, segment := range p {
		fmt.Fprintf(&b, "/%d'", segment)
	}
	return b.String()
}

// ToBIP32 returns the path segments with the hardened offset applied, ready
// to be used for key derivation.
func (p HDPath) ToBIP32() []uint32 {
	path := make([]uint32, 0, pathLevels)
	for _, segment := range p {
		path = append(path, hdkeychain.HardenedKeyStart+segment)
	}
	return path
}

// IncrementLevel returns a copy of the path with delta added to the given
// level.
func (p HDPath) IncrementLevel(level Level, delta int) (HDPath, error) {
	return p.shift(level, int64(delta))
}

// DecrementLevel returns a copy of the path with delta subtracted from the
// given level.
func (p HDPath) DecrementLevel(level Level, delta int) (HDPath, error) {
	return p.shift(level, -int64(delta))
}

// SetLevel returns a copy of the path with the given level set to value.
func (p HDPath) SetLevel(level Level, value uint32) (HDPath, error) {
	if err := level.validate(); err != nil {
		return p, err
	}
	if value > MaxHardenedValue {
		return p, ErrInvalidDelta
	}
	p[level] = value
	return p, nil
}

func (p HDPath) shift(level Level, delta int64) (HDPath, error) {
	if err := level.validate(); err != nil {
		return p, err
	}
	value := int64(p[level]) + delta
	if value < 0 || value > int64(MaxHardenedValue) {
		return p, ErrInvalidDelta
	}
	p[level] = uint32(value)
	return p, nil
}

// IncrementPathLevel parses the given path and increments one of its levels.
func IncrementPathLevel(path string, level Level, delta int) (string, error) {
	p, err := ParseHDPath(path)
	if err != nil {
		return "", err
	}
	shifted, err := p.IncrementLevel(level, delta)
	if err != nil {
		return "", err
	}
	return shifted.String(), nil
}

// DecrementPathLevel parses the given path and decrements one of its levels.
func DecrementPathLevel(path string, level Level, delta int) (string, error) {
	p, err := ParseHDPath(path)
	if err != nil {
		return "", err
	}
	shifted, err := p.DecrementLevel(level, delta)
	if err != nil {
		return "", err
	}
	return shifted.String(), nil
}

// RemoteAccountPath returns the path of the remote key linked to the given
// account path, that is the account path with the change level set to
// remoteIndex.
func RemoteAccountPath(accountPath string, remoteIndex int) (HDPath, error) {
	if remoteIndex < MinRemoteIndex || remoteIndex > MaxRemoteIndex {
		return HDPath{}, ErrInvalidRemoteIndex
	}
	p, err := ParseHDPath(accountPath)
	if err != nil {
		return HDPath{}, err
	}
	return p.SetLevel(LevelChange, uint32(remoteIndex))
}

// ParseSeedIndex converts user input into a seed index. Missing or non
// integer values are rejected with ErrInvalidSeedIndex.
func ParseSeedIndex(str string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil || index < 0 || index > MaxSeedIndex {
		return 0, ErrInvalidSeedIndex
	}
	return index, nil
}

// ParseRemoteIndex converts user input into a remote index. Missing or non
// integer values are rejected with ErrInvalidRemoteIndex.
func ParseRemoteIndex(str string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil || index < MinRemoteIndex || index > MaxRemoteIndex {
		return 0, ErrInvalidRemoteIndex
	}
	return index, nil
}

// Deriver builds the account paths of a given coin type.
type Deriver struct {
	CoinType uint32
}

// NewDeriver returns a Deriver for the given coin type.
func NewDeriver(coinType uint32) Deriver {
	return Deriver{coinType}
}

// DefaultPath returns the path of the first seed account.
func (d Deriver) DefaultPath() HDPath {
	return d.accountPath(0)
}

// PathForSeedIndex returns the canonical path of the seed account at the
// given index.
func (d Deriver) PathForSeedIndex(index int) (HDPath, error) {
	if index < 0 || index > MaxSeedIndex {
		return HDPath{}, ErrInvalidSeedIndex
	}
	return d.accountPath(uint32(index)), nil
}

// NextAccountPath returns the path of the first account index not used by
// any of the known paths.
func (d Deriver) NextAccountPath(knownPaths []string) (HDPath, error) {
	used := make(map[uint32]struct{}, len(knownPaths))
	for _, str := range knownPaths {
		p, err := ParseHDPath(str)
		if err != nil {
			return HDPath{}, fmt.Errorf("%s: %w", str, err)
		}
		used[p[LevelAccount]] = struct{}{}
	}

	index := uint32(0)
	for {
		if _, ok := used[index]; !ok {
			break
		}
		index++
	}

	return d.accountPath(index), nil
}

func (d Deriver) accountPath(index uint32) HDPath {
	return HDPath{Purpose, d.CoinType, index, 0, 0}
}
