package domain

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tdex-network/keyvault/pkg/wallet"
)

// NetworkType identifies the kind of network a profile lives on.
type NetworkType string

const (
	NetworkMainnet NetworkType = "mainnet"
	NetworkTestnet NetworkType = "testnet"
)

// Validate ...
func (n NetworkType) Validate() error {
	switch n {
	case NetworkMainnet, NetworkTestnet:
		return nil
	default:
		return ErrInvalidNetworkType
	}
}

// CoinType returns the coin type level used for the account paths of the
// network.
func (n NetworkType) CoinType() uint32 {
	if n == NetworkTestnet {
		return wallet.TestnetCoinType
	}
	return wallet.DefaultCoinType
}

// Params returns the chain params used to serialize the extended keys of the
// network.
func (n NetworkType) Params() *chaincfg.Params {
	if n == NetworkTestnet {
		return &chaincfg.TestNet3Params
	}
	return &chaincfg.MainNetParams
}
