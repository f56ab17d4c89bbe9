package domain

import "github.com/shopspring/decimal"

// NetworkSettings are the preferences a user keeps for a single network.
type NetworkSettings struct {
	NodeURL          string          `json:"nodeUrl"`
	ExplorerURL      string          `json:"explorerUrl,omitempty"`
	FeeMultiplier    decimal.Decimal `json:"feeMultiplier"`
	DefaultAccountID string          `json:"defaultAccountId,omitempty"`
}

// Validate ...
func (s NetworkSettings) Validate() error {
	if s.FeeMultiplier.IsNegative() {
		return ErrInvalidFeeMultiplier
	}
	return nil
}
