package domain

import "errors"

var (
	// ErrProfileNotFound ...
	ErrProfileNotFound = errors.New("profile not found")
	// ErrProfileAlreadyExists ...
	ErrProfileAlreadyExists = errors.New("a profile with the same name already exists")
	// ErrAccountNotFound ...
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists ...
	ErrAccountAlreadyExists = errors.New("an account with the same id already exists")
	// ErrAccountNameTaken is returned when adding or renaming an account to a
	// name already used within the same profile.
	ErrAccountNameTaken = errors.New("account name is already used in profile")
	// ErrAccountAlreadyLinked is returned when linking a remote key to an
	// account that already has one.
	ErrAccountAlreadyLinked = errors.New("account is already linked to a remote key")
	// ErrAccountNotDerived is returned for operations that need an account
	// derived from the profile seed.
	ErrAccountNotDerived = errors.New("account is not derived from the profile seed")
	// ErrSettingsNotFound ...
	ErrSettingsNotFound = errors.New("network settings not found")

	// ErrInvalidPassword is returned when a password does not open the
	// profile's encrypted seed.
	ErrInvalidPassword = errors.New("password is not valid")
	// ErrNullPassword ...
	ErrNullPassword = errors.New("password must not be null")
	// ErrNullName ...
	ErrNullName = errors.New("name must not be null")
	// ErrNullGenerationHash ...
	ErrNullGenerationHash = errors.New("generation hash must not be null")
	// ErrInvalidNetworkType ...
	ErrInvalidNetworkType = errors.New("network type must be either mainnet or testnet")
	// ErrInvalidAccountType ...
	ErrInvalidAccountType = errors.New("account type must be either seed or privatekey")
	// ErrInvalidFeeMultiplier ...
	ErrInvalidFeeMultiplier = errors.New("fee multiplier must not be negative")
)
