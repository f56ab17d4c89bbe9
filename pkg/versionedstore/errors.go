package versionedstore

import "errors"

var (
	// ErrDowngradeNotSupported is returned when the stored record has a version
	// higher than the latest one known by the running code.
	ErrDowngradeNotSupported = errors.New("record version is higher than latest " +
		"known version, downgrade is not supported")
	// ErrInvalidVersion is returned when the stored record reports a version
	// lower than 1.
	ErrInvalidVersion = errors.New("record version must be greater than 0")
	// ErrNullKey ...
	ErrNullKey = errors.New("storage key must not be null")
	// ErrNullStore ...
	ErrNullStore = errors.New("raw store must not be null")
	// ErrNullMigration ...
	ErrNullMigration = errors.New("migration function must not be null")
)
