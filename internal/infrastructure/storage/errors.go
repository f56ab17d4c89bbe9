package storage

import "errors"

var (
	// ErrNullUpdateResult is returned when an update function returns neither
	// a value nor an error.
	ErrNullUpdateResult = errors.New("update function returned a nil value")
)
