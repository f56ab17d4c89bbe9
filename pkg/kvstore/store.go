package kvstore

import "errors"

var (
	// ErrNullKey is returned when the key of an entry is empty.
	ErrNullKey = errors.New("key must not be null")
	// ErrNullValue is returned when trying to store an empty value. Entries
	// are removed with Remove.
	ErrNullValue = errors.New("value must not be null")
	// ErrStoreClosed is returned when operating on a closed store.
	ErrStoreClosed = errors.New("store is closed")
)

// Store interface defines the methods for a byte oriented key/value DB that
// persists its entries across restarts.
type Store interface {
	// Get returns the value stored for key, or nil if there is none.
	Get(key string) (value []byte, err error)
	// Set stores value for key, replacing any previous value.
	Set(key string, value []byte) (err error)
	// Remove deletes the entry for key. Removing a missing key is not an error.
	Remove(key string) (err error)
	// Close closes the connection to the DB.
	Close() (err error)
}

// ValidateEntry checks the arguments of a write operation.
func ValidateEntry(key string, value []byte) error {
	if len(key) <= 0 {
		return ErrNullKey
	}
	if len(value) <= 0 {
		return ErrNullValue
	}
	return nil
}

// ValidateKey checks the key of a read or remove operation.
func ValidateKey(key string) error {
	if len(key) <= 0 {
		return ErrNullKey
	}
	return nil
}
