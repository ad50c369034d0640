// Package kvstore defines the string-keyed store the repository persists its
// document into, plus an in-memory implementation.
package kvstore

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned by Get when the key has no value
	ErrNotFound = errors.New("kvstore: key not found")
	// ErrQuotaExceeded is returned when a write would exceed the store's capacity
	ErrQuotaExceeded = errors.New("kvstore: quota exceeded")
)

// Reader reads values by key
type Reader interface {
	Get(key string) ([]byte, error)
}

// Tx is a read-write view over the store that is committed as a whole
type Tx interface {
	Reader
	Set(key string, value []byte) error
	Delete(key string) error
}

// Store is a synchronous key-value store
type Store interface {
	Tx
	// Update runs fn in a transaction. Writes made through tx become visible
	// only if fn returns nil and the commit succeeds.
	Update(fn func(tx Tx) error) error
	Close() error
}

// IsNotFound reports whether err was caused by a missing key
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}
