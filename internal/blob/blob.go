// Package blob stores the raw bytes of uploaded files. Datasets
// reference blobs by an opaque key; the engine does not care where the
// bytes physically live.
package blob

import "errors"

// ErrNotExist is returned by Get when a key no longer resolves.
var ErrNotExist = errors.New("blob does not exist")

// Store is a content store keyed by opaque string keys.
type Store interface {
	// Init prepares the backing location. It is idempotent and safe to
	// call when the location already exists.
	Init() error

	// Put durably writes data under key, replacing any previous value.
	Put(key string, data []byte) error

	// Get returns the bytes stored under key, or ErrNotExist.
	Get(key string) ([]byte, error)

	// Delete removes the bytes stored under key. Deleting a missing key
	// is not an error.
	Delete(key string) error
}
