// Package kv provides the persisted key-value store backing the reading
// history. Values are opaque strings (JSON documents in practice).
package kv

import "context"

// Store is a minimal get/set/remove contract over a persisted store.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases underlying resources.
	Close() error
}
