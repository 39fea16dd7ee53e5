// Package storage implements the client's durable key-value store: a
// string-keyed persistent map that survives restarts. Records, the
// favorites set and the created-records index all live here.
package storage

import "context"

// KV is the durable store contract consumed by the cache/sync engine and
// the favorites manager.
type KV interface {
	// Get returns the stored value for key. The second return value is
	// false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set overwrites the value for key. Writes are atomic per key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
