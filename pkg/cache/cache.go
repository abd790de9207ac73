// Package cache stores byte payloads under string keys.
//
// The analyzer uses it to remember the dependency ids declared inside package
// archives, so repeated runs over the same solutions do not reopen and
// re-parse every .nupkg. Three backends are provided:
//
//   - [FileCache]: JSON files under a directory, used by the CLI
//   - [MemoryCache]: a map, scoped to one process
//   - [NullCache]: stores nothing (--no-cache)
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with optional expiry.
type Cache interface {
	// Get returns the stored data and whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
