// Package cache stores computed layouts so repeated requests for the same
// graph and parameters skip the engine.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for API deployments
//   - [MongoCache]: shared cache with TTL indexes
//   - [NullCache]: disables caching
//
// # Keys
//
// A [Keyer] derives keys from a graph hash and the options that influence
// the result. [ScopedKeyer] prefixes every key for tenant isolation.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	// TTLLayout is how long a computed layout stays valid. Layouts are pure
	// functions of their key, so only storage pressure limits it.
	TTLLayout = 7 * 24 * time.Hour

	// TTLNone stores an entry without expiry.
	TTLNone time.Duration = 0
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries report a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Clear removes every entry from c if the backend supports it.
func Clear(ctx context.Context, c Cache) error {
	if cl, ok := c.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return ErrUnsupported
}
