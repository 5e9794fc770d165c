// Package cache stores encoded analysis reports keyed by blueprint content.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: disables caching
//
// Keys come from a [Keyer] so that callers never build key strings by hand.
// [ScopedKeyer] namespaces keys, which lets the server and the CLI share a
// Redis instance.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is used when the configuration does not name one.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value and true on a hit, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
