// Package cache stores rendered diagram artifacts.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a directory (CLI)
//   - [RedisCache]: shared cache for several server instances
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] from the hash of the converted node graph
// and the options that influence the artifact, such as format and pan
// translation. Centering state itself is never cached: the offset is part of
// the key, not a value.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 7 * 24 * time.Hour
