package ports

import (
	"context"
	"time"
)

// CacheStats is a point-in-time snapshot of one cache namespace. Sizes are
// byte counts; TotalSize is always KeysSize + ValuesSize.
type CacheStats struct {
	Hits         uint64 `json:"hits"`
	Misses       uint64 `json:"misses"`
	Evictions    uint64 `json:"evictions"`
	NumberOfKeys int    `json:"number_of_keys"`
	KeysSize     int    `json:"keys_size"`
	ValuesSize   int    `json:"values_size"`
	TotalSize    int    `json:"total_size"`
}

// Cache is the namespaced key-value contract consumed by the repository layer
// and the rate limiter. Implementations store opaque bytes under keys minted
// by Key; they know nothing about domain entities.
//
// Set is insert-once: replacing a value means Delete then Set. A Get miss is
// a normal outcome, not an error. Repository callers must treat any cache
// error as a fall-through to the primary datastore; only the rate limiter is
// allowed to turn cache failures into request failures.
type Cache interface {
	// Key builds the canonical "namespace:id" key. Pure; no side effects.
	Key(id string) string
	// Set inserts value with the given TTL and returns the key. Fails on a
	// live duplicate, empty key, non-positive TTL, or an unsatisfiable
	// capacity check.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) (string, error)
	// SetMany inserts the whole batch or nothing.
	SetMany(ctx context.Context, values map[string][]byte, ttl time.Duration) error
	// Get returns the value for key. ok=false reports a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// GetMany looks up each key independently; the result holds only hits.
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)
	// Delete removes key; a missing key is an error (callers are expected to
	// know the key exists).
	Delete(ctx context.Context, key string) error
	// DeleteMany removes every key or none, reporting the missing ones.
	DeleteMany(ctx context.Context, keys []string) error
	// Flush drops all entries in the namespace.
	Flush(ctx context.Context) error
	// Stats returns a point-in-time snapshot.
	Stats() CacheStats
}
