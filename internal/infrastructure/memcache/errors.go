package memcache

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAlreadyCached is returned by Set/SetMany when a live entry exists for
	// the key. Set is an insert, not an upsert: callers must Delete first to
	// replace a value.
	ErrAlreadyCached = errors.New("key is already cached")

	// ErrNotCached is returned by Delete/DeleteMany when a requested key has
	// no live entry.
	ErrNotCached = errors.New("key is not cached")

	ErrEmptyKey   = errors.New("cache key must not be empty")
	ErrInvalidTTL = errors.New("ttl must be greater than zero")
)

// CapacityError reports an insert batch that cannot fit even after maximal
// eviction. Nothing is mutated before it is returned.
type CapacityError struct {
	Namespace string
	Current   int
	Max       int
	Batch     int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cache %q: batch of %d exceeds capacity %d (current size %d)",
		e.Namespace, e.Batch, e.Max, e.Current)
}

// NotCachedError carries the keys a DeleteMany found missing. It unwraps to
// ErrNotCached so callers can branch with errors.Is.
type NotCachedError struct {
	Keys []string
}

func (e *NotCachedError) Error() string {
	return fmt.Sprintf("keys not cached: %s", strings.Join(e.Keys, ", "))
}

func (e *NotCachedError) Unwrap() error { return ErrNotCached }
