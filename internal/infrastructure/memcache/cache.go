// Package memcache provides the in-process namespaced cache backing the
// repository layer and the request rate limiter.
//
// Each Cache instance owns one namespace. Entries carry an absolute expiry
// time; capacity is bounded and reclaimed by expiry-order eviction (entries
// closest to expiring are evicted first — deliberately not LRU).
package memcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cartline/storefront/go/internal/core/ports"
)

var _ ports.Cache = (*Cache)(nil)

// DefaultMaxEntries bounds a namespace instance when no explicit capacity is
// configured.
const DefaultMaxEntries = 1000

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// Options configures a Cache. The zero value is usable: DefaultMaxEntries
// capacity, wall clock, no background sweep.
type Options struct {
	// MaxEntries bounds the number of live entries. <= 0 means DefaultMaxEntries.
	MaxEntries int
	// Clock supplies the current time; nil means time.Now. Tests inject a
	// fake clock to exercise expiry without sleeping.
	Clock func() time.Time
	// CleanupInterval enables a background sweep of expired entries when > 0.
	// Lazy expiration on read works regardless.
	CleanupInterval time.Duration
}

// Cache is a concurrency-safe key-value store scoped to a single namespace.
//
// Set is insert-once: a live key must be deleted before it can be written
// again. Every primitive is atomic under the instance mutex; read-modify-write
// sequences built on top of the primitives are not (see the rate limiter).
type Cache struct {
	namespace  string
	maxEntries int
	now        func() time.Time

	mu        sync.Mutex
	entries   map[string]*entry
	hits      uint64
	misses    uint64
	evictions uint64

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewCache creates a cache bound to namespace. The background sweep goroutine,
// if enabled, runs until Close.
func NewCache(namespace string, opts Options) *Cache {
	max := opts.MaxEntries
	if max <= 0 {
		max = DefaultMaxEntries
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	c := &Cache{
		namespace:  namespace,
		maxEntries: max,
		now:        now,
		entries:    make(map[string]*entry),
		done:       make(chan struct{}),
	}

	if opts.CleanupInterval > 0 {
		c.wg.Add(1)
		go c.sweepLoop(opts.CleanupInterval)
	}

	return c
}

// Namespace returns the namespace this instance is bound to.
func (c *Cache) Namespace() string { return c.namespace }

// Key builds the canonical cache key for id: "namespace:id". Callers must not
// construct keys by hand; this is the only key constructor.
func (c *Cache) Key(id string) string {
	return c.namespace + ":" + id
}

// Set inserts value under key with the given TTL and returns the key.
//
// It fails with ErrAlreadyCached if a live entry exists, ErrEmptyKey /
// ErrInvalidTTL on bad input, and a CapacityError when the insert cannot fit
// even after maximal eviction. The capacity check (and any eviction it
// triggers) runs before the insert.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	if ttl <= 0 {
		return "", fmt.Errorf("key %q: %w", key, ErrInvalidTTL)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.removeExpiredLocked(now)

	if _, ok := c.entries[key]; ok {
		return "", fmt.Errorf("key %q: %w", key, ErrAlreadyCached)
	}
	if err := c.makeRoomLocked(1); err != nil {
		return "", err
	}

	c.entries[key] = &entry{
		key:       key,
		value:     cloneBytes(value),
		expiresAt: now.Add(ttl),
	}
	return key, nil
}

// SetMany inserts the whole batch with a shared TTL, or nothing.
//
// The capacity check treats the batch as a unit: a batch larger than the
// capacity fails with CapacityError before any mutation, and eviction (if
// needed) runs once for the whole batch. A live duplicate anywhere in the
// batch fails the entire call with ErrAlreadyCached.
func (c *Cache) SetMany(_ context.Context, values map[string][]byte, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	for key := range values {
		if key == "" {
			return ErrEmptyKey
		}
	}
	if len(values) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.removeExpiredLocked(now)

	for key := range values {
		if _, ok := c.entries[key]; ok {
			return fmt.Errorf("key %q: %w", key, ErrAlreadyCached)
		}
	}
	if err := c.makeRoomLocked(len(values)); err != nil {
		return err
	}

	expiresAt := now.Add(ttl)
	for key, value := range values {
		c.entries[key] = &entry{key: key, value: cloneBytes(value), expiresAt: expiresAt}
	}
	return nil
}

// Get returns the value for key if present and unexpired. A miss is a normal
// outcome reported via ok=false, never an error. Expired entries are removed
// on access.
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, hit := c.getLocked(key, c.now())
	return v, hit, nil
}

// GetMany is the batch form of Get. Each key is looked up independently; the
// result map contains only the hits.
func (c *Cache) GetMany(_ context.Context, keys []string) (map[string][]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if v, hit := c.getLocked(key, now); hit {
			out[key] = v
		}
	}
	return out, nil
}

// Delete removes the entry for key. It fails with ErrNotCached when no live
// entry exists: deletes are expected to be meaningful, so callers must know
// the key is present (an expired entry counts as absent).
func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.liveLocked(key, c.now()) {
		return fmt.Errorf("key %q: %w", key, ErrNotCached)
	}
	delete(c.entries, key)
	return nil
}

// DeleteMany removes every key or none of them. When any key is missing it
// fails with a NotCachedError listing the absentees and leaves the rest
// untouched.
func (c *Cache) DeleteMany(_ context.Context, keys []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var missing []string
	for _, key := range keys {
		if !c.liveLocked(key, now) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &NotCachedError{Keys: missing}
	}
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

// Flush drops every entry in the namespace. Hit/miss counters are retained.
func (c *Cache) Flush(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	return nil
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeExpiredLocked(c.now())
	return len(c.entries)
}

// Close stops the background sweep goroutine, if any. The cache remains
// usable afterward; only maintenance stops.
func (c *Cache) Close() {
	c.closeOnce.Do(func() { close(c.done) })
	c.wg.Wait()
}

// getLocked resolves key against the clock, performing lazy expiration and
// hit/miss bookkeeping.
func (c *Cache) getLocked(key string, now time.Time) ([]byte, bool) {
	e, ok := c.entries[key]
	if ok && e.expiresAt.After(now) {
		c.hits++
		return cloneBytes(e.value), true
	}
	if ok {
		// expired: destroy on access
		delete(c.entries, key)
	}
	c.misses++
	return nil, false
}

// liveLocked reports whether key has an unexpired entry, removing it if it
// has expired.
func (c *Cache) liveLocked(key string, now time.Time) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	if !e.expiresAt.After(now) {
		delete(c.entries, key)
		return false
	}
	return true
}

func (c *Cache) removeExpiredLocked(now time.Time) {
	for key, e := range c.entries {
		if !e.expiresAt.After(now) {
			delete(c.entries, key)
		}
	}
}

// cloneBytes copies v so callers cannot mutate cached state through returned
// or retained slices.
func cloneBytes(v []byte) []byte {
	if v == nil {
		return nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out
}
