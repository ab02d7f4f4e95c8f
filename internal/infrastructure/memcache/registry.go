package memcache

import (
	"context"
	"sync"

	"github.com/cartline/storefront/go/internal/core/ports"
)

// Registry hands out one Cache instance per namespace so independent call
// sites sharing a namespace observe the same state. It is an explicit object
// wired in at construction time, not package-level state; tests get isolation
// through their own Registry or Reset.
type Registry struct {
	opts Options

	mu     sync.Mutex
	caches map[string]*Cache
}

// NewRegistry creates a registry whose namespaces share the given options.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts:   opts,
		caches: make(map[string]*Cache),
	}
}

// Namespace returns the cache for name, creating it on first use. Creation is
// race-free: concurrent first callers for the same namespace get the same
// instance.
func (r *Registry) Namespace(name string) *Cache {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.caches[name]; ok {
		return c
	}
	c := NewCache(name, r.opts)
	r.caches[name] = c
	return c
}

// Stats returns a snapshot per live namespace.
func (r *Registry) Stats() map[string]ports.CacheStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]ports.CacheStats, len(r.caches))
	for name, c := range r.caches {
		out[name] = c.Stats()
	}
	return out
}

// Reset flushes and drops every namespace. Intended for test isolation.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.caches {
		_ = c.Flush(context.Background())
		c.Close()
	}
	r.caches = make(map[string]*Cache)
}

// Close stops the background sweepers of every namespace.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.caches {
		c.Close()
	}
}
