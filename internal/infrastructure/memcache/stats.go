package memcache

import "github.com/cartline/storefront/go/internal/core/ports"

// Stats sweeps expired entries and returns a consistent snapshot.
func (c *Cache) Stats() ports.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeExpiredLocked(c.now())

	s := ports.CacheStats{
		Hits:         c.hits,
		Misses:       c.misses,
		Evictions:    c.evictions,
		NumberOfKeys: len(c.entries),
	}
	for _, e := range c.entries {
		s.KeysSize += len(e.key)
		s.ValuesSize += len(e.value)
	}
	s.TotalSize = s.KeysSize + s.ValuesSize
	return s
}
