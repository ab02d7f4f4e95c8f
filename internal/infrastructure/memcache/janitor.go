package memcache

import "time"

// sweepLoop periodically removes expired entries so keys that are written
// once and never read again do not linger until eviction. Lazy expiration on
// read stays correct without it; this only bounds memory growth.
func (c *Cache) sweepLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.removeExpiredLocked(c.now())
			c.mu.Unlock()
		}
	}
}
