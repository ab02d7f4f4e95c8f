package memcache

import "sort"

// makeRoomLocked runs the pre-insert capacity check for a batch of the given
// size and evicts if necessary. Called with the instance mutex held, after
// expired entries have been swept.
//
// Policy: a batch that alone exceeds the capacity fails outright. Otherwise,
// when current size + batch would overflow, evict
//
//	max(spaceNeeded, ceil(current size * 0.10))
//
// entries in ascending expiresAt order. The 10% floor amortizes eviction cost
// so a full cache does not evict one entry per insert. Soonest-expiry victims
// approximate "entries about to disappear anyway"; this is not LRU, and a hot
// entry with a short TTL can be evicted ahead of a cold one with a long TTL.
func (c *Cache) makeRoomLocked(batch int) error {
	if batch > c.maxEntries {
		return &CapacityError{
			Namespace: c.namespace,
			Current:   len(c.entries),
			Max:       c.maxEntries,
			Batch:     batch,
		}
	}

	size := len(c.entries)
	if size+batch <= c.maxEntries {
		return nil
	}

	needed := size + batch - c.maxEntries
	floor := (size + 9) / 10 // ceil(size * 0.10)
	n := needed
	if floor > n {
		n = floor
	}

	victims := make([]*entry, 0, size)
	for _, e := range c.entries {
		victims = append(victims, e)
	}
	sort.Slice(victims, func(i, j int) bool {
		return victims[i].expiresAt.Before(victims[j].expiresAt)
	})

	for _, e := range victims[:n] {
		delete(c.entries, e.key)
	}
	c.evictions += uint64(n)
	return nil
}
