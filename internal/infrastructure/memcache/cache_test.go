package memcache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cartline/storefront/go/internal/infrastructure/memcache"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func newTestCache(namespace string, maxEntries int) (*memcache.Cache, *fakeClock) {
	clock := newFakeClock()
	return memcache.NewCache(namespace, memcache.Options{
		MaxEntries: maxEntries,
		Clock:      clock.Now,
	}), clock
}

func TestKey(t *testing.T) {
	c, _ := newTestCache("product", 10)
	require.Equal(t, "product:42", c.Key("42"))
}

func TestSetThenGet(t *testing.T) {
	c, _ := newTestCache("product", 10)
	ctx := context.Background()

	key, err := c.Set(ctx, c.Key("1"), []byte("laptop"), time.Minute)
	require.NoError(t, err)
	require.Equal(t, "product:1", key)

	v, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("laptop"), v)
}

func TestSetValidation(t *testing.T) {
	c, _ := newTestCache("product", 10)
	ctx := context.Background()

	_, err := c.Set(ctx, "", []byte("v"), time.Minute)
	require.ErrorIs(t, err, memcache.ErrEmptyKey)

	_, err = c.Set(ctx, c.Key("1"), []byte("v"), 0)
	require.ErrorIs(t, err, memcache.ErrInvalidTTL)

	_, err = c.Set(ctx, c.Key("1"), []byte("v"), -time.Second)
	require.ErrorIs(t, err, memcache.ErrInvalidTTL)
}

func TestInsertOnce(t *testing.T) {
	c, _ := newTestCache("product", 10)
	ctx := context.Background()
	key := c.Key("1")

	_, err := c.Set(ctx, key, []byte("v1"), time.Minute)
	require.NoError(t, err)

	_, err = c.Set(ctx, key, []byte("v2"), time.Minute)
	require.ErrorIs(t, err, memcache.ErrAlreadyCached)

	// The original value survives the rejected insert.
	v, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v1"), v)

	// Delete-then-set is the replacement path.
	require.NoError(t, c.Delete(ctx, key))
	_, err = c.Set(ctx, key, []byte("v2"), time.Minute)
	require.NoError(t, err)
}

func TestExpiry(t *testing.T) {
	c, clock := newTestCache("product", 10)
	ctx := context.Background()
	key := c.Key("1")

	_, err := c.Set(ctx, key, []byte("v"), time.Second)
	require.NoError(t, err)

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)

	clock.Advance(1001 * time.Millisecond)

	_, ok, err = c.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)

	// The slot is free again: re-insert succeeds without an explicit delete.
	_, err = c.Set(ctx, key, []byte("v2"), time.Second)
	require.NoError(t, err)
}

func TestGetMany(t *testing.T) {
	c, clock := newTestCache("product", 10)
	ctx := context.Background()

	_, err := c.Set(ctx, c.Key("1"), []byte("a"), time.Second)
	require.NoError(t, err)
	_, err = c.Set(ctx, c.Key("2"), []byte("b"), time.Hour)
	require.NoError(t, err)

	clock.Advance(2 * time.Second)

	got, err := c.GetMany(ctx, []string{c.Key("1"), c.Key("2"), c.Key("3")})
	require.NoError(t, err)
	require.Equal(t, map[string][]byte{c.Key("2"): []byte("b")}, got)

	// Each key counts independently: 1 hit, 2 misses.
	s := c.Stats()
	require.Equal(t, uint64(1), s.Hits)
	require.Equal(t, uint64(2), s.Misses)
}

func TestDeleteMissingKeyFails(t *testing.T) {
	c, _ := newTestCache("product", 10)
	require.ErrorIs(t, c.Delete(context.Background(), c.Key("nope")), memcache.ErrNotCached)
}

func TestDeleteManyAllOrNothing(t *testing.T) {
	c, _ := newTestCache("product", 10)
	ctx := context.Background()

	_, err := c.Set(ctx, c.Key("1"), []byte("a"), time.Minute)
	require.NoError(t, err)
	_, err = c.Set(ctx, c.Key("2"), []byte("b"), time.Minute)
	require.NoError(t, err)

	err = c.DeleteMany(ctx, []string{c.Key("1"), c.Key("2"), c.Key("3")})
	require.ErrorIs(t, err, memcache.ErrNotCached)

	var nce *memcache.NotCachedError
	require.ErrorAs(t, err, &nce)
	require.Equal(t, []string{c.Key("3")}, nce.Keys)

	// Nothing was deleted.
	require.Equal(t, 2, c.Len())

	require.NoError(t, c.DeleteMany(ctx, []string{c.Key("1"), c.Key("2")}))
	require.Equal(t, 0, c.Len())
}

func TestFlush(t *testing.T) {
	c, _ := newTestCache("product", 10)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := c.Set(ctx, c.Key(fmt.Sprintf("%d", i)), []byte("v"), time.Minute)
		require.NoError(t, err)
	}
	require.NoError(t, c.Flush(ctx))
	require.Equal(t, 0, c.Len())
}

func TestBatchLargerThanCapacityFails(t *testing.T) {
	c, _ := newTestCache("product", 1000)
	ctx := context.Background()

	batch := make(map[string][]byte, 1001)
	for i := 0; i < 1001; i++ {
		batch[c.Key(fmt.Sprintf("%d", i))] = []byte("v")
	}

	err := c.SetMany(ctx, batch, time.Minute)
	var ce *memcache.CapacityError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, 1000, ce.Max)
	require.Equal(t, 1001, ce.Batch)

	// No partial insert.
	require.Equal(t, 0, c.Len())
}

func TestEvictionFallbackFloor(t *testing.T) {
	// 100 pre-populated entries, then a batch needing 901 free slots: only one
	// slot is strictly needed, but the floor evicts ceil(100 * 0.10) = 10
	// entries, the ten with the soonest expiry.
	c, _ := newTestCache("product", 1000)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		// Ascending expiry: entry i expires after i+1 minutes.
		_, err := c.Set(ctx, c.Key(fmt.Sprintf("seed-%03d", i)), []byte("v"), time.Duration(i+1)*time.Minute)
		require.NoError(t, err)
	}

	batch := make(map[string][]byte, 901)
	for i := 0; i < 901; i++ {
		batch[c.Key(fmt.Sprintf("bulk-%03d", i))] = []byte("v")
	}
	require.NoError(t, c.SetMany(ctx, batch, time.Hour))

	require.Equal(t, 991, c.Len())
	require.Equal(t, uint64(10), c.Stats().Evictions)

	for i := 0; i < 10; i++ {
		_, ok, err := c.Get(ctx, c.Key(fmt.Sprintf("seed-%03d", i)))
		require.NoError(t, err)
		require.False(t, ok, "seed-%03d should have been evicted", i)
	}
	for _, i := range []int{10, 50, 99} {
		_, ok, err := c.Get(ctx, c.Key(fmt.Sprintf("seed-%03d", i)))
		require.NoError(t, err)
		require.True(t, ok, "seed-%03d should have survived", i)
	}
}

func TestEvictionSoonestExpiryFirst(t *testing.T) {
	// 999 entries with strictly ascending expiry; an insert needing 3 slots
	// evicts max(3, ceil(999 * 0.10)) = 100 entries from the front.
	c, _ := newTestCache("product", 1000)
	ctx := context.Background()

	for i := 0; i < 999; i++ {
		_, err := c.Set(ctx, c.Key(fmt.Sprintf("item-%03d", i)), []byte("v"), time.Duration(i+1)*time.Minute)
		require.NoError(t, err)
	}

	batch := map[string][]byte{
		c.Key("new-0"): []byte("v"),
		c.Key("new-1"): []byte("v"),
		c.Key("new-2"): []byte("v"),
		c.Key("new-3"): []byte("v"),
	}
	require.NoError(t, c.SetMany(ctx, batch, time.Hour))

	require.Equal(t, 903, c.Len())

	for _, i := range []int{0, 50, 99} {
		_, ok, err := c.Get(ctx, c.Key(fmt.Sprintf("item-%03d", i)))
		require.NoError(t, err)
		require.False(t, ok, "item-%03d should have been evicted", i)
	}
	for _, i := range []int{100, 400, 800, 998} {
		_, ok, err := c.Get(ctx, c.Key(fmt.Sprintf("item-%03d", i)))
		require.NoError(t, err)
		require.True(t, ok, "item-%03d should have survived", i)
	}
}

func TestSingleInsertEvictionAtCapacity(t *testing.T) {
	c, _ := newTestCache("product", 10)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := c.Set(ctx, c.Key(fmt.Sprintf("%d", i)), []byte("v"), time.Duration(i+1)*time.Minute)
		require.NoError(t, err)
	}

	// A full cache evicts the floor, ceil(10 * 0.10) = 1, before inserting.
	_, err := c.Set(ctx, c.Key("overflow"), []byte("v"), time.Hour)
	require.NoError(t, err)
	require.Equal(t, 10, c.Len())

	_, ok, err := c.Get(ctx, c.Key("0"))
	require.NoError(t, err)
	require.False(t, ok, "the soonest-expiry entry should have been evicted")
}

func TestStatsAccuracy(t *testing.T) {
	c, _ := newTestCache("review", 10)
	ctx := context.Background()

	_, err := c.Set(ctx, c.Key("a"), []byte("12345"), time.Minute)
	require.NoError(t, err)
	_, err = c.Set(ctx, c.Key("bb"), []byte("123"), time.Minute)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, ok, err := c.Get(ctx, c.Key("a"))
		require.NoError(t, err)
		require.True(t, ok)
	}
	for i := 0; i < 2; i++ {
		_, ok, err := c.Get(ctx, c.Key("missing"))
		require.NoError(t, err)
		require.False(t, ok)
	}

	s := c.Stats()
	require.Equal(t, uint64(3), s.Hits)
	require.Equal(t, uint64(2), s.Misses)
	require.Equal(t, 2, s.NumberOfKeys)
	require.Equal(t, len("review:a")+len("review:bb"), s.KeysSize)
	require.Equal(t, len("12345")+len("123"), s.ValuesSize)
	require.Equal(t, s.KeysSize+s.ValuesSize, s.TotalSize)
}

func TestConcurrentSetGet(t *testing.T) {
	c, _ := newTestCache("product", 1000)
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				key := c.Key(fmt.Sprintf("%d-%d", g, i))
				_, err := c.Set(ctx, key, []byte("v"), time.Minute)
				require.NoError(t, err)
				_, ok, err := c.Get(ctx, key)
				require.NoError(t, err)
				require.True(t, ok)
			}
		}(g)
	}
	wg.Wait()

	require.Equal(t, 400, c.Len())
}

func TestBackgroundSweep(t *testing.T) {
	c := memcache.NewCache("product", memcache.Options{
		MaxEntries:      10,
		CleanupInterval: 10 * time.Millisecond,
	})
	defer c.Close()

	_, err := c.Set(context.Background(), c.Key("short"), []byte("v"), 20*time.Millisecond)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return c.Len() == 0
	}, time.Second, 10*time.Millisecond)
}
