package memcache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cartline/storefront/go/internal/infrastructure/memcache"
	"github.com/stretchr/testify/require"
)

func TestRegistrySharesInstancePerNamespace(t *testing.T) {
	r := memcache.NewRegistry(memcache.Options{MaxEntries: 10})
	defer r.Close()

	a := r.Namespace("product")
	b := r.Namespace("product")
	require.Same(t, a, b)

	other := r.Namespace("user")
	require.NotSame(t, a, other)

	// State written through one handle is visible through the other.
	_, err := a.Set(context.Background(), a.Key("1"), []byte("v"), time.Minute)
	require.NoError(t, err)
	_, ok, err := b.Get(context.Background(), b.Key("1"))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRegistryConcurrentFirstUse(t *testing.T) {
	r := memcache.NewRegistry(memcache.Options{MaxEntries: 10})
	defer r.Close()

	const callers = 16
	instances := make([]*memcache.Cache, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			instances[i] = r.Namespace("rate-limit")
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		require.Same(t, instances[0], instances[i])
	}
}

func TestRegistryReset(t *testing.T) {
	r := memcache.NewRegistry(memcache.Options{MaxEntries: 10})
	defer r.Close()

	c := r.Namespace("product")
	_, err := c.Set(context.Background(), c.Key("1"), []byte("v"), time.Minute)
	require.NoError(t, err)

	r.Reset()

	fresh := r.Namespace("product")
	require.NotSame(t, c, fresh)
	require.Equal(t, 0, fresh.Len())
}

func TestRegistryStats(t *testing.T) {
	r := memcache.NewRegistry(memcache.Options{MaxEntries: 10})
	defer r.Close()

	p := r.Namespace("product")
	_, err := p.Set(context.Background(), p.Key("1"), []byte("v"), time.Minute)
	require.NoError(t, err)
	r.Namespace("user")

	stats := r.Stats()
	require.Len(t, stats, 2)
	require.Equal(t, 1, stats["product"].NumberOfKeys)
	require.Equal(t, 0, stats["user"].NumberOfKeys)
}
