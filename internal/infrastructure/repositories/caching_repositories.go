package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/cartline/storefront/go/internal/core/domain/product"
	"github.com/cartline/storefront/go/internal/core/domain/review"
	"github.com/cartline/storefront/go/internal/core/ports"
)

// Full lists are cached whole and sliced per request; these caps bound how
// much of a table one cache entry can hold.
const (
	fullListLimit = 500
	topRatedLimit = 50
)

// Utility helpers. The cache is insert-once, so "write" at this layer is
// always delete-then-set, and every cache failure falls through to Postgres.

func cacheReplaceSilently(c ports.Cache, ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Delete(ctx, key)
	_, _ = c.Set(ctx, key, b, ttl)
}

func cacheDeleteSilently(c ports.Cache, ctx context.Context, keys ...string) {
	if c == nil {
		return
	}
	for _, key := range keys {
		_ = c.Delete(ctx, key)
	}
}

func cacheGet[T any](c ports.Cache, ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// loadFullListWithSingleflight coalesces a full-list load, caches the result
// and returns it. The loader fetches the complete list when called.
func loadFullListWithSingleflight[T any](sf *singleflight.Group, cache ports.Cache, ctx context.Context, listKey string, ttl time.Duration, loader func() ([]T, error)) ([]T, error) {
	if v, ok := cacheGet[[]T](cache, ctx, listKey); ok {
		return *v, nil
	}
	res, err, _ := sf.Do(listKey, func() (any, error) {
		if v, ok := cacheGet[[]T](cache, ctx, listKey); ok {
			return *v, nil
		}
		all, err := loader()
		if err != nil {
			return nil, err
		}
		cacheReplaceSilently(cache, ctx, listKey, all, ttl)
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	all, ok := res.([]T)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight result")
	}
	return all, nil
}

func sliceListPage[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// CachingProductRepository decorates a ProductRepository with cache-aside
// reads over the "product" namespace.
type CachingProductRepository struct {
	inner ports.ProductRepository
	cache ports.Cache
	ttl   time.Duration
	sf    singleflight.Group
}

func NewCachingProductRepository(inner ports.ProductRepository, cache ports.Cache, ttl time.Duration) ports.ProductRepository {
	return &CachingProductRepository{inner: inner, cache: cache, ttl: ttl}
}

func (c *CachingProductRepository) idKey(id uuid.UUID) string {
	return c.cache.Key("id:" + id.String())
}

func (c *CachingProductRepository) listKey(category string) string {
	return c.cache.Key("list:" + category)
}

func (c *CachingProductRepository) topKey() string {
	return c.cache.Key("top")
}

func (c *CachingProductRepository) Create(ctx context.Context, p *product.Product) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	cacheReplaceSilently(c.cache, ctx, c.idKey(p.ID), p, c.ttl)
	cacheDeleteSilently(c.cache, ctx, c.listKey(p.Category), c.listKey(""), c.topKey())
	return nil
}

func (c *CachingProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	if v, ok := cacheGet[product.Product](c.cache, ctx, c.idKey(id)); ok {
		return v, nil
	}
	p, err := c.inner.GetByID(ctx, id)
	if err == nil {
		cacheReplaceSilently(c.cache, ctx, c.idKey(id), p, c.ttl)
	}
	return p, err
}

func (c *CachingProductRepository) List(ctx context.Context, category string, limit, offset int) ([]*product.Product, error) {
	loader := func() ([]*product.Product, error) {
		return c.inner.List(ctx, category, fullListLimit, 0)
	}
	all, err := loadFullListWithSingleflight(&c.sf, c.cache, ctx, c.listKey(category), c.ttl, loader)
	if err != nil {
		return nil, err
	}
	return sliceListPage(all, limit, offset), nil
}

func (c *CachingProductRepository) ListTopRated(ctx context.Context, limit int) ([]*product.Product, error) {
	loader := func() ([]*product.Product, error) {
		return c.inner.ListTopRated(ctx, topRatedLimit)
	}
	all, err := loadFullListWithSingleflight(&c.sf, c.cache, ctx, c.topKey(), c.ttl, loader)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}
	return all[:limit], nil
}

func (c *CachingProductRepository) Update(ctx context.Context, p *product.Product) error {
	// The category may be changing; the old category's list needs
	// invalidating too.
	old, _ := c.inner.GetByID(ctx, p.ID)
	if err := c.inner.Update(ctx, p); err != nil {
		return err
	}
	cacheReplaceSilently(c.cache, ctx, c.idKey(p.ID), p, c.ttl)
	cacheDeleteSilently(c.cache, ctx, c.listKey(p.Category), c.listKey(""), c.topKey())
	if old != nil && old.Category != p.Category {
		cacheDeleteSilently(c.cache, ctx, c.listKey(old.Category))
	}
	return nil
}

func (c *CachingProductRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64, numReviews int) error {
	if err := c.inner.UpdateRating(ctx, id, rating, numReviews); err != nil {
		return err
	}
	c.invalidateProduct(ctx, id)
	return nil
}

func (c *CachingProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if err := c.inner.DecrementStock(ctx, id, quantity); err != nil {
		return err
	}
	c.invalidateProduct(ctx, id)
	return nil
}

func (c *CachingProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	current, _ := c.inner.GetByID(ctx, id)
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	cacheDeleteSilently(c.cache, ctx, c.idKey(id), c.listKey(""), c.topKey())
	if current != nil {
		cacheDeleteSilently(c.cache, ctx, c.listKey(current.Category))
	}
	return nil
}

// invalidateProduct drops the cached entity and every list that could embed a
// stale copy of it. Cheaper than re-reading the row to learn its category.
func (c *CachingProductRepository) invalidateProduct(ctx context.Context, id uuid.UUID) {
	if c.cache == nil {
		return
	}
	if cached, ok := cacheGet[product.Product](c.cache, ctx, c.idKey(id)); ok {
		cacheDeleteSilently(c.cache, ctx, c.listKey(cached.Category))
	}
	cacheDeleteSilently(c.cache, ctx, c.idKey(id), c.listKey(""), c.topKey())
}

// CachingReviewRepository caches per-product review lists.
type CachingReviewRepository struct {
	inner ports.ReviewRepository
	cache ports.Cache
	ttl   time.Duration
	sf    singleflight.Group
}

func NewCachingReviewRepository(inner ports.ReviewRepository, cache ports.Cache, ttl time.Duration) ports.ReviewRepository {
	return &CachingReviewRepository{inner: inner, cache: cache, ttl: ttl}
}

func (c *CachingReviewRepository) productKey(productID uuid.UUID) string {
	return c.cache.Key("product:" + productID.String())
}

func (c *CachingReviewRepository) Create(ctx context.Context, r *review.Review) error {
	if err := c.inner.Create(ctx, r); err != nil {
		return err
	}
	cacheDeleteSilently(c.cache, ctx, c.productKey(r.ProductID))
	return nil
}

func (c *CachingReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	return c.inner.GetByID(ctx, id)
}

func (c *CachingReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*review.Review, error) {
	loader := func() ([]*review.Review, error) {
		return c.inner.ListByProduct(ctx, productID)
	}
	return loadFullListWithSingleflight(&c.sf, c.cache, ctx, c.productKey(productID), c.ttl, loader)
}

func (c *CachingReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Need the review to find which product list to invalidate.
	current, _ := c.inner.GetByID(ctx, id)
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	if current != nil {
		cacheDeleteSilently(c.cache, ctx, c.productKey(current.ProductID))
	}
	return nil
}

// Compile-time interface checks for the decorators.
var _ ports.ProductRepository = (*CachingProductRepository)(nil)
var _ ports.ReviewRepository = (*CachingReviewRepository)(nil)
