package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fondos-platform/service-subscription/internal/domain/product"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const catalogAllKey = "catalog:all"

func catalogProductKey(id int) string { return fmt.Sprintf("catalog:product:%d", id) }

// ProductCache is the key-value store the catalog cache reads through.
type ProductCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

type cachedProduct struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	MinimumAmount decimal.Decimal `json:"minimum_amount"`
	Category      string          `json:"category"`
}

// CachedProductRepository serves catalog reads from a cache and invalidates
// on writes. Cache failures are logged and fall through to the inner store.
type CachedProductRepository struct {
	inner  product.ProductRepository
	cache  ProductCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProductRepository wraps inner with a read-through cache.
func NewCachedProductRepository(inner product.ProductRepository, cache ProductCache, ttl time.Duration, logger *zap.Logger) *CachedProductRepository {
	return &CachedProductRepository{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

// FindByID returns a product, from cache when present.
func (r *CachedProductRepository) FindByID(ctx context.Context, id int) (*product.Product, error) {
	key := catalogProductKey(id)
	var entry cachedProduct
	hit, err := r.cache.Get(ctx, key, &entry)
	if err != nil {
		r.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return entry.toDomain(), nil
	}

	p, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, toCachedProduct(p))
	return p, nil
}

// FindAll returns the whole catalog, from cache when present.
func (r *CachedProductRepository) FindAll(ctx context.Context) ([]*product.Product, error) {
	var entries []cachedProduct
	hit, err := r.cache.Get(ctx, catalogAllKey, &entries)
	if err != nil {
		r.logger.Warn("catalog cache read failed", zap.String("key", catalogAllKey), zap.Error(err))
	}
	if hit {
		result := make([]*product.Product, 0, len(entries))
		for _, e := range entries {
			result = append(result, e.toDomain())
		}
		return result, nil
	}

	products, err := r.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	entries = make([]cachedProduct, 0, len(products))
	for _, p := range products {
		entries = append(entries, toCachedProduct(p))
	}
	r.store(ctx, catalogAllKey, entries)
	return products, nil
}

// Save creates a product and drops the cached listing.
func (r *CachedProductRepository) Save(ctx context.Context, p *product.Product) error {
	if err := r.inner.Save(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx, p.ID())
	return nil
}

// Update changes a product and drops its cache entries.
func (r *CachedProductRepository) Update(ctx context.Context, p *product.Product) error {
	if err := r.inner.Update(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx, p.ID())
	return nil
}

// Delete removes a product and drops its cache entries.
func (r *CachedProductRepository) Delete(ctx context.Context, id int) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedProductRepository) store(ctx context.Context, key string, value any) {
	if err := r.cache.Set(ctx, key, value, r.ttl); err != nil {
		r.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *CachedProductRepository) invalidate(ctx context.Context, id int) {
	if err := r.cache.Invalidate(ctx, catalogAllKey, catalogProductKey(id)); err != nil {
		r.logger.Warn("catalog cache invalidation failed", zap.Int("product_id", id), zap.Error(err))
	}
}

func toCachedProduct(p *product.Product) cachedProduct {
	return cachedProduct{ID: p.ID(), Name: p.Name(), MinimumAmount: p.MinimumAmount(), Category: string(p.Category())}
}

func (e cachedProduct) toDomain() *product.Product {
	return product.Reconstruct(e.ID, e.Name, e.MinimumAmount, product.Category(e.Category))
}
