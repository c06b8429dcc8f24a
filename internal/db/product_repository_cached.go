package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/prudhivi99/storefront/internal/cache"
	"github.com/prudhivi99/storefront/internal/models"
)

// CachedProductRepository is a cache-aside layer over ProductRepository.
// Catalog reads dominate the cart flow (every add-to-cart resolves a
// product), so misses fall through to Postgres and writes invalidate.
type CachedProductRepository struct {
	repo  *ProductRepository
	cache *cache.RedisCache
}

func NewCachedProductRepository(repo *ProductRepository, cache *cache.RedisCache) *CachedProductRepository {
	return &CachedProductRepository{
		repo:  repo,
		cache: cache,
	}
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func allProductsKey() string {
	return "products:all"
}

func (r *CachedProductRepository) List(ctx context.Context) ([]models.Product, error) {
	cacheKey := allProductsKey()

	var products []models.Product
	if err := r.cache.Get(ctx, cacheKey, &products); err == nil {
		return products, nil
	}

	products, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKey, products); err != nil {
		log.Warn().Err(err).Msg("failed to cache product list")
	}

	return products, nil
}

func (r *CachedProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	cacheKey := productKey(id)

	var product models.Product
	err := r.cache.Get(ctx, cacheKey, &product)
	if err == nil {
		return &product, nil
	}
	if err != redis.Nil {
		log.Warn().Err(err).Msg("cache read failed")
	}

	p, err := r.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}

	if err := r.cache.Set(ctx, cacheKey, p); err != nil {
		log.Warn().Err(err).Int64("product_id", id).Msg("failed to cache product")
	}

	return p, nil
}

func (r *CachedProductRepository) Create(ctx context.Context, name string, price decimal.Decimal) (*models.Product, error) {
	product, err := r.repo.Create(ctx, name, price)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Delete(ctx, allProductsKey()); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate product list cache")
	}

	return product, nil
}

func (r *CachedProductRepository) Update(ctx context.Context, p *models.Product) error {
	if err := r.repo.Update(ctx, p); err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, productKey(p.ID), allProductsKey()); err != nil {
		log.Warn().Err(err).Int64("product_id", p.ID).Msg("failed to invalidate product cache")
	}

	return nil
}

func (r *CachedProductRepository) Delete(ctx context.Context, id int64) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, productKey(id), allProductsKey()); err != nil {
		log.Warn().Err(err).Int64("product_id", id).Msg("failed to invalidate product cache")
	}

	return nil
}
