package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"delivery-service/models"
)

const (
	productCachePrefix = "product:detail:"
	defaultTTL         = 5 * time.Minute
)

// ProductCache is a read-through redis cache for product-by-id lookups on the
// public catalog endpoints. A nil *ProductCache is a no-op, so callers never
// branch on whether caching is configured.
type ProductCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{redis: client, ttl: defaultTTL}
}

// GetProduct returns the cached product and whether it was found.
func (c *ProductCache) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, productCachePrefix+id.String()).Result()
	if err != nil {
		return nil, false
	}
	var product models.Product
	if err := json.Unmarshal([]byte(data), &product); err != nil {
		zap.L().Warn("Failed to unmarshal cached product", zap.Error(err))
		return nil, false
	}
	return &product, true
}

// SetProductAsync caches a product in the background; a failed set is logged
// and otherwise ignored.
func (c *ProductCache) SetProductAsync(product *models.Product) {
	if c == nil || c.redis == nil {
		return
	}
	p := *product
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(&p)
		if err != nil {
			zap.L().Warn("Failed to marshal product for cache", zap.Error(err))
			return
		}
		if err := c.redis.Set(ctx, productCachePrefix+p.ID.String(), data, c.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product", zap.Error(err), zap.String("product_id", p.ID.String()))
		}
	}()
}

// Invalidate drops the cached entry after a product write.
func (c *ProductCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c == nil || c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, productCachePrefix+id.String()).Err(); err != nil {
		zap.L().Warn("Failed to invalidate product cache", zap.Error(err), zap.String("product_id", id.String()))
	}
}
