package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"betpromo/internal/domain"
	"betpromo/pkg/redis"
)

// CacheService caches the public partner list with a cache-aside pattern.
// The mirror read it fronts is already cheap; the cache exists so the hot
// public endpoint serves identical bytes across instances.
type CacheService struct {
	redis  *redis.Client // nil disables caching
	logger *zap.Logger
}

// NewCacheService creates a new cache service
func NewCacheService(redisClient *redis.Client, logger *zap.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// ActivePartnersWithCache returns the serialized active partner list, cache
// first. Any cache failure falls back to the live snapshot.
func (c *CacheService) ActivePartnersWithCache(ctx context.Context, snapshot func() []domain.Partner) ([]byte, error) {
	if c.redis == nil {
		return json.Marshal(snapshot())
	}

	cacheKey := c.redis.KeyBuilder.KeyPartnersActive()

	cachedData, err := c.redis.Get(ctx, cacheKey)
	if err == nil && cachedData != "" {
		c.logger.Debug("Partner cache hit")
		return []byte(cachedData), nil
	}
	if err != nil && !redis.IsNil(err) {
		c.logger.Warn("Partner cache error, falling back to snapshot", zap.Error(err))
	}

	c.logger.Debug("Partner cache miss")
	data, err := json.Marshal(snapshot())
	if err != nil {
		return nil, err
	}

	// Cache the result asynchronously (fire and forget)
	go c.cachePartnersAsync(data)

	return data, nil
}

// InvalidatePartners drops the cached partner list after a mutation.
func (c *CacheService) InvalidatePartners() {
	if c.redis == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := c.redis.Delete(ctx, c.redis.KeyBuilder.KeyPartnersActive()); err != nil {
			c.logger.Error("Failed to invalidate partner cache", zap.Error(err))
		} else {
			c.logger.Debug("Partner cache invalidated")
		}
	}()
}

// HealthCheck performs a health check on the cache system
func (c *CacheService) HealthCheck(ctx context.Context) error {
	if c.redis == nil {
		return nil
	}

	start := time.Now()
	err := c.redis.Health(ctx)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Cache health check failed",
			zap.Duration("duration", duration),
			zap.Error(err))
		return err
	}

	c.logger.Debug("Cache health check passed", zap.Duration("duration", duration))
	return nil
}

// cachePartnersAsync stores the serialized partner list asynchronously
func (c *CacheService) cachePartnersAsync(data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.redis.Set(ctx, c.redis.KeyBuilder.KeyPartnersActive(), string(data), redis.TTLPartnersActive); err != nil {
		c.logger.Error("Failed to cache partner list", zap.Error(err))
	} else {
		c.logger.Debug("Partner list cached")
	}
}
