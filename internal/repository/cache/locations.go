// Package cache puts a redis read-through cache in front of location lookups.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
)

// NewRedisClient connects to redis. It returns nil, nil when redis is not
// configured so callers can run without a cache.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	var opt *redis.Options
	switch {
	case cfg.URL != "":
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		opt = parsed
	case cfg.Addr != "":
		opt = &redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
		}
	default:
		return nil, nil
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

type locationCache struct {
	repository.LocationRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewLocationCache wraps next so GetCity is served from redis when possible.
// Cache failures are logged and fall through to next.
func NewLocationCache(next repository.LocationRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) repository.LocationRepository {
	return &locationCache{
		LocationRepository: next,
		client:             client,
		ttl:                ttl,
		logger:             logger,
	}
}

func cityKey(id string) string {
	return "storefront:city:" + id
}

func (c *locationCache) GetCity(ctx context.Context, id string) (*domain.City, error) {
	key := cityKey(id)

	cached, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var city domain.City
		if err := json.Unmarshal(cached, &city); err == nil {
			return &city, nil
		}
		c.logger.Warn("Discarding unreadable cached city", zap.String("city_id", id))
	} else if err != redis.Nil {
		c.logger.Warn("Redis get failed", zap.Error(err), zap.String("city_id", id))
	}

	city, err := c.LocationRepository.GetCity(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(city); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("Redis set failed", zap.Error(err), zap.String("city_id", id))
		}
	}

	return city, nil
}
