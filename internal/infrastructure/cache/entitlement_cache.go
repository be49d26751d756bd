package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/application/entitlement"
	"github.com/kosthub/backend/internal/domain/subscription"
)

// Constants for Redis cache configuration
const (
	defaultScanBatchSize = 100
)

// RedisEntitlementCache caches resolved owner feature maps in Redis,
// keyed by owner. A cached empty map is a real value: it records that an
// owner has no active subscription, so resolution does not hit the store
// on every request for free accounts.
type RedisEntitlementCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	config     CacheConfig
	logger     *zap.Logger
}

// RedisEntitlementCacheOption is a functional option for configuring the cache
type RedisEntitlementCacheOption func(*RedisEntitlementCache)

// WithEntitlementCacheConfig sets the cache configuration
func WithEntitlementCacheConfig(config CacheConfig) RedisEntitlementCacheOption {
	return func(c *RedisEntitlementCache) {
		c.config = config
	}
}

// WithEntitlementCacheLogger sets the logger for the cache
func WithEntitlementCacheLogger(logger *zap.Logger) RedisEntitlementCacheOption {
	return func(c *RedisEntitlementCache) {
		c.logger = logger
	}
}

// NewRedisEntitlementCache creates a new Redis-based entitlement cache
func NewRedisEntitlementCache(cfg RedisConfig, opts ...RedisEntitlementCacheOption) (*RedisEntitlementCache, error) {
	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	cache := &RedisEntitlementCache{
		client:     client,
		ownsClient: true, // We created this client, so we own it
		config:     DefaultCacheConfig(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisEntitlementCacheWithClient creates a cache with an existing Redis client
// Note: The caller retains ownership of the client and is responsible for closing it
func NewRedisEntitlementCacheWithClient(client *redis.Client, opts ...RedisEntitlementCacheOption) *RedisEntitlementCache {
	cache := &RedisEntitlementCache{
		client:     client,
		ownsClient: false, // Client is shared, don't close it
		config:     DefaultCacheConfig(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// ownerCacheKey generates the cache key for an owner's feature map
func (c *RedisEntitlementCache) ownerCacheKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("entitlements:%s", ownerID.String())
}

// Get retrieves an owner's feature map from cache
func (c *RedisEntitlementCache) Get(ctx context.Context, ownerID uuid.UUID) (subscription.FeatureMap, bool, error) {
	cacheKey := c.ownerCacheKey(ownerID)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		// Cache miss
		c.logger.Debug("Cache miss for entitlements",
			zap.String("owner_id", ownerID.String()))
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("Failed to get entitlements from cache",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, false, fmt.Errorf("failed to get entitlements from cache: %w", err)
	}

	var features subscription.FeatureMap
	if err := json.Unmarshal(data, &features); err != nil {
		c.logger.Error("Failed to unmarshal cached entitlements",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		// Delete corrupted cache entry
		_ = c.client.Del(ctx, cacheKey)
		return nil, false, fmt.Errorf("failed to unmarshal entitlements: %w", err)
	}

	c.logger.Debug("Cache hit for entitlements",
		zap.String("owner_id", ownerID.String()))
	return features, true, nil
}

// Set stores an owner's feature map in cache
func (c *RedisEntitlementCache) Set(ctx context.Context, ownerID uuid.UUID, features subscription.FeatureMap, ttl time.Duration) error {
	if features == nil {
		// A no-subscription result is cached as an empty map, never null
		features = subscription.FeatureMap{}
	}

	if ttl == 0 {
		ttl = c.config.EntitlementTTL
	}

	cacheKey := c.ownerCacheKey(ownerID)

	data, err := json.Marshal(features)
	if err != nil {
		c.logger.Error("Failed to marshal entitlements",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to marshal entitlements: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set entitlements in cache",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to set entitlements in cache: %w", err)
	}

	c.logger.Debug("Cached entitlements",
		zap.String("owner_id", ownerID.String()),
		zap.Int("features", len(features)),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate removes an owner's feature map from cache
func (c *RedisEntitlementCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	cacheKey := c.ownerCacheKey(ownerID)

	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		c.logger.Error("Failed to delete entitlements from cache",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to delete entitlements from cache: %w", err)
	}

	c.logger.Debug("Deleted entitlements from cache",
		zap.String("owner_id", ownerID.String()))
	return nil
}

// InvalidateAll removes every cached feature map
func (c *RedisEntitlementCache) InvalidateAll(ctx context.Context) error {
	// Use SCAN to find the keys to avoid blocking Redis with KEYS
	var cursor uint64
	var deletedCount int64

	for {
		var keys []string
		var err error
		keys, cursor, err = c.client.Scan(ctx, cursor, "entitlements:*", defaultScanBatchSize).Result()
		if err != nil {
			c.logger.Error("Failed to scan entitlement keys", zap.Error(err))
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			deleted, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				c.logger.Error("Failed to delete entitlement keys", zap.Error(err))
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deletedCount += deleted
		}

		if cursor == 0 {
			break
		}
	}

	c.logger.Info("Invalidated all cached entitlements",
		zap.Int64("deleted_count", deletedCount))
	return nil
}

// Close releases any resources held by the cache
func (c *RedisEntitlementCache) Close() error {
	// Only close client if we own it
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisEntitlementCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisEntitlementCache implements FeatureMapCache
var _ entitlement.FeatureMapCache = (*RedisEntitlementCache)(nil)
