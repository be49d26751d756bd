package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	marketplaceapp "github.com/kosthub/backend/internal/application/marketplace"
	"github.com/kosthub/backend/internal/domain/marketplace"
)

// listingCacheKey is the single key holding the marketplace derivation.
// The derivation is always computed and cached whole, so there is nothing
// to key by.
const listingCacheKey = "marketplace:listings"

// RedisListingCache caches the marketplace listing derivation in Redis.
// The shared key means one instance's derivation serves every instance,
// and a DEL is visible to all of them at once.
type RedisListingCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	config     CacheConfig
	logger     *zap.Logger
}

// RedisListingCacheOption is a functional option for configuring the cache
type RedisListingCacheOption func(*RedisListingCache)

// WithListingCacheConfig sets the cache configuration
func WithListingCacheConfig(config CacheConfig) RedisListingCacheOption {
	return func(c *RedisListingCache) {
		c.config = config
	}
}

// WithListingCacheLogger sets the logger for the cache
func WithListingCacheLogger(logger *zap.Logger) RedisListingCacheOption {
	return func(c *RedisListingCache) {
		c.logger = logger
	}
}

// NewRedisListingCache creates a new Redis-based listing cache
func NewRedisListingCache(cfg RedisConfig, opts ...RedisListingCacheOption) (*RedisListingCache, error) {
	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	cache := &RedisListingCache{
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

// NewRedisListingCacheWithClient creates a cache with an existing Redis client
// Note: The caller retains ownership of the client and is responsible for closing it
func NewRedisListingCacheWithClient(client *redis.Client, opts ...RedisListingCacheOption) *RedisListingCache {
	cache := &RedisListingCache{
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

// Get retrieves the cached derivation
func (c *RedisListingCache) Get(ctx context.Context) ([]marketplace.Listing, bool, error) {
	data, err := c.client.Get(ctx, listingCacheKey).Bytes()
	if err == redis.Nil {
		// Cache miss
		c.logger.Debug("Cache miss for marketplace listings")
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("Failed to get listings from cache", zap.Error(err))
		return nil, false, fmt.Errorf("failed to get listings from cache: %w", err)
	}

	var listings []marketplace.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		c.logger.Error("Failed to unmarshal cached listings", zap.Error(err))
		// Delete corrupted cache entry
		_ = c.client.Del(ctx, listingCacheKey)
		return nil, false, fmt.Errorf("failed to unmarshal listings: %w", err)
	}

	c.logger.Debug("Cache hit for marketplace listings",
		zap.Int("count", len(listings)))
	return listings, true, nil
}

// Set stores a derivation. An empty derivation is cached too: a platform
// with no published properties should not re-derive on every request.
func (c *RedisListingCache) Set(ctx context.Context, listings []marketplace.Listing, ttl time.Duration) error {
	if listings == nil {
		listings = []marketplace.Listing{}
	}

	if ttl == 0 {
		ttl = c.config.ListingTTL
	}

	data, err := json.Marshal(listings)
	if err != nil {
		c.logger.Error("Failed to marshal listings", zap.Error(err))
		return fmt.Errorf("failed to marshal listings: %w", err)
	}

	if err := c.client.Set(ctx, listingCacheKey, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set listings in cache", zap.Error(err))
		return fmt.Errorf("failed to set listings in cache: %w", err)
	}

	c.logger.Debug("Cached marketplace listings",
		zap.Int("count", len(listings)),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate drops the cached derivation
func (c *RedisListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, listingCacheKey).Err(); err != nil {
		c.logger.Error("Failed to delete listings from cache", zap.Error(err))
		return fmt.Errorf("failed to delete listings from cache: %w", err)
	}

	c.logger.Debug("Deleted marketplace listings from cache")
	return nil
}

// Close releases any resources held by the cache
func (c *RedisListingCache) Close() error {
	// Only close client if we own it
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisListingCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisListingCache implements ListingCache
var _ marketplaceapp.ListingCache = (*RedisListingCache)(nil)
