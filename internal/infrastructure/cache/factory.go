package cache

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/application/entitlement"
	marketplaceapp "github.com/kosthub/backend/internal/application/marketplace"
	"github.com/kosthub/backend/internal/infrastructure/config"
)

// CacheFactory creates the entitlement and listing caches based on configuration
type CacheFactory struct {
	redisConfig           config.RedisConfig
	cacheConfig           CacheConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CacheFactoryOption is a functional option for configuring the factory
type CacheFactoryOption func(*CacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CacheFactoryOption {
	return func(f *CacheFactory) {
		f.logger = logger
	}
}

// WithCacheSettings sets the TTL and channel configuration for the caches
func WithCacheSettings(cacheConfig CacheConfig) CacheFactoryOption {
	return func(f *CacheFactory) {
		f.cacheConfig = cacheConfig
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory caches when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) CacheFactoryOption {
	return func(f *CacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCacheFactory creates a new factory
func NewCacheFactory(cfg config.RedisConfig, opts ...CacheFactoryOption) *CacheFactory {
	f := &CacheFactory{
		redisConfig:           cfg,
		cacheConfig:           DefaultCacheConfig(),
		logger:                zap.NewNop(),
		allowInMemoryFallback: true, // Default to allowing fallback
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *CacheFactory) localRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}
}

// CreateTieredEntitlementCache creates the L1/L2 entitlement cache with
// its Pub/Sub invalidator. The subscription is not started; callers that
// want cross-instance invalidation must call StartInvalidationSubscription.
func (f *CacheFactory) CreateTieredEntitlementCache() (*TieredEntitlementCache, error) {
	redisCfg := f.localRedisConfig()

	l2, err := NewRedisEntitlementCache(redisCfg,
		WithEntitlementCacheConfig(f.cacheConfig),
		WithEntitlementCacheLogger(f.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis entitlement cache: %w", err)
	}

	invalidator, err := NewRedisCacheInvalidator(redisCfg,
		WithInvalidatorChannel(f.cacheConfig.PubSubChannel),
		WithInvalidatorLogger(f.logger))
	if err != nil {
		_ = l2.Close()
		return nil, fmt.Errorf("failed to create cache invalidator: %w", err)
	}

	l1 := NewInMemoryEntitlementCache(
		WithInMemoryEntitlementConfig(f.cacheConfig),
		WithInMemoryEntitlementLogger(f.logger))

	return NewTieredEntitlementCache(l1, l2, invalidator,
		WithTieredConfig(f.cacheConfig),
		WithTieredLogger(f.logger)), nil
}

// CreateInMemoryEntitlementCache creates an in-memory entitlement cache
// This is suitable for single-instance deployments and testing
// WARNING: In-memory caches do not share state across process instances,
// so a subscription change on one instance stays visible on the others
// until their TTL runs out
func (f *CacheFactory) CreateInMemoryEntitlementCache() *InMemoryEntitlementCache {
	return NewInMemoryEntitlementCache(
		WithInMemoryEntitlementConfig(f.cacheConfig),
		WithInMemoryEntitlementLogger(f.logger))
}

// CreateEntitlementCache creates an entitlement cache based on whether Redis
// is available. It tries the tiered Redis-backed cache first, starts its
// invalidation subscription, and falls back to in-memory if Redis is not
// available and AllowInMemoryFallback is true.
func (f *CacheFactory) CreateEntitlementCache() (entitlement.FeatureMapCache, error) {
	tiered, err := f.CreateTieredEntitlementCache()
	if err == nil {
		go func() {
			subErr := tiered.StartInvalidationSubscription(context.Background())
			if subErr != nil && !errors.Is(subErr, context.Canceled) {
				f.logger.Error("Cache invalidation subscription ended", zap.Error(subErr))
			}
		}()
		f.logger.Info("using tiered entitlement cache")
		return tiered, nil
	}

	// Check if fallback is allowed
	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for entitlement cache but unavailable: %w", err)
	}

	// Fall back to in-memory with warning
	f.logger.Warn("Redis unavailable, falling back to in-memory entitlement cache. "+
		"Invalidations will not propagate across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryEntitlementCache(), nil
}

// CreateRedisListingCache creates a Redis-based listing cache
func (f *CacheFactory) CreateRedisListingCache() (*RedisListingCache, error) {
	cache, err := NewRedisListingCache(f.localRedisConfig(),
		WithListingCacheConfig(f.cacheConfig),
		WithListingCacheLogger(f.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis listing cache: %w", err)
	}

	return cache, nil
}

// CreateInMemoryListingCache creates an in-memory listing cache
func (f *CacheFactory) CreateInMemoryListingCache() *InMemoryListingCache {
	return NewInMemoryListingCache(
		WithInMemoryListingConfig(f.cacheConfig),
		WithInMemoryListingLogger(f.logger))
}

// CreateListingCache creates a listing cache based on whether Redis is
// available. It tries Redis first, and falls back to in-memory if Redis
// is not available and AllowInMemoryFallback is true.
func (f *CacheFactory) CreateListingCache() (marketplaceapp.ListingCache, error) {
	cache, err := f.CreateRedisListingCache()
	if err == nil {
		f.logger.Info("using Redis listing cache")
		return cache, nil
	}

	// Check if fallback is allowed
	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for listing cache but unavailable: %w", err)
	}

	// Fall back to in-memory with warning
	f.logger.Warn("Redis unavailable, falling back to in-memory listing cache. "+
		"Each instance will derive listings independently.",
		zap.Error(err),
	)
	return f.CreateInMemoryListingCache(), nil
}
