package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/application/entitlement"
	"github.com/kosthub/backend/internal/domain/subscription"
)

// TieredEntitlementCache implements a two-tier caching strategy
// L1: Local in-memory cache (fast, but local to instance)
// L2: Redis cache (slower, but shared across instances)
// Entitlements are read on every authorized request, so the hot path
// stays in process memory; Pub/Sub keeps the local tiers honest when a
// subscription changes on another instance.
type TieredEntitlementCache struct {
	l1Cache     *InMemoryEntitlementCache
	l2Cache     *RedisEntitlementCache
	invalidator *RedisCacheInvalidator
	config      CacheConfig
	logger      *zap.Logger

	// Stats for monitoring
	l1Hits   int64
	l1Misses int64
	l2Hits   int64
	l2Misses int64
}

// TieredEntitlementCacheOption is a functional option for configuring the cache
type TieredEntitlementCacheOption func(*TieredEntitlementCache)

// WithTieredConfig sets the cache configuration
func WithTieredConfig(config CacheConfig) TieredEntitlementCacheOption {
	return func(c *TieredEntitlementCache) {
		c.config = config
	}
}

// WithTieredLogger sets the logger for the cache
func WithTieredLogger(logger *zap.Logger) TieredEntitlementCacheOption {
	return func(c *TieredEntitlementCache) {
		c.logger = logger
	}
}

// NewTieredEntitlementCache creates a new tiered entitlement cache
func NewTieredEntitlementCache(
	l1Cache *InMemoryEntitlementCache,
	l2Cache *RedisEntitlementCache,
	invalidator *RedisCacheInvalidator,
	opts ...TieredEntitlementCacheOption,
) *TieredEntitlementCache {
	cache := &TieredEntitlementCache{
		l1Cache:     l1Cache,
		l2Cache:     l2Cache,
		invalidator: invalidator,
		config:      DefaultCacheConfig(),
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// StartInvalidationSubscription starts listening for cache invalidation messages
// This should be called after creating the cache, typically in a goroutine
func (c *TieredEntitlementCache) StartInvalidationSubscription(ctx context.Context) error {
	if c.invalidator == nil {
		return nil
	}

	return c.invalidator.Subscribe(ctx, func(msg CacheUpdateMessage) {
		c.handleInvalidationMessage(msg)
	})
}

// handleInvalidationMessage processes cache invalidation messages
func (c *TieredEntitlementCache) handleInvalidationMessage(msg CacheUpdateMessage) {
	ctx := context.Background()

	switch msg.Action {
	case CacheUpdateActionOwnerInvalidated:
		ownerID, err := uuid.Parse(msg.OwnerID)
		if err != nil {
			c.logger.Error("Failed to parse owner ID in invalidation message",
				zap.String("owner_id", msg.OwnerID),
				zap.Error(err))
			return
		}
		if err := c.l1Cache.Invalidate(ctx, ownerID); err != nil {
			c.logger.Error("Failed to invalidate L1 cache for owner",
				zap.String("owner_id", msg.OwnerID),
				zap.Error(err))
		}
		c.logger.Debug("Invalidated L1 cache for owner",
			zap.String("owner_id", msg.OwnerID))

	case CacheUpdateActionAllInvalidated:
		if err := c.l1Cache.InvalidateAll(ctx); err != nil {
			c.logger.Error("Failed to invalidate all L1 cache", zap.Error(err))
		}
		c.logger.Info("Invalidated all L1 cache")
	}
}

// Get retrieves an owner's feature map from cache (L1 -> L2)
func (c *TieredEntitlementCache) Get(ctx context.Context, ownerID uuid.UUID) (subscription.FeatureMap, bool, error) {
	// Try L1 first
	features, ok, err := c.l1Cache.Get(ctx, ownerID)
	if err != nil {
		c.logger.Warn("L1 cache error",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
	}
	if ok {
		atomic.AddInt64(&c.l1Hits, 1)
		return features, true, nil
	}
	atomic.AddInt64(&c.l1Misses, 1)

	// Try L2
	features, ok, err = c.l2Cache.Get(ctx, ownerID)
	if err != nil {
		return nil, false, err
	}
	if ok {
		atomic.AddInt64(&c.l2Hits, 1)
		// Populate L1 cache
		if err := c.l1Cache.Set(ctx, ownerID, features, c.config.L1TTL); err != nil {
			c.logger.Warn("Failed to populate L1 cache",
				zap.String("owner_id", ownerID.String()),
				zap.Error(err))
		}
		return features, true, nil
	}
	atomic.AddInt64(&c.l2Misses, 1)

	return nil, false, nil
}

// Set stores an owner's feature map in cache
func (c *TieredEntitlementCache) Set(ctx context.Context, ownerID uuid.UUID, features subscription.FeatureMap, ttl time.Duration) error {
	// Set in L2
	if err := c.l2Cache.Set(ctx, ownerID, features, ttl); err != nil {
		return err
	}

	// Also set in L1 for immediate local access
	if err := c.l1Cache.Set(ctx, ownerID, features, c.config.L1TTL); err != nil {
		c.logger.Warn("Failed to set L1 cache",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
	}

	// Publish invalidation for other instances
	if c.invalidator != nil {
		if err := c.invalidator.PublishOwnerInvalidated(ctx, ownerID); err != nil {
			c.logger.Warn("Failed to publish owner invalidation",
				zap.String("owner_id", ownerID.String()),
				zap.Error(err))
		}
	}

	return nil
}

// Invalidate removes an owner's feature map from cache (both L1 and L2)
func (c *TieredEntitlementCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	// Delete from L2
	if err := c.l2Cache.Invalidate(ctx, ownerID); err != nil {
		return err
	}

	// Delete from L1
	if err := c.l1Cache.Invalidate(ctx, ownerID); err != nil {
		c.logger.Warn("Failed to delete from L1 cache",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
	}

	// Publish invalidation for other instances
	if c.invalidator != nil {
		if err := c.invalidator.PublishOwnerInvalidated(ctx, ownerID); err != nil {
			c.logger.Warn("Failed to publish owner invalidation",
				zap.String("owner_id", ownerID.String()),
				zap.Error(err))
		}
	}

	return nil
}

// InvalidateAll removes every cached feature map (both L1 and L2)
func (c *TieredEntitlementCache) InvalidateAll(ctx context.Context) error {
	// Purge L2
	if err := c.l2Cache.InvalidateAll(ctx); err != nil {
		return err
	}

	// Purge L1
	if err := c.l1Cache.InvalidateAll(ctx); err != nil {
		c.logger.Warn("Failed to invalidate L1 cache", zap.Error(err))
	}

	// Publish invalidation for other instances
	if c.invalidator != nil {
		if err := c.invalidator.PublishAllInvalidated(ctx); err != nil {
			c.logger.Warn("Failed to publish invalidate all", zap.Error(err))
		}
	}

	return nil
}

// Close releases any resources held by the cache
func (c *TieredEntitlementCache) Close() error {
	var lastErr error

	if c.invalidator != nil {
		if err := c.invalidator.Close(); err != nil {
			lastErr = err
		}
	}

	if err := c.l2Cache.Close(); err != nil {
		lastErr = err
	}

	if err := c.l1Cache.Close(); err != nil {
		lastErr = err
	}

	return lastErr
}

// GetCacheStats returns statistics about cache hits, misses, and other metrics
func (c *TieredEntitlementCache) GetCacheStats(ctx context.Context) CacheStats {
	l1Hits := atomic.LoadInt64(&c.l1Hits)
	l1Misses := atomic.LoadInt64(&c.l1Misses)
	l2Hits := atomic.LoadInt64(&c.l2Hits)
	l2Misses := atomic.LoadInt64(&c.l2Misses)

	totalHits := l1Hits + l2Hits
	totalMisses := l2Misses // Only count final misses

	var hitRatio float64
	totalRequests := totalHits + totalMisses
	if totalRequests > 0 {
		hitRatio = float64(totalHits) / float64(totalRequests)
	}

	return CacheStats{
		L1Hits:      l1Hits,
		L1Misses:    l1Misses,
		L2Hits:      l2Hits,
		L2Misses:    l2Misses,
		TotalHits:   totalHits,
		TotalMisses: totalMisses,
		HitRatio:    hitRatio,
		Entries:     int64(c.l1Cache.Count()),
	}
}

// ResetStats resets the cache statistics
func (c *TieredEntitlementCache) ResetStats() {
	atomic.StoreInt64(&c.l1Hits, 0)
	atomic.StoreInt64(&c.l1Misses, 0)
	atomic.StoreInt64(&c.l2Hits, 0)
	atomic.StoreInt64(&c.l2Misses, 0)
	c.l1Cache.ResetStats()
}

// Ensure TieredEntitlementCache implements FeatureMapCache
var _ entitlement.FeatureMapCache = (*TieredEntitlementCache)(nil)
