package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/application/entitlement"
	"github.com/kosthub/backend/internal/domain/subscription"
)

// Constants for in-memory cache configuration
const (
	defaultCleanupInterval = 30 * time.Second
)

// cacheEntry wraps a cached value with expiration time
type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// isExpired checks if the cache entry has expired
func (e *cacheEntry[T]) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryEntitlementCache implements FeatureMapCache using in-memory
// storage. It serves as the L1 tier in front of Redis, and as the whole
// cache in single-instance deployments where Redis is not available.
type InMemoryEntitlementCache struct {
	entries sync.Map // map[uuid.UUID]*cacheEntry[subscription.FeatureMap]
	config  CacheConfig
	logger  *zap.Logger
	stopCh  chan struct{} // Channel to stop the cleanup goroutine
	stopped int32         // Atomic flag to track if cache is stopped

	// Stats for monitoring
	hits   int64
	misses int64
}

// InMemoryEntitlementCacheOption is a functional option for configuring the cache
type InMemoryEntitlementCacheOption func(*InMemoryEntitlementCache)

// WithInMemoryEntitlementConfig sets the cache configuration
func WithInMemoryEntitlementConfig(config CacheConfig) InMemoryEntitlementCacheOption {
	return func(c *InMemoryEntitlementCache) {
		c.config = config
	}
}

// WithInMemoryEntitlementLogger sets the logger for the cache
func WithInMemoryEntitlementLogger(logger *zap.Logger) InMemoryEntitlementCacheOption {
	return func(c *InMemoryEntitlementCache) {
		c.logger = logger
	}
}

// NewInMemoryEntitlementCache creates a new in-memory entitlement cache
func NewInMemoryEntitlementCache(opts ...InMemoryEntitlementCacheOption) *InMemoryEntitlementCache {
	cache := &InMemoryEntitlementCache{
		config: DefaultCacheConfig(),
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	// Start background cleanup goroutine
	go cache.cleanupExpired()

	return cache
}

// Get retrieves an owner's feature map from cache
func (c *InMemoryEntitlementCache) Get(ctx context.Context, ownerID uuid.UUID) (subscription.FeatureMap, bool, error) {
	if value, ok := c.entries.Load(ownerID); ok {
		entry := value.(*cacheEntry[subscription.FeatureMap])
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("L1 cache hit for entitlements",
				zap.String("owner_id", ownerID.String()))
			return entry.value, true, nil
		}
		// Expired, remove from cache
		c.entries.Delete(ownerID)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("L1 cache miss for entitlements",
		zap.String("owner_id", ownerID.String()))
	return nil, false, nil
}

// Set stores an owner's feature map in cache
func (c *InMemoryEntitlementCache) Set(ctx context.Context, ownerID uuid.UUID, features subscription.FeatureMap, ttl time.Duration) error {
	if features == nil {
		features = subscription.FeatureMap{}
	}

	if ttl == 0 {
		ttl = c.config.EntitlementTTL
	}

	entry := &cacheEntry[subscription.FeatureMap]{
		value:     features,
		expiresAt: time.Now().Add(ttl),
	}

	c.entries.Store(ownerID, entry)
	c.logger.Debug("Cached entitlements in L1",
		zap.String("owner_id", ownerID.String()),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate removes an owner's feature map from cache
func (c *InMemoryEntitlementCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	c.entries.Delete(ownerID)
	c.logger.Debug("Deleted entitlements from L1 cache",
		zap.String("owner_id", ownerID.String()))
	return nil
}

// InvalidateAll removes every cached feature map
func (c *InMemoryEntitlementCache) InvalidateAll(ctx context.Context) error {
	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})

	c.logger.Info("Invalidated all L1 entitlement cache")
	return nil
}

// Close releases any resources held by the cache
func (c *InMemoryEntitlementCache) Close() error {
	// Only close once
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache statistics
func (c *InMemoryEntitlementCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// ResetStats resets the cache statistics
func (c *InMemoryEntitlementCache) ResetStats() {
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
}

// Count returns the number of entries in the cache
func (c *InMemoryEntitlementCache) Count() int {
	count := 0
	c.entries.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// cleanupExpired periodically removes expired entries from the cache
func (c *InMemoryEntitlementCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						c.logger.Error("Panic in cache cleanup",
							zap.Any("panic", r))
					}
				}()
				c.doCleanup()
			}()
		}
	}
}

// doCleanup removes expired entries
func (c *InMemoryEntitlementCache) doCleanup() {
	var removed int

	c.entries.Range(func(key, value any) bool {
		entry := value.(*cacheEntry[subscription.FeatureMap])
		if entry.isExpired() {
			c.entries.Delete(key)
			removed++
		}
		return true
	})

	if removed > 0 {
		c.logger.Debug("Cleaned up expired L1 cache entries",
			zap.Int("removed", removed))
	}
}

// Ensure InMemoryEntitlementCache implements FeatureMapCache
var _ entitlement.FeatureMapCache = (*InMemoryEntitlementCache)(nil)
