package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	marketplaceapp "github.com/kosthub/backend/internal/application/marketplace"
	"github.com/kosthub/backend/internal/domain/marketplace"
)

// InMemoryListingCache holds the marketplace derivation in process memory.
// It is a single slot: the derivation is cached whole, so there is no key
// space to manage and no cleanup goroutine to run.
type InMemoryListingCache struct {
	mu     sync.RWMutex
	entry  *cacheEntry[[]marketplace.Listing]
	config CacheConfig
	logger *zap.Logger

	// Stats for monitoring
	hits   int64
	misses int64
}

// InMemoryListingCacheOption is a functional option for configuring the cache
type InMemoryListingCacheOption func(*InMemoryListingCache)

// WithInMemoryListingConfig sets the cache configuration
func WithInMemoryListingConfig(config CacheConfig) InMemoryListingCacheOption {
	return func(c *InMemoryListingCache) {
		c.config = config
	}
}

// WithInMemoryListingLogger sets the logger for the cache
func WithInMemoryListingLogger(logger *zap.Logger) InMemoryListingCacheOption {
	return func(c *InMemoryListingCache) {
		c.logger = logger
	}
}

// NewInMemoryListingCache creates a new in-memory listing cache
func NewInMemoryListingCache(opts ...InMemoryListingCacheOption) *InMemoryListingCache {
	cache := &InMemoryListingCache{
		config: DefaultCacheConfig(),
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// Get retrieves the cached derivation
func (c *InMemoryListingCache) Get(ctx context.Context) ([]marketplace.Listing, bool, error) {
	c.mu.RLock()
	entry := c.entry
	c.mu.RUnlock()

	if entry != nil && !entry.isExpired() {
		atomic.AddInt64(&c.hits, 1)
		c.logger.Debug("Cache hit for marketplace listings",
			zap.Int("count", len(entry.value)))
		return entry.value, true, nil
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("Cache miss for marketplace listings")
	return nil, false, nil
}

// Set stores a derivation
func (c *InMemoryListingCache) Set(ctx context.Context, listings []marketplace.Listing, ttl time.Duration) error {
	if listings == nil {
		listings = []marketplace.Listing{}
	}

	if ttl == 0 {
		ttl = c.config.ListingTTL
	}

	c.mu.Lock()
	c.entry = &cacheEntry[[]marketplace.Listing]{
		value:     listings,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()

	c.logger.Debug("Cached marketplace listings",
		zap.Int("count", len(listings)),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate drops the cached derivation
func (c *InMemoryListingCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()

	c.logger.Debug("Deleted marketplace listings from cache")
	return nil
}

// GetStats returns cache statistics
func (c *InMemoryListingCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// ResetStats resets the cache statistics
func (c *InMemoryListingCache) ResetStats() {
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
}

// Ensure InMemoryListingCache implements ListingCache
var _ marketplaceapp.ListingCache = (*InMemoryListingCache)(nil)
