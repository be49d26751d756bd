package cache

import "time"

// CacheConfig holds tuning for the entitlement and listing caches
type CacheConfig struct {
	// EntitlementTTL is the time-to-live for cached owner feature maps (default: 60s)
	EntitlementTTL time.Duration
	// ListingTTL is the time-to-live for the cached marketplace derivation (default: 30s)
	ListingTTL time.Duration
	// L1TTL is the time-to-live for the L1 (local) tier (default: 10s)
	L1TTL time.Duration
	// PubSubChannel is the Redis Pub/Sub channel name (default: "entitlements:updates")
	PubSubChannel string
}

// DefaultCacheConfig returns the default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		EntitlementTTL: 60 * time.Second,
		ListingTTL:     30 * time.Second,
		L1TTL:          10 * time.Second,
		PubSubChannel:  "entitlements:updates",
	}
}

// CacheStats holds cache performance statistics
type CacheStats struct {
	L1Hits      int64   `json:"l1_hits"`
	L1Misses    int64   `json:"l1_misses"`
	L2Hits      int64   `json:"l2_hits"`
	L2Misses    int64   `json:"l2_misses"`
	TotalHits   int64   `json:"total_hits"`
	TotalMisses int64   `json:"total_misses"`
	HitRatio    float64 `json:"hit_ratio"`
	Entries     int64   `json:"entries"`
}

// CacheUpdateAction identifies what an invalidation message applies to
type CacheUpdateAction string

const (
	// CacheUpdateActionOwnerInvalidated drops one owner's cached feature map
	CacheUpdateActionOwnerInvalidated CacheUpdateAction = "owner_invalidated"
	// CacheUpdateActionAllInvalidated drops every cached feature map
	CacheUpdateActionAllInvalidated CacheUpdateAction = "all_invalidated"
)

// CacheUpdateMessage is broadcast over Redis Pub/Sub when one instance
// invalidates cached entitlements, so the other instances can drop their
// local tier instead of serving it until the L1 TTL runs out
type CacheUpdateMessage struct {
	Action    CacheUpdateAction `json:"action"`
	OwnerID   string            `json:"owner_id,omitempty"`
	Timestamp int64             `json:"timestamp"`
}
