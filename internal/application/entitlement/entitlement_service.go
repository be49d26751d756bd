package entitlement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/domain/subscription"
)

// FeatureMapCache caches resolved owner feature maps. A cache failure is
// never an entitlement failure: reads fall back to the store, writes are
// dropped.
type FeatureMapCache interface {
	// Get returns the cached feature map; the bool is false on a miss
	Get(ctx context.Context, ownerID uuid.UUID) (subscription.FeatureMap, bool, error)
	// Set stores a feature map with a TTL
	Set(ctx context.Context, ownerID uuid.UUID, features subscription.FeatureMap, ttl time.Duration) error
	// Invalidate drops the cached feature map for an owner
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
	// InvalidateAll drops every cached feature map
	InvalidateAll(ctx context.Context) error
}

// EntitlementServiceConfig contains configuration for the entitlement service
type EntitlementServiceConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// DefaultEntitlementServiceConfig returns default configuration
func DefaultEntitlementServiceConfig() EntitlementServiceConfig {
	return EntitlementServiceConfig{
		CacheEnabled: true,
		CacheTTL:     60 * time.Second,
	}
}

// EntitlementService answers what an owner's subscription entitles them
// to. It is the single gate for feature checks: the HTTP layer asks it
// before feature-gated routes, and application services ask it again
// before privileged mutations, because UI gating alone is not a security
// boundary.
//
// The gate fails closed: when the store cannot answer, every check
// reports no entitlement alongside ENTITLEMENT_LOOKUP_FAILED.
type EntitlementService struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	cache            FeatureMapCache
	config           EntitlementServiceConfig
	logger           *zap.Logger
}

// NewEntitlementService creates a new entitlement service
func NewEntitlementService(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	cache FeatureMapCache,
	config EntitlementServiceConfig,
	logger *zap.Logger,
) *EntitlementService {
	return &EntitlementService{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		cache:            cache,
		config:           config,
		logger:           logger,
	}
}

// HasFeature reports whether the owner's active subscription grants the
// boolean feature. No active subscription means false, never an error.
func (s *EntitlementService) HasFeature(ctx context.Context, ownerID uuid.UUID, key subscription.FeatureKey) (bool, error) {
	features, err := s.FeatureMap(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return features.Has(key), nil
}

// FeatureTier returns the granted tier for a graded feature. Without an
// active subscription the key's lowest tier is returned.
func (s *EntitlementService) FeatureTier(ctx context.Context, ownerID uuid.UUID, key subscription.FeatureKey) (subscription.Tier, error) {
	features, err := s.FeatureMap(ctx, ownerID)
	if err != nil {
		return subscription.LowestTier(key), err
	}
	return features.TierOf(key), nil
}

// FeatureLimit returns the numeric limit for a limit feature. The bool
// is false when the feature grants nothing; a nil limit with true means
// unlimited.
func (s *EntitlementService) FeatureLimit(ctx context.Context, ownerID uuid.UUID, key subscription.FeatureKey) (*int, bool, error) {
	features, err := s.FeatureMap(ctx, ownerID)
	if err != nil {
		return nil, false, err
	}
	limit, ok := features.LimitOf(key)
	return limit, ok, nil
}

// WithinLimit reports whether one more unit fits under the owner's limit
// for the key, given the current usage count.
func (s *EntitlementService) WithinLimit(ctx context.Context, ownerID uuid.UUID, key subscription.FeatureKey, current int) (bool, error) {
	limit, ok, err := s.FeatureLimit(ctx, ownerID, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if limit == nil {
		return true, nil
	}
	return current < *limit, nil
}

// FeatureMap resolves the owner's full feature map: the active
// subscription's plan features, or an empty map when the owner has no
// active subscription. Store failures return ENTITLEMENT_LOOKUP_FAILED.
func (s *EntitlementService) FeatureMap(ctx context.Context, ownerID uuid.UUID) (subscription.FeatureMap, error) {
	if s.cacheEnabled() {
		features, ok, err := s.cache.Get(ctx, ownerID)
		if err != nil {
			s.logger.Warn("Entitlement cache read failed, falling back to store",
				zap.String("owner_id", ownerID.String()),
				zap.Error(err))
		} else if ok {
			return features, nil
		}
	}

	sub, err := s.subscriptionRepo.FindActiveByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.remember(ctx, ownerID, subscription.FeatureMap{}), nil
		}
		s.logger.Error("Subscription lookup failed",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, shared.ErrEntitlementLookup
	}

	// An active row past its expiry grants nothing while it waits for
	// the sweeper
	if !sub.IsActive() {
		return s.remember(ctx, ownerID, subscription.FeatureMap{}), nil
	}

	plan, err := s.planRepo.FindByID(ctx, sub.PlanID)
	if err != nil {
		s.logger.Error("Plan lookup failed for active subscription",
			zap.String("owner_id", ownerID.String()),
			zap.String("plan_id", sub.PlanID.String()),
			zap.Error(err))
		return nil, shared.ErrEntitlementLookup
	}

	return s.remember(ctx, ownerID, plan.Features), nil
}

// InvalidateOwner drops the owner's cached feature map so the next check
// reads the store
func (s *EntitlementService) InvalidateOwner(ctx context.Context, ownerID uuid.UUID) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.logger.Warn("Entitlement cache invalidation failed",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
	}
}

// InvalidateAllOwners drops every cached feature map. Plan edits change
// the entitlements of every owner subscribed to that plan, and the cache
// is keyed by owner, so the whole thing goes.
func (s *EntitlementService) InvalidateAllOwners(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("Entitlement cache purge failed", zap.Error(err))
	}
}

func (s *EntitlementService) cacheEnabled() bool {
	return s.config.CacheEnabled && s.cache != nil
}

func (s *EntitlementService) remember(ctx context.Context, ownerID uuid.UUID, features subscription.FeatureMap) subscription.FeatureMap {
	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, ownerID, features, s.config.CacheTTL); err != nil {
			s.logger.Warn("Entitlement cache write failed",
				zap.String("owner_id", ownerID.String()),
				zap.Error(err))
		}
	}
	return features
}

// Handle implements shared.EventHandler. A subscription lifecycle event
// invalidates that owner's cached entitlements; a plan edit invalidates
// everyone, since the cache cannot tell which owners sit on the plan.
func (s *EntitlementService) Handle(ctx context.Context, event shared.DomainEvent) error {
	var ownerID uuid.UUID
	switch e := event.(type) {
	case *subscription.SubscriptionStartedEvent:
		ownerID = e.OwnerID
	case *subscription.SubscriptionCancelledEvent:
		ownerID = e.OwnerID
	case *subscription.SubscriptionExpiredEvent:
		ownerID = e.OwnerID
	case *subscription.SubscriptionRenewedEvent:
		ownerID = e.OwnerID
	case *subscription.SubscriptionPlanChangedEvent:
		ownerID = e.OwnerID
	case *subscription.PlanUpdatedEvent, *subscription.PlanRetiredEvent:
		s.logger.Debug("Plan changed, purging entitlement cache",
			zap.String("event_type", event.EventType()))
		s.InvalidateAllOwners(ctx)
		return nil
	default:
		return nil
	}

	s.logger.Debug("Subscription changed, invalidating entitlements",
		zap.String("owner_id", ownerID.String()),
		zap.String("event_type", event.EventType()))
	s.InvalidateOwner(ctx, ownerID)
	return nil
}

// EventTypes implements shared.EventHandler
func (s *EntitlementService) EventTypes() []string {
	return []string{
		subscription.EventTypeSubscriptionStarted,
		subscription.EventTypeSubscriptionCancelled,
		subscription.EventTypeSubscriptionExpired,
		subscription.EventTypeSubscriptionRenewed,
		subscription.EventTypeSubscriptionPlanChanged,
		subscription.EventTypePlanUpdated,
		subscription.EventTypePlanRetired,
	}
}

// Ensure EntitlementService implements shared.EventHandler
var _ shared.EventHandler = (*EntitlementService)(nil)
