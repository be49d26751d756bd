package subscription

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/domain/identity"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/domain/subscription"
)

// SubscriptionService manages owner subscriptions. An owner holds at
// most one active subscription; this service is the only writer and
// enforces that on every path.
type SubscriptionService struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	events           shared.EventPublisher
	logger           *zap.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		events:           events,
		logger:           logger,
	}
}

// Subscribe starts a subscription on the requested plan. A lapsed
// subscription the sweeper has not reached yet is expired here first;
// a genuinely active one must be cancelled or plan-changed instead.
func (s *SubscriptionService) Subscribe(ctx context.Context, ownerID uuid.UUID, req SubscribeRequest) (*SubscriptionResponse, error) {
	plan, err := s.findActivePlanByCode(ctx, req.PlanCode)
	if err != nil {
		return nil, err
	}

	existing, err := s.subscriptionRepo.FindActiveByOwner(ctx, ownerID)
	switch {
	case err == nil:
		if !existing.HasLapsed() {
			return nil, shared.NewDomainError("ALREADY_SUBSCRIBED", "Owner already has an active subscription")
		}
		if err := existing.MarkExpired(); err != nil {
			return nil, err
		}
		if err := s.subscriptionRepo.Save(ctx, existing); err != nil {
			s.logger.Error("Failed to expire lapsed subscription", zap.Error(err), zap.String("subscription_id", existing.ID.String()))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save subscription")
		}
		s.publishEvents(ctx, existing)
	case errors.Is(err, shared.ErrNotFound):
		// first subscription for this owner
	default:
		s.logger.Error("Failed to find subscription", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find subscription")
	}

	sub, err := subscription.NewSubscription(ownerID, plan.ID, time.Now(), planPeriodEnd(plan))
	if err != nil {
		return nil, err
	}

	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		s.logger.Error("Failed to save subscription", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save subscription")
	}

	s.publishEvents(ctx, sub)

	s.logger.Info("Subscription started",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("plan_code", plan.Code))

	return toSubscriptionResponse(sub, plan), nil
}

// GetCurrent returns the owner's active subscription
func (s *SubscriptionService) GetCurrent(ctx context.Context, ownerID uuid.UUID) (*SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindActiveByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNoActiveSubscription
		}
		s.logger.Error("Failed to find subscription", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find subscription")
	}
	return toSubscriptionResponse(sub, s.loadPlan(ctx, sub.PlanID)), nil
}

// History returns all of the owner's subscriptions, newest first
func (s *SubscriptionService) History(ctx context.Context, ownerID uuid.UUID) ([]SubscriptionResponse, error) {
	subs, err := s.subscriptionRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to list subscriptions", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list subscriptions")
	}

	plans := make(map[uuid.UUID]*subscription.Plan)
	responses := make([]SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		plan, ok := plans[sub.PlanID]
		if !ok {
			plan = s.loadPlan(ctx, sub.PlanID)
			plans[sub.PlanID] = plan
		}
		responses = append(responses, *toSubscriptionResponse(sub, plan))
	}
	return responses, nil
}

// Cancel ends the owner's active subscription
func (s *SubscriptionService) Cancel(ctx context.Context, ownerID uuid.UUID) (*SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindActiveByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNoActiveSubscription
		}
		s.logger.Error("Failed to find subscription", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find subscription")
	}

	if err := sub.Cancel(); err != nil {
		return nil, err
	}

	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		s.logger.Error("Failed to save cancellation", zap.Error(err), zap.String("subscription_id", sub.ID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save subscription")
	}

	s.publishEvents(ctx, sub)

	s.logger.Info("Subscription cancelled",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("owner_id", ownerID.String()))

	return toSubscriptionResponse(sub, s.loadPlan(ctx, sub.PlanID)), nil
}

// ChangePlan moves the owner's active subscription to another plan.
// The new plan's billing window starts now; pro-rating is out of scope.
func (s *SubscriptionService) ChangePlan(ctx context.Context, ownerID uuid.UUID, req ChangePlanRequest) (*SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindActiveByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNoActiveSubscription
		}
		s.logger.Error("Failed to find subscription", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find subscription")
	}

	plan, err := s.findActivePlanByCode(ctx, req.PlanCode)
	if err != nil {
		return nil, err
	}

	if err := sub.ChangePlan(plan.ID, planPeriodEnd(plan)); err != nil {
		return nil, err
	}

	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		s.logger.Error("Failed to save plan change", zap.Error(err), zap.String("subscription_id", sub.ID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save subscription")
	}

	s.publishEvents(ctx, sub)

	s.logger.Info("Subscription plan changed",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("plan_code", plan.Code))

	return toSubscriptionResponse(sub, plan), nil
}

// ExpireLapsed transitions active subscriptions past their expiry to
// expired, in batches. Returns how many it expired. Entitlement checks
// already treat lapsed rows as granting nothing, so the sweeper only
// settles the stored status.
func (s *SubscriptionService) ExpireLapsed(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	lapsed, err := s.subscriptionRepo.FindLapsed(ctx, time.Now(), batchSize)
	if err != nil {
		s.logger.Error("Failed to find lapsed subscriptions", zap.Error(err))
		return 0, err
	}

	expired := 0
	for _, sub := range lapsed {
		if err := sub.MarkExpired(); err != nil {
			// renewed or cancelled between query and here
			continue
		}
		if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
			s.logger.Error("Failed to save expired subscription",
				zap.Error(err),
				zap.String("subscription_id", sub.ID.String()))
			continue
		}
		s.publishEvents(ctx, sub)
		expired++
	}

	if expired > 0 {
		s.logger.Info("Expired lapsed subscriptions", zap.Int("count", expired))
	}
	return expired, nil
}

// Handle starts the free plan for newly registered owner accounts.
// Tenant registrations carry no subscription. Implements
// shared.EventHandler.
func (s *SubscriptionService) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*identity.AccountRegisteredEvent)
	if !ok {
		return nil
	}
	if identity.NormalizeProfileClaim(e.RoleClaim) != identity.RoleAdmin {
		return nil
	}
	return s.bootstrapFreePlan(ctx, e.AccountID)
}

// EventTypes implements shared.EventHandler
func (s *SubscriptionService) EventTypes() []string {
	return []string{identity.EventTypeAccountRegistered}
}

// bootstrapFreePlan puts a fresh owner on the free plan so limit
// checks have something to resolve against. Skips owners who already
// hold an active subscription, so replayed events are harmless.
func (s *SubscriptionService) bootstrapFreePlan(ctx context.Context, ownerID uuid.UUID) error {
	_, err := s.subscriptionRepo.FindActiveByOwner(ctx, ownerID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	plan, err := s.planRepo.FindByCode(ctx, subscription.PlanCodeFree)
	if err != nil {
		s.logger.Error("Free plan missing, owner starts without entitlements",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()))
		return err
	}

	sub, err := subscription.NewSubscription(ownerID, plan.ID, time.Now(), nil)
	if err != nil {
		return err
	}

	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return err
	}

	s.publishEvents(ctx, sub)

	s.logger.Info("Owner placed on free plan",
		zap.String("owner_id", ownerID.String()),
		zap.String("subscription_id", sub.ID.String()))

	return nil
}

func (s *SubscriptionService) findActivePlanByCode(ctx context.Context, code string) (*subscription.Plan, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	plan, err := s.planRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PLAN_NOT_FOUND", "Plan not found")
		}
		s.logger.Error("Failed to find plan", zap.Error(err), zap.String("plan_code", code))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find plan")
	}
	if !plan.Active {
		return nil, shared.NewDomainError("PLAN_RETIRED", "Plan is no longer on sale")
	}
	return plan, nil
}

// loadPlan fetches a plan for response decoration; responses tolerate
// a missing plan rather than failing the whole read
func (s *SubscriptionService) loadPlan(ctx context.Context, planID uuid.UUID) *subscription.Plan {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		s.logger.Warn("Failed to load plan for response", zap.Error(err), zap.String("plan_id", planID.String()))
		return nil
	}
	return plan
}

// planPeriodEnd derives a subscription expiry from the plan's billing
// period. Free plans run until cancelled.
func planPeriodEnd(plan *subscription.Plan) *time.Time {
	if plan.IsFree() {
		return nil
	}
	var until time.Time
	switch plan.BillingPeriod {
	case subscription.BillingPeriodYearly:
		until = time.Now().AddDate(1, 0, 0)
	default:
		until = time.Now().AddDate(0, 1, 0)
	}
	return &until
}

// publishEvents publishes the aggregate's accumulated domain events
func (s *SubscriptionService) publishEvents(ctx context.Context, sub *subscription.Subscription) {
	if s.events == nil {
		return
	}
	events := sub.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.events.Publish(ctx, events...)
	sub.ClearDomainEvents()
}

var _ shared.EventHandler = (*SubscriptionService)(nil)
