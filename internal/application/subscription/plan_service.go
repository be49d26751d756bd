package subscription

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/domain/subscription"
)

// PlanService manages the plan catalog. Plans are back-office managed;
// owners only ever read the active set.
type PlanService struct {
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.SubscriptionRepository
	events           shared.EventPublisher
	logger           *zap.Logger
}

// NewPlanService creates a new plan service
func NewPlanService(
	planRepo subscription.PlanRepository,
	subscriptionRepo subscription.SubscriptionRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *PlanService {
	return &PlanService{
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		events:           events,
		logger:           logger,
	}
}

// List returns every plan including retired ones
func (s *PlanService) List(ctx context.Context) ([]PlanResponse, error) {
	plans, err := s.planRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list plans", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list plans")
	}
	return toPlanResponses(plans), nil
}

// ListActive returns the plans currently on sale, in display order
func (s *PlanService) ListActive(ctx context.Context) ([]PlanResponse, error) {
	plans, err := s.planRepo.FindActive(ctx)
	if err != nil {
		s.logger.Error("Failed to list active plans", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list plans")
	}
	return toPlanResponses(plans), nil
}

// GetByID returns one plan
func (s *PlanService) GetByID(ctx context.Context, planID uuid.UUID) (*PlanResponse, error) {
	plan, err := s.findPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// Create adds a plan to the catalog
func (s *PlanService) Create(ctx context.Context, req CreatePlanRequest) (*PlanResponse, error) {
	// Codes are stored lowercase, so the uniqueness check must match
	code := strings.ToLower(strings.TrimSpace(req.Code))

	exists, err := s.planRepo.ExistsByCode(ctx, code)
	if err != nil {
		s.logger.Error("Failed to check plan code", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check plan code")
	}
	if exists {
		return nil, shared.NewDomainError("PLAN_CODE_EXISTS", "A plan with this code already exists")
	}

	plan, err := subscription.NewPlan(code, req.Name, req.Price, subscription.BillingPeriod(req.BillingPeriod), req.Features)
	if err != nil {
		return nil, err
	}
	plan.Description = req.Description
	plan.SortOrder = req.SortOrder

	if err := s.planRepo.Save(ctx, plan); err != nil {
		s.logger.Error("Failed to save plan", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save plan")
	}

	s.publishEvents(ctx, plan)

	s.logger.Info("Plan created",
		zap.String("plan_id", plan.ID.String()),
		zap.String("code", plan.Code))

	return toPlanResponse(plan), nil
}

// Update modifies a plan. Feature changes apply to every subscriber on
// the next entitlement resolution.
func (s *PlanService) Update(ctx context.Context, planID uuid.UUID, req UpdatePlanRequest) (*PlanResponse, error) {
	plan, err := s.findPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := plan.Name
		if req.Name != nil {
			name = *req.Name
		}
		description := plan.Description
		if req.Description != nil {
			description = *req.Description
		}
		if err := plan.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		if err := plan.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}

	if req.Features != nil {
		if err := plan.ReplaceFeatures(req.Features); err != nil {
			return nil, err
		}
	}

	if req.SortOrder != nil {
		plan.SortOrder = *req.SortOrder
	}

	if req.Active != nil && *req.Active != plan.Active {
		if *req.Active {
			err = plan.Reinstate()
		} else {
			err = plan.Retire()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		s.logger.Error("Failed to update plan", zap.Error(err), zap.String("plan_id", planID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update plan")
	}

	s.publishEvents(ctx, plan)

	return toPlanResponse(plan), nil
}

// Delete removes a plan that no active subscription uses. Retiring is
// the normal way to take a plan off sale; delete is for plans that
// never sold.
func (s *PlanService) Delete(ctx context.Context, planID uuid.UUID) error {
	plan, err := s.findPlan(ctx, planID)
	if err != nil {
		return err
	}

	active, err := s.subscriptionRepo.CountActiveByPlan(ctx, planID)
	if err != nil {
		s.logger.Error("Failed to count subscriptions", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to count subscriptions")
	}
	if active > 0 {
		return shared.NewDomainError("PLAN_IN_USE", "Plan still has active subscriptions")
	}

	if err := s.planRepo.Delete(ctx, planID); err != nil {
		s.logger.Error("Failed to delete plan", zap.Error(err), zap.String("plan_id", planID.String()))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete plan")
	}

	s.logger.Info("Plan deleted",
		zap.String("plan_id", planID.String()),
		zap.String("code", plan.Code))

	return nil
}

// SeedDefaults writes the built-in plan set, skipping codes that
// already exist. Safe to run on every boot.
func (s *PlanService) SeedDefaults(ctx context.Context) error {
	for _, plan := range subscription.DefaultPlans() {
		exists, err := s.planRepo.ExistsByCode(ctx, plan.Code)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		plan.ClearDomainEvents()
		if err := s.planRepo.Save(ctx, plan); err != nil {
			return err
		}
		s.logger.Info("Seeded default plan", zap.String("code", plan.Code))
	}
	return nil
}

func (s *PlanService) findPlan(ctx context.Context, planID uuid.UUID) (*subscription.Plan, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PLAN_NOT_FOUND", "Plan not found")
		}
		s.logger.Error("Failed to find plan", zap.Error(err), zap.String("plan_id", planID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find plan")
	}
	return plan, nil
}

func toPlanResponses(plans []*subscription.Plan) []PlanResponse {
	responses := make([]PlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, *toPlanResponse(plan))
	}
	return responses
}

// publishEvents publishes the aggregate's accumulated domain events
func (s *PlanService) publishEvents(ctx context.Context, plan *subscription.Plan) {
	if s.events == nil {
		return
	}
	events := plan.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.events.Publish(ctx, events...)
	plan.ClearDomainEvents()
}
