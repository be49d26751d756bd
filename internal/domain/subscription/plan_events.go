package subscription

import (
	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypePlan = "Plan"

// Event type constants
const (
	EventTypePlanCreated = "PlanCreated"
	EventTypePlanUpdated = "PlanUpdated"
	EventTypePlanRetired = "PlanRetired"
)

// PlanCreatedEvent is published when a new plan is created
type PlanCreatedEvent struct {
	shared.BaseDomainEvent
	PlanID uuid.UUID `json:"plan_id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
}

// NewPlanCreatedEvent creates a new PlanCreatedEvent
func NewPlanCreatedEvent(plan *Plan) *PlanCreatedEvent {
	return &PlanCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanCreated, AggregateTypePlan, plan.ID),
		PlanID:          plan.ID,
		Code:            plan.Code,
		Name:            plan.Name,
	}
}

// PlanUpdatedEvent is published when a plan's details or features change.
// Entitlement caches subscribe to drop stale feature lookups.
type PlanUpdatedEvent struct {
	shared.BaseDomainEvent
	PlanID uuid.UUID `json:"plan_id"`
	Code   string    `json:"code"`
}

// NewPlanUpdatedEvent creates a new PlanUpdatedEvent
func NewPlanUpdatedEvent(plan *Plan) *PlanUpdatedEvent {
	return &PlanUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanUpdated, AggregateTypePlan, plan.ID),
		PlanID:          plan.ID,
		Code:            plan.Code,
	}
}

// PlanRetiredEvent is published when a plan is taken off sale
type PlanRetiredEvent struct {
	shared.BaseDomainEvent
	PlanID uuid.UUID `json:"plan_id"`
	Code   string    `json:"code"`
}

// NewPlanRetiredEvent creates a new PlanRetiredEvent
func NewPlanRetiredEvent(plan *Plan) *PlanRetiredEvent {
	return &PlanRetiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanRetired, AggregateTypePlan, plan.ID),
		PlanID:          plan.ID,
		Code:            plan.Code,
	}
}
