package subscription

import (
	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSubscription = "Subscription"

// Event type constants
const (
	EventTypeSubscriptionStarted     = "SubscriptionStarted"
	EventTypeSubscriptionCancelled   = "SubscriptionCancelled"
	EventTypeSubscriptionExpired     = "SubscriptionExpired"
	EventTypeSubscriptionRenewed     = "SubscriptionRenewed"
	EventTypeSubscriptionPlanChanged = "SubscriptionPlanChanged"
)

// SubscriptionStartedEvent is published when an owner's subscription starts
type SubscriptionStartedEvent struct {
	shared.BaseDomainEvent
	SubscriptionID uuid.UUID `json:"subscription_id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	PlanID         uuid.UUID `json:"plan_id"`
}

// NewSubscriptionStartedEvent creates a new SubscriptionStartedEvent
func NewSubscriptionStartedEvent(sub *Subscription) *SubscriptionStartedEvent {
	return &SubscriptionStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubscriptionStarted, AggregateTypeSubscription, sub.ID),
		SubscriptionID:  sub.ID,
		OwnerID:         sub.OwnerID,
		PlanID:          sub.PlanID,
	}
}

// SubscriptionCancelledEvent is published when a subscription is cancelled.
// Entitlement caches subscribe to drop the owner's cached features.
type SubscriptionCancelledEvent struct {
	shared.BaseDomainEvent
	SubscriptionID uuid.UUID `json:"subscription_id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	PlanID         uuid.UUID `json:"plan_id"`
}

// NewSubscriptionCancelledEvent creates a new SubscriptionCancelledEvent
func NewSubscriptionCancelledEvent(sub *Subscription) *SubscriptionCancelledEvent {
	return &SubscriptionCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubscriptionCancelled, AggregateTypeSubscription, sub.ID),
		SubscriptionID:  sub.ID,
		OwnerID:         sub.OwnerID,
		PlanID:          sub.PlanID,
	}
}

// SubscriptionExpiredEvent is published when the sweeper marks a
// lapsed subscription expired
type SubscriptionExpiredEvent struct {
	shared.BaseDomainEvent
	SubscriptionID uuid.UUID `json:"subscription_id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	PlanID         uuid.UUID `json:"plan_id"`
}

// NewSubscriptionExpiredEvent creates a new SubscriptionExpiredEvent
func NewSubscriptionExpiredEvent(sub *Subscription) *SubscriptionExpiredEvent {
	return &SubscriptionExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubscriptionExpired, AggregateTypeSubscription, sub.ID),
		SubscriptionID:  sub.ID,
		OwnerID:         sub.OwnerID,
		PlanID:          sub.PlanID,
	}
}

// SubscriptionRenewedEvent is published when a subscription is extended
type SubscriptionRenewedEvent struct {
	shared.BaseDomainEvent
	SubscriptionID uuid.UUID `json:"subscription_id"`
	OwnerID        uuid.UUID `json:"owner_id"`
}

// NewSubscriptionRenewedEvent creates a new SubscriptionRenewedEvent
func NewSubscriptionRenewedEvent(sub *Subscription) *SubscriptionRenewedEvent {
	return &SubscriptionRenewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubscriptionRenewed, AggregateTypeSubscription, sub.ID),
		SubscriptionID:  sub.ID,
		OwnerID:         sub.OwnerID,
	}
}

// SubscriptionPlanChangedEvent is published when a subscription moves plans
type SubscriptionPlanChangedEvent struct {
	shared.BaseDomainEvent
	SubscriptionID uuid.UUID `json:"subscription_id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	OldPlanID      uuid.UUID `json:"old_plan_id"`
	NewPlanID      uuid.UUID `json:"new_plan_id"`
}

// NewSubscriptionPlanChangedEvent creates a new SubscriptionPlanChangedEvent
func NewSubscriptionPlanChangedEvent(sub *Subscription, oldPlanID uuid.UUID) *SubscriptionPlanChangedEvent {
	return &SubscriptionPlanChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubscriptionPlanChanged, AggregateTypeSubscription, sub.ID),
		SubscriptionID:  sub.ID,
		OwnerID:         sub.OwnerID,
		OldPlanID:       oldPlanID,
		NewPlanID:       sub.PlanID,
	}
}
