package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/shared"
)

// Status represents the lifecycle state of a subscription
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusCancelled || s == StatusExpired
}

// Subscription ties an owner account to a plan for a period. Only an
// active subscription grants entitlements, and an owner holds at most
// one active subscription at a time (enforced by the application layer
// on Save).
type Subscription struct {
	shared.OwnerAggregateRoot
	PlanID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status      Status     `gorm:"type:varchar(20);not null;default:'active';index"`
	StartedAt   time.Time  `gorm:"not null"`
	ExpiresAt   *time.Time `gorm:"index"`
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription starts a subscription for an owner. A nil expiresAt
// means the subscription runs until cancelled.
func NewSubscription(ownerID, planID uuid.UUID, startedAt time.Time, expiresAt *time.Time) (*Subscription, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER_ID", "Owner ID cannot be empty")
	}
	if planID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PLAN_ID", "Plan ID cannot be empty")
	}
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	if expiresAt != nil && !expiresAt.After(startedAt) {
		return nil, shared.NewDomainError("INVALID_EXPIRY", "Expiry must be after the start")
	}

	sub := &Subscription{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		PlanID:             planID,
		Status:             StatusActive,
		StartedAt:          startedAt,
		ExpiresAt:          expiresAt,
	}

	sub.AddDomainEvent(NewSubscriptionStartedEvent(sub))

	return sub, nil
}

// Cancel ends the subscription by owner or back-office request.
// Entitlement checks read current state, so privileged actions stop
// immediately; already-rendered pages are not retroactively torn down.
func (s *Subscription) Cancel() error {
	if s.Status != StatusActive {
		return shared.NewDomainError("NOT_ACTIVE", "Only an active subscription can be cancelled")
	}

	now := time.Now()
	s.Status = StatusCancelled
	s.CancelledAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSubscriptionCancelledEvent(s))

	return nil
}

// MarkExpired transitions a lapsed subscription to expired. Called by
// the expiry sweeper once ExpiresAt has passed.
func (s *Subscription) MarkExpired() error {
	if s.Status != StatusActive {
		return shared.NewDomainError("NOT_ACTIVE", "Only an active subscription can expire")
	}
	if s.ExpiresAt == nil || time.Now().Before(*s.ExpiresAt) {
		return shared.NewDomainError("NOT_LAPSED", "Subscription has not lapsed yet")
	}

	s.Status = StatusExpired
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSubscriptionExpiredEvent(s))

	return nil
}

// Renew extends an active subscription to a new expiry
func (s *Subscription) Renew(until time.Time) error {
	if s.Status != StatusActive {
		return shared.NewDomainError("NOT_ACTIVE", "Only an active subscription can be renewed")
	}
	if !until.After(time.Now()) {
		return shared.NewDomainError("INVALID_EXPIRY", "Renewal expiry must be in the future")
	}

	s.ExpiresAt = &until
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSubscriptionRenewedEvent(s))

	return nil
}

// ChangePlan moves the subscription to a different plan immediately.
// The expiry moves with the plan: a paid plan's billing window replaces
// the old one, a free plan passes nil and runs until cancelled.
func (s *Subscription) ChangePlan(planID uuid.UUID, expiresAt *time.Time) error {
	if s.Status != StatusActive {
		return shared.NewDomainError("NOT_ACTIVE", "Only an active subscription can change plan")
	}
	if planID == uuid.Nil {
		return shared.NewDomainError("INVALID_PLAN_ID", "Plan ID cannot be empty")
	}
	if planID == s.PlanID {
		return shared.NewDomainError("PLAN_UNCHANGED", "Subscription is already on this plan")
	}
	if expiresAt != nil && !expiresAt.After(time.Now()) {
		return shared.NewDomainError("INVALID_EXPIRY", "Expiry must be in the future")
	}

	oldPlanID := s.PlanID
	s.PlanID = planID
	s.ExpiresAt = expiresAt
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSubscriptionPlanChangedEvent(s, oldPlanID))

	return nil
}

// IsActive reports whether the subscription currently grants
// entitlements: status active and not past its expiry.
func (s *Subscription) IsActive() bool {
	if s.Status != StatusActive {
		return false
	}
	if s.ExpiresAt != nil && !time.Now().Before(*s.ExpiresAt) {
		return false
	}
	return true
}

// HasLapsed reports whether an active subscription is past its expiry
// and awaiting the sweeper
func (s *Subscription) HasLapsed() bool {
	return s.Status == StatusActive && s.ExpiresAt != nil && !time.Now().Before(*s.ExpiresAt)
}
