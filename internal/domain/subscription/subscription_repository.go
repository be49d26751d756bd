package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SubscriptionRepository defines the interface for subscription persistence
type SubscriptionRepository interface {
	// FindByID finds a subscription by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)

	// FindActiveByOwner finds the owner's single active subscription.
	// Returns shared.ErrNotFound when the owner has none.
	FindActiveByOwner(ctx context.Context, ownerID uuid.UUID) (*Subscription, error)

	// FindByOwner finds all subscriptions for an owner, newest first
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Subscription, error)

	// FindAll finds all subscriptions
	FindAll(ctx context.Context, offset, limit int) ([]*Subscription, error)

	// FindLapsed finds active subscriptions whose expiry passed before
	// the given time; the expiry sweeper feeds on this
	FindLapsed(ctx context.Context, before time.Time, limit int) ([]*Subscription, error)

	// Save creates or updates a subscription
	Save(ctx context.Context, sub *Subscription) error

	// Delete removes a subscription
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of subscriptions
	Count(ctx context.Context) (int64, error)

	// CountActiveByPlan returns how many active subscriptions use a plan
	CountActiveByPlan(ctx context.Context, planID uuid.UUID) (int64, error)
}
