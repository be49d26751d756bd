package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/domain/subscription"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSubscriptionRepository implements SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByID finds a subscription by its ID
func (r *GormSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindActiveByOwner finds the owner's active subscription. The stored
// status is what counts here; a lapsed row still reads as active until
// the sweeper settles it.
func (r *GormSubscriptionRepository) FindActiveByOwner(ctx context.Context, ownerID uuid.UUID) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, subscription.StatusActive).
		Order("started_at DESC").
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindByOwner returns the owner's full subscription history, newest first
func (r *GormSubscriptionRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*subscription.Subscription, error) {
	var subs []*subscription.Subscription
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("started_at DESC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// FindAll returns subscriptions across all owners with pagination
func (r *GormSubscriptionRepository) FindAll(ctx context.Context, offset, limit int) ([]*subscription.Subscription, error) {
	var subs []*subscription.Subscription
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// FindLapsed returns active subscriptions whose expiry has passed,
// oldest expiry first so the sweeper settles the longest-overdue rows
// before the batch limit cuts off.
func (r *GormSubscriptionRepository) FindLapsed(ctx context.Context, before time.Time, limit int) ([]*subscription.Subscription, error) {
	var subs []*subscription.Subscription
	if err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", subscription.StatusActive, before).
		Order("expires_at ASC").
		Limit(limit).
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// Save creates or updates a subscription
func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *subscription.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// Delete removes a subscription
func (r *GormSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&subscription.Subscription{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the total number of subscriptions
func (r *GormSubscriptionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&subscription.Subscription{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveByPlan returns how many active subscriptions reference a plan
func (r *GormSubscriptionRepository) CountActiveByPlan(ctx context.Context, planID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&subscription.Subscription{}).
		Where("plan_id = ? AND status = ?", planID, subscription.StatusActive).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormSubscriptionRepository implements SubscriptionRepository
var _ subscription.SubscriptionRepository = (*GormSubscriptionRepository)(nil)
