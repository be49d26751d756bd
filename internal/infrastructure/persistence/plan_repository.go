package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/domain/subscription"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPlanRepository implements PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds a plan by its ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Plan, error) {
	var plan subscription.Plan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindByCode finds a plan by its code. Codes are stored lowercase.
func (r *GormPlanRepository) FindByCode(ctx context.Context, code string) (*subscription.Plan, error) {
	var plan subscription.Plan
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToLower(code)).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindAll returns every plan including retired ones, in display order
func (r *GormPlanRepository) FindAll(ctx context.Context) ([]*subscription.Plan, error) {
	var plans []*subscription.Plan
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC, price ASC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// FindActive returns the plans currently on sale, in display order
func (r *GormPlanRepository) FindActive(ctx context.Context) ([]*subscription.Plan, error) {
	var plans []*subscription.Plan
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC, price ASC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Save creates or updates a plan
func (r *GormPlanRepository) Save(ctx context.Context, plan *subscription.Plan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// Delete removes a plan
func (r *GormPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&subscription.Plan{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the total number of plans
func (r *GormPlanRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&subscription.Plan{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a plan code is already taken
func (r *GormPlanRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&subscription.Plan{}).
		Where("code = ?", strings.ToLower(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormPlanRepository implements PlanRepository
var _ subscription.PlanRepository = (*GormPlanRepository)(nil)
