package persistence

import (
	"context"
	"errors"

	"github.com/kosthub/backend/internal/domain/identity"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStaffMemberRepository implements StaffMemberRepository using GORM
type GormStaffMemberRepository struct {
	db *gorm.DB
}

// NewGormStaffMemberRepository creates a new GormStaffMemberRepository
func NewGormStaffMemberRepository(db *gorm.DB) *GormStaffMemberRepository {
	return &GormStaffMemberRepository{db: db}
}

// FindByID finds a staff member by ID
func (r *GormStaffMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.StaffMember, error) {
	var model models.StaffMemberModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAccountID finds the registry entry for an account regardless of
// its active flag
func (r *GormStaffMemberRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*identity.StaffMember, error) {
	var model models.StaffMemberModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByAccountID finds the active registry entry for an account.
// Role resolution reads through this: a deactivated entry must not
// grant a privileged role.
func (r *GormStaffMemberRepository) FindActiveByAccountID(ctx context.Context, accountID uuid.UUID) (*identity.StaffMember, error) {
	var model models.StaffMemberModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND active = ?", accountID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all staff members matching the filter
func (r *GormStaffMemberRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.StaffMember, error) {
	var staffModels []*models.StaffMemberModel

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StaffMemberModel{}), filter)

	orderBy := ValidateSortField(filter.OrderBy, StaffSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	if err := query.Find(&staffModels).Error; err != nil {
		return nil, err
	}

	staff := make([]identity.StaffMember, len(staffModels))
	for i, model := range staffModels {
		staff[i] = *model.ToDomain()
	}
	return staff, nil
}

// Save creates or updates a staff member
func (r *GormStaffMemberRepository) Save(ctx context.Context, staff *identity.StaffMember) error {
	model := models.StaffMemberModelFromDomain(staff)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a staff member by ID
func (r *GormStaffMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StaffMemberModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of staff members matching the filter
func (r *GormStaffMemberRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StaffMemberModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByAccountID checks if an account already holds a registry entry
func (r *GormStaffMemberRepository) ExistsByAccountID(ctx context.Context, accountID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StaffMemberModel{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormStaffMemberRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("display_name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "role":
			query = query.Where("role = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		}
	}

	return query
}

// Ensure GormStaffMemberRepository implements StaffMemberRepository
var _ identity.StaffMemberRepository = (*GormStaffMemberRepository)(nil)
