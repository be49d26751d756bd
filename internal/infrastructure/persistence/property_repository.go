package persistence

import (
	"context"
	"errors"

	"github.com/kosthub/backend/internal/domain/property"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPropertyRepository implements PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by its ID
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	var prop property.Property
	if err := r.db.WithContext(ctx).First(&prop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &prop, nil
}

// FindByIDForOwner finds a property by ID within an owner's account.
// A property owned by someone else reads as not found.
func (r *GormPropertyRepository) FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*property.Property, error) {
	var prop property.Property
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&prop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &prop, nil
}

// FindBySlug finds a property by its public slug
func (r *GormPropertyRepository) FindBySlug(ctx context.Context, slug string) (*property.Property, error) {
	if slug == "" {
		return nil, shared.ErrNotFound
	}
	var prop property.Property
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&prop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &prop, nil
}

// FindByOwner returns all properties of an owner, oldest first
func (r *GormPropertyRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*property.Property, error) {
	var props []*property.Property
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&props).Error; err != nil {
		return nil, err
	}
	return props, nil
}

// FindListable returns the marketplace candidates in catalog order:
// marketplace enabled and status published
func (r *GormPropertyRepository) FindListable(ctx context.Context) ([]*property.Property, error) {
	var props []*property.Property
	if err := r.db.WithContext(ctx).
		Where("marketplace_enabled = ? AND marketplace_status = ?", true, property.MarketplaceStatusPublished).
		Order("created_at ASC").
		Find(&props).Error; err != nil {
		return nil, err
	}
	return props, nil
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, prop *property.Property) error {
	return r.db.WithContext(ctx).Save(prop).Error
}

// Delete removes a property along with its room types and rooms
func (r *GormPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&property.Room{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&property.RoomType{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&property.Property{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count returns the total number of properties
func (r *GormPropertyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&property.Property{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByOwner returns how many properties an account owns
func (r *GormPropertyRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&property.Property{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySlug checks if a slug is already taken
func (r *GormPropertyRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&property.Property{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormPropertyRepository implements PropertyRepository
var _ property.PropertyRepository = (*GormPropertyRepository)(nil)
