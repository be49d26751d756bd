package persistence

import (
	"context"
	"errors"

	"github.com/kosthub/backend/internal/domain/property"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRoomTypeRepository implements RoomTypeRepository using GORM
type GormRoomTypeRepository struct {
	db *gorm.DB
}

// NewGormRoomTypeRepository creates a new GormRoomTypeRepository
func NewGormRoomTypeRepository(db *gorm.DB) *GormRoomTypeRepository {
	return &GormRoomTypeRepository{db: db}
}

// FindByID finds a room type by its ID
func (r *GormRoomTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.RoomType, error) {
	var roomType property.RoomType
	if err := r.db.WithContext(ctx).First(&roomType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &roomType, nil
}

// FindByProperty returns all room types of a property by name order
func (r *GormRoomTypeRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]*property.RoomType, error) {
	var roomTypes []*property.RoomType
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("name ASC").
		Find(&roomTypes).Error; err != nil {
		return nil, err
	}
	return roomTypes, nil
}

// FindByPropertyAndName finds a room type by its per-property name
func (r *GormRoomTypeRepository) FindByPropertyAndName(ctx context.Context, propertyID uuid.UUID, name string) (*property.RoomType, error) {
	var roomType property.RoomType
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND name = ?", propertyID, name).
		First(&roomType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &roomType, nil
}

// Save creates or updates a room type
func (r *GormRoomTypeRepository) Save(ctx context.Context, roomType *property.RoomType) error {
	return r.db.WithContext(ctx).Save(roomType).Error
}

// SaveRenamed persists a renamed room type and repoints every room that
// still references the old name, in one transaction. Rooms reference
// their type by name, so a rename outside the transaction would strand
// them on a name that no longer exists.
func (r *GormRoomTypeRepository) SaveRenamed(ctx context.Context, roomType *property.RoomType, oldName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(roomType).Error; err != nil {
			return err
		}
		return tx.Model(&property.Room{}).
			Where("property_id = ? AND room_type_name = ?", roomType.PropertyID, oldName).
			Update("room_type_name", roomType.Name).Error
	})
}

// Delete removes a room type
func (r *GormRoomTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&property.RoomType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByProperty returns how many room types a property has
func (r *GormRoomTypeRepository) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&property.RoomType{}).
		Where("property_id = ?", propertyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByPropertyAndName checks per-property name uniqueness
func (r *GormRoomTypeRepository) ExistsByPropertyAndName(ctx context.Context, propertyID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&property.RoomType{}).
		Where("property_id = ? AND name = ?", propertyID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormRoomTypeRepository implements RoomTypeRepository
var _ property.RoomTypeRepository = (*GormRoomTypeRepository)(nil)
