package persistence

import (
	"context"
	"errors"

	"github.com/kosthub/backend/internal/domain/property"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRoomRepository implements RoomRepository using GORM
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID finds a room by its ID
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Room, error) {
	var room property.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

// FindByProperty returns all rooms of a property by room number order
func (r *GormRoomRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]*property.Room, error) {
	var rooms []*property.Room
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("room_number ASC").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// FindByPropertyAndType returns all rooms of one type within a property
func (r *GormRoomRepository) FindByPropertyAndType(ctx context.Context, propertyID uuid.UUID, roomTypeName string) ([]*property.Room, error) {
	var rooms []*property.Room
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND room_type_name = ?", propertyID, roomTypeName).
		Order("room_number ASC").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// Save creates or updates a room
func (r *GormRoomRepository) Save(ctx context.Context, room *property.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// Delete removes a room
func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&property.Room{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByProperty returns how many rooms a property has
func (r *GormRoomRepository) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&property.Room{}).
		Where("property_id = ?", propertyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByPropertyAndType returns how many rooms use a type name
func (r *GormRoomRepository) CountByPropertyAndType(ctx context.Context, propertyID uuid.UUID, roomTypeName string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&property.Room{}).
		Where("property_id = ? AND room_type_name = ?", propertyID, roomTypeName).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountVacantByPropertyAndType returns current availability for a type
func (r *GormRoomRepository) CountVacantByPropertyAndType(ctx context.Context, propertyID uuid.UUID, roomTypeName string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&property.Room{}).
		Where("property_id = ? AND room_type_name = ? AND status = ?", propertyID, roomTypeName, property.RoomStatusVacant).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByPropertyAndNumber checks per-property room number uniqueness
func (r *GormRoomRepository) ExistsByPropertyAndNumber(ctx context.Context, propertyID uuid.UUID, roomNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&property.Room{}).
		Where("property_id = ? AND room_number = ?", propertyID, roomNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormRoomRepository implements RoomRepository
var _ property.RoomRepository = (*GormRoomRepository)(nil)
