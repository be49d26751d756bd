package property

import (
	"context"

	"github.com/google/uuid"
)

// RoomTypeRepository defines the interface for room type persistence
type RoomTypeRepository interface {
	// FindByID finds a room type by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*RoomType, error)

	// FindByProperty finds all room types of a property
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]*RoomType, error)

	// FindByPropertyAndName finds a room type by its per-property name
	FindByPropertyAndName(ctx context.Context, propertyID uuid.UUID, name string) (*RoomType, error)

	// Save creates or updates a room type
	Save(ctx context.Context, roomType *RoomType) error

	// SaveRenamed persists a renamed room type and repoints every room
	// referencing oldName in one transaction; rooms reference their
	// type by name
	SaveRenamed(ctx context.Context, roomType *RoomType, oldName string) error

	// Delete removes a room type
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByProperty returns how many room types a property has
	CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error)

	// ExistsByPropertyAndName checks per-property name uniqueness
	ExistsByPropertyAndName(ctx context.Context, propertyID uuid.UUID, name string) (bool, error)
}
