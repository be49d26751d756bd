package property

import (
	"context"

	"github.com/google/uuid"
)

// RoomRepository defines the interface for room persistence
type RoomRepository interface {
	// FindByID finds a room by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)

	// FindByProperty finds all rooms of a property
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]*Room, error)

	// FindByPropertyAndType finds all rooms of one type within a property
	FindByPropertyAndType(ctx context.Context, propertyID uuid.UUID, roomTypeName string) ([]*Room, error)

	// Save creates or updates a room
	Save(ctx context.Context, room *Room) error

	// Delete removes a room
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByProperty returns how many rooms a property has
	CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error)

	// CountByPropertyAndType returns how many rooms use a type name
	CountByPropertyAndType(ctx context.Context, propertyID uuid.UUID, roomTypeName string) (int64, error)

	// CountVacantByPropertyAndType returns current availability for a type
	CountVacantByPropertyAndType(ctx context.Context, propertyID uuid.UUID, roomTypeName string) (int64, error)

	// ExistsByPropertyAndNumber checks per-property room number uniqueness
	ExistsByPropertyAndNumber(ctx context.Context, propertyID uuid.UUID, roomNumber string) (bool, error)
}
