package property

import (
	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeRoomType = "RoomType"

// Event type constants
const (
	EventTypeRoomTypeCreated = "RoomTypeCreated"
	EventTypeRoomTypeUpdated = "RoomTypeUpdated"
	EventTypeRoomTypeRenamed = "RoomTypeRenamed"
	EventTypeRoomTypeDeleted = "RoomTypeDeleted"
)

// RoomTypeCreatedEvent is published when a room type is created
type RoomTypeCreatedEvent struct {
	shared.BaseDomainEvent
	RoomTypeID uuid.UUID `json:"room_type_id"`
	PropertyID uuid.UUID `json:"property_id"`
	Name       string    `json:"name"`
}

// NewRoomTypeCreatedEvent creates a new RoomTypeCreatedEvent
func NewRoomTypeCreatedEvent(roomType *RoomType) *RoomTypeCreatedEvent {
	return &RoomTypeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomTypeCreated, AggregateTypeRoomType, roomType.ID),
		RoomTypeID:      roomType.ID,
		PropertyID:      roomType.PropertyID,
		Name:            roomType.Name,
	}
}

// RoomTypeUpdatedEvent is published when pricing, facilities or rules change
type RoomTypeUpdatedEvent struct {
	shared.BaseDomainEvent
	RoomTypeID uuid.UUID `json:"room_type_id"`
	PropertyID uuid.UUID `json:"property_id"`
}

// NewRoomTypeUpdatedEvent creates a new RoomTypeUpdatedEvent
func NewRoomTypeUpdatedEvent(roomType *RoomType) *RoomTypeUpdatedEvent {
	return &RoomTypeUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomTypeUpdated, AggregateTypeRoomType, roomType.ID),
		RoomTypeID:      roomType.ID,
		PropertyID:      roomType.PropertyID,
	}
}

// RoomTypeRenamedEvent is published when a room type is renamed. Rooms
// reference the type by name, so subscribers keep them in sync.
type RoomTypeRenamedEvent struct {
	shared.BaseDomainEvent
	RoomTypeID uuid.UUID `json:"room_type_id"`
	PropertyID uuid.UUID `json:"property_id"`
	OldName    string    `json:"old_name"`
	NewName    string    `json:"new_name"`
}

// NewRoomTypeRenamedEvent creates a new RoomTypeRenamedEvent
func NewRoomTypeRenamedEvent(roomType *RoomType, oldName string) *RoomTypeRenamedEvent {
	return &RoomTypeRenamedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomTypeRenamed, AggregateTypeRoomType, roomType.ID),
		RoomTypeID:      roomType.ID,
		PropertyID:      roomType.PropertyID,
		OldName:         oldName,
		NewName:         roomType.Name,
	}
}

// RoomTypeDeletedEvent is published when a room type is deleted
type RoomTypeDeletedEvent struct {
	shared.BaseDomainEvent
	RoomTypeID uuid.UUID `json:"room_type_id"`
	PropertyID uuid.UUID `json:"property_id"`
	Name       string    `json:"name"`
}

// NewRoomTypeDeletedEvent creates a new RoomTypeDeletedEvent
func NewRoomTypeDeletedEvent(roomType *RoomType) *RoomTypeDeletedEvent {
	return &RoomTypeDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomTypeDeleted, AggregateTypeRoomType, roomType.ID),
		RoomTypeID:      roomType.ID,
		PropertyID:      roomType.PropertyID,
		Name:            roomType.Name,
	}
}
