package property

import (
	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeRoom = "Room"

// Event type constants
const (
	EventTypeRoomCreated       = "RoomCreated"
	EventTypeRoomUpdated       = "RoomUpdated"
	EventTypeRoomStatusChanged = "RoomStatusChanged"
	EventTypeRoomDeleted       = "RoomDeleted"
)

// RoomCreatedEvent is published when a room is created
type RoomCreatedEvent struct {
	shared.BaseDomainEvent
	RoomID       uuid.UUID `json:"room_id"`
	PropertyID   uuid.UUID `json:"property_id"`
	RoomNumber   string    `json:"room_number"`
	RoomTypeName string    `json:"room_type_name"`
}

// NewRoomCreatedEvent creates a new RoomCreatedEvent
func NewRoomCreatedEvent(room *Room) *RoomCreatedEvent {
	return &RoomCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomCreated, AggregateTypeRoom, room.ID),
		RoomID:          room.ID,
		PropertyID:      room.PropertyID,
		RoomNumber:      room.RoomNumber,
		RoomTypeName:    room.RoomTypeName,
	}
}

// RoomUpdatedEvent is published when a room's type or placement changes
type RoomUpdatedEvent struct {
	shared.BaseDomainEvent
	RoomID     uuid.UUID `json:"room_id"`
	PropertyID uuid.UUID `json:"property_id"`
}

// NewRoomUpdatedEvent creates a new RoomUpdatedEvent
func NewRoomUpdatedEvent(room *Room) *RoomUpdatedEvent {
	return &RoomUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomUpdated, AggregateTypeRoom, room.ID),
		RoomID:          room.ID,
		PropertyID:      room.PropertyID,
	}
}

// RoomStatusChangedEvent is published when a room's occupancy changes.
// Marketplace availability counts move with it.
type RoomStatusChangedEvent struct {
	shared.BaseDomainEvent
	RoomID     uuid.UUID  `json:"room_id"`
	PropertyID uuid.UUID  `json:"property_id"`
	OldStatus  RoomStatus `json:"old_status"`
	NewStatus  RoomStatus `json:"new_status"`
}

// NewRoomStatusChangedEvent creates a new RoomStatusChangedEvent
func NewRoomStatusChangedEvent(room *Room, oldStatus RoomStatus) *RoomStatusChangedEvent {
	return &RoomStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomStatusChanged, AggregateTypeRoom, room.ID),
		RoomID:          room.ID,
		PropertyID:      room.PropertyID,
		OldStatus:       oldStatus,
		NewStatus:       room.Status,
	}
}

// RoomDeletedEvent is published when a room is deleted
type RoomDeletedEvent struct {
	shared.BaseDomainEvent
	RoomID     uuid.UUID `json:"room_id"`
	PropertyID uuid.UUID `json:"property_id"`
	RoomNumber string    `json:"room_number"`
}

// NewRoomDeletedEvent creates a new RoomDeletedEvent
func NewRoomDeletedEvent(room *Room) *RoomDeletedEvent {
	return &RoomDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomDeleted, AggregateTypeRoom, room.ID),
		RoomID:          room.ID,
		PropertyID:      room.PropertyID,
		RoomNumber:      room.RoomNumber,
	}
}
