package property

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/shared"
)

// RoomStatus represents a room's occupancy state
type RoomStatus string

const (
	RoomStatusVacant      RoomStatus = "vacant"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// IsValid checks if the room status is valid
func (s RoomStatus) IsValid() bool {
	return s == RoomStatusVacant || s == RoomStatusOccupied || s == RoomStatusMaintenance
}

// Room is a physical room in a property. It references its room type
// by name; the application layer guarantees the name exists among the
// property's room types.
type Room struct {
	shared.OwnerAggregateRoot
	PropertyID   uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_room_property_number,priority:1"`
	RoomNumber   string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_room_property_number,priority:2"`
	RoomTypeName string     `gorm:"type:varchar(100);not null;index"`
	Floor        int        `gorm:"not null;default:1"`
	Status       RoomStatus `gorm:"type:varchar(20);not null;default:'vacant';index"`
}

// TableName returns the table name for GORM
func (Room) TableName() string {
	return "rooms"
}

// NewRoom creates a new vacant room
func NewRoom(ownerID, propertyID uuid.UUID, roomNumber, roomTypeName string, floor int) (*Room, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER_ID", "Owner ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY_ID", "Property ID cannot be empty")
	}
	if err := validateRoomNumber(roomNumber); err != nil {
		return nil, err
	}
	if err := validateRoomTypeName(roomTypeName); err != nil {
		return nil, err
	}

	room := &Room{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		PropertyID:         propertyID,
		RoomNumber:         strings.TrimSpace(roomNumber),
		RoomTypeName:       strings.TrimSpace(roomTypeName),
		Floor:              floor,
		Status:             RoomStatusVacant,
	}

	room.AddDomainEvent(NewRoomCreatedEvent(room))

	return room, nil
}

// ChangeType moves the room to a different room type
func (r *Room) ChangeType(roomTypeName string) error {
	if err := validateRoomTypeName(roomTypeName); err != nil {
		return err
	}

	r.RoomTypeName = strings.TrimSpace(roomTypeName)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRoomUpdatedEvent(r))

	return nil
}

// SetFloor moves the room to a different floor
func (r *Room) SetFloor(floor int) {
	r.Floor = floor
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// MarkOccupied transitions the room to occupied
func (r *Room) MarkOccupied() error {
	return r.setStatus(RoomStatusOccupied)
}

// MarkVacant transitions the room to vacant
func (r *Room) MarkVacant() error {
	return r.setStatus(RoomStatusVacant)
}

// MarkMaintenance takes the room out of service
func (r *Room) MarkMaintenance() error {
	return r.setStatus(RoomStatusMaintenance)
}

func (r *Room) setStatus(status RoomStatus) error {
	if r.Status == status {
		return shared.NewDomainError("STATUS_UNCHANGED", "Room is already "+string(status))
	}

	oldStatus := r.Status
	r.Status = status
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRoomStatusChangedEvent(r, oldStatus))

	return nil
}

// IsVacant reports whether the room counts toward availability
func (r *Room) IsVacant() bool {
	return r.Status == RoomStatusVacant
}

func validateRoomNumber(roomNumber string) error {
	if strings.TrimSpace(roomNumber) == "" {
		return shared.NewDomainError("INVALID_ROOM_NUMBER", "Room number cannot be empty")
	}
	if len(roomNumber) > 20 {
		return shared.NewDomainError("INVALID_ROOM_NUMBER", "Room number cannot exceed 20 characters")
	}
	return nil
}
