package property

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/domain/property"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/domain/subscription"
)

// RoomService manages the individual rooms of a property
type RoomService struct {
	roomRepo     property.RoomRepository
	roomTypeRepo property.RoomTypeRepository
	propertyRepo property.PropertyRepository
	entitlements EntitlementChecker
	events       shared.EventPublisher
	logger       *zap.Logger
}

// NewRoomService creates a new room service
func NewRoomService(
	roomRepo property.RoomRepository,
	roomTypeRepo property.RoomTypeRepository,
	propertyRepo property.PropertyRepository,
	entitlements EntitlementChecker,
	events shared.EventPublisher,
	logger *zap.Logger,
) *RoomService {
	return &RoomService{
		roomRepo:     roomRepo,
		roomTypeRepo: roomTypeRepo,
		propertyRepo: propertyRepo,
		entitlements: entitlements,
		events:       events,
		logger:       logger,
	}
}

// Create adds a room to one of the owner's properties. The room's type
// must already exist and the plan's per-property room limit applies.
func (s *RoomService) Create(ctx context.Context, ownerID, propertyID uuid.UUID, req CreateRoomRequest) (*RoomResponse, error) {
	if err := s.checkOwnership(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}

	count, err := s.roomRepo.CountByProperty(ctx, propertyID)
	if err != nil {
		s.logger.Error("Failed to count rooms", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count rooms")
	}

	ok, err := s.entitlements.WithinLimit(ctx, ownerID, subscription.FeatureMaxRoomsPerProperty, int(count))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.NewDomainError("ROOM_LIMIT_REACHED", "Plan room limit reached for this property, upgrade to add more")
	}

	typeExists, err := s.roomTypeRepo.ExistsByPropertyAndName(ctx, propertyID, req.RoomTypeName)
	if err != nil {
		s.logger.Error("Failed to check room type", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check room type")
	}
	if !typeExists {
		return nil, shared.NewDomainError("ROOM_TYPE_NOT_FOUND", "Room type not found")
	}

	numberTaken, err := s.roomRepo.ExistsByPropertyAndNumber(ctx, propertyID, req.RoomNumber)
	if err != nil {
		s.logger.Error("Failed to check room number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check room number")
	}
	if numberTaken {
		return nil, shared.NewDomainError("ROOM_EXISTS", "A room with this number already exists")
	}

	room, err := property.NewRoom(ownerID, propertyID, req.RoomNumber, req.RoomTypeName, req.Floor)
	if err != nil {
		return nil, err
	}

	if err := s.roomRepo.Save(ctx, room); err != nil {
		s.logger.Error("Failed to save room", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save room")
	}

	s.publishEvents(ctx, room)

	s.logger.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("property_id", propertyID.String()),
		zap.String("room_number", room.RoomNumber))

	return toRoomResponse(room), nil
}

// GetByID returns one room of a property
func (s *RoomService) GetByID(ctx context.Context, ownerID, propertyID, roomID uuid.UUID) (*RoomResponse, error) {
	if err := s.checkOwnership(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}

	room, err := s.findInProperty(ctx, propertyID, roomID)
	if err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

// List returns a property's rooms, optionally narrowed to one room type
func (s *RoomService) List(ctx context.Context, ownerID, propertyID uuid.UUID, roomTypeName string) ([]RoomResponse, error) {
	if err := s.checkOwnership(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}

	var rooms []*property.Room
	var err error
	if roomTypeName != "" {
		rooms, err = s.roomRepo.FindByPropertyAndType(ctx, propertyID, roomTypeName)
	} else {
		rooms, err = s.roomRepo.FindByProperty(ctx, propertyID)
	}
	if err != nil {
		s.logger.Error("Failed to list rooms", zap.Error(err), zap.String("property_id", propertyID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list rooms")
	}

	responses := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, *toRoomResponse(room))
	}
	return responses, nil
}

// Update changes a room's type or floor
func (s *RoomService) Update(ctx context.Context, ownerID, propertyID, roomID uuid.UUID, req UpdateRoomRequest) (*RoomResponse, error) {
	if err := s.checkOwnership(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}

	room, err := s.findInProperty(ctx, propertyID, roomID)
	if err != nil {
		return nil, err
	}

	if req.RoomTypeName != nil && *req.RoomTypeName != room.RoomTypeName {
		typeExists, err := s.roomTypeRepo.ExistsByPropertyAndName(ctx, propertyID, *req.RoomTypeName)
		if err != nil {
			s.logger.Error("Failed to check room type", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check room type")
		}
		if !typeExists {
			return nil, shared.NewDomainError("ROOM_TYPE_NOT_FOUND", "Room type not found")
		}
		if err := room.ChangeType(*req.RoomTypeName); err != nil {
			return nil, err
		}
	}

	if req.Floor != nil {
		room.SetFloor(*req.Floor)
	}

	if err := s.roomRepo.Save(ctx, room); err != nil {
		s.logger.Error("Failed to update room", zap.Error(err), zap.String("room_id", roomID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update room")
	}

	s.publishEvents(ctx, room)

	return toRoomResponse(room), nil
}

// SetStatus moves a room between vacant, occupied and maintenance.
// Availability counts on the marketplace follow from this.
func (s *RoomService) SetStatus(ctx context.Context, ownerID, propertyID, roomID uuid.UUID, req SetRoomStatusRequest) (*RoomResponse, error) {
	if err := s.checkOwnership(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}

	room, err := s.findInProperty(ctx, propertyID, roomID)
	if err != nil {
		return nil, err
	}

	switch property.RoomStatus(req.Status) {
	case property.RoomStatusVacant:
		err = room.MarkVacant()
	case property.RoomStatusOccupied:
		err = room.MarkOccupied()
	case property.RoomStatusMaintenance:
		err = room.MarkMaintenance()
	default:
		return nil, shared.NewDomainError("INVALID_STATUS", "Status must be vacant, occupied or maintenance")
	}
	if err != nil {
		return nil, err
	}

	if err := s.roomRepo.Save(ctx, room); err != nil {
		s.logger.Error("Failed to save room status", zap.Error(err), zap.String("room_id", roomID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save room status")
	}

	s.publishEvents(ctx, room)

	return toRoomResponse(room), nil
}

// Delete removes a room
func (s *RoomService) Delete(ctx context.Context, ownerID, propertyID, roomID uuid.UUID) error {
	if err := s.checkOwnership(ctx, ownerID, propertyID); err != nil {
		return err
	}

	room, err := s.findInProperty(ctx, propertyID, roomID)
	if err != nil {
		return err
	}

	if err := s.roomRepo.Delete(ctx, roomID); err != nil {
		s.logger.Error("Failed to delete room", zap.Error(err), zap.String("room_id", roomID.String()))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete room")
	}

	s.publishEvent(ctx, property.NewRoomDeletedEvent(room))

	s.logger.Info("Room deleted",
		zap.String("room_id", roomID.String()),
		zap.String("property_id", propertyID.String()))

	return nil
}

func (s *RoomService) checkOwnership(ctx context.Context, ownerID, propertyID uuid.UUID) error {
	_, err := s.propertyRepo.FindByIDForOwner(ctx, propertyID, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("PROPERTY_NOT_FOUND", "Property not found")
		}
		s.logger.Error("Failed to find property", zap.Error(err), zap.String("property_id", propertyID.String()))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to find property")
	}
	return nil
}

func (s *RoomService) findInProperty(ctx context.Context, propertyID, roomID uuid.UUID) (*property.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ROOM_NOT_FOUND", "Room not found")
		}
		s.logger.Error("Failed to find room", zap.Error(err), zap.String("room_id", roomID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find room")
	}
	if room.PropertyID != propertyID {
		return nil, shared.NewDomainError("ROOM_NOT_FOUND", "Room not found")
	}
	return room, nil
}

// publishEvents publishes the aggregate's accumulated domain events
func (s *RoomService) publishEvents(ctx context.Context, room *property.Room) {
	if s.events == nil {
		return
	}
	events := room.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.events.Publish(ctx, events...)
	room.ClearDomainEvents()
}

func (s *RoomService) publishEvent(ctx context.Context, event shared.DomainEvent) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, event)
}
