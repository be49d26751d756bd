package property

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/domain/property"
	"github.com/kosthub/backend/internal/domain/shared"
)

// RoomTypeService manages the room types of a property. Room types
// carry pricing and facilities; rooms reference them by name.
type RoomTypeService struct {
	roomTypeRepo property.RoomTypeRepository
	roomRepo     property.RoomRepository
	propertyRepo property.PropertyRepository
	events       shared.EventPublisher
	logger       *zap.Logger
}

// NewRoomTypeService creates a new room type service
func NewRoomTypeService(
	roomTypeRepo property.RoomTypeRepository,
	roomRepo property.RoomRepository,
	propertyRepo property.PropertyRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *RoomTypeService {
	return &RoomTypeService{
		roomTypeRepo: roomTypeRepo,
		roomRepo:     roomRepo,
		propertyRepo: propertyRepo,
		events:       events,
		logger:       logger,
	}
}

// Create adds a room type to one of the owner's properties
func (s *RoomTypeService) Create(ctx context.Context, ownerID, propertyID uuid.UUID, req CreateRoomTypeRequest) (*RoomTypeResponse, error) {
	if err := s.checkOwnership(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}

	exists, err := s.roomTypeRepo.ExistsByPropertyAndName(ctx, propertyID, req.Name)
	if err != nil {
		s.logger.Error("Failed to check room type name", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check room type name")
	}
	if exists {
		return nil, shared.NewDomainError("ROOM_TYPE_EXISTS", "A room type with this name already exists")
	}

	roomType, err := property.NewRoomType(ownerID, propertyID, req.Name, req.MonthlyPrice)
	if err != nil {
		return nil, err
	}

	if err := applyRoomTypeOptions(roomType, req.DailyPrice, req.WeeklyPrice, req.YearlyPrice, req.RoomFacilities, req.BathroomFacilities, req.MaxOccupancy, req.Gender); err != nil {
		return nil, err
	}

	if err := s.roomTypeRepo.Save(ctx, roomType); err != nil {
		s.logger.Error("Failed to save room type", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save room type")
	}

	s.publishEvents(ctx, roomType)

	s.logger.Info("Room type created",
		zap.String("room_type_id", roomType.ID.String()),
		zap.String("property_id", propertyID.String()),
		zap.String("name", roomType.Name))

	return toRoomTypeResponse(roomType, 0, 0), nil
}

// GetByID returns a room type with its room counts
func (s *RoomTypeService) GetByID(ctx context.Context, ownerID, propertyID, roomTypeID uuid.UUID) (*RoomTypeResponse, error) {
	if err := s.checkOwnership(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}

	roomType, err := s.findInProperty(ctx, propertyID, roomTypeID)
	if err != nil {
		return nil, err
	}

	return s.withCounts(ctx, roomType)
}

// List returns all room types of a property with their room counts
func (s *RoomTypeService) List(ctx context.Context, ownerID, propertyID uuid.UUID) ([]RoomTypeResponse, error) {
	if err := s.checkOwnership(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}

	roomTypes, err := s.roomTypeRepo.FindByProperty(ctx, propertyID)
	if err != nil {
		s.logger.Error("Failed to list room types", zap.Error(err), zap.String("property_id", propertyID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list room types")
	}

	responses := make([]RoomTypeResponse, 0, len(roomTypes))
	for _, roomType := range roomTypes {
		response, err := s.withCounts(ctx, roomType)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}
	return responses, nil
}

// Update modifies a room type. A rename repoints every room of the old
// name in the same transaction.
func (s *RoomTypeService) Update(ctx context.Context, ownerID, propertyID, roomTypeID uuid.UUID, req UpdateRoomTypeRequest) (*RoomTypeResponse, error) {
	if err := s.checkOwnership(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}

	roomType, err := s.findInProperty(ctx, propertyID, roomTypeID)
	if err != nil {
		return nil, err
	}

	oldName := roomType.Name
	renamed := false
	if req.Name != nil && *req.Name != roomType.Name {
		exists, err := s.roomTypeRepo.ExistsByPropertyAndName(ctx, propertyID, *req.Name)
		if err != nil {
			s.logger.Error("Failed to check room type name", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check room type name")
		}
		if exists {
			return nil, shared.NewDomainError("ROOM_TYPE_EXISTS", "A room type with this name already exists")
		}
		if err := roomType.Rename(*req.Name); err != nil {
			return nil, err
		}
		renamed = true
	}

	if req.MonthlyPrice != nil {
		if err := roomType.SetMonthlyPrice(*req.MonthlyPrice); err != nil {
			return nil, err
		}
	}

	if err := applyRoomTypeOptions(roomType, req.DailyPrice, req.WeeklyPrice, req.YearlyPrice, req.RoomFacilities, req.BathroomFacilities, req.MaxOccupancy, req.Gender); err != nil {
		return nil, err
	}

	if renamed {
		err = s.roomTypeRepo.SaveRenamed(ctx, roomType, oldName)
	} else {
		err = s.roomTypeRepo.Save(ctx, roomType)
	}
	if err != nil {
		s.logger.Error("Failed to update room type", zap.Error(err), zap.String("room_type_id", roomTypeID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update room type")
	}

	s.publishEvents(ctx, roomType)

	return s.withCounts(ctx, roomType)
}

// Delete removes a room type. Types still referenced by rooms cannot
// be deleted.
func (s *RoomTypeService) Delete(ctx context.Context, ownerID, propertyID, roomTypeID uuid.UUID) error {
	if err := s.checkOwnership(ctx, ownerID, propertyID); err != nil {
		return err
	}

	roomType, err := s.findInProperty(ctx, propertyID, roomTypeID)
	if err != nil {
		return err
	}

	count, err := s.roomRepo.CountByPropertyAndType(ctx, propertyID, roomType.Name)
	if err != nil {
		s.logger.Error("Failed to count rooms", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to count rooms")
	}
	if count > 0 {
		return shared.NewDomainError("ROOM_TYPE_IN_USE", "Room type still has rooms assigned to it")
	}

	if err := s.roomTypeRepo.Delete(ctx, roomTypeID); err != nil {
		s.logger.Error("Failed to delete room type", zap.Error(err), zap.String("room_type_id", roomTypeID.String()))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete room type")
	}

	s.publishEvent(ctx, property.NewRoomTypeDeletedEvent(roomType))

	s.logger.Info("Room type deleted",
		zap.String("room_type_id", roomTypeID.String()),
		zap.String("property_id", propertyID.String()))

	return nil
}

func (s *RoomTypeService) checkOwnership(ctx context.Context, ownerID, propertyID uuid.UUID) error {
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

func (s *RoomTypeService) findInProperty(ctx context.Context, propertyID, roomTypeID uuid.UUID) (*property.RoomType, error) {
	roomType, err := s.roomTypeRepo.FindByID(ctx, roomTypeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ROOM_TYPE_NOT_FOUND", "Room type not found")
		}
		s.logger.Error("Failed to find room type", zap.Error(err), zap.String("room_type_id", roomTypeID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find room type")
	}
	if roomType.PropertyID != propertyID {
		return nil, shared.NewDomainError("ROOM_TYPE_NOT_FOUND", "Room type not found")
	}
	return roomType, nil
}

func (s *RoomTypeService) withCounts(ctx context.Context, roomType *property.RoomType) (*RoomTypeResponse, error) {
	total, err := s.roomRepo.CountByPropertyAndType(ctx, roomType.PropertyID, roomType.Name)
	if err != nil {
		s.logger.Error("Failed to count rooms", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count rooms")
	}
	vacant, err := s.roomRepo.CountVacantByPropertyAndType(ctx, roomType.PropertyID, roomType.Name)
	if err != nil {
		s.logger.Error("Failed to count vacant rooms", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count rooms")
	}
	return toRoomTypeResponse(roomType, total, vacant), nil
}

func applyRoomTypeOptions(
	roomType *property.RoomType,
	daily, weekly, yearly *PriceOptionRequest,
	roomFacilities, bathroomFacilities []string,
	maxOccupancy *int,
	gender *string,
) error {
	if daily != nil {
		if err := roomType.SetDailyPrice(daily.Enabled, daily.Amount); err != nil {
			return err
		}
	}
	if weekly != nil {
		if err := roomType.SetWeeklyPrice(weekly.Enabled, weekly.Amount); err != nil {
			return err
		}
	}
	if yearly != nil {
		if err := roomType.SetYearlyPrice(yearly.Enabled, yearly.Amount); err != nil {
			return err
		}
	}
	if roomFacilities != nil || bathroomFacilities != nil {
		room := roomType.RoomFacilities
		if roomFacilities != nil {
			room = property.NewFacilitySet(roomFacilities...)
		}
		bathroom := roomType.BathroomFacilities
		if bathroomFacilities != nil {
			bathroom = property.NewFacilitySet(bathroomFacilities...)
		}
		roomType.SetFacilities(room, bathroom)
	}
	if maxOccupancy != nil {
		if err := roomType.SetMaxOccupancy(*maxOccupancy); err != nil {
			return err
		}
	}
	if gender != nil {
		if err := roomType.SetGender(property.Gender(*gender)); err != nil {
			return err
		}
	}
	return nil
}

// publishEvents publishes the aggregate's accumulated domain events
func (s *RoomTypeService) publishEvents(ctx context.Context, roomType *property.RoomType) {
	if s.events == nil {
		return
	}
	events := roomType.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.events.Publish(ctx, events...)
	roomType.ClearDomainEvents()
}

func (s *RoomTypeService) publishEvent(ctx context.Context, event shared.DomainEvent) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, event)
}
