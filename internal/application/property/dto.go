package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kosthub/backend/internal/domain/property"
	"github.com/kosthub/backend/internal/domain/shared/valueobject"
)

// AddressRequest represents a property address in requests
type AddressRequest struct {
	City       string `json:"city" binding:"required,min=1,max=100"`
	District   string `json:"district" binding:"required,min=1,max=100"`
	Street     string `json:"street" binding:"required,min=1,max=200"`
	Province   string `json:"province" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"max=10"`
}

// AddressResponse represents a property address in API responses
type AddressResponse struct {
	City       string `json:"city"`
	District   string `json:"district"`
	Street     string `json:"street"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Full       string `json:"full"`
}

// CreatePropertyRequest represents a request to create a new property
type CreatePropertyRequest struct {
	Name        string         `json:"name" binding:"required,min=1,max=200"`
	Address     AddressRequest `json:"address" binding:"required"`
	Description string         `json:"description" binding:"max=5000"`
	Phone       string         `json:"phone" binding:"max=50"`
	Rules       string         `json:"rules" binding:"max=5000"`
}

// UpdatePropertyRequest represents a request to update a property
type UpdatePropertyRequest struct {
	Name               *string         `json:"name" binding:"omitempty,min=1,max=200"`
	Address            *AddressRequest `json:"address"`
	Description        *string         `json:"description" binding:"omitempty,max=5000"`
	Phone              *string         `json:"phone" binding:"omitempty,max=50"`
	Rules              *string         `json:"rules" binding:"omitempty,max=5000"`
	MarketplaceEnabled *bool           `json:"marketplace_enabled"`
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Slug               string          `json:"slug"`
	Address            AddressResponse `json:"address"`
	Description        string          `json:"description"`
	Phone              string          `json:"phone"`
	Rules              string          `json:"rules"`
	MarketplaceEnabled bool            `json:"marketplace_enabled"`
	MarketplaceStatus  string          `json:"marketplace_status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// PropertyListResponse represents a list item for properties
type PropertyListResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	City               string    `json:"city"`
	MarketplaceEnabled bool      `json:"marketplace_enabled"`
	MarketplaceStatus  string    `json:"marketplace_status"`
	CreatedAt          time.Time `json:"created_at"`
}

// PriceOptionRequest represents an optional rental period price
type PriceOptionRequest struct {
	Enabled bool            `json:"enabled"`
	Amount  decimal.Decimal `json:"amount"`
}

// PriceOptionResponse represents an optional rental period price
type PriceOptionResponse struct {
	Enabled bool            `json:"enabled"`
	Amount  decimal.Decimal `json:"amount"`
}

// CreateRoomTypeRequest represents a request to create a room type
type CreateRoomTypeRequest struct {
	Name               string              `json:"name" binding:"required,min=1,max=100"`
	MonthlyPrice       decimal.Decimal     `json:"monthly_price" binding:"required"`
	DailyPrice         *PriceOptionRequest `json:"daily_price"`
	WeeklyPrice        *PriceOptionRequest `json:"weekly_price"`
	YearlyPrice        *PriceOptionRequest `json:"yearly_price"`
	RoomFacilities     []string            `json:"room_facilities"`
	BathroomFacilities []string            `json:"bathroom_facilities"`
	MaxOccupancy       *int                `json:"max_occupancy" binding:"omitempty,min=1,max=5"`
	Gender             *string             `json:"gender" binding:"omitempty,oneof=male female any"`
}

// UpdateRoomTypeRequest represents a request to update a room type
type UpdateRoomTypeRequest struct {
	Name               *string             `json:"name" binding:"omitempty,min=1,max=100"`
	MonthlyPrice       *decimal.Decimal    `json:"monthly_price"`
	DailyPrice         *PriceOptionRequest `json:"daily_price"`
	WeeklyPrice        *PriceOptionRequest `json:"weekly_price"`
	YearlyPrice        *PriceOptionRequest `json:"yearly_price"`
	RoomFacilities     []string            `json:"room_facilities"`
	BathroomFacilities []string            `json:"bathroom_facilities"`
	MaxOccupancy       *int                `json:"max_occupancy" binding:"omitempty,min=1,max=5"`
	Gender             *string             `json:"gender" binding:"omitempty,oneof=male female any"`
}

// RoomTypeResponse represents a room type in API responses
type RoomTypeResponse struct {
	ID                 uuid.UUID           `json:"id"`
	PropertyID         uuid.UUID           `json:"property_id"`
	Name               string              `json:"name"`
	MonthlyPrice       decimal.Decimal     `json:"monthly_price"`
	DailyPrice         PriceOptionResponse `json:"daily_price"`
	WeeklyPrice        PriceOptionResponse `json:"weekly_price"`
	YearlyPrice        PriceOptionResponse `json:"yearly_price"`
	RoomFacilities     []string            `json:"room_facilities"`
	BathroomFacilities []string            `json:"bathroom_facilities"`
	MaxOccupancy       int                 `json:"max_occupancy"`
	Gender             string              `json:"gender"`
	TotalRooms         int64               `json:"total_rooms"`
	VacantRooms        int64               `json:"vacant_rooms"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// CreateRoomRequest represents a request to create a room
type CreateRoomRequest struct {
	RoomNumber   string `json:"room_number" binding:"required,min=1,max=20"`
	RoomTypeName string `json:"room_type_name" binding:"required,min=1,max=100"`
	Floor        int    `json:"floor"`
}

// UpdateRoomRequest represents a request to update a room
type UpdateRoomRequest struct {
	RoomTypeName *string `json:"room_type_name" binding:"omitempty,min=1,max=100"`
	Floor        *int    `json:"floor"`
}

// SetRoomStatusRequest represents a request to change a room's status
type SetRoomStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=vacant occupied maintenance"`
}

// RoomResponse represents a room in API responses
type RoomResponse struct {
	ID           uuid.UUID `json:"id"`
	PropertyID   uuid.UUID `json:"property_id"`
	RoomNumber   string    `json:"room_number"`
	RoomTypeName string    `json:"room_type_name"`
	Floor        int       `json:"floor"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toAddressResponse(address valueobject.Address) AddressResponse {
	return AddressResponse{
		City:       address.City(),
		District:   address.District(),
		Street:     address.Street(),
		Province:   address.Province(),
		PostalCode: address.PostalCode(),
		Full:       address.FullAddress(),
	}
}

func toPropertyResponse(prop *property.Property) *PropertyResponse {
	return &PropertyResponse{
		ID:                 prop.ID,
		Name:               prop.Name,
		Slug:               prop.Slug,
		Address:            toAddressResponse(prop.Address),
		Description:        prop.Description,
		Phone:              prop.Phone,
		Rules:              prop.Rules,
		MarketplaceEnabled: prop.MarketplaceEnabled,
		MarketplaceStatus:  string(prop.MarketplaceStatus),
		CreatedAt:          prop.CreatedAt,
		UpdatedAt:          prop.UpdatedAt,
		Version:            prop.Version,
	}
}

func toPropertyListResponse(prop *property.Property) PropertyListResponse {
	return PropertyListResponse{
		ID:                 prop.ID,
		Name:               prop.Name,
		Slug:               prop.Slug,
		City:               prop.City(),
		MarketplaceEnabled: prop.MarketplaceEnabled,
		MarketplaceStatus:  string(prop.MarketplaceStatus),
		CreatedAt:          prop.CreatedAt,
	}
}

func toPriceOptionResponse(option property.PriceOption) PriceOptionResponse {
	return PriceOptionResponse{
		Enabled: option.Enabled,
		Amount:  option.Amount,
	}
}

func toRoomTypeResponse(roomType *property.RoomType, totalRooms, vacantRooms int64) *RoomTypeResponse {
	return &RoomTypeResponse{
		ID:                 roomType.ID,
		PropertyID:         roomType.PropertyID,
		Name:               roomType.Name,
		MonthlyPrice:       roomType.MonthlyPrice,
		DailyPrice:         toPriceOptionResponse(roomType.DailyPrice),
		WeeklyPrice:        toPriceOptionResponse(roomType.WeeklyPrice),
		YearlyPrice:        toPriceOptionResponse(roomType.YearlyPrice),
		RoomFacilities:     []string(roomType.RoomFacilities),
		BathroomFacilities: []string(roomType.BathroomFacilities),
		MaxOccupancy:       roomType.MaxOccupancy,
		Gender:             string(roomType.Gender),
		TotalRooms:         totalRooms,
		VacantRooms:        vacantRooms,
		CreatedAt:          roomType.CreatedAt,
		UpdatedAt:          roomType.UpdatedAt,
	}
}

func toRoomResponse(room *property.Room) *RoomResponse {
	return &RoomResponse{
		ID:           room.ID,
		PropertyID:   room.PropertyID,
		RoomNumber:   room.RoomNumber,
		RoomTypeName: room.RoomTypeName,
		Floor:        room.Floor,
		Status:       string(room.Status),
		CreatedAt:    room.CreatedAt,
		UpdatedAt:    room.UpdatedAt,
	}
}
