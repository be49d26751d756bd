package property

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Gender restricts who may rent rooms of a type
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderAny    Gender = "any"
)

// IsValid checks if the gender restriction is valid
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderAny
}

// Matches reports whether rooms of this gender restriction satisfy a
// requested gender: an exact match or an unrestricted type.
func (g Gender) Matches(requested Gender) bool {
	return g == requested || g == GenderAny
}

// Occupancy bounds per room type
const (
	MinOccupancy = 1
	MaxOccupancy = 5
)

// PriceOption is an optional rental period price. Monthly is always
// offered; daily, weekly and yearly are offered only when enabled.
type PriceOption struct {
	Enabled bool            `json:"enabled"`
	Amount  decimal.Decimal `json:"amount" gorm:"type:decimal(18,2);not null;default:0"`
}

// RoomType defines a class of rooms within a property: pricing,
// facilities and occupancy rules. Rooms reference their type by name,
// so the name is unique per property.
type RoomType struct {
	shared.OwnerAggregateRoot
	PropertyID         uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_room_type_property_name,priority:1"`
	Name               string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_room_type_property_name,priority:2"`
	MonthlyPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DailyPrice         PriceOption     `gorm:"embedded;embeddedPrefix:daily_"`
	WeeklyPrice        PriceOption     `gorm:"embedded;embeddedPrefix:weekly_"`
	YearlyPrice        PriceOption     `gorm:"embedded;embeddedPrefix:yearly_"`
	RoomFacilities     FacilitySet     `gorm:"type:jsonb"`
	BathroomFacilities FacilitySet     `gorm:"type:jsonb"`
	MaxOccupancy       int             `gorm:"not null;default:1"`
	Gender             Gender          `gorm:"type:varchar(10);not null;default:'any'"`
}

// TableName returns the table name for GORM
func (RoomType) TableName() string {
	return "room_types"
}

// NewRoomType creates a new room type with a monthly price
func NewRoomType(ownerID, propertyID uuid.UUID, name string, monthlyPrice decimal.Decimal) (*RoomType, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER_ID", "Owner ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY_ID", "Property ID cannot be empty")
	}
	if err := validateRoomTypeName(name); err != nil {
		return nil, err
	}
	if !monthlyPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Monthly price must be positive")
	}

	roomType := &RoomType{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		PropertyID:         propertyID,
		Name:               strings.TrimSpace(name),
		MonthlyPrice:       monthlyPrice,
		RoomFacilities:     FacilitySet{},
		BathroomFacilities: FacilitySet{},
		MaxOccupancy:       MinOccupancy,
		Gender:             GenderAny,
	}

	roomType.AddDomainEvent(NewRoomTypeCreatedEvent(roomType))

	return roomType, nil
}

// Rename changes the type name. Rooms reference the type by name, so
// the caller must rename them in the same transaction.
func (t *RoomType) Rename(name string) error {
	if err := validateRoomTypeName(name); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if t.Name == name {
		return shared.NewDomainError("NAME_UNCHANGED", "Room type already has this name")
	}

	oldName := t.Name
	t.Name = name
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewRoomTypeRenamedEvent(t, oldName))

	return nil
}

// SetMonthlyPrice changes the base monthly price
func (t *RoomType) SetMonthlyPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Monthly price must be positive")
	}

	t.MonthlyPrice = price
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewRoomTypeUpdatedEvent(t))

	return nil
}

// SetDailyPrice enables or disables the daily rental option
func (t *RoomType) SetDailyPrice(enabled bool, amount decimal.Decimal) error {
	return t.setPriceOption(&t.DailyPrice, enabled, amount)
}

// SetWeeklyPrice enables or disables the weekly rental option
func (t *RoomType) SetWeeklyPrice(enabled bool, amount decimal.Decimal) error {
	return t.setPriceOption(&t.WeeklyPrice, enabled, amount)
}

// SetYearlyPrice enables or disables the yearly rental option
func (t *RoomType) SetYearlyPrice(enabled bool, amount decimal.Decimal) error {
	return t.setPriceOption(&t.YearlyPrice, enabled, amount)
}

func (t *RoomType) setPriceOption(option *PriceOption, enabled bool, amount decimal.Decimal) error {
	if enabled && !amount.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "An offered price must be positive")
	}

	option.Enabled = enabled
	if enabled {
		option.Amount = amount
	} else {
		option.Amount = decimal.Zero
	}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewRoomTypeUpdatedEvent(t))

	return nil
}

// SetFacilities replaces both facility sets
func (t *RoomType) SetFacilities(room, bathroom FacilitySet) {
	if room == nil {
		room = FacilitySet{}
	}
	if bathroom == nil {
		bathroom = FacilitySet{}
	}

	t.RoomFacilities = room
	t.BathroomFacilities = bathroom
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewRoomTypeUpdatedEvent(t))
}

// SetMaxOccupancy changes how many people may share one room
func (t *RoomType) SetMaxOccupancy(occupancy int) error {
	if occupancy < MinOccupancy || occupancy > MaxOccupancy {
		return shared.NewDomainError("INVALID_OCCUPANCY", "Max occupancy must be between 1 and 5")
	}

	t.MaxOccupancy = occupancy
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewRoomTypeUpdatedEvent(t))

	return nil
}

// SetGender changes the gender restriction
func (t *RoomType) SetGender(gender Gender) error {
	if !gender.IsValid() {
		return shared.NewDomainError("INVALID_GENDER", "Gender must be male, female or any")
	}

	t.Gender = gender
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewRoomTypeUpdatedEvent(t))

	return nil
}

// PriceBounds returns the lowest and highest offered price across the
// monthly price and every enabled optional period
func (t *RoomType) PriceBounds() (lowest, highest decimal.Decimal) {
	lowest = t.MonthlyPrice
	highest = t.MonthlyPrice

	for _, option := range []PriceOption{t.DailyPrice, t.WeeklyPrice, t.YearlyPrice} {
		if !option.Enabled {
			continue
		}
		if option.Amount.LessThan(lowest) {
			lowest = option.Amount
		}
		if option.Amount.GreaterThan(highest) {
			highest = option.Amount
		}
	}
	return lowest, highest
}

// AllFacilities returns the union of room and bathroom facilities
func (t *RoomType) AllFacilities() FacilitySet {
	return t.RoomFacilities.Union(t.BathroomFacilities)
}

func validateRoomTypeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_ROOM_TYPE_NAME", "Room type name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_ROOM_TYPE_NAME", "Room type name cannot exceed 100 characters")
	}
	return nil
}
