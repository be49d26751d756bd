package marketplace

import (
	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// Listing is one public marketplace entry: a (property, room type)
// pair flattened with computed price bounds, facility union and live
// availability. Listings are derived on read and never persisted.
type Listing struct {
	PropertyID     uuid.UUID            `json:"property_id"`
	PropertySlug   string               `json:"property_slug"`
	PropertyName   string               `json:"property_name"`
	City           string               `json:"city"`
	Address        string               `json:"address"`
	Description    string               `json:"description"`
	RoomTypeName   string               `json:"room_type_name"`
	LowestPrice    decimal.Decimal      `json:"lowest_price"`
	HighestPrice   decimal.Decimal      `json:"highest_price"`
	AvailableRooms int                  `json:"available_rooms"`
	TotalRooms     int                  `json:"total_rooms"`
	Facilities     property.FacilitySet `json:"facilities"`
	Gender         property.Gender      `json:"gender"`
	MaxOccupancy   int                  `json:"max_occupancy"`
}

// HasAvailability reports whether any room of the type is vacant
func (l Listing) HasAvailability() bool {
	return l.AvailableRooms > 0
}

// DeriveFromCatalog flattens one property's catalog into listings, one
// per room type, in the catalog's room type order. A property that is
// not listable yields nothing regardless of its rooms.
func DeriveFromCatalog(catalog *property.PropertyCatalog) []Listing {
	if catalog == nil || catalog.Property == nil || !catalog.Property.IsListable() {
		return nil
	}

	prop := catalog.Property
	listings := make([]Listing, 0, len(catalog.RoomTypes))

	for _, roomType := range catalog.RoomTypes {
		available := 0
		total := 0
		for _, room := range catalog.Rooms {
			if room.RoomTypeName != roomType.Name {
				continue
			}
			total++
			if room.IsVacant() {
				available++
			}
		}

		lowest, highest := roomType.PriceBounds()

		listings = append(listings, Listing{
			PropertyID:     prop.ID,
			PropertySlug:   prop.Slug,
			PropertyName:   prop.Name,
			City:           prop.City(),
			Address:        prop.Address.FullAddress(),
			Description:    prop.Description,
			RoomTypeName:   roomType.Name,
			LowestPrice:    lowest,
			HighestPrice:   highest,
			AvailableRooms: available,
			TotalRooms:     total,
			Facilities:     roomType.AllFacilities(),
			Gender:         roomType.Gender,
			MaxOccupancy:   roomType.MaxOccupancy,
		})
	}

	return listings
}

// DropZeroAvailability filters out listings without a vacant room.
// Whether zero-availability listings show is an explicit product
// setting, so both paths live here rather than inline at call sites.
func DropZeroAvailability(listings []Listing) []Listing {
	filtered := make([]Listing, 0, len(listings))
	for _, listing := range listings {
		if listing.HasAvailability() {
			filtered = append(filtered, listing)
		}
	}
	return filtered
}
