package handler

import (
	"github.com/shopspring/decimal"

	appmarketplace "github.com/kosthub/backend/internal/application/marketplace"
	"github.com/kosthub/backend/internal/domain/marketplace"
	"github.com/kosthub/backend/internal/domain/property"
)

// ListingSearchQuery represents the public listing search parameters
type ListingSearchQuery struct {
	Q        string   `form:"q"`
	City     string   `form:"city"`
	MinPrice *float64 `form:"min_price"`
	MaxPrice *float64 `form:"max_price"`
	Gender   string   `form:"gender" binding:"omitempty,oneof=male female any"`
	RoomType string   `form:"room_type"`
	Sort     string   `form:"sort" binding:"omitempty,oneof=price_asc price_desc"`
	Page     int      `form:"page" binding:"omitempty,min=1"`
	PageSize int      `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// toFilter maps the query to the domain filter
func (q ListingSearchQuery) toFilter() marketplace.Filter {
	filter := marketplace.Filter{
		Search:       q.Q,
		City:         q.City,
		Gender:       property.Gender(q.Gender),
		RoomTypeName: q.RoomType,
	}
	if q.MinPrice != nil {
		filter.MinPrice = toDecimalPtr(*q.MinPrice)
	}
	if q.MaxPrice != nil {
		filter.MaxPrice = toDecimalPtr(*q.MaxPrice)
	}
	switch q.Sort {
	case "price_asc":
		filter.PriceSort = marketplace.PriceSortAsc
	case "price_desc":
		filter.PriceSort = marketplace.PriceSortDesc
	}
	return filter
}

// ListingResponse represents one public marketplace listing
type ListingResponse struct {
	PropertyID      string   `json:"property_id"`
	PropertySlug    string   `json:"property_slug"`
	PropertyName    string   `json:"property_name"`
	City            string   `json:"city"`
	Address         string   `json:"address"`
	Description     string   `json:"description,omitempty"`
	RoomTypeName    string   `json:"room_type_name"`
	LowestPrice     float64  `json:"lowest_price"`
	HighestPrice    float64  `json:"highest_price"`
	AvailableRooms  int      `json:"available_rooms"`
	TotalRooms      int      `json:"total_rooms"`
	HasAvailability bool     `json:"has_availability"`
	Facilities      []string `json:"facilities"`
	Gender          string   `json:"gender"`
	MaxOccupancy    int      `json:"max_occupancy"`
}

// CityListResponse represents the distinct city list
type CityListResponse struct {
	Cities []string `json:"cities"`
}

// toListingResponse maps a derived listing to the wire shape
func toListingResponse(listing marketplace.Listing) ListingResponse {
	return ListingResponse{
		PropertyID:      listing.PropertyID.String(),
		PropertySlug:    listing.PropertySlug,
		PropertyName:    listing.PropertyName,
		City:            listing.City,
		Address:         listing.Address,
		Description:     listing.Description,
		RoomTypeName:    listing.RoomTypeName,
		LowestPrice:     decimalToFloat(listing.LowestPrice),
		HighestPrice:    decimalToFloat(listing.HighestPrice),
		AvailableRooms:  listing.AvailableRooms,
		TotalRooms:      listing.TotalRooms,
		HasAvailability: listing.HasAvailability(),
		Facilities:      []string(listing.Facilities),
		Gender:          string(listing.Gender),
		MaxOccupancy:    listing.MaxOccupancy,
	}
}

// toListingResponses maps a listing page preserving order
func toListingResponses(listings []marketplace.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, listing := range listings {
		out = append(out, toListingResponse(listing))
	}
	return out
}

// toPartialFailures maps skipped-property notices for the response meta
func toPartialFailures(failures []appmarketplace.PropertyFailure) []appmarketplace.PropertyFailure {
	if len(failures) == 0 {
		return nil
	}
	return failures
}

func decimalToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
