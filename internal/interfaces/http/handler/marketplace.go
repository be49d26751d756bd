package handler

import (
	"github.com/gin-gonic/gin"

	appmarketplace "github.com/kosthub/backend/internal/application/marketplace"
)

// MarketplaceHandler serves the public marketplace: derived listings,
// listing detail and the city filter source. All endpoints are
// anonymous; privacy comes from the published predicate inside the
// derivation, not from auth.
type MarketplaceHandler struct {
	BaseHandler
	listingService *appmarketplace.ListingService
}

// NewMarketplaceHandler creates a new marketplace handler
func NewMarketplaceHandler(listingService *appmarketplace.ListingService) *MarketplaceHandler {
	return &MarketplaceHandler{
		listingService: listingService,
	}
}

// SearchListings godoc
// @Summary      Search marketplace listings
// @Description  Derive public listings from published properties. Properties whose catalog could not be read are skipped and reported in meta.partial_failures rather than failing the search.
// @Tags         marketplace
// @Produce      json
// @Param        q query string false "Free-text search over name, city, address and description"
// @Param        city query string false "City filter, case-insensitive"
// @Param        min_price query number false "Minimum monthly price"
// @Param        max_price query number false "Maximum monthly price"
// @Param        gender query string false "Gender policy" Enums(male, female, any)
// @Param        room_type query string false "Room type name"
// @Param        sort query string false "Explicit price ordering" Enums(price_asc, price_desc)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]ListingResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /marketplace/listings [get]
func (h *MarketplaceHandler) SearchListings(c *gin.Context) {
	var query ListingSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.listingService.Search(c.Request.Context(), appmarketplace.SearchListingsInput{
		Filter:   query.toFilter(),
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	listings := toListingResponses(result.Listings)
	if failures := toPartialFailures(result.Failures); failures != nil {
		h.SuccessWithPartialFailures(c, listings, int64(result.Total), result.Page, result.PageSize, failures)
		return
	}
	h.SuccessWithMeta(c, listings, int64(result.Total), result.Page, result.PageSize)
}

// GetListing godoc
// @Summary      Get a marketplace listing
// @Description  Fetch one listing by property slug and room type name
// @Tags         marketplace
// @Produce      json
// @Param        slug path string true "Property slug"
// @Param        roomType path string true "Room type name"
// @Success      200 {object} dto.Response{data=ListingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /marketplace/listings/{slug}/{roomType} [get]
func (h *MarketplaceHandler) GetListing(c *gin.Context) {
	slug := c.Param("slug")
	roomType := c.Param("roomType")

	listing, err := h.listingService.GetListing(c.Request.Context(), slug, roomType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toListingResponse(*listing))
}

// ListCities godoc
// @Summary      List marketplace cities
// @Description  Distinct cities of currently published properties, for the search filter
// @Tags         marketplace
// @Produce      json
// @Success      200 {object} dto.Response{data=CityListResponse}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /marketplace/cities [get]
func (h *MarketplaceHandler) ListCities(c *gin.Context) {
	cities, err := h.listingService.Cities(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CityListResponse{Cities: cities})
}
