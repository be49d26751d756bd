// Package integration provides integration testing for the KostHub backend API.
// This file covers the owner catalog, entitlement gates on publication, and
// the derived marketplace listings.
package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	marketplaceapp "github.com/kosthub/backend/internal/application/marketplace"
	propertyapp "github.com/kosthub/backend/internal/application/property"
	"github.com/kosthub/backend/internal/domain/marketplace"
	"github.com/kosthub/backend/internal/domain/property"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/domain/subscription"
)

func TestProperty_FreePlanLimits(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newKostEnv(t)
	ctx := context.Background()

	ownerID := env.registerOwner(t, "limits@example.com")

	first := env.createProperty(t, ownerID, "Kost Melati", "Bandung")
	assert.NotEmpty(t, first.Slug)

	// Free plan allows a single property.
	_, err := env.PropertyService.Create(ctx, ownerID, propertyapp.CreatePropertyRequest{
		Name: "Kost Mawar",
		Address: propertyapp.AddressRequest{
			City:     "Bandung",
			District: "Coblong",
			Street:   "Jl. Dago No. 34",
		},
	})
	require.Error(t, err)
	assertDomainErrorCode(t, err, "PROPERTY_LIMIT_REACHED")

	// Publication is a paid feature.
	_, err = env.PropertyService.Publish(ctx, ownerID, first.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrFeatureNotEntitled))
}

func TestMarketplace_PublishAndSearch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newKostEnv(t)
	ctx := context.Background()

	ownerID := env.registerOwner(t, "lister@example.com")
	env.changePlan(t, ownerID, subscription.PlanCodePro)

	prop := env.createProperty(t, ownerID, "Kost Melati", "Bandung")
	env.enableMarketplace(t, ownerID, prop.ID)

	female := "female"
	_, err := env.RoomTypeService.Create(ctx, ownerID, prop.ID, propertyapp.CreateRoomTypeRequest{
		Name:           "Standard",
		MonthlyPrice:   decimal.NewFromInt(1_500_000),
		RoomFacilities: []string{"kasur", "lemari", "wifi"},
	})
	require.NoError(t, err)
	_, err = env.RoomTypeService.Create(ctx, ownerID, prop.ID, propertyapp.CreateRoomTypeRequest{
		Name:         "Premium",
		MonthlyPrice: decimal.NewFromInt(2_500_000),
		Gender:       &female,
	})
	require.NoError(t, err)

	for _, room := range []propertyapp.CreateRoomRequest{
		{RoomNumber: "A-01", RoomTypeName: "Standard", Floor: 1},
		{RoomNumber: "A-02", RoomTypeName: "Standard", Floor: 1},
		{RoomNumber: "B-01", RoomTypeName: "Premium", Floor: 2},
	} {
		_, err := env.RoomService.Create(ctx, ownerID, prop.ID, room)
		require.NoError(t, err)
	}

	// Nothing is listed until the property is published.
	result, err := env.ListingService.Search(ctx, marketplaceapp.SearchListingsInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)

	_, err = env.PropertyService.Publish(ctx, ownerID, prop.ID)
	require.NoError(t, err)

	// One listing per room type.
	result, err = env.ListingService.Search(ctx, marketplaceapp.SearchListingsInput{})
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	assert.Empty(t, result.Failures)

	// City filter.
	result, err = env.ListingService.Search(ctx, marketplaceapp.SearchListingsInput{
		Filter: marketplace.Filter{City: "Bandung"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)

	result, err = env.ListingService.Search(ctx, marketplaceapp.SearchListingsInput{
		Filter: marketplace.Filter{City: "Jakarta"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)

	// Price ceiling keeps only the standard rooms.
	maxPrice := decimal.NewFromInt(2_000_000)
	result, err = env.ListingService.Search(ctx, marketplaceapp.SearchListingsInput{
		Filter: marketplace.Filter{MaxPrice: &maxPrice},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "Standard", result.Listings[0].RoomTypeName)
	assert.Equal(t, 2, result.Listings[0].AvailableRooms)
	assert.Equal(t, 2, result.Listings[0].TotalRooms)

	// Gender filter: "any" room types match every request, so asking
	// for female rooms returns both types.
	result, err = env.ListingService.Search(ctx, marketplaceapp.SearchListingsInput{
		Filter: marketplace.Filter{Gender: property.GenderFemale},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)

	result, err = env.ListingService.Search(ctx, marketplaceapp.SearchListingsInput{
		Filter: marketplace.Filter{Gender: property.GenderMale},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "Standard", result.Listings[0].RoomTypeName)

	// Direct lookup by slug and room type.
	listing, err := env.ListingService.GetListing(ctx, prop.Slug, "Premium")
	require.NoError(t, err)
	assert.Equal(t, prop.ID, listing.PropertyID)
	assert.True(t, listing.LowestPrice.Equal(decimal.NewFromInt(2_500_000)))

	cities, err := env.ListingService.Cities(ctx)
	require.NoError(t, err)
	assert.Contains(t, cities, "Bandung")
}

func TestMarketplace_AvailabilityTracksRoomStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newKostEnv(t)
	ctx := context.Background()

	ownerID := env.registerOwner(t, "occupancy@example.com")
	env.changePlan(t, ownerID, subscription.PlanCodePro)

	prop := env.createProperty(t, ownerID, "Kost Anggrek", "Yogyakarta")
	env.enableMarketplace(t, ownerID, prop.ID)

	_, err := env.RoomTypeService.Create(ctx, ownerID, prop.ID, propertyapp.CreateRoomTypeRequest{
		Name:         "Standard",
		MonthlyPrice: decimal.NewFromInt(1_200_000),
	})
	require.NoError(t, err)

	roomA, err := env.RoomService.Create(ctx, ownerID, prop.ID, propertyapp.CreateRoomRequest{
		RoomNumber: "1", RoomTypeName: "Standard", Floor: 1,
	})
	require.NoError(t, err)
	_, err = env.RoomService.Create(ctx, ownerID, prop.ID, propertyapp.CreateRoomRequest{
		RoomNumber: "2", RoomTypeName: "Standard", Floor: 1,
	})
	require.NoError(t, err)

	_, err = env.PropertyService.Publish(ctx, ownerID, prop.ID)
	require.NoError(t, err)

	listing, err := env.ListingService.GetListing(ctx, prop.Slug, "Standard")
	require.NoError(t, err)
	assert.Equal(t, 2, listing.AvailableRooms)

	// Moving a room to occupied invalidates the cached derivation in
	// the same dispatch, so the next read sees the new availability.
	_, err = env.RoomService.SetStatus(ctx, ownerID, prop.ID, roomA.ID, propertyapp.SetRoomStatusRequest{
		Status: "occupied",
	})
	require.NoError(t, err)

	listing, err = env.ListingService.GetListing(ctx, prop.Slug, "Standard")
	require.NoError(t, err)
	assert.Equal(t, 1, listing.AvailableRooms)
	assert.Equal(t, 2, listing.TotalRooms)
}

func TestMarketplace_UnpublishSurvivesDowngrade(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newKostEnv(t)
	ctx := context.Background()

	ownerID := env.registerOwner(t, "downgrade@example.com")
	env.changePlan(t, ownerID, subscription.PlanCodePro)

	prop := env.createProperty(t, ownerID, "Kost Kenanga", "Surabaya")
	env.enableMarketplace(t, ownerID, prop.ID)

	_, err := env.RoomTypeService.Create(ctx, ownerID, prop.ID, propertyapp.CreateRoomTypeRequest{
		Name:         "Standard",
		MonthlyPrice: decimal.NewFromInt(900_000),
	})
	require.NoError(t, err)
	_, err = env.RoomService.Create(ctx, ownerID, prop.ID, propertyapp.CreateRoomRequest{
		RoomNumber: "1", RoomTypeName: "Standard",
	})
	require.NoError(t, err)

	_, err = env.PropertyService.Publish(ctx, ownerID, prop.ID)
	require.NoError(t, err)

	// Dropping back to free revokes the listing feature but must not
	// trap the owner: withdrawing the listing stays allowed.
	env.changePlan(t, ownerID, subscription.PlanCodeFree)

	_, err = env.PropertyService.Publish(ctx, ownerID, prop.ID)
	require.Error(t, err)

	unpublished, err := env.PropertyService.Unpublish(ctx, ownerID, prop.ID)
	require.NoError(t, err)
	assert.Equal(t, string(property.MarketplaceStatusDraft), unpublished.MarketplaceStatus)

	result, err := env.ListingService.Search(ctx, marketplaceapp.SearchListingsInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
}

// enableMarketplace flips the owner's marketplace toggle on. Publication
// still requires an explicit Publish on top of this.
func (env *kostEnv) enableMarketplace(t *testing.T, ownerID, propertyID uuid.UUID) {
	t.Helper()

	enabled := true
	_, err := env.PropertyService.Update(context.Background(), ownerID, propertyID, propertyapp.UpdatePropertyRequest{
		MarketplaceEnabled: &enabled,
	})
	require.NoError(t, err, "Failed to enable marketplace")
}
