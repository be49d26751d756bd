// Package integration provides integration testing for the KostHub backend API.
// This file wires the full application stack against a real Postgres container.
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	entitlementapp "github.com/kosthub/backend/internal/application/entitlement"
	identityapp "github.com/kosthub/backend/internal/application/identity"
	marketplaceapp "github.com/kosthub/backend/internal/application/marketplace"
	propertyapp "github.com/kosthub/backend/internal/application/property"
	subscriptionapp "github.com/kosthub/backend/internal/application/subscription"
	"github.com/kosthub/backend/internal/infrastructure/auth"
	"github.com/kosthub/backend/internal/infrastructure/cache"
	"github.com/kosthub/backend/internal/infrastructure/config"
	"github.com/kosthub/backend/internal/infrastructure/event"
	"github.com/kosthub/backend/internal/infrastructure/persistence"
)

// kostEnv wires the full service stack against a test database, the way
// cmd/server does, but with in-memory caches and token blacklist so tests
// only need the Postgres container.
type kostEnv struct {
	DB  *TestDB
	Bus *event.InMemoryEventBus

	AccountRepo      *persistence.GormAccountRepository
	SubscriptionRepo *persistence.GormSubscriptionRepository

	JWTService          *auth.JWTService
	AuthService         *identityapp.AuthService
	RoleService         *identityapp.RoleService
	StaffService        *identityapp.StaffService
	PlanService         *subscriptionapp.PlanService
	SubscriptionService *subscriptionapp.SubscriptionService
	EntitlementService  *entitlementapp.EntitlementService
	PropertyService     *propertyapp.PropertyService
	RoomTypeService     *propertyapp.RoomTypeService
	RoomService         *propertyapp.RoomService
	ListingService      *marketplaceapp.ListingService
}

// newKostEnv builds the stack on a fresh database and seeds the default
// plans, mirroring server startup.
func newKostEnv(t *testing.T) *kostEnv {
	t.Helper()

	testDB := NewTestDB(t)
	log := zap.NewNop()
	bus := event.NewInMemoryEventBus(log)

	accountRepo := persistence.NewGormAccountRepository(testDB.DB)
	staffRepo := persistence.NewGormStaffMemberRepository(testDB.DB)
	planRepo := persistence.NewGormPlanRepository(testDB.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(testDB.DB)
	propertyRepo := persistence.NewGormPropertyRepository(testDB.DB)
	roomTypeRepo := persistence.NewGormRoomTypeRepository(testDB.DB)
	roomRepo := persistence.NewGormRoomRepository(testDB.DB)
	catalogReader := persistence.NewGormCatalogReader(testDB.DB)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-integration-1234567890",
		RefreshSecret:          "test-refresh-secret-key-for-integration",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "kosthub-test",
		MaxRefreshCount:        10,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	roleService := identityapp.NewRoleService(accountRepo, staffRepo, log)
	authService := identityapp.NewAuthService(
		accountRepo, roleService, jwtService, blacklist, bus,
		identityapp.DefaultAuthServiceConfig(), log)
	staffService := identityapp.NewStaffService(staffRepo, accountRepo, bus, log)

	entitlementService := entitlementapp.NewEntitlementService(
		subscriptionRepo, planRepo, cache.NewInMemoryEntitlementCache(),
		entitlementapp.DefaultEntitlementServiceConfig(), log)
	planService := subscriptionapp.NewPlanService(planRepo, subscriptionRepo, bus, log)
	subscriptionService := subscriptionapp.NewSubscriptionService(subscriptionRepo, planRepo, bus, log)

	propertyService := propertyapp.NewPropertyService(propertyRepo, entitlementService, bus, log)
	roomTypeService := propertyapp.NewRoomTypeService(roomTypeRepo, roomRepo, propertyRepo, bus, log)
	roomService := propertyapp.NewRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlementService, bus, log)
	listingService := marketplaceapp.NewListingService(
		catalogReader, cache.NewInMemoryListingCache(),
		marketplaceapp.DefaultListingServiceConfig(), log)

	bus.Subscribe(subscriptionService)
	bus.Subscribe(entitlementService)
	bus.Subscribe(listingService)

	ctx := context.Background()
	require.NoError(t, bus.Start(ctx))
	t.Cleanup(func() {
		_ = bus.Stop(context.Background())
	})

	require.NoError(t, planService.SeedDefaults(ctx), "Failed to seed default plans")

	return &kostEnv{
		DB:                  testDB,
		Bus:                 bus,
		AccountRepo:         accountRepo,
		SubscriptionRepo:    subscriptionRepo,
		JWTService:          jwtService,
		AuthService:         authService,
		RoleService:         roleService,
		StaffService:        staffService,
		PlanService:         planService,
		SubscriptionService: subscriptionService,
		EntitlementService:  entitlementService,
		PropertyService:     propertyService,
		RoomTypeService:     roomTypeService,
		RoomService:         roomService,
		ListingService:      listingService,
	}
}

// registerOwner registers an owner account. The admin claim triggers
// the free-plan bootstrap through the event bus synchronously.
func (env *kostEnv) registerOwner(t *testing.T, email string) uuid.UUID {
	t.Helper()

	result, err := env.AuthService.Register(context.Background(), identityapp.RegisterInput{
		Email:     email,
		Password:  "SecurePass123!",
		FullName:  "Test Owner",
		RoleClaim: "admin",
	})
	require.NoError(t, err, "Failed to register owner")
	return result.Account.ID
}

// changePlan moves an owner to the named plan via the normal plan-change
// path, so entitlement caches get invalidated the same way production does.
func (env *kostEnv) changePlan(t *testing.T, ownerID uuid.UUID, planCode string) {
	t.Helper()

	_, err := env.SubscriptionService.ChangePlan(context.Background(), ownerID,
		subscriptionapp.ChangePlanRequest{PlanCode: planCode})
	require.NoError(t, err, "Failed to change plan to %s", planCode)
}

// createProperty creates a property in the given city for an owner.
func (env *kostEnv) createProperty(t *testing.T, ownerID uuid.UUID, name, city string) *propertyapp.PropertyResponse {
	t.Helper()

	resp, err := env.PropertyService.Create(context.Background(), ownerID, propertyapp.CreatePropertyRequest{
		Name: name,
		Address: propertyapp.AddressRequest{
			City:       city,
			District:   "Coblong",
			Street:     "Jl. Dago No. 12",
			Province:   "Jawa Barat",
			PostalCode: "40135",
		},
		Description: "Kost nyaman dekat kampus",
		Phone:       "+62-812-0000-0000",
	})
	require.NoError(t, err, "Failed to create property")
	return resp
}
