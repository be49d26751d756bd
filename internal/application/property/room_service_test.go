package property

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/domain/property"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/domain/subscription"
)

func createRoomService(
	roomRepo *MockRoomRepository,
	roomTypeRepo *MockRoomTypeRepository,
	propertyRepo *MockPropertyRepository,
	entitlements *MockEntitlementChecker,
) *RoomService {
	return NewRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlements, nil, zap.NewNop())
}

func createTestRoom(ownerID, propertyID uuid.UUID, roomNumber string) *property.Room {
	room, _ := property.NewRoom(ownerID, propertyID, roomNumber, "Standard", 1)
	room.ClearDomainEvents()
	return room
}

func TestRoomService_Create_Success(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	roomTypeRepo := new(MockRoomTypeRepository)
	propertyRepo := new(MockPropertyRepository)
	entitlements := new(MockEntitlementChecker)
	service := createRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlements)

	ownerID := uuid.New()
	prop := expectOwnedProperty(propertyRepo, ownerID)
	roomRepo.On("CountByProperty", mock.Anything, prop.ID).Return(int64(3), nil)
	entitlements.On("WithinLimit", mock.Anything, ownerID, subscription.FeatureMaxRoomsPerProperty, 3).Return(true, nil)
	roomTypeRepo.On("ExistsByPropertyAndName", mock.Anything, prop.ID, "Standard").Return(true, nil)
	roomRepo.On("ExistsByPropertyAndNumber", mock.Anything, prop.ID, "A-104").Return(false, nil)
	roomRepo.On("Save", mock.Anything, mock.AnythingOfType("*property.Room")).Return(nil)

	response, err := service.Create(context.Background(), ownerID, prop.ID, CreateRoomRequest{
		RoomNumber:   "A-104",
		RoomTypeName: "Standard",
		Floor:        1,
	})

	require.NoError(t, err)
	assert.Equal(t, "A-104", response.RoomNumber)
	assert.Equal(t, "Standard", response.RoomTypeName)
	assert.Equal(t, "vacant", response.Status)
	roomRepo.AssertExpectations(t)
}

func TestRoomService_Create_RoomLimitReached(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	roomTypeRepo := new(MockRoomTypeRepository)
	propertyRepo := new(MockPropertyRepository)
	entitlements := new(MockEntitlementChecker)
	service := createRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlements)

	ownerID := uuid.New()
	prop := expectOwnedProperty(propertyRepo, ownerID)
	roomRepo.On("CountByProperty", mock.Anything, prop.ID).Return(int64(10), nil)
	entitlements.On("WithinLimit", mock.Anything, ownerID, subscription.FeatureMaxRoomsPerProperty, 10).Return(false, nil)

	_, err := service.Create(context.Background(), ownerID, prop.ID, CreateRoomRequest{
		RoomNumber:   "A-111",
		RoomTypeName: "Standard",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ROOM_LIMIT_REACHED", domainErr.Code)
	roomRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRoomService_Create_TypeMissing(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	roomTypeRepo := new(MockRoomTypeRepository)
	propertyRepo := new(MockPropertyRepository)
	entitlements := new(MockEntitlementChecker)
	service := createRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlements)

	ownerID := uuid.New()
	prop := expectOwnedProperty(propertyRepo, ownerID)
	roomRepo.On("CountByProperty", mock.Anything, prop.ID).Return(int64(0), nil)
	entitlements.On("WithinLimit", mock.Anything, ownerID, subscription.FeatureMaxRoomsPerProperty, 0).Return(true, nil)
	roomTypeRepo.On("ExistsByPropertyAndName", mock.Anything, prop.ID, "Premium").Return(false, nil)

	_, err := service.Create(context.Background(), ownerID, prop.ID, CreateRoomRequest{
		RoomNumber:   "A-101",
		RoomTypeName: "Premium",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ROOM_TYPE_NOT_FOUND", domainErr.Code)
}

func TestRoomService_Create_DuplicateNumber(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	roomTypeRepo := new(MockRoomTypeRepository)
	propertyRepo := new(MockPropertyRepository)
	entitlements := new(MockEntitlementChecker)
	service := createRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlements)

	ownerID := uuid.New()
	prop := expectOwnedProperty(propertyRepo, ownerID)
	roomRepo.On("CountByProperty", mock.Anything, prop.ID).Return(int64(1), nil)
	entitlements.On("WithinLimit", mock.Anything, ownerID, subscription.FeatureMaxRoomsPerProperty, 1).Return(true, nil)
	roomTypeRepo.On("ExistsByPropertyAndName", mock.Anything, prop.ID, "Standard").Return(true, nil)
	roomRepo.On("ExistsByPropertyAndNumber", mock.Anything, prop.ID, "A-101").Return(true, nil)

	_, err := service.Create(context.Background(), ownerID, prop.ID, CreateRoomRequest{
		RoomNumber:   "A-101",
		RoomTypeName: "Standard",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ROOM_EXISTS", domainErr.Code)
}

func TestRoomService_List_All(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	roomTypeRepo := new(MockRoomTypeRepository)
	propertyRepo := new(MockPropertyRepository)
	entitlements := new(MockEntitlementChecker)
	service := createRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlements)

	ownerID := uuid.New()
	prop := expectOwnedProperty(propertyRepo, ownerID)
	rooms := []*property.Room{
		createTestRoom(ownerID, prop.ID, "A-101"),
		createTestRoom(ownerID, prop.ID, "A-102"),
	}
	roomRepo.On("FindByProperty", mock.Anything, prop.ID).Return(rooms, nil)

	responses, err := service.List(context.Background(), ownerID, prop.ID, "")

	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, "A-101", responses[0].RoomNumber)
	roomRepo.AssertNotCalled(t, "FindByPropertyAndType", mock.Anything, mock.Anything, mock.Anything)
}

func TestRoomService_List_FilteredByType(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	roomTypeRepo := new(MockRoomTypeRepository)
	propertyRepo := new(MockPropertyRepository)
	entitlements := new(MockEntitlementChecker)
	service := createRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlements)

	ownerID := uuid.New()
	prop := expectOwnedProperty(propertyRepo, ownerID)
	rooms := []*property.Room{createTestRoom(ownerID, prop.ID, "A-101")}
	roomRepo.On("FindByPropertyAndType", mock.Anything, prop.ID, "Standard").Return(rooms, nil)

	responses, err := service.List(context.Background(), ownerID, prop.ID, "Standard")

	require.NoError(t, err)
	require.Len(t, responses, 1)
	roomRepo.AssertNotCalled(t, "FindByProperty", mock.Anything, mock.Anything)
}

func TestRoomService_Update_ChangeType(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	roomTypeRepo := new(MockRoomTypeRepository)
	propertyRepo := new(MockPropertyRepository)
	entitlements := new(MockEntitlementChecker)
	service := createRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlements)

	ownerID := uuid.New()
	prop := expectOwnedProperty(propertyRepo, ownerID)
	room := createTestRoom(ownerID, prop.ID, "A-101")
	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	roomTypeRepo.On("ExistsByPropertyAndName", mock.Anything, prop.ID, "Deluxe").Return(true, nil)
	roomRepo.On("Save", mock.Anything, room).Return(nil)

	newType := "Deluxe"
	response, err := service.Update(context.Background(), ownerID, prop.ID, room.ID, UpdateRoomRequest{
		RoomTypeName: &newType,
	})

	require.NoError(t, err)
	assert.Equal(t, "Deluxe", response.RoomTypeName)
}

func TestRoomService_Update_ChangeTypeMissing(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	roomTypeRepo := new(MockRoomTypeRepository)
	propertyRepo := new(MockPropertyRepository)
	entitlements := new(MockEntitlementChecker)
	service := createRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlements)

	ownerID := uuid.New()
	prop := expectOwnedProperty(propertyRepo, ownerID)
	room := createTestRoom(ownerID, prop.ID, "A-101")
	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	roomTypeRepo.On("ExistsByPropertyAndName", mock.Anything, prop.ID, "Premium").Return(false, nil)

	newType := "Premium"
	_, err := service.Update(context.Background(), ownerID, prop.ID, room.ID, UpdateRoomRequest{
		RoomTypeName: &newType,
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ROOM_TYPE_NOT_FOUND", domainErr.Code)
	assert.Equal(t, "Standard", room.RoomTypeName)
	roomRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRoomService_SetStatus_Occupied(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	roomTypeRepo := new(MockRoomTypeRepository)
	propertyRepo := new(MockPropertyRepository)
	entitlements := new(MockEntitlementChecker)
	service := createRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlements)

	ownerID := uuid.New()
	prop := expectOwnedProperty(propertyRepo, ownerID)
	room := createTestRoom(ownerID, prop.ID, "A-101")
	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	roomRepo.On("Save", mock.Anything, room).Return(nil)

	response, err := service.SetStatus(context.Background(), ownerID, prop.ID, room.ID, SetRoomStatusRequest{
		Status: "occupied",
	})

	require.NoError(t, err)
	assert.Equal(t, "occupied", response.Status)
}

func TestRoomService_SetStatus_Unchanged(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	roomTypeRepo := new(MockRoomTypeRepository)
	propertyRepo := new(MockPropertyRepository)
	entitlements := new(MockEntitlementChecker)
	service := createRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlements)

	ownerID := uuid.New()
	prop := expectOwnedProperty(propertyRepo, ownerID)
	room := createTestRoom(ownerID, prop.ID, "A-101")
	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)

	_, err := service.SetStatus(context.Background(), ownerID, prop.ID, room.ID, SetRoomStatusRequest{
		Status: "vacant",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "STATUS_UNCHANGED", domainErr.Code)
	roomRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRoomService_SetStatus_Invalid(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	roomTypeRepo := new(MockRoomTypeRepository)
	propertyRepo := new(MockPropertyRepository)
	entitlements := new(MockEntitlementChecker)
	service := createRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlements)

	ownerID := uuid.New()
	prop := expectOwnedProperty(propertyRepo, ownerID)
	room := createTestRoom(ownerID, prop.ID, "A-101")
	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)

	_, err := service.SetStatus(context.Background(), ownerID, prop.ID, room.ID, SetRoomStatusRequest{
		Status: "demolished",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATUS", domainErr.Code)
}

func TestRoomService_GetByID_WrongProperty(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	roomTypeRepo := new(MockRoomTypeRepository)
	propertyRepo := new(MockPropertyRepository)
	entitlements := new(MockEntitlementChecker)
	service := createRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlements)

	ownerID := uuid.New()
	prop := expectOwnedProperty(propertyRepo, ownerID)
	// Belongs to a different property of the same owner
	other := createTestRoom(ownerID, uuid.New(), "B-201")
	roomRepo.On("FindByID", mock.Anything, other.ID).Return(other, nil)

	_, err := service.GetByID(context.Background(), ownerID, prop.ID, other.ID)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ROOM_NOT_FOUND", domainErr.Code)
}

func TestRoomService_Delete_Success(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	roomTypeRepo := new(MockRoomTypeRepository)
	propertyRepo := new(MockPropertyRepository)
	entitlements := new(MockEntitlementChecker)
	service := createRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlements)

	ownerID := uuid.New()
	prop := expectOwnedProperty(propertyRepo, ownerID)
	room := createTestRoom(ownerID, prop.ID, "A-101")
	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	roomRepo.On("Delete", mock.Anything, room.ID).Return(nil)

	err := service.Delete(context.Background(), ownerID, prop.ID, room.ID)

	require.NoError(t, err)
	roomRepo.AssertExpectations(t)
}
