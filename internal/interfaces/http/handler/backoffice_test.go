package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appidentity "github.com/kosthub/backend/internal/application/identity"
	subscriptionapp "github.com/kosthub/backend/internal/application/subscription"
	"github.com/kosthub/backend/internal/domain/identity"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/domain/subscription"
)

// MockPlanRepository implements subscription.PlanRepository for testing
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindByCode(ctx context.Context, code string) (*subscription.Plan, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindAll(ctx context.Context) ([]*subscription.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindActive(ctx context.Context) ([]*subscription.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Plan), args.Error(1)
}

func (m *MockPlanRepository) Save(ctx context.Context, plan *subscription.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlanRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlanRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockSubscriptionRepository implements subscription.SubscriptionRepository for testing
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindActiveByOwner(ctx context.Context, ownerID uuid.UUID) (*subscription.Subscription, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*subscription.Subscription, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindAll(ctx context.Context, offset, limit int) ([]*subscription.Subscription, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindLapsed(ctx context.Context, before time.Time, limit int) ([]*subscription.Subscription, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubscriptionRepository) CountActiveByPlan(ctx context.Context, planID uuid.UUID) (int64, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).(int64), args.Error(1)
}

// Test setup helpers

// setupBackofficeRouter returns a router whose requests carry a
// superadmin snapshot, as if the session middleware had resolved it.
func setupBackofficeRouter() *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		setSnapshotContext(c, uuid.New(), identity.RoleSuperadmin)
		c.Next()
	})
	return router
}

func newStaffHandler(staffRepo *MockStaffMemberRepository, accountRepo *MockAccountRepository) *StaffHandler {
	service := appidentity.NewStaffService(staffRepo, accountRepo, nil, zap.NewNop())
	return NewStaffHandler(service)
}

func newAccountHandler(accountRepo *MockAccountRepository) *AccountHandler {
	service := appidentity.NewAccountService(accountRepo, nil, zap.NewNop())
	return NewAccountHandler(service)
}

func newPlanHandler(planRepo *MockPlanRepository, subscriptionRepo *MockSubscriptionRepository) *PlanHandler {
	service := subscriptionapp.NewPlanService(planRepo, subscriptionRepo, nil, zap.NewNop())
	return NewPlanHandler(service)
}

func newSubscriptionHandler(subscriptionRepo *MockSubscriptionRepository, planRepo *MockPlanRepository) *SubscriptionHandler {
	service := subscriptionapp.NewSubscriptionService(subscriptionRepo, planRepo, nil, zap.NewNop())
	return NewSubscriptionHandler(service)
}

func registryStaff(accountID uuid.UUID, role identity.Role, name string) *identity.StaffMember {
	staff, _ := identity.NewStaffMember(accountID, role, name)
	staff.ClearDomainEvents()
	return staff
}

func activeOwnerAccount(email string) *identity.Account {
	account, _ := identity.NewActiveAccount(email, "Password123", identity.RoleAdmin)
	account.ClearDomainEvents()
	return account
}

func monthlyPlan(code, name string, price int64) *subscription.Plan {
	plan, _ := subscription.NewPlan(code, name, decimal.NewFromInt(price), subscription.BillingPeriodMonthly, subscription.FeatureMap{
		subscription.FeatureMaxProperties:      subscription.LimitFeature(5),
		subscription.FeatureMarketplaceListing: subscription.BoolFeature(true),
	})
	plan.ClearDomainEvents()
	return plan
}

func currentSubscription(ownerID, planID uuid.UUID) *subscription.Subscription {
	expires := time.Now().Add(30 * 24 * time.Hour)
	sub, _ := subscription.NewSubscription(ownerID, planID, time.Now(), &expires)
	sub.ClearDomainEvents()
	return sub
}

// Staff handler tests

func TestStaffHandler_Add_Success(t *testing.T) {
	staffRepo := new(MockStaffMemberRepository)
	accountRepo := new(MockAccountRepository)
	handler := newStaffHandler(staffRepo, accountRepo)

	account := activeOwnerAccount("rina@kosthub.id")
	accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	staffRepo.On("ExistsByAccountID", mock.Anything, account.ID).Return(false, nil)
	staffRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.StaffMember")).Return(nil)

	router := setupBackofficeRouter()
	router.POST("/backoffice/staff", handler.Add)

	w := doJSON(t, router, http.MethodPost, "/backoffice/staff", gin.H{
		"account_id":   account.ID.String(),
		"role":         "admin",
		"display_name": "Rina Wijaya",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp["success"].(bool))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, account.ID.String(), data["account_id"])
	assert.Equal(t, "admin", data["role"])
	assert.Equal(t, "Rina Wijaya", data["display_name"])
	assert.Equal(t, true, data["active"])

	staffRepo.AssertExpectations(t)
	accountRepo.AssertExpectations(t)
}

func TestStaffHandler_Add_AccountNotFound(t *testing.T) {
	staffRepo := new(MockStaffMemberRepository)
	accountRepo := new(MockAccountRepository)
	handler := newStaffHandler(staffRepo, accountRepo)

	accountID := uuid.New()
	accountRepo.On("FindByID", mock.Anything, accountID).Return(nil, shared.ErrNotFound)

	router := setupBackofficeRouter()
	router.POST("/backoffice/staff", handler.Add)

	w := doJSON(t, router, http.MethodPost, "/backoffice/staff", gin.H{
		"account_id": accountID.String(),
		"role":       "superadmin",
	})

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "ERR_NOT_FOUND", errInfo["code"])

	accountRepo.AssertExpectations(t)
}

func TestStaffHandler_Add_DuplicateRecord(t *testing.T) {
	staffRepo := new(MockStaffMemberRepository)
	accountRepo := new(MockAccountRepository)
	handler := newStaffHandler(staffRepo, accountRepo)

	account := activeOwnerAccount("rina@kosthub.id")
	accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	staffRepo.On("ExistsByAccountID", mock.Anything, account.ID).Return(true, nil)

	router := setupBackofficeRouter()
	router.POST("/backoffice/staff", handler.Add)

	w := doJSON(t, router, http.MethodPost, "/backoffice/staff", gin.H{
		"account_id": account.ID.String(),
		"role":       "admin",
	})

	require.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "ERR_ALREADY_EXISTS", errInfo["code"])

	staffRepo.AssertExpectations(t)
}

func TestStaffHandler_Add_InvalidRole(t *testing.T) {
	staffRepo := new(MockStaffMemberRepository)
	accountRepo := new(MockAccountRepository)
	handler := newStaffHandler(staffRepo, accountRepo)

	router := setupBackofficeRouter()
	router.POST("/backoffice/staff", handler.Add)

	w := doJSON(t, router, http.MethodPost, "/backoffice/staff", gin.H{
		"account_id": uuid.New().String(),
		"role":       "manager",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	staffRepo.AssertExpectations(t)
	accountRepo.AssertExpectations(t)
}

func TestStaffHandler_List_Success(t *testing.T) {
	staffRepo := new(MockStaffMemberRepository)
	accountRepo := new(MockAccountRepository)
	handler := newStaffHandler(staffRepo, accountRepo)

	members := []identity.StaffMember{
		*registryStaff(uuid.New(), identity.RoleAdmin, "Rina Wijaya"),
		*registryStaff(uuid.New(), identity.RoleAdmin, "Bayu Pratama"),
	}
	staffRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["role"] == "admin"
	})).Return(members, nil)
	staffRepo.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

	router := setupBackofficeRouter()
	router.GET("/backoffice/staff", handler.List)

	w := doJSON(t, router, http.MethodGet, "/backoffice/staff?role=admin", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Len(t, data["staff"], 2)
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(1), data["total_pages"])

	staffRepo.AssertExpectations(t)
}

func TestStaffHandler_Get_Success(t *testing.T) {
	staffRepo := new(MockStaffMemberRepository)
	accountRepo := new(MockAccountRepository)
	handler := newStaffHandler(staffRepo, accountRepo)

	staff := registryStaff(uuid.New(), identity.RoleSuperadmin, "Bayu Pratama")
	staffRepo.On("FindByID", mock.Anything, staff.ID).Return(staff, nil)

	router := setupBackofficeRouter()
	router.GET("/backoffice/staff/:id", handler.Get)

	w := doJSON(t, router, http.MethodGet, "/backoffice/staff/"+staff.ID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "superadmin", data["role"])
	assert.Equal(t, "Bayu Pratama", data["display_name"])

	staffRepo.AssertExpectations(t)
}

func TestStaffHandler_Update_ChangeRole(t *testing.T) {
	staffRepo := new(MockStaffMemberRepository)
	accountRepo := new(MockAccountRepository)
	handler := newStaffHandler(staffRepo, accountRepo)

	staff := registryStaff(uuid.New(), identity.RoleAdmin, "Rina Wijaya")
	staffRepo.On("FindByID", mock.Anything, staff.ID).Return(staff, nil)
	staffRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.StaffMember")).Return(nil)

	router := setupBackofficeRouter()
	router.PUT("/backoffice/staff/:id", handler.Update)

	w := doJSON(t, router, http.MethodPut, "/backoffice/staff/"+staff.ID.String(), gin.H{
		"role": "superadmin",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "superadmin", data["role"])

	staffRepo.AssertExpectations(t)
}

func TestStaffHandler_Update_Deactivate(t *testing.T) {
	staffRepo := new(MockStaffMemberRepository)
	accountRepo := new(MockAccountRepository)
	handler := newStaffHandler(staffRepo, accountRepo)

	staff := registryStaff(uuid.New(), identity.RoleAdmin, "Rina Wijaya")
	staffRepo.On("FindByID", mock.Anything, staff.ID).Return(staff, nil)
	staffRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.StaffMember")).Return(nil)

	router := setupBackofficeRouter()
	router.PUT("/backoffice/staff/:id", handler.Update)

	w := doJSON(t, router, http.MethodPut, "/backoffice/staff/"+staff.ID.String(), gin.H{
		"active": false,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["active"])

	staffRepo.AssertExpectations(t)
}

func TestStaffHandler_Remove_Success(t *testing.T) {
	staffRepo := new(MockStaffMemberRepository)
	accountRepo := new(MockAccountRepository)
	handler := newStaffHandler(staffRepo, accountRepo)

	staff := registryStaff(uuid.New(), identity.RoleAdmin, "Rina Wijaya")
	staffRepo.On("FindByID", mock.Anything, staff.ID).Return(staff, nil)
	staffRepo.On("Delete", mock.Anything, staff.ID).Return(nil)

	router := setupBackofficeRouter()
	router.DELETE("/backoffice/staff/:id", handler.Remove)

	w := doJSON(t, router, http.MethodDelete, "/backoffice/staff/"+staff.ID.String(), nil)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	staffRepo.AssertExpectations(t)
}

func TestStaffHandler_Remove_NotFound(t *testing.T) {
	staffRepo := new(MockStaffMemberRepository)
	accountRepo := new(MockAccountRepository)
	handler := newStaffHandler(staffRepo, accountRepo)

	staffID := uuid.New()
	staffRepo.On("FindByID", mock.Anything, staffID).Return(nil, shared.ErrNotFound)

	router := setupBackofficeRouter()
	router.DELETE("/backoffice/staff/:id", handler.Remove)

	w := doJSON(t, router, http.MethodDelete, "/backoffice/staff/"+staffID.String(), nil)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "ERR_NOT_FOUND", errInfo["code"])

	staffRepo.AssertExpectations(t)
}

// Account handler tests

func TestAccountHandler_List_Success(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	handler := newAccountHandler(accountRepo)

	accounts := []identity.Account{
		*activeOwnerAccount("rina@kosthub.id"),
		*activeOwnerAccount("bayu@kosthub.id"),
	}
	accountRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["status"] == "active"
	})).Return(accounts, nil)
	accountRepo.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

	router := setupBackofficeRouter()
	router.GET("/backoffice/accounts", handler.List)

	w := doJSON(t, router, http.MethodGet, "/backoffice/accounts?status=active", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Len(t, data["accounts"], 2)
	assert.Equal(t, float64(2), data["total"])

	accountRepo.AssertExpectations(t)
}

func TestAccountHandler_Get_Success(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	handler := newAccountHandler(accountRepo)

	account := activeOwnerAccount("rina@kosthub.id")
	accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)

	router := setupBackofficeRouter()
	router.GET("/backoffice/accounts/:id", handler.Get)

	w := doJSON(t, router, http.MethodGet, "/backoffice/accounts/"+account.ID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "rina@kosthub.id", data["email"])
	assert.Equal(t, "active", data["status"])
	assert.Equal(t, "admin", data["role_claim"])

	accountRepo.AssertExpectations(t)
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	handler := newAccountHandler(accountRepo)

	accountID := uuid.New()
	accountRepo.On("FindByID", mock.Anything, accountID).Return(nil, shared.ErrNotFound)

	router := setupBackofficeRouter()
	router.GET("/backoffice/accounts/:id", handler.Get)

	w := doJSON(t, router, http.MethodGet, "/backoffice/accounts/"+accountID.String(), nil)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "ERR_NOT_FOUND", errInfo["code"])

	accountRepo.AssertExpectations(t)
}

func TestAccountHandler_Deactivate_Success(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	handler := newAccountHandler(accountRepo)

	account := activeOwnerAccount("rina@kosthub.id")
	accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	accountRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.Account")).Return(nil)

	router := setupBackofficeRouter()
	router.POST("/backoffice/accounts/:id/deactivate", handler.Deactivate)

	w := doJSON(t, router, http.MethodPost, "/backoffice/accounts/"+account.ID.String()+"/deactivate", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "deactivated", data["status"])

	accountRepo.AssertExpectations(t)
}

func TestAccountHandler_Deactivate_AlreadyDeactivated(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	handler := newAccountHandler(accountRepo)

	account := activeOwnerAccount("rina@kosthub.id")
	require.NoError(t, account.Deactivate())
	account.ClearDomainEvents()
	accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)

	router := setupBackofficeRouter()
	router.POST("/backoffice/accounts/:id/deactivate", handler.Deactivate)

	w := doJSON(t, router, http.MethodPost, "/backoffice/accounts/"+account.ID.String()+"/deactivate", nil)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "ERR_INVALID_STATE", errInfo["code"])

	accountRepo.AssertExpectations(t)
}

func TestAccountHandler_Reactivate_Success(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	handler := newAccountHandler(accountRepo)

	account := activeOwnerAccount("rina@kosthub.id")
	require.NoError(t, account.Deactivate())
	account.ClearDomainEvents()
	accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	accountRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.Account")).Return(nil)

	router := setupBackofficeRouter()
	router.POST("/backoffice/accounts/:id/reactivate", handler.Reactivate)

	w := doJSON(t, router, http.MethodPost, "/backoffice/accounts/"+account.ID.String()+"/reactivate", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "active", data["status"])

	accountRepo.AssertExpectations(t)
}

func TestAccountHandler_Unlock_Success(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	handler := newAccountHandler(accountRepo)

	account := activeOwnerAccount("rina@kosthub.id")
	require.NoError(t, account.Lock(30*time.Minute))
	account.ClearDomainEvents()
	accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	accountRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.Account")).Return(nil)

	router := setupBackofficeRouter()
	router.POST("/backoffice/accounts/:id/unlock", handler.Unlock)

	w := doJSON(t, router, http.MethodPost, "/backoffice/accounts/"+account.ID.String()+"/unlock", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "active", data["status"])

	accountRepo.AssertExpectations(t)
}

func TestAccountHandler_Unlock_NotLocked(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	handler := newAccountHandler(accountRepo)

	account := activeOwnerAccount("rina@kosthub.id")
	accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)

	router := setupBackofficeRouter()
	router.POST("/backoffice/accounts/:id/unlock", handler.Unlock)

	w := doJSON(t, router, http.MethodPost, "/backoffice/accounts/"+account.ID.String()+"/unlock", nil)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "ERR_INVALID_STATE", errInfo["code"])

	accountRepo.AssertExpectations(t)
}

// Plan handler tests

func TestPlanHandler_Create_Success(t *testing.T) {
	planRepo := new(MockPlanRepository)
	subscriptionRepo := new(MockSubscriptionRepository)
	handler := newPlanHandler(planRepo, subscriptionRepo)

	planRepo.On("ExistsByCode", mock.Anything, "pro").Return(false, nil)
	planRepo.On("Save", mock.Anything, mock.AnythingOfType("*subscription.Plan")).Return(nil)

	router := setupBackofficeRouter()
	router.POST("/backoffice/plans", handler.Create)

	w := doJSON(t, router, http.MethodPost, "/backoffice/plans", gin.H{
		"code":           "pro",
		"name":           "Pro",
		"price":          "99000",
		"billing_period": "monthly",
		"features": gin.H{
			"marketplace_listing": gin.H{"kind": "bool", "enabled": true},
			"max_properties":      gin.H{"kind": "limit", "enabled": true, "limit": 5},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "pro", data["code"])
	assert.Equal(t, "Pro", data["name"])
	assert.Equal(t, "99000", data["price"])
	assert.Equal(t, true, data["active"])

	planRepo.AssertExpectations(t)
}

func TestPlanHandler_Create_DuplicateCode(t *testing.T) {
	planRepo := new(MockPlanRepository)
	subscriptionRepo := new(MockSubscriptionRepository)
	handler := newPlanHandler(planRepo, subscriptionRepo)

	planRepo.On("ExistsByCode", mock.Anything, "pro").Return(true, nil)

	router := setupBackofficeRouter()
	router.POST("/backoffice/plans", handler.Create)

	w := doJSON(t, router, http.MethodPost, "/backoffice/plans", gin.H{
		"code":           "pro",
		"name":           "Pro",
		"billing_period": "monthly",
	})

	require.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "ERR_ALREADY_EXISTS", errInfo["code"])

	planRepo.AssertExpectations(t)
}

func TestPlanHandler_List_Success(t *testing.T) {
	planRepo := new(MockPlanRepository)
	subscriptionRepo := new(MockSubscriptionRepository)
	handler := newPlanHandler(planRepo, subscriptionRepo)

	plans := []*subscription.Plan{
		monthlyPlan("free", "Gratis", 0),
		monthlyPlan("pro", "Pro", 99000),
	}
	planRepo.On("FindAll", mock.Anything).Return(plans, nil)

	router := setupBackofficeRouter()
	router.GET("/backoffice/plans", handler.List)

	w := doJSON(t, router, http.MethodGet, "/backoffice/plans", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	require.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "free", first["code"])

	planRepo.AssertExpectations(t)
}

func TestPlanHandler_ListActive_Success(t *testing.T) {
	planRepo := new(MockPlanRepository)
	subscriptionRepo := new(MockSubscriptionRepository)
	handler := newPlanHandler(planRepo, subscriptionRepo)

	planRepo.On("FindActive", mock.Anything).Return([]*subscription.Plan{
		monthlyPlan("pro", "Pro", 99000),
	}, nil)

	router := setupOwnerRouter(uuid.New())
	router.GET("/plans", handler.ListActive)

	w := doJSON(t, router, http.MethodGet, "/plans", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	require.Len(t, data, 1)

	planRepo.AssertExpectations(t)
}

func TestPlanHandler_Update_Success(t *testing.T) {
	planRepo := new(MockPlanRepository)
	subscriptionRepo := new(MockSubscriptionRepository)
	handler := newPlanHandler(planRepo, subscriptionRepo)

	plan := monthlyPlan("pro", "Pro", 99000)
	planRepo.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)
	planRepo.On("Save", mock.Anything, mock.AnythingOfType("*subscription.Plan")).Return(nil)

	router := setupBackofficeRouter()
	router.PUT("/backoffice/plans/:id", handler.Update)

	w := doJSON(t, router, http.MethodPut, "/backoffice/plans/"+plan.ID.String(), gin.H{
		"name": "Pro Plus",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Pro Plus", data["name"])

	planRepo.AssertExpectations(t)
}

func TestPlanHandler_Update_NotFound(t *testing.T) {
	planRepo := new(MockPlanRepository)
	subscriptionRepo := new(MockSubscriptionRepository)
	handler := newPlanHandler(planRepo, subscriptionRepo)

	planID := uuid.New()
	planRepo.On("FindByID", mock.Anything, planID).Return(nil, shared.ErrNotFound)

	router := setupBackofficeRouter()
	router.PUT("/backoffice/plans/:id", handler.Update)

	w := doJSON(t, router, http.MethodPut, "/backoffice/plans/"+planID.String(), gin.H{
		"name": "Pro Plus",
	})

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "ERR_NOT_FOUND", errInfo["code"])

	planRepo.AssertExpectations(t)
}

func TestPlanHandler_Delete_StillInUse(t *testing.T) {
	planRepo := new(MockPlanRepository)
	subscriptionRepo := new(MockSubscriptionRepository)
	handler := newPlanHandler(planRepo, subscriptionRepo)

	plan := monthlyPlan("pro", "Pro", 99000)
	planRepo.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)
	subscriptionRepo.On("CountActiveByPlan", mock.Anything, plan.ID).Return(int64(3), nil)

	router := setupBackofficeRouter()
	router.DELETE("/backoffice/plans/:id", handler.Delete)

	w := doJSON(t, router, http.MethodDelete, "/backoffice/plans/"+plan.ID.String(), nil)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "ERR_BUSINESS_RULE", errInfo["code"])

	planRepo.AssertExpectations(t)
	subscriptionRepo.AssertExpectations(t)
}

func TestPlanHandler_Delete_Success(t *testing.T) {
	planRepo := new(MockPlanRepository)
	subscriptionRepo := new(MockSubscriptionRepository)
	handler := newPlanHandler(planRepo, subscriptionRepo)

	plan := monthlyPlan("pro", "Pro", 99000)
	planRepo.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)
	subscriptionRepo.On("CountActiveByPlan", mock.Anything, plan.ID).Return(int64(0), nil)
	planRepo.On("Delete", mock.Anything, plan.ID).Return(nil)

	router := setupBackofficeRouter()
	router.DELETE("/backoffice/plans/:id", handler.Delete)

	w := doJSON(t, router, http.MethodDelete, "/backoffice/plans/"+plan.ID.String(), nil)

	require.Equal(t, http.StatusNoContent, w.Code)

	planRepo.AssertExpectations(t)
	subscriptionRepo.AssertExpectations(t)
}

// Subscription handler tests

func TestSubscriptionHandler_Subscribe_Success(t *testing.T) {
	subscriptionRepo := new(MockSubscriptionRepository)
	planRepo := new(MockPlanRepository)
	handler := newSubscriptionHandler(subscriptionRepo, planRepo)

	ownerID := uuid.New()
	plan := monthlyPlan("pro", "Pro", 99000)
	planRepo.On("FindByCode", mock.Anything, "pro").Return(plan, nil)
	subscriptionRepo.On("FindActiveByOwner", mock.Anything, ownerID).Return(nil, shared.ErrNotFound)
	subscriptionRepo.On("Save", mock.Anything, mock.AnythingOfType("*subscription.Subscription")).Return(nil)

	router := setupBackofficeRouter()
	router.POST("/backoffice/subscriptions", handler.Subscribe)

	w := doJSON(t, router, http.MethodPost, "/backoffice/subscriptions", gin.H{
		"owner_id":  ownerID.String(),
		"plan_code": "pro",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, ownerID.String(), data["owner_id"])
	assert.Equal(t, "pro", data["plan_code"])
	assert.Equal(t, "active", data["status"])

	subscriptionRepo.AssertExpectations(t)
	planRepo.AssertExpectations(t)
}

func TestSubscriptionHandler_Subscribe_AlreadySubscribed(t *testing.T) {
	subscriptionRepo := new(MockSubscriptionRepository)
	planRepo := new(MockPlanRepository)
	handler := newSubscriptionHandler(subscriptionRepo, planRepo)

	ownerID := uuid.New()
	plan := monthlyPlan("pro", "Pro", 99000)
	planRepo.On("FindByCode", mock.Anything, "pro").Return(plan, nil)
	subscriptionRepo.On("FindActiveByOwner", mock.Anything, ownerID).Return(currentSubscription(ownerID, plan.ID), nil)

	router := setupBackofficeRouter()
	router.POST("/backoffice/subscriptions", handler.Subscribe)

	w := doJSON(t, router, http.MethodPost, "/backoffice/subscriptions", gin.H{
		"owner_id":  ownerID.String(),
		"plan_code": "pro",
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "ERR_BUSINESS_RULE", errInfo["code"])

	subscriptionRepo.AssertExpectations(t)
}

func TestSubscriptionHandler_Subscribe_PlanRetired(t *testing.T) {
	subscriptionRepo := new(MockSubscriptionRepository)
	planRepo := new(MockPlanRepository)
	handler := newSubscriptionHandler(subscriptionRepo, planRepo)

	plan := monthlyPlan("legacy", "Legacy", 49000)
	require.NoError(t, plan.Retire())
	plan.ClearDomainEvents()
	planRepo.On("FindByCode", mock.Anything, "legacy").Return(plan, nil)

	router := setupBackofficeRouter()
	router.POST("/backoffice/subscriptions", handler.Subscribe)

	w := doJSON(t, router, http.MethodPost, "/backoffice/subscriptions", gin.H{
		"owner_id":  uuid.New().String(),
		"plan_code": "legacy",
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "ERR_INVALID_STATE", errInfo["code"])

	planRepo.AssertExpectations(t)
}

func TestSubscriptionHandler_History_Success(t *testing.T) {
	subscriptionRepo := new(MockSubscriptionRepository)
	planRepo := new(MockPlanRepository)
	handler := newSubscriptionHandler(subscriptionRepo, planRepo)

	ownerID := uuid.New()
	plan := monthlyPlan("pro", "Pro", 99000)
	subscriptionRepo.On("FindByOwner", mock.Anything, ownerID).Return([]*subscription.Subscription{
		currentSubscription(ownerID, plan.ID),
	}, nil)
	planRepo.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)

	router := setupBackofficeRouter()
	router.GET("/backoffice/subscriptions", handler.History)

	w := doJSON(t, router, http.MethodGet, "/backoffice/subscriptions?owner_id="+ownerID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	require.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "pro", first["plan_code"])
	assert.Equal(t, "Pro", first["plan_name"])

	subscriptionRepo.AssertExpectations(t)
	planRepo.AssertExpectations(t)
}

func TestSubscriptionHandler_History_MissingOwnerID(t *testing.T) {
	subscriptionRepo := new(MockSubscriptionRepository)
	planRepo := new(MockPlanRepository)
	handler := newSubscriptionHandler(subscriptionRepo, planRepo)

	router := setupBackofficeRouter()
	router.GET("/backoffice/subscriptions", handler.History)

	w := doJSON(t, router, http.MethodGet, "/backoffice/subscriptions", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	subscriptionRepo.AssertExpectations(t)
}

func TestSubscriptionHandler_ChangePlan_Success(t *testing.T) {
	subscriptionRepo := new(MockSubscriptionRepository)
	planRepo := new(MockPlanRepository)
	handler := newSubscriptionHandler(subscriptionRepo, planRepo)

	ownerID := uuid.New()
	oldPlan := monthlyPlan("pro", "Pro", 99000)
	newPlan := monthlyPlan("bisnis", "Bisnis", 249000)
	subscriptionRepo.On("FindActiveByOwner", mock.Anything, ownerID).Return(currentSubscription(ownerID, oldPlan.ID), nil)
	planRepo.On("FindByCode", mock.Anything, "bisnis").Return(newPlan, nil)
	subscriptionRepo.On("Save", mock.Anything, mock.AnythingOfType("*subscription.Subscription")).Return(nil)

	router := setupBackofficeRouter()
	router.PUT("/backoffice/subscriptions/:id", handler.ChangePlan)

	w := doJSON(t, router, http.MethodPut, "/backoffice/subscriptions/"+ownerID.String(), gin.H{
		"plan_code": "bisnis",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "bisnis", data["plan_code"])
	assert.Equal(t, "active", data["status"])

	subscriptionRepo.AssertExpectations(t)
	planRepo.AssertExpectations(t)
}

func TestSubscriptionHandler_ChangePlan_NoActiveSubscription(t *testing.T) {
	subscriptionRepo := new(MockSubscriptionRepository)
	planRepo := new(MockPlanRepository)
	handler := newSubscriptionHandler(subscriptionRepo, planRepo)

	ownerID := uuid.New()
	subscriptionRepo.On("FindActiveByOwner", mock.Anything, ownerID).Return(nil, shared.ErrNotFound)

	router := setupBackofficeRouter()
	router.PUT("/backoffice/subscriptions/:id", handler.ChangePlan)

	w := doJSON(t, router, http.MethodPut, "/backoffice/subscriptions/"+ownerID.String(), gin.H{
		"plan_code": "bisnis",
	})

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "ERR_NO_ACTIVE_SUBSCRIPTION", errInfo["code"])

	subscriptionRepo.AssertExpectations(t)
}

func TestSubscriptionHandler_Cancel_Success(t *testing.T) {
	subscriptionRepo := new(MockSubscriptionRepository)
	planRepo := new(MockPlanRepository)
	handler := newSubscriptionHandler(subscriptionRepo, planRepo)

	ownerID := uuid.New()
	plan := monthlyPlan("pro", "Pro", 99000)
	subscriptionRepo.On("FindActiveByOwner", mock.Anything, ownerID).Return(currentSubscription(ownerID, plan.ID), nil)
	subscriptionRepo.On("Save", mock.Anything, mock.AnythingOfType("*subscription.Subscription")).Return(nil)
	planRepo.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)

	router := setupBackofficeRouter()
	router.POST("/backoffice/subscriptions/:id/cancel", handler.Cancel)

	w := doJSON(t, router, http.MethodPost, "/backoffice/subscriptions/"+ownerID.String()+"/cancel", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "cancelled", data["status"])
	assert.NotEmpty(t, data["cancelled_at"])

	subscriptionRepo.AssertExpectations(t)
	planRepo.AssertExpectations(t)
}

func TestSubscriptionHandler_Cancel_NoActiveSubscription(t *testing.T) {
	subscriptionRepo := new(MockSubscriptionRepository)
	planRepo := new(MockPlanRepository)
	handler := newSubscriptionHandler(subscriptionRepo, planRepo)

	ownerID := uuid.New()
	subscriptionRepo.On("FindActiveByOwner", mock.Anything, ownerID).Return(nil, shared.ErrNotFound)

	router := setupBackofficeRouter()
	router.POST("/backoffice/subscriptions/:id/cancel", handler.Cancel)

	w := doJSON(t, router, http.MethodPost, "/backoffice/subscriptions/"+ownerID.String()+"/cancel", nil)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "ERR_NO_ACTIVE_SUBSCRIPTION", errInfo["code"])

	subscriptionRepo.AssertExpectations(t)
}

func TestSubscriptionHandler_GetCurrent_Success(t *testing.T) {
	subscriptionRepo := new(MockSubscriptionRepository)
	planRepo := new(MockPlanRepository)
	handler := newSubscriptionHandler(subscriptionRepo, planRepo)

	ownerID := uuid.New()
	plan := monthlyPlan("pro", "Pro", 99000)
	subscriptionRepo.On("FindActiveByOwner", mock.Anything, ownerID).Return(currentSubscription(ownerID, plan.ID), nil)
	planRepo.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)

	router := setupOwnerRouter(ownerID)
	router.GET("/subscription", handler.GetCurrent)

	w := doJSON(t, router, http.MethodGet, "/subscription", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, ownerID.String(), data["owner_id"])
	assert.Equal(t, "pro", data["plan_code"])
	assert.NotEmpty(t, data["expires_at"])

	subscriptionRepo.AssertExpectations(t)
	planRepo.AssertExpectations(t)
}
