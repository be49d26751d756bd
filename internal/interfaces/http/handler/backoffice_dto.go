package handler

import (
	"github.com/kosthub/backend/internal/domain/shared"
)

// =====================
// Staff Request DTOs
// =====================

// AddStaffRequest represents the request body for adding a staff registry record
// @Name HandlerAddStaffRequest
type AddStaffRequest struct {
	AccountID   string `json:"account_id" binding:"required,uuid"`
	Role        string `json:"role" binding:"required,oneof=superadmin admin tenant"`
	DisplayName string `json:"display_name" binding:"omitempty,max=200"`
}

// UpdateStaffRequest represents the request body for updating a staff registry record
// @Name HandlerUpdateStaffRequest
type UpdateStaffRequest struct {
	Role        *string `json:"role" binding:"omitempty,oneof=superadmin admin tenant"`
	DisplayName *string `json:"display_name" binding:"omitempty,min=1,max=200"`
	Active      *bool   `json:"active" binding:"omitempty"`
}

// StaffListQuery represents query parameters for listing staff registry records
// @Name HandlerStaffListQuery
type StaffListQuery struct {
	Search   string `form:"search" binding:"omitempty"`
	Role     string `form:"role" binding:"omitempty,oneof=superadmin admin tenant"`
	Active   *bool  `form:"active" binding:"omitempty"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (q StaffListQuery) toFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.Search = q.Search
	if q.Role != "" {
		filter.Filters["role"] = q.Role
	}
	if q.Active != nil {
		filter.Filters["active"] = *q.Active
	}
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	return filter
}

// =====================
// Account Request DTOs
// =====================

// AccountListQuery represents query parameters for listing accounts
// @Name HandlerAccountListQuery
type AccountListQuery struct {
	Search    string `form:"search" binding:"omitempty"`
	Status    string `form:"status" binding:"omitempty,oneof=pending active locked deactivated"`
	RoleClaim string `form:"role_claim" binding:"omitempty"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (q AccountListQuery) toFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.Search = q.Search
	if q.Status != "" {
		filter.Filters["status"] = q.Status
	}
	if q.RoleClaim != "" {
		filter.Filters["role_claim"] = q.RoleClaim
	}
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	return filter
}

// =====================
// Subscription Request DTOs
// =====================

// AssignSubscriptionRequest represents the request body for subscribing an
// owner account to a plan from the back office
// @Name HandlerAssignSubscriptionRequest
type AssignSubscriptionRequest struct {
	OwnerID  string `json:"owner_id" binding:"required,uuid"`
	PlanCode string `json:"plan_code" binding:"required,min=1,max=50"`
}

// SubscriptionListQuery represents query parameters for listing an owner's
// subscription history
// @Name HandlerSubscriptionListQuery
type SubscriptionListQuery struct {
	OwnerID string `form:"owner_id" binding:"required,uuid"`
}
