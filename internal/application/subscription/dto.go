package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kosthub/backend/internal/domain/subscription"
)

// CreatePlanRequest represents a request to create a plan
type CreatePlanRequest struct {
	Code          string                  `json:"code" binding:"required,min=1,max=50"`
	Name          string                  `json:"name" binding:"required,min=1,max=200"`
	Description   string                  `json:"description"`
	Price         decimal.Decimal         `json:"price"`
	BillingPeriod string                  `json:"billing_period" binding:"required,oneof=monthly yearly"`
	Features      subscription.FeatureMap `json:"features"`
	SortOrder     int                     `json:"sort_order"`
}

// UpdatePlanRequest represents a request to update a plan. A nil
// Features map leaves the feature assignment untouched.
type UpdatePlanRequest struct {
	Name        *string                 `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string                 `json:"description"`
	Price       *decimal.Decimal        `json:"price"`
	Features    subscription.FeatureMap `json:"features"`
	SortOrder   *int                    `json:"sort_order"`
	Active      *bool                   `json:"active"`
}

// PlanResponse represents a plan in API responses
type PlanResponse struct {
	ID            uuid.UUID               `json:"id"`
	Code          string                  `json:"code"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description"`
	Price         decimal.Decimal         `json:"price"`
	BillingPeriod string                  `json:"billing_period"`
	Features      subscription.FeatureMap `json:"features"`
	Active        bool                    `json:"active"`
	SortOrder     int                     `json:"sort_order"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
	Version       int                     `json:"version"`
}

// SubscribeRequest represents a request to start a subscription
type SubscribeRequest struct {
	PlanCode string `json:"plan_code" binding:"required,min=1,max=50"`
}

// ChangePlanRequest represents a request to move to a different plan
type ChangePlanRequest struct {
	PlanCode string `json:"plan_code" binding:"required,min=1,max=50"`
}

// SubscriptionResponse represents a subscription in API responses
type SubscriptionResponse struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	PlanID      uuid.UUID  `json:"plan_id"`
	PlanCode    string     `json:"plan_code"`
	PlanName    string     `json:"plan_name"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toPlanResponse(plan *subscription.Plan) *PlanResponse {
	return &PlanResponse{
		ID:            plan.ID,
		Code:          plan.Code,
		Name:          plan.Name,
		Description:   plan.Description,
		Price:         plan.Price,
		BillingPeriod: string(plan.BillingPeriod),
		Features:      plan.Features,
		Active:        plan.Active,
		SortOrder:     plan.SortOrder,
		CreatedAt:     plan.CreatedAt,
		UpdatedAt:     plan.UpdatedAt,
		Version:       plan.Version,
	}
}

func toSubscriptionResponse(sub *subscription.Subscription, plan *subscription.Plan) *SubscriptionResponse {
	response := &SubscriptionResponse{
		ID:          sub.ID,
		OwnerID:     sub.OwnerID,
		PlanID:      sub.PlanID,
		Status:      string(sub.Status),
		StartedAt:   sub.StartedAt,
		ExpiresAt:   sub.ExpiresAt,
		CancelledAt: sub.CancelledAt,
		CreatedAt:   sub.CreatedAt,
		UpdatedAt:   sub.UpdatedAt,
	}
	if plan != nil {
		response.PlanCode = plan.Code
		response.PlanName = plan.Name
	}
	return response
}
