package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	subscriptionapp "github.com/kosthub/backend/internal/application/subscription"
	"github.com/kosthub/backend/internal/interfaces/http/dto"
)

// SubscriptionHandler handles subscription endpoints. Assigning, changing
// and cancelling subscriptions is a back-office operation keyed by the
// owner account ID; the owner console only reads its own current state.
type SubscriptionHandler struct {
	BaseHandler
	subscriptionService *subscriptionapp.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionService *subscriptionapp.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// GetCurrent godoc
// @Summary      Get own subscription
// @Description  The calling owner's current subscription. Owners are placed on the free plan at registration, so this resolves unless the subscription was cancelled or expired.
// @Tags         subscriptions
// @Produce      json
// @Success      200 {object} dto.Response{data=subscriptionapp.SubscriptionResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /subscription [get]
func (h *SubscriptionHandler) GetCurrent(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	sub, err := h.subscriptionService.GetCurrent(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sub)
}

// History godoc
// @Summary      List an owner's subscription history
// @Description  Every subscription the owner has held, newest first
// @Tags         subscriptions
// @Produce      json
// @Param        owner_id query string true "Owner account ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]subscriptionapp.SubscriptionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/subscriptions [get]
func (h *SubscriptionHandler) History(c *gin.Context) {
	var query SubscriptionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ownerID, err := uuid.Parse(query.OwnerID)
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return
	}

	subs, err := h.subscriptionService.History(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, subs)
}

// Subscribe godoc
// @Summary      Subscribe an owner to a plan
// @Description  Starts a subscription for the owner account. Fails while the owner already holds an active subscription; use the change endpoint instead.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request body AssignSubscriptionRequest true "Owner and plan"
// @Success      201 {object} dto.Response{data=subscriptionapp.SubscriptionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/subscriptions [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req AssignSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return
	}

	sub, err := h.subscriptionService.Subscribe(c.Request.Context(), ownerID, subscriptionapp.SubscribeRequest{
		PlanCode: req.PlanCode,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sub)
}

// ChangePlan godoc
// @Summary      Move an owner to a different plan
// @Description  Replaces the owner's active subscription with one on the target plan. Entitlements follow the new plan on the next resolution; nothing is prorated.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        id path string true "Owner account ID" format(uuid)
// @Param        request body subscriptionapp.ChangePlanRequest true "Target plan"
// @Success      200 {object} dto.Response{data=subscriptionapp.SubscriptionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/subscriptions/{id} [put]
func (h *SubscriptionHandler) ChangePlan(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return
	}

	var req subscriptionapp.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sub, err := h.subscriptionService.ChangePlan(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sub)
}

// Cancel godoc
// @Summary      Cancel an owner's subscription
// @Description  Cancellation is immediate. The owner's entitlements drop to nothing until a new subscription is assigned.
// @Tags         subscriptions
// @Produce      json
// @Param        id path string true "Owner account ID" format(uuid)
// @Success      200 {object} dto.Response{data=subscriptionapp.SubscriptionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/subscriptions/{id}/cancel [post]
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return
	}

	sub, err := h.subscriptionService.Cancel(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sub)
}

var _ = dto.Response{}
