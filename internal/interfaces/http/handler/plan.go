package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	subscriptionapp "github.com/kosthub/backend/internal/application/subscription"
	"github.com/kosthub/backend/internal/interfaces/http/dto"
)

// PlanHandler handles plan catalog endpoints. Full CRUD lives in the back
// office; the owner console only reads the active catalog when picking an
// upgrade target.
type PlanHandler struct {
	BaseHandler
	planService *subscriptionapp.PlanService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planService *subscriptionapp.PlanService) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

// List godoc
// @Summary      List all plans
// @Description  Every plan including retired ones, ordered by sort order
// @Tags         plans
// @Produce      json
// @Success      200 {object} dto.Response{data=[]subscriptionapp.PlanResponse}
// @Security     BearerAuth
// @Router       /backoffice/plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.planService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plans)
}

// ListActive godoc
// @Summary      List active plans
// @Description  The subscribable catalog, shown to owners picking a plan
// @Tags         plans
// @Produce      json
// @Success      200 {object} dto.Response{data=[]subscriptionapp.PlanResponse}
// @Security     BearerAuth
// @Router       /plans [get]
func (h *PlanHandler) ListActive(c *gin.Context) {
	plans, err := h.planService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plans)
}

// Create godoc
// @Summary      Create a plan
// @Description  Plan codes are unique. Feature values are typed per feature key: booleans for switches, integers for limits.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        request body subscriptionapp.CreatePlanRequest true "Plan definition"
// @Success      201 {object} dto.Response{data=subscriptionapp.PlanResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/plans [post]
func (h *PlanHandler) Create(c *gin.Context) {
	var req subscriptionapp.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, plan)
}

// Update godoc
// @Summary      Update a plan
// @Description  Changed feature assignments apply to every subscriber of the plan on their next entitlement resolution.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        id path string true "Plan ID" format(uuid)
// @Param        request body subscriptionapp.UpdatePlanRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=subscriptionapp.PlanResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/plans/{id} [put]
func (h *PlanHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	var req subscriptionapp.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// Delete godoc
// @Summary      Delete a plan
// @Description  Fails while subscriptions still reference the plan
// @Tags         plans
// @Produce      json
// @Param        id path string true "Plan ID" format(uuid)
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/plans/{id} [delete]
func (h *PlanHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	if err := h.planService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

var _ = dto.Response{}
