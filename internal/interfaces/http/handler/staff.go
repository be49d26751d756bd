package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kosthub/backend/internal/application/identity"
	"github.com/kosthub/backend/internal/interfaces/http/dto"
)

// StaffHandler handles the back-office staff registry endpoints. Registry
// records are the authoritative role source, so every mutation here shifts
// what the affected account resolves to on its next navigation.
type StaffHandler struct {
	BaseHandler
	staffService *identity.StaffService
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(staffService *identity.StaffService) *StaffHandler {
	return &StaffHandler{
		staffService: staffService,
	}
}

// Add godoc
// @Summary      Add a staff member
// @Description  Create a staff registry record for an existing account. The record overrides the account's profile role claim on the next session resolution.
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        request body AddStaffRequest true "Staff registry record"
// @Success      201 {object} dto.Response{data=identity.StaffMemberDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/staff [post]
func (h *StaffHandler) Add(c *gin.Context) {
	var req AddStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	staff, err := h.staffService.Add(c.Request.Context(), identity.AddStaffMemberInput{
		AccountID:   accountID,
		Role:        req.Role,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, staff)
}

// Get godoc
// @Summary      Get a staff member
// @Tags         staff
// @Produce      json
// @Param        id path string true "Staff ID" format(uuid)
// @Success      200 {object} dto.Response{data=identity.StaffMemberDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/staff/{id} [get]
func (h *StaffHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid staff ID format")
		return
	}

	staff, err := h.staffService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, staff)
}

// List godoc
// @Summary      List staff members
// @Tags         staff
// @Produce      json
// @Param        search query string false "Search by display name"
// @Param        role query string false "Filter by role" Enums(superadmin, admin, tenant)
// @Param        active query bool false "Filter by active flag"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=identity.StaffListResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	var query StaffListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.staffService.List(c.Request.Context(), query.toFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update godoc
// @Summary      Update a staff member
// @Description  Change role, display name or active flag. Deactivating a record reverts the account to its profile role claim without deleting history.
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id path string true "Staff ID" format(uuid)
// @Param        request body UpdateStaffRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=identity.StaffMemberDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/staff/{id} [put]
func (h *StaffHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid staff ID format")
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	staff, err := h.staffService.Update(c.Request.Context(), identity.UpdateStaffMemberInput{
		StaffID:     id,
		Role:        req.Role,
		DisplayName: req.DisplayName,
		Active:      req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, staff)
}

// Remove godoc
// @Summary      Remove a staff member
// @Description  Delete the registry record. The account keeps existing and resolves to its profile role claim afterwards.
// @Tags         staff
// @Produce      json
// @Param        id path string true "Staff ID" format(uuid)
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /backoffice/staff/{id} [delete]
func (h *StaffHandler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid staff ID format")
		return
	}

	if err := h.staffService.Remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Count godoc
// @Summary      Get staff count
// @Tags         staff
// @Produce      json
// @Success      200 {object} dto.Response{data=object}
// @Security     BearerAuth
// @Router       /backoffice/staff/stats/count [get]
func (h *StaffHandler) Count(c *gin.Context) {
	count, err := h.staffService.Count(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"count": count})
}

var _ = dto.Response{}
