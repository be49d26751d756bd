package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	propertyapp "github.com/kosthub/backend/internal/application/property"
	"github.com/kosthub/backend/internal/interfaces/http/dto"
)

// PropertyHandler handles property management endpoints for the owner console
type PropertyHandler struct {
	BaseHandler
	propertyService *propertyapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *propertyapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
	}
}

// Create godoc
// @Summary      Create a new property
// @Description  Create a new boarding house property owned by the authenticated account
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        request body propertyapp.CreatePropertyRequest true "Property creation request"
// @Success      201 {object} dto.Response{data=propertyapp.PropertyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req propertyapp.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	prop, err := h.propertyService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, prop)
}

// Get godoc
// @Summary      Get a property
// @Description  Get a property by ID. Only properties owned by the authenticated account are visible.
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID"
// @Success      200 {object} dto.Response{data=propertyapp.PropertyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id} [get]
func (h *PropertyHandler) Get(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	prop, err := h.propertyService.GetByID(c.Request.Context(), ownerID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prop)
}

// List godoc
// @Summary      List properties
// @Description  List all properties owned by the authenticated account
// @Tags         properties
// @Produce      json
// @Success      200 {object} dto.Response{data=[]propertyapp.PropertyListResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	properties, err := h.propertyService.List(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, properties)
}

// Update godoc
// @Summary      Update a property
// @Description  Update property details. Only provided fields are changed.
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        request body propertyapp.UpdatePropertyRequest true "Property update request"
// @Success      200 {object} dto.Response{data=propertyapp.PropertyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req propertyapp.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	prop, err := h.propertyService.Update(c.Request.Context(), ownerID, propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prop)
}

// Publish godoc
// @Summary      Publish a property to the marketplace
// @Description  Make the property visible on the public marketplace. Requires marketplace listing to be enabled on the property and an entitled subscription plan.
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID"
// @Success      200 {object} dto.Response{data=propertyapp.PropertyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/publish [post]
func (h *PropertyHandler) Publish(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	prop, err := h.propertyService.Publish(c.Request.Context(), ownerID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prop)
}

// Unpublish godoc
// @Summary      Remove a property from the marketplace
// @Description  Take the property off the public marketplace. Existing tenancies are unaffected.
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID"
// @Success      200 {object} dto.Response{data=propertyapp.PropertyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/unpublish [post]
func (h *PropertyHandler) Unpublish(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	prop, err := h.propertyService.Unpublish(c.Request.Context(), ownerID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prop)
}

// Delete godoc
// @Summary      Delete a property
// @Description  Delete a property and everything under it. Published properties must be unpublished first.
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), ownerID, propertyID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

var _ = dto.Response{}
