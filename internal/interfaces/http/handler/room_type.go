package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	propertyapp "github.com/kosthub/backend/internal/application/property"
	"github.com/kosthub/backend/internal/interfaces/http/dto"
)

// RoomTypeHandler handles room type management endpoints for the owner console
type RoomTypeHandler struct {
	BaseHandler
	roomTypeService *propertyapp.RoomTypeService
}

// NewRoomTypeHandler creates a new RoomTypeHandler
func NewRoomTypeHandler(roomTypeService *propertyapp.RoomTypeService) *RoomTypeHandler {
	return &RoomTypeHandler{
		roomTypeService: roomTypeService,
	}
}

// parseRoomTypePath pulls the property and room type IDs off the route.
func (h *RoomTypeHandler) parseRoomTypePath(c *gin.Context) (propertyID, roomTypeID uuid.UUID, ok bool) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return uuid.Nil, uuid.Nil, false
	}
	roomTypeID, err = uuid.Parse(c.Param("typeId"))
	if err != nil {
		h.BadRequest(c, "Invalid room type ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return propertyID, roomTypeID, true
}

// Create godoc
// @Summary      Create a room type
// @Description  Create a room type under a property. Room type names are unique per property.
// @Tags         room-types
// @Accept       json
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        request body propertyapp.CreateRoomTypeRequest true "Room type creation request"
// @Success      201 {object} dto.Response{data=propertyapp.RoomTypeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/room-types [post]
func (h *RoomTypeHandler) Create(c *gin.Context) {
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

	var req propertyapp.CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	roomType, err := h.roomTypeService.Create(c.Request.Context(), ownerID, propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, roomType)
}

// Get godoc
// @Summary      Get a room type
// @Description  Get a room type with its room counts
// @Tags         room-types
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        typeId path string true "Room type ID"
// @Success      200 {object} dto.Response{data=propertyapp.RoomTypeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/room-types/{typeId} [get]
func (h *RoomTypeHandler) Get(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, roomTypeID, ok := h.parseRoomTypePath(c)
	if !ok {
		return
	}

	roomType, err := h.roomTypeService.GetByID(c.Request.Context(), ownerID, propertyID, roomTypeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, roomType)
}

// List godoc
// @Summary      List room types
// @Description  List all room types of a property with room counts
// @Tags         room-types
// @Produce      json
// @Param        id path string true "Property ID"
// @Success      200 {object} dto.Response{data=[]propertyapp.RoomTypeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/room-types [get]
func (h *RoomTypeHandler) List(c *gin.Context) {
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

	roomTypes, err := h.roomTypeService.List(c.Request.Context(), ownerID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, roomTypes)
}

// Update godoc
// @Summary      Update a room type
// @Description  Update room type details. Renaming a room type cascades to its rooms.
// @Tags         room-types
// @Accept       json
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        typeId path string true "Room type ID"
// @Param        request body propertyapp.UpdateRoomTypeRequest true "Room type update request"
// @Success      200 {object} dto.Response{data=propertyapp.RoomTypeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/room-types/{typeId} [put]
func (h *RoomTypeHandler) Update(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, roomTypeID, ok := h.parseRoomTypePath(c)
	if !ok {
		return
	}

	var req propertyapp.UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	roomType, err := h.roomTypeService.Update(c.Request.Context(), ownerID, propertyID, roomTypeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, roomType)
}

// Delete godoc
// @Summary      Delete a room type
// @Description  Delete a room type. Fails while rooms still reference it.
// @Tags         room-types
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        typeId path string true "Room type ID"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/room-types/{typeId} [delete]
func (h *RoomTypeHandler) Delete(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, roomTypeID, ok := h.parseRoomTypePath(c)
	if !ok {
		return
	}

	if err := h.roomTypeService.Delete(c.Request.Context(), ownerID, propertyID, roomTypeID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

var _ = dto.Response{}
