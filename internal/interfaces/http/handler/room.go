package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	propertyapp "github.com/kosthub/backend/internal/application/property"
	"github.com/kosthub/backend/internal/interfaces/http/dto"
)

// RoomHandler handles room management endpoints for the owner console
type RoomHandler struct {
	BaseHandler
	roomService *propertyapp.RoomService
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(roomService *propertyapp.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

// parseRoomPath pulls the property and room IDs off the route.
func (h *RoomHandler) parseRoomPath(c *gin.Context) (propertyID, roomID uuid.UUID, ok bool) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return uuid.Nil, uuid.Nil, false
	}
	roomID, err = uuid.Parse(c.Param("roomId"))
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return propertyID, roomID, true
}

// Create godoc
// @Summary      Create a room
// @Description  Create a room under a property. The room must reference an existing room type by name.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        request body propertyapp.CreateRoomRequest true "Room creation request"
// @Success      201 {object} dto.Response{data=propertyapp.RoomResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
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

	var req propertyapp.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	room, err := h.roomService.Create(c.Request.Context(), ownerID, propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, room)
}

// Get godoc
// @Summary      Get a room
// @Description  Get a room by ID
// @Tags         rooms
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        roomId path string true "Room ID"
// @Success      200 {object} dto.Response{data=propertyapp.RoomResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/rooms/{roomId} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, roomID, ok := h.parseRoomPath(c)
	if !ok {
		return
	}

	room, err := h.roomService.GetByID(c.Request.Context(), ownerID, propertyID, roomID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, room)
}

// List godoc
// @Summary      List rooms
// @Description  List rooms of a property, optionally filtered by room type name
// @Tags         rooms
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        room_type query string false "Filter by room type name"
// @Success      200 {object} dto.Response{data=[]propertyapp.RoomResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
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

	rooms, err := h.roomService.List(c.Request.Context(), ownerID, propertyID, c.Query("room_type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rooms)
}

// Update godoc
// @Summary      Update a room
// @Description  Update a room's type or floor. Room numbers are immutable.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        roomId path string true "Room ID"
// @Param        request body propertyapp.UpdateRoomRequest true "Room update request"
// @Success      200 {object} dto.Response{data=propertyapp.RoomResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/rooms/{roomId} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, roomID, ok := h.parseRoomPath(c)
	if !ok {
		return
	}

	var req propertyapp.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	room, err := h.roomService.Update(c.Request.Context(), ownerID, propertyID, roomID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, room)
}

// SetStatus godoc
// @Summary      Set a room's occupancy status
// @Description  Move a room between vacant, occupied and maintenance. Marketplace availability follows vacancy.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        roomId path string true "Room ID"
// @Param        request body propertyapp.SetRoomStatusRequest true "Room status request"
// @Success      200 {object} dto.Response{data=propertyapp.RoomResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/rooms/{roomId}/status [put]
func (h *RoomHandler) SetStatus(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, roomID, ok := h.parseRoomPath(c)
	if !ok {
		return
	}

	var req propertyapp.SetRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	room, err := h.roomService.SetStatus(c.Request.Context(), ownerID, propertyID, roomID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, room)
}

// Delete godoc
// @Summary      Delete a room
// @Description  Delete a room. Occupied rooms cannot be deleted.
// @Tags         rooms
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        roomId path string true "Room ID"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/rooms/{roomId} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, roomID, ok := h.parseRoomPath(c)
	if !ok {
		return
	}

	if err := h.roomService.Delete(c.Request.Context(), ownerID, propertyID, roomID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

var _ = dto.Response{}
