package handler

import (
	"net/http"
	"strconv"

	"hospital-room-allocation/internal/models"
	"hospital-room-allocation/internal/service"
	"hospital-room-allocation/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RoomHandler struct {
	roomService *service.RoomService
}

func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

type RoomRequest struct {
	RoomNumber  string          `json:"room_number" binding:"required"`
	RoomType    string          `json:"room_type" binding:"omitempty,oneof=SINGLE DOUBLE TRIPLE SUITE ICU EMERGENCY OPERATION_THEATRE WARD"`
	Floor       int             `json:"floor"`
	Capacity    int             `json:"capacity"`
	Status      string          `json:"status" binding:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE RESERVED"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
	Description string          `json:"description"`
}

func (r *RoomRequest) toModel() *models.Room {
	return &models.Room{
		RoomNumber:  r.RoomNumber,
		RoomType:    models.RoomType(r.RoomType),
		Floor:       r.Floor,
		Capacity:    r.Capacity,
		Status:      models.RoomStatus(r.Status),
		PricePerDay: r.PricePerDay,
		Description: r.Description,
	}
}

// GetAllRooms lists all rooms
func (h *RoomHandler) GetAllRooms(c *gin.Context) {
	rooms, err := h.roomService.GetAllRooms()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch rooms")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"rooms": rooms,
		"count": len(rooms),
	})
}

// GetRoom retrieves a room by ID
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	room, err := h.roomService.GetRoomByID(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, room)
}

// GetRoomByNumber retrieves a room by room number
func (h *RoomHandler) GetRoomByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Room number is required")
		return
	}

	room, err := h.roomService.GetRoomByNumber(number)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, room)
}

// GetAvailableRooms lists AVAILABLE rooms, optionally filtered by type
func (h *RoomHandler) GetAvailableRooms(c *gin.Context) {
	roomType := models.RoomType(c.Query("type"))

	rooms, err := h.roomService.GetAvailableRooms(roomType)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch rooms")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"rooms": rooms,
		"count": len(rooms),
	})
}

// GetAvailableCount counts AVAILABLE rooms
func (h *RoomHandler) GetAvailableCount(c *gin.Context) {
	count, err := h.roomService.CountAvailableRooms()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to count rooms")
		return
	}

	utils.SuccessResponse(c, gin.H{"count": count})
}

// CreateRoom creates a new room (admin only)
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	room := req.toModel()
	if err := h.roomService.CreateRoom(room, userID.(uint)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Room created successfully",
		"room":    room,
	})
}

// UpdateRoom updates an existing room (admin only)
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	room := req.toModel()
	room.ID = uint(id)

	if err := h.roomService.UpdateRoom(room, userID.(uint)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Room updated successfully",
		"room":    room,
	})
}

// DeleteRoom removes a room (admin only)
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	userID, _ := c.Get("userID")

	if err := h.roomService.DeleteRoom(uint(id), userID.(uint)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.MessageResponse(c, "Room deleted successfully")
}
