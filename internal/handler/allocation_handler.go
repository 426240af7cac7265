package handler

import (
	"net/http"
	"strconv"
	"time"

	"hospital-room-allocation/internal/service"
	"hospital-room-allocation/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AllocationHandler struct {
	allocationService *service.AllocationService
}

func NewAllocationHandler(allocationService *service.AllocationService) *AllocationHandler {
	return &AllocationHandler{
		allocationService: allocationService,
	}
}

type AllocationRequest struct {
	PatientID      uint       `json:"patient_id" binding:"required"`
	RoomID         uint       `json:"room_id" binding:"required"`
	AllocationDate *time.Time `json:"allocation_date"`
	Notes          string     `json:"notes"`
}

type DischargeRequest struct {
	DischargeDate *time.Time `json:"discharge_date"`
}

type TransferRequest struct {
	NewRoomID uint `json:"new_room_id" binding:"required"`
}

// CreateAllocation allocates a patient to a room
func (h *AllocationHandler) CreateAllocation(c *gin.Context) {
	var req AllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	allocationDate := time.Time{}
	if req.AllocationDate != nil {
		allocationDate = *req.AllocationDate
	}

	allocation, err := h.allocationService.Allocate(req.PatientID, req.RoomID, allocationDate, req.Notes, userID.(uint))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, allocation)
}

// Discharge completes an active allocation and fixes the bill
func (h *AllocationHandler) Discharge(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid allocation ID")
		return
	}

	// Body is optional; discharge date defaults to now
	var req DischargeRequest
	_ = c.ShouldBindJSON(&req)

	userID, _ := c.Get("userID")

	dischargeDate := time.Time{}
	if req.DischargeDate != nil {
		dischargeDate = *req.DischargeDate
	}

	allocation, err := h.allocationService.Discharge(uint(id), dischargeDate, userID.(uint))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, allocation)
}

// Cancel voids an active allocation without billing
func (h *AllocationHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid allocation ID")
		return
	}

	userID, _ := c.Get("userID")

	allocation, err := h.allocationService.Cancel(uint(id), userID.(uint))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, allocation)
}

// Transfer moves an active allocation to another room
func (h *AllocationHandler) Transfer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid allocation ID")
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	allocation, err := h.allocationService.Transfer(uint(id), req.NewRoomID, userID.(uint))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, allocation)
}

// GetAllocation retrieves an allocation by ID
func (h *AllocationHandler) GetAllocation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid allocation ID")
		return
	}

	allocation, err := h.allocationService.GetAllocationByID(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, allocation)
}

// GetBill returns the fixed bill of a completed allocation or a
// read-only estimate for an active one
func (h *AllocationHandler) GetBill(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid allocation ID")
		return
	}

	bill, err := h.allocationService.GetBill(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, bill)
}

// GetActiveAllocations lists all active allocations
func (h *AllocationHandler) GetActiveAllocations(c *gin.Context) {
	allocations, err := h.allocationService.GetActiveAllocations()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch allocations")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"allocations": allocations,
		"count":       len(allocations),
	})
}

// GetActiveByPatient retrieves a patient's active allocation
func (h *AllocationHandler) GetActiveByPatient(c *gin.Context) {
	patientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	allocation, err := h.allocationService.GetActiveAllocationByPatient(uint(patientID))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, allocation)
}

// GetPatientHistory lists all allocations ever made for a patient
func (h *AllocationHandler) GetPatientHistory(c *gin.Context) {
	patientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	allocations, err := h.allocationService.GetPatientHistory(uint(patientID))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"allocations": allocations,
		"count":       len(allocations),
	})
}

// GetActiveByRoom retrieves a room's active allocation
func (h *AllocationHandler) GetActiveByRoom(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	allocation, err := h.allocationService.GetActiveAllocationByRoom(uint(roomID))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, allocation)
}

// GetRoomHistory lists all allocations ever made for a room
func (h *AllocationHandler) GetRoomHistory(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	allocations, err := h.allocationService.GetRoomHistory(uint(roomID))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"allocations": allocations,
		"count":       len(allocations),
	})
}
