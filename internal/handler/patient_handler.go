package handler

import (
	"net/http"
	"strconv"
	"time"

	"hospital-room-allocation/internal/models"
	"hospital-room-allocation/internal/service"
	"hospital-room-allocation/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	patientService *service.PatientService
}

func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
	}
}

type PatientRequest struct {
	Name        string     `json:"name" binding:"required"`
	Email       string     `json:"email" binding:"required,email"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `json:"gender"`
	BloodGroup  string     `json:"blood_group"`
	Status      string     `json:"status" binding:"omitempty,oneof=ACTIVE DISCHARGED DECEASED"`
}

func (r *PatientRequest) toModel() *models.Patient {
	return &models.Patient{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		DateOfBirth: r.DateOfBirth,
		Gender:      r.Gender,
		BloodGroup:  r.BloodGroup,
		Status:      models.PatientStatus(r.Status),
	}
}

// GetAllPatients lists all patients
func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	patients, err := h.patientService.GetAllPatients()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch patients")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"patients": patients,
		"count":    len(patients),
	})
}

// GetPatient retrieves a patient by ID
func (h *PatientHandler) GetPatient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	patient, err := h.patientService.GetPatientByID(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, patient)
}

// GetPatientByEmail retrieves a patient by email address
func (h *PatientHandler) GetPatientByEmail(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Email is required")
		return
	}

	patient, err := h.patientService.GetPatientByEmail(email)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, patient)
}

// CreatePatient registers a new patient
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	patient := req.toModel()
	if err := h.patientService.CreatePatient(patient, userID.(uint)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Patient created successfully",
		"patient": patient,
	})
}

// UpdatePatient updates an existing patient
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	patient := req.toModel()
	patient.ID = uint(id)

	if err := h.patientService.UpdatePatient(patient, userID.(uint)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Patient updated successfully",
		"patient": patient,
	})
}

// DeletePatient removes a patient record
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	userID, _ := c.Get("userID")

	if err := h.patientService.DeletePatient(uint(id), userID.(uint)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.MessageResponse(c, "Patient deleted successfully")
}
