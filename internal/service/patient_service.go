package service

import (
	"fmt"

	"hospital-room-allocation/internal/engine"
	"hospital-room-allocation/internal/models"
)

type PatientService struct {
	patientRepo    PatientStore
	allocationRepo AllocationStore
	auditRepo      AuditStore
}

func NewPatientService(patientRepo PatientStore, allocationRepo AllocationStore, auditRepo AuditStore) *PatientService {
	return &PatientService{
		patientRepo:    patientRepo,
		allocationRepo: allocationRepo,
		auditRepo:      auditRepo,
	}
}

// GetAllPatients retrieves all patients
func (s *PatientService) GetAllPatients() ([]models.Patient, error) {
	return s.patientRepo.GetAllPatients()
}

// GetPatientByID retrieves a patient by ID
func (s *PatientService) GetPatientByID(id uint) (*models.Patient, error) {
	return s.patientRepo.GetPatientByID(id)
}

// GetPatientByEmail retrieves a patient by email
func (s *PatientService) GetPatientByEmail(email string) (*models.Patient, error) {
	return s.patientRepo.GetPatientByEmail(email)
}

// CreatePatient registers a new patient via intake
func (s *PatientService) CreatePatient(patient *models.Patient, userID uint) error {
	if patient.Status == "" {
		patient.Status = models.PatientActive
	}

	if err := s.patientRepo.CreatePatient(patient); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	userIDPtr := &userID
	details := fmt.Sprintf("Created patient: %s (ID: %d)", patient.Name, patient.ID)
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "patient_create", details)

	return nil
}

// UpdatePatient updates a patient record. Moving the status to
// DISCHARGED or DECEASED is rejected while the patient still holds an
// ACTIVE allocation.
func (s *PatientService) UpdatePatient(patient *models.Patient, userID uint) error {
	existing, err := s.patientRepo.GetPatientByID(patient.ID)
	if err != nil {
		return err
	}

	if patient.Status == "" {
		patient.Status = existing.Status
	}
	if patient.Status != existing.Status && patient.Status != models.PatientActive {
		active, err := s.allocationRepo.GetActiveAllocationByPatient(patient.ID)
		if err != nil {
			return fmt.Errorf("failed to check patient allocation: %w", err)
		}
		if active != nil {
			return &engine.ConflictError{Reason: "patient has an active allocation"}
		}
	}

	if err := s.patientRepo.UpdatePatient(patient); err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	userIDPtr := &userID
	details := fmt.Sprintf("Updated patient: %s (ID: %d)", patient.Name, patient.ID)
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "patient_update", details)

	return nil
}

// DeletePatient removes a patient, rejected while an ACTIVE allocation
// references them
func (s *PatientService) DeletePatient(id uint, userID uint) error {
	patient, err := s.patientRepo.GetPatientByID(id)
	if err != nil {
		return err
	}

	active, err := s.allocationRepo.GetActiveAllocationByPatient(id)
	if err != nil {
		return fmt.Errorf("failed to check patient allocation: %w", err)
	}
	if active != nil {
		return &engine.ConflictError{Reason: "patient has an active allocation"}
	}

	if err := s.patientRepo.DeletePatient(id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	userIDPtr := &userID
	details := fmt.Sprintf("Deleted patient: %s (ID: %d)", patient.Name, id)
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "patient_delete", details)

	return nil
}
