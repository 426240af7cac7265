package repository

import (
	"errors"

	"hospital-room-allocation/internal/engine"
	"hospital-room-allocation/internal/models"

	"gorm.io/gorm"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// GetAllPatients retrieves all patients ordered by name
func (r *PatientRepository) GetAllPatients() ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.Order("name ASC").Find(&patients).Error
	return patients, err
}

// GetPatientByID retrieves a patient by ID
func (r *PatientRepository) GetPatientByID(id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.First(&patient, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &engine.NotFoundError{Resource: "patient", ID: id}
		}
		return nil, err
	}
	return &patient, nil
}

// GetPatientByEmail retrieves a patient by email address
func (r *PatientRepository) GetPatientByEmail(email string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Where("email = ?", email).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &engine.NotFoundError{Resource: "patient", ID: 0}
		}
		return nil, err
	}
	return &patient, nil
}

// CreatePatient creates a new patient
func (r *PatientRepository) CreatePatient(patient *models.Patient) error {
	return r.db.Create(patient).Error
}

// UpdatePatient updates an existing patient
func (r *PatientRepository) UpdatePatient(patient *models.Patient) error {
	return r.db.Save(patient).Error
}

// DeletePatient removes a patient record
func (r *PatientRepository) DeletePatient(id uint) error {
	return r.db.Delete(&models.Patient{}, id).Error
}

// CountPatients counts all patient records
func (r *PatientRepository) CountPatients() (int64, error) {
	var count int64
	err := r.db.Model(&models.Patient{}).Count(&count).Error
	return count, err
}
