package repository

import (
	"errors"

	"hospital-room-allocation/internal/engine"
	"hospital-room-allocation/internal/models"

	"gorm.io/gorm"
)

type AllocationRepository struct {
	db *gorm.DB
}

func NewAllocationRepo(db *gorm.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

// GetAllocationByID retrieves an allocation by ID with patient and room preloaded
func (r *AllocationRepository) GetAllocationByID(id uint) (*models.Allocation, error) {
	var allocation models.Allocation
	err := r.db.Preload("Patient").Preload("Room").First(&allocation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &engine.NotFoundError{Resource: "allocation", ID: id}
		}
		return nil, err
	}
	return &allocation, nil
}

// GetActiveAllocations retrieves all ACTIVE allocations
func (r *AllocationRepository) GetActiveAllocations() ([]models.Allocation, error) {
	var allocations []models.Allocation
	err := r.db.Where("status = ?", models.AllocationActive).
		Preload("Patient").Preload("Room").
		Order("allocation_date ASC").
		Find(&allocations).Error
	return allocations, err
}

// GetActiveAllocationByPatient retrieves the patient's ACTIVE allocation,
// or nil when the patient has none
func (r *AllocationRepository) GetActiveAllocationByPatient(patientID uint) (*models.Allocation, error) {
	var allocation models.Allocation
	err := r.db.Where("patient_id = ? AND status = ?", patientID, models.AllocationActive).
		First(&allocation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &allocation, nil
}

// GetActiveAllocationByRoom retrieves the room's ACTIVE allocation,
// or nil when the room has none
func (r *AllocationRepository) GetActiveAllocationByRoom(roomID uint) (*models.Allocation, error) {
	var allocation models.Allocation
	err := r.db.Where("room_id = ? AND status = ?", roomID, models.AllocationActive).
		First(&allocation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &allocation, nil
}

// GetAllocationsByPatient retrieves a patient's full allocation history
func (r *AllocationRepository) GetAllocationsByPatient(patientID uint) ([]models.Allocation, error) {
	var allocations []models.Allocation
	err := r.db.Where("patient_id = ?", patientID).
		Preload("Room").
		Order("allocation_date DESC").
		Find(&allocations).Error
	return allocations, err
}

// GetAllocationsByRoom retrieves a room's full allocation history
func (r *AllocationRepository) GetAllocationsByRoom(roomID uint) ([]models.Allocation, error) {
	var allocations []models.Allocation
	err := r.db.Where("room_id = ?", roomID).
		Preload("Patient").
		Order("allocation_date DESC").
		Find(&allocations).Error
	return allocations, err
}

// SaveAllocation inserts or updates an allocation by ID
func (r *AllocationRepository) SaveAllocation(allocation *models.Allocation) error {
	return r.db.Save(allocation).Error
}

// CountActiveAllocations counts allocations in ACTIVE status
func (r *AllocationRepository) CountActiveAllocations() (int64, error) {
	var count int64
	err := r.db.Model(&models.Allocation{}).
		Where("status = ?", models.AllocationActive).
		Count(&count).Error
	return count, err
}
