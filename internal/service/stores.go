package service

import "hospital-room-allocation/internal/models"

// Store interfaces abstract the repository collaborator so services can
// be exercised against mocks. The gorm repositories in
// internal/repository satisfy them.

type PatientStore interface {
	GetAllPatients() ([]models.Patient, error)
	GetPatientByID(id uint) (*models.Patient, error)
	GetPatientByEmail(email string) (*models.Patient, error)
	CreatePatient(patient *models.Patient) error
	UpdatePatient(patient *models.Patient) error
	DeletePatient(id uint) error
	CountPatients() (int64, error)
}

type RoomStore interface {
	GetAllRooms() ([]models.Room, error)
	GetRoomByID(id uint) (*models.Room, error)
	GetRoomByNumber(roomNumber string) (*models.Room, error)
	GetAvailableRooms(roomType models.RoomType) ([]models.Room, error)
	CreateRoom(room *models.Room) error
	UpdateRoom(room *models.Room) error
	DeleteRoom(id uint) error
	SetRoomStatusIf(id uint, from, to models.RoomStatus) (bool, error)
	CountRooms() (int64, error)
	CountRoomsByStatus(status models.RoomStatus) (int64, error)
}

type AllocationStore interface {
	GetAllocationByID(id uint) (*models.Allocation, error)
	GetActiveAllocations() ([]models.Allocation, error)
	GetActiveAllocationByPatient(patientID uint) (*models.Allocation, error)
	GetActiveAllocationByRoom(roomID uint) (*models.Allocation, error)
	GetAllocationsByPatient(patientID uint) ([]models.Allocation, error)
	GetAllocationsByRoom(roomID uint) ([]models.Allocation, error)
	SaveAllocation(allocation *models.Allocation) error
	CountActiveAllocations() (int64, error)
}

type AuditStore interface {
	CreateAuditLog(userID *uint, action string, details string) error
}
