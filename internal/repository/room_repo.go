package repository

import (
	"errors"

	"hospital-room-allocation/internal/engine"
	"hospital-room-allocation/internal/models"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepo(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// GetAllRooms retrieves all rooms ordered by room number
func (r *RoomRepository) GetAllRooms() ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

// GetRoomByID retrieves a room by ID
func (r *RoomRepository) GetRoomByID(id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &engine.NotFoundError{Resource: "room", ID: id}
		}
		return nil, err
	}
	return &room, nil
}

// GetRoomByNumber retrieves a room by its unique room number
func (r *RoomRepository) GetRoomByNumber(roomNumber string) (*models.Room, error) {
	var room models.Room
	err := r.db.Where("room_number = ?", roomNumber).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &engine.NotFoundError{Resource: "room", ID: 0}
		}
		return nil, err
	}
	return &room, nil
}

// GetAvailableRooms retrieves all rooms with AVAILABLE status, optionally
// filtered by room type
func (r *RoomRepository) GetAvailableRooms(roomType models.RoomType) ([]models.Room, error) {
	var rooms []models.Room
	query := r.db.Where("status = ?", models.RoomAvailable)
	if roomType != "" {
		query = query.Where("room_type = ?", roomType)
	}
	err := query.Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

// CreateRoom creates a new room
func (r *RoomRepository) CreateRoom(room *models.Room) error {
	return r.db.Create(room).Error
}

// UpdateRoom updates an existing room
func (r *RoomRepository) UpdateRoom(room *models.Room) error {
	return r.db.Save(room).Error
}

// DeleteRoom removes a room record
func (r *RoomRepository) DeleteRoom(id uint) error {
	return r.db.Delete(&models.Room{}, id).Error
}

// SetRoomStatusIf transitions a room's status only if it currently holds
// the expected value (compare-and-set). Returns false when the room was
// not in the expected status, so racing writers lose cleanly.
func (r *RoomRepository) SetRoomStatusIf(id uint, from, to models.RoomStatus) (bool, error) {
	result := r.db.Model(&models.Room{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// CountRooms counts all room records
func (r *RoomRepository) CountRooms() (int64, error) {
	var count int64
	err := r.db.Model(&models.Room{}).Count(&count).Error
	return count, err
}

// CountRoomsByStatus counts rooms in a given status
func (r *RoomRepository) CountRoomsByStatus(status models.RoomStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Room{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
