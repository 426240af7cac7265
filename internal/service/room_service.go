package service

import (
	"fmt"

	"hospital-room-allocation/internal/engine"
	"hospital-room-allocation/internal/models"
)

type RoomService struct {
	roomRepo       RoomStore
	allocationRepo AllocationStore
	auditRepo      AuditStore
}

func NewRoomService(roomRepo RoomStore, allocationRepo AllocationStore, auditRepo AuditStore) *RoomService {
	return &RoomService{
		roomRepo:       roomRepo,
		allocationRepo: allocationRepo,
		auditRepo:      auditRepo,
	}
}

// GetAllRooms retrieves all rooms
func (s *RoomService) GetAllRooms() ([]models.Room, error) {
	return s.roomRepo.GetAllRooms()
}

// GetRoomByID retrieves a room by ID
func (s *RoomService) GetRoomByID(id uint) (*models.Room, error) {
	return s.roomRepo.GetRoomByID(id)
}

// GetRoomByNumber retrieves a room by room number
func (s *RoomService) GetRoomByNumber(roomNumber string) (*models.Room, error) {
	return s.roomRepo.GetRoomByNumber(roomNumber)
}

// GetAvailableRooms retrieves rooms with AVAILABLE status, optionally
// filtered by type
func (s *RoomService) GetAvailableRooms(roomType models.RoomType) ([]models.Room, error) {
	return s.roomRepo.GetAvailableRooms(roomType)
}

// CountAvailableRooms counts rooms with AVAILABLE status
func (s *RoomService) CountAvailableRooms() (int64, error) {
	return s.roomRepo.CountRoomsByStatus(models.RoomAvailable)
}

func validateRoom(room *models.Room) error {
	if room.RoomNumber == "" {
		return &engine.ValidationError{Field: "room_number", Reason: "required"}
	}
	if room.PricePerDay.IsNegative() {
		return &engine.ValidationError{Field: "price_per_day", Reason: "must not be negative"}
	}
	return nil
}

// CreateRoom creates a new room (admin only). Rooms are never created
// directly in OCCUPIED status; occupancy comes from allocations.
func (s *RoomService) CreateRoom(room *models.Room, userID uint) error {
	if err := validateRoom(room); err != nil {
		return err
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if room.Status == models.RoomOccupied {
		return &engine.ValidationError{Field: "status", Reason: "OCCUPIED is derived from allocations and cannot be set"}
	}

	if err := s.roomRepo.CreateRoom(room); err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	userIDPtr := &userID
	details := fmt.Sprintf("Created room: %s (ID: %d, type: %s)", room.RoomNumber, room.ID, room.RoomType)
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "room_create", details)

	return nil
}

// UpdateRoom updates an existing room (admin only). While an ACTIVE
// allocation references the room its status is pinned to OCCUPIED and
// cannot be forced elsewhere.
func (s *RoomService) UpdateRoom(room *models.Room, userID uint) error {
	existing, err := s.roomRepo.GetRoomByID(room.ID)
	if err != nil {
		return err
	}
	if err := validateRoom(room); err != nil {
		return err
	}

	if room.Status == "" {
		room.Status = existing.Status
	}
	if room.Status != existing.Status {
		active, err := s.allocationRepo.GetActiveAllocationByRoom(room.ID)
		if err != nil {
			return fmt.Errorf("failed to check room allocation: %w", err)
		}
		if active != nil {
			return &engine.ConflictError{Reason: "room has an active allocation"}
		}
		if room.Status == models.RoomOccupied {
			return &engine.ValidationError{Field: "status", Reason: "OCCUPIED is derived from allocations and cannot be set"}
		}
	}

	if err := s.roomRepo.UpdateRoom(room); err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	userIDPtr := &userID
	details := fmt.Sprintf("Updated room: %s (ID: %d)", room.RoomNumber, room.ID)
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "room_update", details)

	return nil
}

// DeleteRoom removes a room (admin only), rejected while an ACTIVE
// allocation references it
func (s *RoomService) DeleteRoom(id uint, userID uint) error {
	room, err := s.roomRepo.GetRoomByID(id)
	if err != nil {
		return err
	}

	active, err := s.allocationRepo.GetActiveAllocationByRoom(id)
	if err != nil {
		return fmt.Errorf("failed to check room allocation: %w", err)
	}
	if active != nil {
		return &engine.ConflictError{Reason: "room has an active allocation"}
	}

	if err := s.roomRepo.DeleteRoom(id); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	userIDPtr := &userID
	details := fmt.Sprintf("Deleted room: %s (ID: %d)", room.RoomNumber, id)
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "room_delete", details)

	return nil
}
