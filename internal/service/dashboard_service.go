package service

import "hospital-room-allocation/internal/models"

type DashboardService struct {
	patientRepo    PatientStore
	roomRepo       RoomStore
	allocationRepo AllocationStore
}

func NewDashboardService(patientRepo PatientStore, roomRepo RoomStore, allocationRepo AllocationStore) *DashboardService {
	return &DashboardService{
		patientRepo:    patientRepo,
		roomRepo:       roomRepo,
		allocationRepo: allocationRepo,
	}
}

// DashboardStats summarizes occupancy for the dashboard
type DashboardStats struct {
	TotalPatients     int64   `json:"total_patients"`
	TotalRooms        int64   `json:"total_rooms"`
	AvailableRooms    int64   `json:"available_rooms"`
	OccupiedRooms     int64   `json:"occupied_rooms"`
	ActiveAllocations int64   `json:"active_allocations"`
	OccupancyRate     float64 `json:"occupancy_rate"`
}

// GetStats collects the dashboard counters
func (s *DashboardService) GetStats() (*DashboardStats, error) {
	totalPatients, err := s.patientRepo.CountPatients()
	if err != nil {
		return nil, err
	}
	totalRooms, err := s.roomRepo.CountRooms()
	if err != nil {
		return nil, err
	}
	availableRooms, err := s.roomRepo.CountRoomsByStatus(models.RoomAvailable)
	if err != nil {
		return nil, err
	}
	occupiedRooms, err := s.roomRepo.CountRoomsByStatus(models.RoomOccupied)
	if err != nil {
		return nil, err
	}
	activeAllocations, err := s.allocationRepo.CountActiveAllocations()
	if err != nil {
		return nil, err
	}

	rate := 0.0
	if totalRooms > 0 {
		rate = float64(occupiedRooms) / float64(totalRooms) * 100
	}

	return &DashboardStats{
		TotalPatients:     totalPatients,
		TotalRooms:        totalRooms,
		AvailableRooms:    availableRooms,
		OccupiedRooms:     occupiedRooms,
		ActiveAllocations: activeAllocations,
		OccupancyRate:     rate,
	}, nil
}
