package service

import (
	"context"
	"log"
	"time"

	"hospital-room-allocation/internal/models"
)

// WorkerService periodically re-derives room occupancy from the set of
// ACTIVE allocations and repairs drift, e.g. the stale room status a
// partial write failure leaves behind. Allocation records are the
// source of truth; the sweep only ever touches room statuses.
type WorkerService struct {
	roomRepo       RoomStore
	allocationRepo AllocationStore
	interval       time.Duration
}

func NewWorkerService(roomRepo RoomStore, allocationRepo AllocationStore, interval time.Duration) *WorkerService {
	return &WorkerService{
		roomRepo:       roomRepo,
		allocationRepo: allocationRepo,
		interval:       interval,
	}
}

// Start begins the background reconciliation loop
func (w *WorkerService) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("Reconciliation worker started - sweeping every %s", w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Reconciliation worker stopped")
			return
		case <-ticker.C:
			w.reconcile()
		}
	}
}

// reconcile makes every room's status agree with the allocation records:
// a room with an ACTIVE allocation must be OCCUPIED, a room without one
// must not be. Admin-set MAINTENANCE/RESERVED states are left alone.
func (w *WorkerService) reconcile() {
	active, err := w.allocationRepo.GetActiveAllocations()
	if err != nil {
		log.Printf("Error fetching active allocations: %v", err)
		return
	}

	occupied := make(map[uint]bool, len(active))
	for _, allocation := range active {
		occupied[allocation.RoomID] = true
	}

	rooms, err := w.roomRepo.GetAllRooms()
	if err != nil {
		log.Printf("Error fetching rooms: %v", err)
		return
	}

	for _, room := range rooms {
		switch {
		case occupied[room.ID] && room.Status != models.RoomOccupied:
			ok, err := w.roomRepo.SetRoomStatusIf(room.ID, room.Status, models.RoomOccupied)
			if err != nil {
				log.Printf("Error repairing room %d: %v", room.ID, err)
			} else if ok {
				log.Printf("Repaired room %d: %s -> OCCUPIED (active allocation exists)", room.ID, room.Status)
			}
		case !occupied[room.ID] && room.Status == models.RoomOccupied:
			ok, err := w.roomRepo.SetRoomStatusIf(room.ID, models.RoomOccupied, models.RoomAvailable)
			if err != nil {
				log.Printf("Error repairing room %d: %v", room.ID, err)
			} else if ok {
				log.Printf("Repaired room %d: OCCUPIED -> AVAILABLE (no active allocation)", room.ID)
			}
		}
	}
}
