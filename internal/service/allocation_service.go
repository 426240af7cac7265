package service

import (
	"fmt"
	"time"

	"hospital-room-allocation/internal/billing"
	"hospital-room-allocation/internal/engine"
	"hospital-room-allocation/internal/models"
	"hospital-room-allocation/pkg/utils"

	"github.com/shopspring/decimal"
)

// AllocationService is the consistency gateway between the pure engine
// decisions and the non-transactional repositories. Every mutating
// operation holds the patient and room keyed locks across its whole
// read-decide-write sequence, re-reads state fresh under the locks, and
// applies the resulting plan in a fixed order: allocation first, then
// room statuses as compare-and-set updates.
type AllocationService struct {
	patientRepo    PatientStore
	roomRepo       RoomStore
	allocationRepo AllocationStore
	auditRepo      AuditStore
	locks          *utils.KeyedMutex
	now            func() time.Time
}

func NewAllocationService(
	patientRepo PatientStore,
	roomRepo RoomStore,
	allocationRepo AllocationStore,
	auditRepo AuditStore,
) *AllocationService {
	return &AllocationService{
		patientRepo:    patientRepo,
		roomRepo:       roomRepo,
		allocationRepo: allocationRepo,
		auditRepo:      auditRepo,
		locks:          utils.NewKeyedMutex(),
		now:            time.Now,
	}
}

func patientKey(id uint) string { return fmt.Sprintf("patient:%d", id) }
func roomKey(id uint) string    { return fmt.Sprintf("room:%d", id) }

// Allocate creates a new ACTIVE allocation binding a patient to a room.
// A zero allocationDate defaults to now.
func (s *AllocationService) Allocate(patientID, roomID uint, allocationDate time.Time, notes string, userID uint) (*models.Allocation, error) {
	if patientID == 0 {
		return nil, &engine.ValidationError{Field: "patient_id", Reason: "required"}
	}
	if roomID == 0 {
		return nil, &engine.ValidationError{Field: "room_id", Reason: "required"}
	}
	if allocationDate.IsZero() {
		allocationDate = s.now()
	}

	unlock := s.locks.Lock(patientKey(patientID), roomKey(roomID))
	defer unlock()

	patient, err := s.patientRepo.GetPatientByID(patientID)
	if err != nil {
		return nil, err
	}
	room, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	patientActive, err := s.allocationRepo.GetActiveAllocationByPatient(patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check patient allocation: %w", err)
	}
	roomActive, err := s.allocationRepo.GetActiveAllocationByRoom(roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to check room allocation: %w", err)
	}

	plan, err := engine.Allocate(engine.AllocateSnapshot{
		Patient:       patient,
		Room:          room,
		PatientActive: patientActive,
		RoomActive:    roomActive,
	}, allocationDate, notes)
	if err != nil {
		return nil, err
	}

	if err := s.commit(plan, "allocation"); err != nil {
		return nil, err
	}

	userIDPtr := &userID
	details := fmt.Sprintf("Allocated patient %d to room %d (allocation ID: %d)", patientID, roomID, plan.Allocation.ID)
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "allocation_create", details)

	return plan.Allocation, nil
}

// Discharge completes an ACTIVE allocation, fixing the bill from the
// room's current daily rate. A zero dischargeDate defaults to now.
func (s *AllocationService) Discharge(allocationID uint, dischargeDate time.Time, userID uint) (*models.Allocation, error) {
	if dischargeDate.IsZero() {
		dischargeDate = s.now()
	}

	allocation, unlock, err := s.lockAllocation(allocationID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	room, err := s.roomRepo.GetRoomByID(allocation.RoomID)
	if err != nil {
		return nil, err
	}

	plan, err := engine.Discharge(allocation, room, dischargeDate)
	if err != nil {
		return nil, err
	}

	if err := s.commit(plan, "discharge"); err != nil {
		return nil, err
	}

	userIDPtr := &userID
	details := fmt.Sprintf("Discharged allocation %d (patient %d, room %d, total: %s)",
		allocation.ID, allocation.PatientID, allocation.RoomID, plan.Allocation.TotalAmount.StringFixed(2))
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "allocation_discharge", details)

	return plan.Allocation, nil
}

// Cancel voids an ACTIVE allocation without producing a bill
func (s *AllocationService) Cancel(allocationID uint, userID uint) (*models.Allocation, error) {
	allocation, unlock, err := s.lockAllocation(allocationID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	plan, err := engine.Cancel(allocation)
	if err != nil {
		return nil, err
	}

	if err := s.commit(plan, "cancel"); err != nil {
		return nil, err
	}

	userIDPtr := &userID
	details := fmt.Sprintf("Cancelled allocation %d (patient %d, room %d)", allocation.ID, allocation.PatientID, allocation.RoomID)
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "allocation_cancel", details)

	return plan.Allocation, nil
}

// Transfer moves an ACTIVE allocation to a different room, leaving the
// allocation date and billing window untouched
func (s *AllocationService) Transfer(allocationID, newRoomID uint, userID uint) (*models.Allocation, error) {
	if newRoomID == 0 {
		return nil, &engine.ValidationError{Field: "new_room_id", Reason: "required"}
	}

	// Learn which records the transfer touches, then lock them all and
	// re-read fresh under the locks.
	peek, err := s.allocationRepo.GetAllocationByID(allocationID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(
		patientKey(peek.PatientID),
		roomKey(peek.RoomID),
		roomKey(newRoomID),
	)
	defer unlock()

	allocation, err := s.allocationRepo.GetAllocationByID(allocationID)
	if err != nil {
		return nil, err
	}
	newRoom, err := s.roomRepo.GetRoomByID(newRoomID)
	if err != nil {
		return nil, err
	}
	newRoomActive, err := s.allocationRepo.GetActiveAllocationByRoom(newRoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to check room allocation: %w", err)
	}

	plan, err := engine.Transfer(engine.TransferSnapshot{
		Allocation:    allocation,
		NewRoom:       newRoom,
		NewRoomActive: newRoomActive,
	})
	if err != nil {
		return nil, err
	}

	if err := s.commit(plan, "transfer"); err != nil {
		return nil, err
	}

	userIDPtr := &userID
	details := fmt.Sprintf("Transferred allocation %d from room %d to room %d", allocation.ID, peek.RoomID, newRoomID)
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "allocation_transfer", details)

	return plan.Allocation, nil
}

// lockAllocation reads the allocation once to learn its patient and room,
// locks both keys, then re-reads the allocation fresh under the locks
func (s *AllocationService) lockAllocation(allocationID uint) (*models.Allocation, func(), error) {
	peek, err := s.allocationRepo.GetAllocationByID(allocationID)
	if err != nil {
		return nil, nil, err
	}

	unlock := s.locks.Lock(patientKey(peek.PatientID), roomKey(peek.RoomID))

	allocation, err := s.allocationRepo.GetAllocationByID(allocationID)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return allocation, unlock, nil
}

// commit applies a plan: allocation record first, then the room status
// transitions in order, each as a compare-and-set. Once the allocation
// write has succeeded, any later failure is reported as a partial
// failure naming the records already committed; nothing is rolled back.
func (s *AllocationService) commit(plan *engine.Plan, op string) error {
	if err := s.allocationRepo.SaveAllocation(plan.Allocation); err != nil {
		return fmt.Errorf("failed to save allocation: %w", err)
	}
	committed := []string{fmt.Sprintf("allocation:%d", plan.Allocation.ID)}

	for _, change := range plan.RoomChanges {
		ok, err := s.roomRepo.SetRoomStatusIf(change.RoomID, change.From, change.To)
		if err != nil {
			return &engine.PartialFailureError{Op: op, Committed: committed, Err: err}
		}
		if !ok {
			return &engine.PartialFailureError{
				Op:        op,
				Committed: committed,
				Err:       fmt.Errorf("room %d no longer in status %s", change.RoomID, change.From),
			}
		}
		committed = append(committed, fmt.Sprintf("room:%d", change.RoomID))
	}
	return nil
}

// Bill is the charge breakdown for an allocation. Final is true when the
// amount was fixed at discharge; otherwise it is a speculative estimate
// using now as the discharge date.
type Bill struct {
	AllocationID    uint            `json:"allocation_id"`
	PatientID       uint            `json:"patient_id"`
	RoomID          uint            `json:"room_id"`
	AllocationDate  time.Time       `json:"allocation_date"`
	DischargeDate   time.Time       `json:"discharge_date"`
	Days            int             `json:"days"`
	RoomPricePerDay decimal.Decimal `json:"room_price_per_day"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Final           bool            `json:"final"`
}

// GetBill returns the fixed bill of a COMPLETED allocation, or a
// read-only estimate for an ACTIVE one. Cancelled allocations have no
// bill.
func (s *AllocationService) GetBill(allocationID uint) (*Bill, error) {
	allocation, err := s.allocationRepo.GetAllocationByID(allocationID)
	if err != nil {
		return nil, err
	}

	switch allocation.Status {
	case models.AllocationCompleted:
		return &Bill{
			AllocationID:    allocation.ID,
			PatientID:       allocation.PatientID,
			RoomID:          allocation.RoomID,
			AllocationDate:  allocation.AllocationDate,
			DischargeDate:   *allocation.DischargeDate,
			Days:            billing.Days(allocation.AllocationDate, *allocation.DischargeDate),
			RoomPricePerDay: allocation.Room.PricePerDay,
			TotalAmount:     *allocation.TotalAmount,
			Final:           true,
		}, nil
	case models.AllocationActive:
		room, err := s.roomRepo.GetRoomByID(allocation.RoomID)
		if err != nil {
			return nil, err
		}
		asOf := s.now()
		return &Bill{
			AllocationID:    allocation.ID,
			PatientID:       allocation.PatientID,
			RoomID:          allocation.RoomID,
			AllocationDate:  allocation.AllocationDate,
			DischargeDate:   asOf,
			Days:            billing.Days(allocation.AllocationDate, asOf),
			RoomPricePerDay: room.PricePerDay,
			TotalAmount:     billing.Amount(allocation.AllocationDate, asOf, room.PricePerDay),
			Final:           false,
		}, nil
	default:
		return nil, &engine.InvalidStateError{Action: "bill", Status: allocation.Status}
	}
}

// GetAllocationByID retrieves an allocation by ID
func (s *AllocationService) GetAllocationByID(id uint) (*models.Allocation, error) {
	return s.allocationRepo.GetAllocationByID(id)
}

// GetActiveAllocations retrieves all ACTIVE allocations
func (s *AllocationService) GetActiveAllocations() ([]models.Allocation, error) {
	return s.allocationRepo.GetActiveAllocations()
}

// GetActiveAllocationByPatient retrieves the patient's ACTIVE allocation
func (s *AllocationService) GetActiveAllocationByPatient(patientID uint) (*models.Allocation, error) {
	allocation, err := s.allocationRepo.GetActiveAllocationByPatient(patientID)
	if err != nil {
		return nil, err
	}
	if allocation == nil {
		return nil, &engine.NotFoundError{Resource: "active allocation for patient", ID: patientID}
	}
	return allocation, nil
}

// GetActiveAllocationByRoom retrieves the room's ACTIVE allocation
func (s *AllocationService) GetActiveAllocationByRoom(roomID uint) (*models.Allocation, error) {
	allocation, err := s.allocationRepo.GetActiveAllocationByRoom(roomID)
	if err != nil {
		return nil, err
	}
	if allocation == nil {
		return nil, &engine.NotFoundError{Resource: "active allocation for room", ID: roomID}
	}
	return allocation, nil
}

// GetPatientHistory retrieves all allocations ever made for a patient
func (s *AllocationService) GetPatientHistory(patientID uint) ([]models.Allocation, error) {
	if _, err := s.patientRepo.GetPatientByID(patientID); err != nil {
		return nil, err
	}
	return s.allocationRepo.GetAllocationsByPatient(patientID)
}

// GetRoomHistory retrieves all allocations ever made for a room
func (s *AllocationService) GetRoomHistory(roomID uint) ([]models.Allocation, error) {
	if _, err := s.roomRepo.GetRoomByID(roomID); err != nil {
		return nil, err
	}
	return s.allocationRepo.GetAllocationsByRoom(roomID)
}
