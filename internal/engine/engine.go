// Package engine holds the pure decision logic of the allocation
// lifecycle. Each operation takes a fresh snapshot of the records it
// touches and either returns a Plan (the writes to apply, in order) or
// a typed error. Nothing in this package reads or writes storage.
package engine

import (
	"time"

	"hospital-room-allocation/internal/billing"
	"hospital-room-allocation/internal/models"
)

// RoomStatusChange is a single conditional room status transition.
// The write must only succeed if the room is still in From.
type RoomStatusChange struct {
	RoomID uint
	From   models.RoomStatus
	To     models.RoomStatus
}

// Plan is the ordered set of writes implied by a legal operation.
// The allocation record is always written first, then the room changes
// in slice order, so a partial failure leaves "allocation says X but
// room status stale" rather than the reverse.
type Plan struct {
	Allocation  *models.Allocation
	RoomChanges []RoomStatusChange
}

// AllocateSnapshot is the fresh state Allocate decides against.
// PatientActive/RoomActive are the existing ACTIVE allocations for the
// patient and room, nil when none exist.
type AllocateSnapshot struct {
	Patient       *models.Patient
	Room          *models.Room
	PatientActive *models.Allocation
	RoomActive    *models.Allocation
}

// Allocate decides whether a new ACTIVE allocation may be created for
// the snapshot's patient and room. allocationDate must already be
// defaulted to "now" by the caller when the request omitted it.
func Allocate(snap AllocateSnapshot, allocationDate time.Time, notes string) (*Plan, error) {
	if snap.PatientActive != nil {
		return nil, &ConflictError{Reason: "patient already allocated"}
	}
	if snap.RoomActive != nil || snap.Room.Status != models.RoomAvailable {
		return nil, &ConflictError{Reason: "room not available"}
	}

	allocation := &models.Allocation{
		PatientID:      snap.Patient.ID,
		RoomID:         snap.Room.ID,
		AllocationDate: allocationDate,
		Status:         models.AllocationActive,
		Notes:          notes,
	}

	return &Plan{
		Allocation: allocation,
		RoomChanges: []RoomStatusChange{
			{RoomID: snap.Room.ID, From: models.RoomAvailable, To: models.RoomOccupied},
		},
	}, nil
}

// Discharge decides the ACTIVE -> COMPLETED transition. The bill is
// computed from the full stay window and the room's rate at discharge
// time; transfers during the stay do not pro-rate it.
func Discharge(allocation *models.Allocation, room *models.Room, dischargeDate time.Time) (*Plan, error) {
	if !allocation.IsActive() {
		return nil, &InvalidStateError{Action: "discharge", Status: allocation.Status}
	}
	if dischargeDate.Before(allocation.AllocationDate) {
		return nil, &ValidationError{Field: "discharge_date", Reason: "must not be before allocation date"}
	}

	amount := billing.Amount(allocation.AllocationDate, dischargeDate, room.PricePerDay)

	updated := *allocation
	updated.DischargeDate = &dischargeDate
	updated.TotalAmount = &amount
	updated.Status = models.AllocationCompleted

	return &Plan{
		Allocation: &updated,
		RoomChanges: []RoomStatusChange{
			{RoomID: allocation.RoomID, From: models.RoomOccupied, To: models.RoomAvailable},
		},
	}, nil
}

// Cancel decides the ACTIVE -> CANCELLED transition. No bill is
// produced and the discharge date stays unset.
func Cancel(allocation *models.Allocation) (*Plan, error) {
	if !allocation.IsActive() {
		return nil, &InvalidStateError{Action: "cancel", Status: allocation.Status}
	}

	updated := *allocation
	updated.Status = models.AllocationCancelled

	return &Plan{
		Allocation: &updated,
		RoomChanges: []RoomStatusChange{
			{RoomID: allocation.RoomID, From: models.RoomOccupied, To: models.RoomAvailable},
		},
	}, nil
}

// TransferSnapshot is the fresh state Transfer decides against.
// NewRoomActive is the existing ACTIVE allocation on the target room,
// nil when none exists.
type TransferSnapshot struct {
	Allocation    *models.Allocation
	NewRoom       *models.Room
	NewRoomActive *models.Allocation
}

// Transfer moves an ACTIVE allocation to a new room. The allocation
// keeps its identity, status and allocation date; only the room
// reference changes, so the billing window spans the whole stay.
func Transfer(snap TransferSnapshot) (*Plan, error) {
	if !snap.Allocation.IsActive() {
		return nil, &InvalidStateError{Action: "transfer", Status: snap.Allocation.Status}
	}
	if snap.NewRoom.ID == snap.Allocation.RoomID {
		return nil, &ValidationError{Field: "new_room_id", Reason: "must differ from current room"}
	}
	if snap.NewRoomActive != nil || snap.NewRoom.Status != models.RoomAvailable {
		return nil, &ConflictError{Reason: "target room not available"}
	}

	oldRoomID := snap.Allocation.RoomID
	updated := *snap.Allocation
	updated.RoomID = snap.NewRoom.ID

	return &Plan{
		Allocation: &updated,
		RoomChanges: []RoomStatusChange{
			{RoomID: oldRoomID, From: models.RoomOccupied, To: models.RoomAvailable},
			{RoomID: snap.NewRoom.ID, From: models.RoomAvailable, To: models.RoomOccupied},
		},
	}, nil
}
