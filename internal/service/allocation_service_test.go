package service

import (
	"sync"
	"testing"
	"time"

	"hospital-room-allocation/internal/engine"
	"hospital-room-allocation/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestService() (*AllocationService, *memStore) {
	store := newMemStore()
	store.addPatient(models.Patient{ID: 7, Name: "Jordan Reyes", Email: "jordan@example.com", Status: models.PatientActive})
	store.addPatient(models.Patient{ID: 8, Name: "Sam Okafor", Email: "sam@example.com", Status: models.PatientActive})
	store.addRoom(models.Room{ID: 3, RoomNumber: "301", Status: models.RoomAvailable, PricePerDay: decimal.NewFromInt(1000)})
	store.addRoom(models.Room{ID: 5, RoomNumber: "501", Status: models.RoomAvailable, PricePerDay: decimal.NewFromInt(1500)})
	store.addRoom(models.Room{ID: 9, RoomNumber: "901", Status: models.RoomAvailable, PricePerDay: decimal.NewFromInt(2000)})

	svc := NewAllocationService(store, store, store, store)
	return svc, store
}

func TestAllocateSucceedsAndOccupiesRoom(t *testing.T) {
	svc, store := newTestService()

	allocation, err := svc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	assert.Equal(t, models.AllocationActive, allocation.Status)
	assert.Equal(t, uint(3), allocation.RoomID)
	assert.NotZero(t, allocation.ID)
	assert.Equal(t, models.RoomOccupied, store.room(3).Status)
	assert.Contains(t, store.auditActions, "allocation_create")
}

func TestAllocateDefaultsDateToNow(t *testing.T) {
	svc, _ := newTestService()
	now := date("2024-06-01")
	svc.now = func() time.Time { return now }

	allocation, err := svc.Allocate(7, 3, time.Time{}, "", 1)
	require.NoError(t, err)
	assert.Equal(t, now, allocation.AllocationDate)
}

func TestAllocateRejectsSecondAllocationForPatient(t *testing.T) {
	svc, store := newTestService()

	_, err := svc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	// Different room, same patient
	_, err = svc.Allocate(7, 5, date("2024-01-02"), "", 1)
	var conflict *engine.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "patient already allocated", conflict.Reason)
	assert.Equal(t, models.RoomAvailable, store.room(5).Status)
}

func TestAllocateRejectsOccupiedRoom(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	_, err = svc.Allocate(8, 3, date("2024-01-02"), "", 1)
	var conflict *engine.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "room not available", conflict.Reason)
}

func TestAllocateUnknownIDs(t *testing.T) {
	svc, _ := newTestService()

	var notFound *engine.NotFoundError

	_, err := svc.Allocate(999, 3, date("2024-01-01"), "", 1)
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "patient", notFound.Resource)

	_, err = svc.Allocate(7, 999, date("2024-01-01"), "", 1)
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "room", notFound.Resource)
}

func TestDischargeBillsAndFreesRoom(t *testing.T) {
	svc, store := newTestService()

	allocation, err := svc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	discharged, err := svc.Discharge(allocation.ID, date("2024-01-04"), 1)
	require.NoError(t, err)

	assert.Equal(t, models.AllocationCompleted, discharged.Status)
	require.NotNil(t, discharged.TotalAmount)
	assert.True(t, discharged.TotalAmount.Equal(decimal.NewFromInt(3000)), "got %s", discharged.TotalAmount)
	assert.Equal(t, models.RoomAvailable, store.room(3).Status)
}

func TestDischargeTwiceRejectedWithoutStateChange(t *testing.T) {
	svc, store := newTestService()

	allocation, err := svc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	_, err = svc.Discharge(allocation.ID, date("2024-01-04"), 1)
	require.NoError(t, err)
	after := store.allocation(allocation.ID)

	_, err = svc.Discharge(allocation.ID, date("2024-01-05"), 1)
	var invalidState *engine.InvalidStateError
	require.ErrorAs(t, err, &invalidState)
	assert.Equal(t, models.AllocationCompleted, invalidState.Status)

	// Second call left the record exactly as the first write did
	assert.Equal(t, after, store.allocation(allocation.ID))
}

func TestCancelFreesRoomWithoutBill(t *testing.T) {
	svc, store := newTestService()

	allocation, err := svc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(allocation.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, models.AllocationCancelled, cancelled.Status)
	assert.Nil(t, cancelled.TotalAmount)
	assert.Nil(t, cancelled.DischargeDate)
	assert.Equal(t, models.RoomAvailable, store.room(3).Status)
}

func TestTransferKeepsBillingWindow(t *testing.T) {
	svc, store := newTestService()

	allocation, err := svc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	transferred, err := svc.Transfer(allocation.ID, 9, 1)
	require.NoError(t, err)

	assert.Equal(t, uint(9), transferred.RoomID)
	assert.Equal(t, date("2024-01-01"), transferred.AllocationDate)
	assert.Equal(t, models.RoomAvailable, store.room(3).Status)
	assert.Equal(t, models.RoomOccupied, store.room(9).Status)

	// A later discharge bills from the original allocation date at the
	// new room's rate
	discharged, err := svc.Discharge(allocation.ID, date("2024-01-04"), 1)
	require.NoError(t, err)
	assert.True(t, discharged.TotalAmount.Equal(decimal.NewFromInt(6000)), "got %s", discharged.TotalAmount)
}

func TestTransferRejectsSameRoom(t *testing.T) {
	svc, _ := newTestService()

	allocation, err := svc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	_, err = svc.Transfer(allocation.ID, 3, 1)
	var validation *engine.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestTransferRejectsOccupiedTarget(t *testing.T) {
	svc, _ := newTestService()

	a1, err := svc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)
	_, err = svc.Allocate(8, 9, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	_, err = svc.Transfer(a1.ID, 9, 1)
	var conflict *engine.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "target room not available", conflict.Reason)
}

func TestAllocatePartialFailureNamesCommittedRecords(t *testing.T) {
	svc, store := newTestService()
	store.failRoomWrites = true

	_, err := svc.Allocate(7, 3, date("2024-01-01"), "", 1)
	var partial *engine.PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "allocation", partial.Op)
	require.Len(t, partial.Committed, 1)
	assert.Contains(t, partial.Committed[0], "allocation:")

	// The allocation write did land; the reconciliation sweep will
	// repair the room status later
	active, err2 := store.GetActiveAllocationByPatient(7)
	require.NoError(t, err2)
	assert.NotNil(t, active)
	assert.Equal(t, models.RoomAvailable, store.room(3).Status)
}

func TestGetBillEstimateForActiveAllocation(t *testing.T) {
	svc, _ := newTestService()
	svc.now = func() time.Time { return date("2024-01-06") }

	allocation, err := svc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	bill, err := svc.GetBill(allocation.ID)
	require.NoError(t, err)

	assert.False(t, bill.Final)
	assert.Equal(t, 5, bill.Days)
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(5000)), "got %s", bill.TotalAmount)

	// Estimating never mutates state
	fresh, err := svc.GetAllocationByID(allocation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AllocationActive, fresh.Status)
	assert.Nil(t, fresh.TotalAmount)
}

func TestGetBillRejectsCancelledAllocation(t *testing.T) {
	svc, _ := newTestService()

	allocation, err := svc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)
	_, err = svc.Cancel(allocation.ID, 1)
	require.NoError(t, err)

	_, err = svc.GetBill(allocation.ID)
	var invalidState *engine.InvalidStateError
	require.ErrorAs(t, err, &invalidState)
}

func TestConcurrentAllocationsSameRoomSingleWinner(t *testing.T) {
	for i := 0; i < 50; i++ {
		svc, store := newTestService()

		var wg sync.WaitGroup
		errs := make([]error, 2)

		wg.Add(2)
		go func() {
			defer wg.Done()
			_, errs[0] = svc.Allocate(7, 3, date("2024-01-01"), "", 1)
		}()
		go func() {
			defer wg.Done()
			_, errs[1] = svc.Allocate(8, 3, date("2024-01-01"), "", 1)
		}()
		wg.Wait()

		var conflicts, successes int
		for _, err := range errs {
			if err == nil {
				successes++
				continue
			}
			var conflict *engine.ConflictError
			require.ErrorAs(t, err, &conflict)
			conflicts++
		}
		assert.Equal(t, 1, successes)
		assert.Equal(t, 1, conflicts)

		count, err := store.CountActiveAllocations()
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.Equal(t, models.RoomOccupied, store.room(3).Status)
	}
}

func TestConcurrentAllocationsSamePatientSingleWinner(t *testing.T) {
	for i := 0; i < 50; i++ {
		svc, store := newTestService()

		var wg sync.WaitGroup
		errs := make([]error, 2)

		wg.Add(2)
		go func() {
			defer wg.Done()
			_, errs[0] = svc.Allocate(7, 3, date("2024-01-01"), "", 1)
		}()
		go func() {
			defer wg.Done()
			_, errs[1] = svc.Allocate(7, 5, date("2024-01-01"), "", 1)
		}()
		wg.Wait()

		var conflicts, successes int
		for _, err := range errs {
			if err == nil {
				successes++
				continue
			}
			var conflict *engine.ConflictError
			require.ErrorAs(t, err, &conflict)
			conflicts++
		}
		assert.Equal(t, 1, successes)
		assert.Equal(t, 1, conflicts)

		count, err := store.CountActiveAllocations()
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	}
}
