package service

import (
	"testing"

	"hospital-room-allocation/internal/engine"
	"hospital-room-allocation/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoomFixture() (*RoomService, *AllocationService, *memStore) {
	store := newMemStore()
	store.addPatient(models.Patient{ID: 7, Name: "Jordan Reyes", Email: "jordan@example.com", Status: models.PatientActive})
	store.addRoom(models.Room{ID: 3, RoomNumber: "301", Status: models.RoomAvailable, PricePerDay: decimal.NewFromInt(1000)})

	return NewRoomService(store, store, store), NewAllocationService(store, store, store, store), store
}

func TestCreateRoomRejectsNegativePrice(t *testing.T) {
	svc, _, _ := newRoomFixture()

	room := &models.Room{ID: 4, RoomNumber: "401", PricePerDay: decimal.NewFromInt(-1)}
	err := svc.CreateRoom(room, 1)

	var validation *engine.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestCreateRoomRejectsHandSetOccupied(t *testing.T) {
	svc, _, _ := newRoomFixture()

	room := &models.Room{ID: 4, RoomNumber: "401", Status: models.RoomOccupied, PricePerDay: decimal.NewFromInt(100)}
	err := svc.CreateRoom(room, 1)

	var validation *engine.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestUpdateRoomStatusPinnedWhileAllocated(t *testing.T) {
	roomSvc, allocSvc, _ := newRoomFixture()

	_, err := allocSvc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	update := &models.Room{ID: 3, RoomNumber: "301", Status: models.RoomMaintenance, PricePerDay: decimal.NewFromInt(1000)}
	err = roomSvc.UpdateRoom(update, 1)

	var conflict *engine.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestUpdateRoomPriceAllowedWhileAllocated(t *testing.T) {
	roomSvc, allocSvc, store := newRoomFixture()

	_, err := allocSvc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	// Price edit leaves the status alone, so it passes
	update := &models.Room{ID: 3, RoomNumber: "301", Status: models.RoomOccupied, PricePerDay: decimal.NewFromInt(1200)}
	err = roomSvc.UpdateRoom(update, 1)
	require.NoError(t, err)
	assert.True(t, store.room(3).PricePerDay.Equal(decimal.NewFromInt(1200)))
}

func TestDeleteRoomRejectedWhileAllocated(t *testing.T) {
	roomSvc, allocSvc, _ := newRoomFixture()

	_, err := allocSvc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	err = roomSvc.DeleteRoom(3, 1)
	var conflict *engine.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestDeleteRoomAllowedAfterDischarge(t *testing.T) {
	roomSvc, allocSvc, store := newRoomFixture()

	allocation, err := allocSvc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)
	_, err = allocSvc.Discharge(allocation.ID, date("2024-01-02"), 1)
	require.NoError(t, err)

	require.NoError(t, roomSvc.DeleteRoom(3, 1))

	count, err := store.CountRooms()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
