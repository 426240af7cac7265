package service

import (
	"testing"

	"hospital-room-allocation/internal/engine"
	"hospital-room-allocation/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPatientFixture() (*PatientService, *AllocationService, *memStore) {
	store := newMemStore()
	store.addPatient(models.Patient{ID: 7, Name: "Jordan Reyes", Email: "jordan@example.com", Status: models.PatientActive})
	store.addRoom(models.Room{ID: 3, RoomNumber: "301", Status: models.RoomAvailable, PricePerDay: decimal.NewFromInt(1000)})

	return NewPatientService(store, store, store), NewAllocationService(store, store, store, store), store
}

func TestUpdatePatientStatusRejectedWhileAllocated(t *testing.T) {
	patientSvc, allocSvc, _ := newPatientFixture()

	_, err := allocSvc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	update := &models.Patient{ID: 7, Name: "Jordan Reyes", Email: "jordan@example.com", Status: models.PatientDischarged}
	err = patientSvc.UpdatePatient(update, 1)

	var conflict *engine.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestUpdatePatientStatusAllowedAfterDischarge(t *testing.T) {
	patientSvc, allocSvc, store := newPatientFixture()

	allocation, err := allocSvc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)
	_, err = allocSvc.Discharge(allocation.ID, date("2024-01-02"), 1)
	require.NoError(t, err)

	update := &models.Patient{ID: 7, Name: "Jordan Reyes", Email: "jordan@example.com", Status: models.PatientDischarged}
	require.NoError(t, patientSvc.UpdatePatient(update, 1))

	got, err := store.GetPatientByID(7)
	require.NoError(t, err)
	assert.Equal(t, models.PatientDischarged, got.Status)
}

func TestUpdatePatientDemographicsAllowedWhileAllocated(t *testing.T) {
	patientSvc, allocSvc, store := newPatientFixture()

	_, err := allocSvc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	// Demographic edits keep the status; only terminal status moves are gated
	update := &models.Patient{ID: 7, Name: "Jordan A. Reyes", Email: "jordan@example.com"}
	require.NoError(t, patientSvc.UpdatePatient(update, 1))

	got, err := store.GetPatientByID(7)
	require.NoError(t, err)
	assert.Equal(t, "Jordan A. Reyes", got.Name)
	assert.Equal(t, models.PatientActive, got.Status)
}

func TestDeletePatientRejectedWhileAllocated(t *testing.T) {
	patientSvc, allocSvc, _ := newPatientFixture()

	_, err := allocSvc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)

	err = patientSvc.DeletePatient(7, 1)
	var conflict *engine.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestDeletePatientAllowedAfterCancel(t *testing.T) {
	patientSvc, allocSvc, store := newPatientFixture()

	allocation, err := allocSvc.Allocate(7, 3, date("2024-01-01"), "", 1)
	require.NoError(t, err)
	_, err = allocSvc.Cancel(allocation.ID, 1)
	require.NoError(t, err)

	require.NoError(t, patientSvc.DeletePatient(7, 1))

	_, err = store.GetPatientByID(7)
	var notFound *engine.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCreatePatientDefaultsToActive(t *testing.T) {
	patientSvc, _, store := newPatientFixture()

	patient := &models.Patient{ID: 9, Name: "Sam Okafor", Email: "sam@example.com"}
	require.NoError(t, patientSvc.CreatePatient(patient, 1))

	got, err := store.GetPatientByID(9)
	require.NoError(t, err)
	assert.Equal(t, models.PatientActive, got.Status)
	assert.Contains(t, store.auditActions, "patient_create")
}
