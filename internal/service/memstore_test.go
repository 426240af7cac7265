package service

import (
	"fmt"
	"sync"

	"hospital-room-allocation/internal/engine"
	"hospital-room-allocation/internal/models"
)

// memStore is an in-memory implementation of the store interfaces,
// backing the gateway tests. SetRoomStatusIf is a real compare-and-set
// under the store mutex, so racing callers behave like they would
// against the database.
type memStore struct {
	mu           sync.Mutex
	patients     map[uint]models.Patient
	rooms        map[uint]models.Room
	allocations  map[uint]models.Allocation
	nextAllocID  uint
	auditActions []string

	// failRoomWrites makes every room status write fail, to exercise
	// partial-failure reporting
	failRoomWrites bool
}

func newMemStore() *memStore {
	return &memStore{
		patients:    map[uint]models.Patient{},
		rooms:       map[uint]models.Room{},
		allocations: map[uint]models.Allocation{},
		nextAllocID: 1,
	}
}

func (m *memStore) addPatient(p models.Patient) { m.patients[p.ID] = p }
func (m *memStore) addRoom(r models.Room)       { m.rooms[r.ID] = r }

func (m *memStore) room(id uint) models.Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[id]
}

func (m *memStore) allocation(id uint) models.Allocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allocations[id]
}

// PatientStore

func (m *memStore) GetAllPatients() ([]models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Patient
	for _, p := range m.patients {
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) GetPatientByID(id uint) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok {
		return nil, &engine.NotFoundError{Resource: "patient", ID: id}
	}
	return &p, nil
}

func (m *memStore) GetPatientByEmail(email string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.patients {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, &engine.NotFoundError{Resource: "patient", ID: 0}
}

func (m *memStore) CreatePatient(p *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patients[p.ID] = *p
	return nil
}

func (m *memStore) UpdatePatient(p *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patients[p.ID] = *p
	return nil
}

func (m *memStore) DeletePatient(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.patients, id)
	return nil
}

func (m *memStore) CountPatients() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.patients)), nil
}

// RoomStore

func (m *memStore) GetAllRooms() ([]models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Room
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out, nil
}

func (m *memStore) GetRoomByID(id uint) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, &engine.NotFoundError{Resource: "room", ID: id}
	}
	return &r, nil
}

func (m *memStore) GetRoomByNumber(roomNumber string) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		if r.RoomNumber == roomNumber {
			return &r, nil
		}
	}
	return nil, &engine.NotFoundError{Resource: "room", ID: 0}
}

func (m *memStore) GetAvailableRooms(roomType models.RoomType) ([]models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Room
	for _, r := range m.rooms {
		if r.Status == models.RoomAvailable && (roomType == "" || r.RoomType == roomType) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) CreateRoom(r *models.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.ID] = *r
	return nil
}

func (m *memStore) UpdateRoom(r *models.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.ID] = *r
	return nil
}

func (m *memStore) DeleteRoom(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, id)
	return nil
}

func (m *memStore) SetRoomStatusIf(id uint, from, to models.RoomStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRoomWrites {
		return false, fmt.Errorf("room write failed")
	}
	r, ok := m.rooms[id]
	if !ok || r.Status != from {
		return false, nil
	}
	r.Status = to
	m.rooms[id] = r
	return true, nil
}

func (m *memStore) CountRooms() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.rooms)), nil
}

func (m *memStore) CountRoomsByStatus(status models.RoomStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, r := range m.rooms {
		if r.Status == status {
			count++
		}
	}
	return count, nil
}

// AllocationStore

func (m *memStore) GetAllocationByID(id uint) (*models.Allocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.allocations[id]
	if !ok {
		return nil, &engine.NotFoundError{Resource: "allocation", ID: id}
	}
	return &a, nil
}

func (m *memStore) GetActiveAllocations() ([]models.Allocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Allocation
	for _, a := range m.allocations {
		if a.Status == models.AllocationActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) GetActiveAllocationByPatient(patientID uint) (*models.Allocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.allocations {
		if a.PatientID == patientID && a.Status == models.AllocationActive {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetActiveAllocationByRoom(roomID uint) (*models.Allocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.allocations {
		if a.RoomID == roomID && a.Status == models.AllocationActive {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetAllocationsByPatient(patientID uint) ([]models.Allocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Allocation
	for _, a := range m.allocations {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) GetAllocationsByRoom(roomID uint) ([]models.Allocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Allocation
	for _, a := range m.allocations {
		if a.RoomID == roomID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) SaveAllocation(a *models.Allocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == 0 {
		a.ID = m.nextAllocID
		m.nextAllocID++
	}
	m.allocations[a.ID] = *a
	return nil
}

func (m *memStore) CountActiveAllocations() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, a := range m.allocations {
		if a.Status == models.AllocationActive {
			count++
		}
	}
	return count, nil
}

// AuditStore

func (m *memStore) CreateAuditLog(userID *uint, action string, details string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auditActions = append(m.auditActions, action)
	return nil
}
