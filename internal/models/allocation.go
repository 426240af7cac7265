package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocationStatus is the lifecycle state of a room allocation.
// ACTIVE is the only non-terminal state; COMPLETED and CANCELLED are terminal.
type AllocationStatus string

const (
	AllocationActive    AllocationStatus = "ACTIVE"
	AllocationCompleted AllocationStatus = "COMPLETED"
	AllocationCancelled AllocationStatus = "CANCELLED"
)

// Terminal reports whether no further transitions are permitted from s
func (s AllocationStatus) Terminal() bool {
	return s == AllocationCompleted || s == AllocationCancelled
}

// Allocation binds one patient to one room for a bounded stay.
// It is the owning record of the relationship: room and patient occupancy
// is always derived by looking up the ACTIVE allocation, never stored on
// the Room or Patient rows themselves.
type Allocation struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	PatientID      uint             `gorm:"not null;index" json:"patient_id"`
	RoomID         uint             `gorm:"not null;index" json:"room_id"`
	AllocationDate time.Time        `gorm:"not null" json:"allocation_date"`
	DischargeDate  *time.Time       `json:"discharge_date,omitempty"`
	Status         AllocationStatus `gorm:"type:enum('ACTIVE','COMPLETED','CANCELLED');default:'ACTIVE';index" json:"status"`
	TotalAmount    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_amount,omitempty"`
	Notes          string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Room    Room    `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// TableName specifies the table name for Allocation model
func (Allocation) TableName() string {
	return "allocations"
}

// IsActive reports whether the allocation is in its single non-terminal state
func (a *Allocation) IsActive() bool {
	return a.Status == AllocationActive
}
