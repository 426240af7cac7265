package models

import "time"

// PatientStatus is the administrative status of a patient record
type PatientStatus string

const (
	PatientActive     PatientStatus = "ACTIVE"
	PatientDischarged PatientStatus = "DISCHARGED"
	PatientDeceased   PatientStatus = "DECEASED"
)

// Patient represents a patient registered at the hospital
type Patient struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"size:100;not null" json:"name"`
	Email       string        `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone       string        `gorm:"size:20" json:"phone,omitempty"`
	Address     string        `gorm:"type:text" json:"address,omitempty"`
	DateOfBirth *time.Time    `json:"date_of_birth,omitempty"`
	Gender      string        `gorm:"size:10" json:"gender,omitempty"`
	BloodGroup  string        `gorm:"size:5" json:"blood_group,omitempty"`
	Status      PatientStatus `gorm:"type:enum('ACTIVE','DISCHARGED','DECEASED');default:'ACTIVE'" json:"status"`
	CreatedAt   time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for Patient model
func (Patient) TableName() string {
	return "patients"
}
