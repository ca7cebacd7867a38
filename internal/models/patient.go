package models

import (
	"time"
)

// Patient represents a patient record. The scheduling core only reads
// id, name and phone; the remaining fields exist for the administration
// endpoints.
type Patient struct {
	BaseModel
	Name        string     `gorm:"size:255;not null" json:"name"`
	Phone       string     `gorm:"size:30;index" json:"phone"`
	Email       string     `gorm:"size:255" json:"email,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Address     string     `gorm:"size:255" json:"address,omitempty"`

	// Relations (not always preloaded)
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}
