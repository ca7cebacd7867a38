package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no-show"
)

// AppointmentType represents the consultation modality
type AppointmentType string

const (
	TypeInPerson     AppointmentType = "InPerson"
	TypeTelemedicine AppointmentType = "Telemedicine"
)

// DateLayout is the wire and storage format for appointment dates.
const DateLayout = "2006-01-02"

// Appointment represents a scheduled medical appointment.
// Per doctor, no two non-cancelled appointments may share (date, time);
// the unique index on SlotKey enforces that at the storage layer.
type Appointment struct {
	BaseModel
	DoctorID        string            `gorm:"size:36;index:idx_doctor_date,priority:1" json:"doctorId"`
	PatientID       string            `gorm:"size:36;index" json:"patientId"`
	PatientName     string            `gorm:"size:255" json:"patientName"`
	Date            time.Time         `gorm:"type:date;index:idx_doctor_date,priority:2" json:"date"`
	Time            string            `gorm:"size:5" json:"time"`
	DurationMinutes int               `gorm:"default:30" json:"duration"`
	Type            AppointmentType   `gorm:"size:20;default:'InPerson'" json:"type"`
	Status          AppointmentStatus `gorm:"size:20;default:'scheduled'" json:"status"`
	ReasonForVisit  string            `gorm:"size:255" json:"reasonForVisit,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedVia      string            `gorm:"size:50" json:"createdVia"`

	// SlotKey is doctorID|date|time while the appointment occupies its
	// slot, and NULL once cancelled (MySQL permits repeated NULLs in a
	// unique index, so freed slots can be rebooked).
	SlotKey *string `gorm:"size:120;uniqueIndex" json:"-"`
}

// ActiveSlotKey builds the uniqueness key for an occupied slot.
func ActiveSlotKey(doctorID string, date time.Time, timeOfDay string) string {
	return fmt.Sprintf("%s|%s|%s", doctorID, date.Format(DateLayout), timeOfDay)
}

// BeforeCreate assigns the slot key for appointments created in an
// occupying status.
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if err := a.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if a.Status != StatusCancelled && a.SlotKey == nil {
		key := ActiveSlotKey(a.DoctorID, a.Date, a.Time)
		a.SlotKey = &key
	}
	return nil
}
