package scheduling

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"clinic-scheduling-server/internal/models"
)

// Repository is the storage collaborator of the scheduling core. Reads
// are scoped per doctor and, for occupancy queries, exclude cancelled
// appointments (a cancelled appointment frees its slot).
type Repository interface {
	// AppointmentsForMonth returns the doctor's non-cancelled
	// appointments within the given calendar month, ordered by date
	// then time.
	AppointmentsForMonth(ctx context.Context, doctorID string, year, month int) ([]models.Appointment, error)

	// ActiveAppointmentAt returns the doctor's first non-cancelled
	// appointment at exactly (date, time), or nil when the slot is free.
	ActiveAppointmentAt(ctx context.Context, doctorID string, date time.Time, timeOfDay string) (*models.Appointment, error)

	// CreateAppointment persists a new appointment. A unique-index
	// violation on the slot key surfaces as gorm.ErrDuplicatedKey.
	CreateAppointment(ctx context.Context, apt *models.Appointment) error

	// ListPatients returns all patient records in stable enumeration
	// order (oldest first).
	ListPatients(ctx context.Context) ([]models.Patient, error)
}

// GormRepository implements Repository on the application database.
type GormRepository struct {
	DB *gorm.DB
}

// NewGormRepository creates a new GormRepository.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

// AppointmentsForMonth implements Repository.
func (r *GormRepository) AppointmentsForMonth(ctx context.Context, doctorID string, year, month int) ([]models.Appointment, error) {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var appointments []models.Appointment
	err := r.DB.WithContext(ctx).
		Where("doctor_id = ? AND status <> ? AND date >= ? AND date < ?",
			doctorID, models.StatusCancelled, monthStart, monthEnd).
		Order("date asc, time asc").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("fetching appointments for %d-%02d: %w", year, month, err)
	}
	return appointments, nil
}

// ActiveAppointmentAt implements Repository.
func (r *GormRepository) ActiveAppointmentAt(ctx context.Context, doctorID string, date time.Time, timeOfDay string) (*models.Appointment, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var apt models.Appointment
	err := r.DB.WithContext(ctx).
		Where("doctor_id = ? AND status <> ? AND date >= ? AND date < ? AND time = ?",
			doctorID, models.StatusCancelled, dayStart, dayEnd, timeOfDay).
		Order("created_at asc").
		First(&apt).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("checking slot %s %s: %w", dayStart.Format(models.DateLayout), timeOfDay, err)
	}
	return &apt, nil
}

// CreateAppointment implements Repository.
func (r *GormRepository) CreateAppointment(ctx context.Context, apt *models.Appointment) error {
	return r.DB.WithContext(ctx).Create(apt).Error
}

// ListPatients implements Repository.
func (r *GormRepository) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	if err := r.DB.WithContext(ctx).Order("created_at asc").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	return patients, nil
}
