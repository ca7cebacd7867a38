package scheduling

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"clinic-scheduling-server/internal/models"
)

// ConflictDetector checks whether a candidate (doctor, date, time)
// slot is already occupied by an active appointment.
type ConflictDetector struct {
	repo   Repository
	logger zerolog.Logger
}

// NewConflictDetector creates a new ConflictDetector.
func NewConflictDetector(repo Repository, logger zerolog.Logger) *ConflictDetector {
	return &ConflictDetector{repo: repo, logger: logger}
}

// FindConflict returns the first non-cancelled appointment occupying
// the exact slot, or nil when the slot is free. The date matches at day
// granularity; the time matches by exact string comparison, which is
// sound because the slot grid only ever emits zero-padded HH:MM values.
func (d *ConflictDetector) FindConflict(ctx context.Context, doctorID string, date time.Time, timeOfDay string) (*models.Appointment, error) {
	apt, err := d.repo.ActiveAppointmentAt(ctx, doctorID, date, timeOfDay)
	if err != nil {
		return nil, err
	}
	if apt != nil {
		d.logger.Debug().
			Str("doctor_id", doctorID).
			Str("date", date.Format(models.DateLayout)).
			Str("time", timeOfDay).
			Str("conflicting_id", apt.ID).
			Msg("slot already occupied")
	}
	return apt, nil
}
