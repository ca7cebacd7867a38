package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"clinic-scheduling-server/internal/models"
)

// DefaultDurationMinutes is applied when a booking request carries no
// explicit duration.
const DefaultDurationMinutes = 30

// BookingRequest carries the inputs of the booking operation. Date is
// YYYY-MM-DD, Time is zero-padded HH:MM on the slot grid.
type BookingRequest struct {
	DoctorID        string
	PatientID       string
	PatientPhone    string
	PatientName     string
	Date            string
	Time            string
	DurationMinutes int
	Type            string
	ReasonForVisit  string
	Notes           string
	CreatedVia      string
}

// BookingResult echoes the booked appointment back to the caller.
type BookingResult struct {
	AppointmentID string                   `json:"appointmentId"`
	PatientID     string                   `json:"patientId"`
	PatientName   string                   `json:"patientName"`
	Date          string                   `json:"date"`
	Time          string                   `json:"time"`
	Duration      int                      `json:"duration"`
	Type          models.AppointmentType   `json:"type"`
	Status        models.AppointmentStatus `json:"status"`
}

// BookingService orchestrates appointment creation: validate, resolve
// the patient, detect conflicts, persist. It fails fast at the first
// unmet precondition.
type BookingService struct {
	repo     Repository
	resolver *PatientResolver
	detector *ConflictDetector
	logger   zerolog.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(repo Repository, resolver *PatientResolver, detector *ConflictDetector, logger zerolog.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		resolver: resolver,
		detector: detector,
		logger:   logger,
	}
}

// Book creates a conflict-free appointment with status "scheduled".
//
// The pre-write conflict check produces a detailed ConflictError for
// the common case. Two concurrent bookings can still both pass it; the
// slot-key unique index then rejects the second write, which is mapped
// to a ConflictError as well, so a double booking can never persist.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	date, aptType, err := s.validate(&req)
	if err != nil {
		return nil, err
	}

	patient, err := s.resolver.Resolve(ctx, req.DoctorID, req.PatientID, req.PatientPhone, req.PatientName)
	if err != nil {
		return nil, err
	}

	conflict, err := s.detector.FindConflict(ctx, req.DoctorID, date, req.Time)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, &ConflictError{
			AppointmentID: conflict.ID,
			Time:          conflict.Time,
			PatientName:   conflict.PatientName,
		}
	}

	apt := &models.Appointment{
		DoctorID:        req.DoctorID,
		PatientID:       patient.ID,
		PatientName:     patient.Name,
		Date:            date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Type:            aptType,
		Status:          models.StatusScheduled,
		ReasonForVisit:  req.ReasonForVisit,
		Notes:           req.Notes,
		CreatedVia:      req.CreatedVia,
	}
	if err := s.repo.CreateAppointment(ctx, apt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race between conflict check and write.
			return nil, s.lostRaceConflict(ctx, req.DoctorID, date, req.Time)
		}
		return nil, err
	}

	s.logger.Info().
		Str("appointment_id", apt.ID).
		Str("doctor_id", apt.DoctorID).
		Str("date", apt.Date.Format(models.DateLayout)).
		Str("time", apt.Time).
		Str("created_via", apt.CreatedVia).
		Msg("appointment booked")

	return &BookingResult{
		AppointmentID: apt.ID,
		PatientID:     apt.PatientID,
		PatientName:   apt.PatientName,
		Date:          apt.Date.Format(models.DateLayout),
		Time:          apt.Time,
		Duration:      apt.DurationMinutes,
		Type:          apt.Type,
		Status:        apt.Status,
	}, nil
}

// validate checks presence and shape of the required fields and applies
// defaults. It returns the parsed date and normalized type.
func (s *BookingService) validate(req *BookingRequest) (time.Time, models.AppointmentType, error) {
	if req.DoctorID == "" {
		return time.Time{}, "", validationErrorf("doctorId is required")
	}
	if req.Date == "" {
		return time.Time{}, "", validationErrorf("consultationDate is required")
	}
	if req.Time == "" {
		return time.Time{}, "", validationErrorf("consultationTime is required")
	}

	date, err := time.ParseInLocation(models.DateLayout, req.Date, time.Local)
	if err != nil {
		return time.Time{}, "", validationErrorf("consultationDate must be YYYY-MM-DD")
	}
	if !validTimeOfDay(req.Time) {
		return time.Time{}, "", validationErrorf("consultationTime must be HH:MM")
	}

	if req.DurationMinutes == 0 {
		req.DurationMinutes = DefaultDurationMinutes
	}
	if req.DurationMinutes < 0 {
		return time.Time{}, "", validationErrorf("consultationDuration must be positive")
	}

	aptType, err := normalizeType(req.Type)
	if err != nil {
		return time.Time{}, "", err
	}
	return date, aptType, nil
}

// normalizeType maps the wire consultation type, including the
// Portuguese aliases the clinic front ends send, onto the stored enum.
func normalizeType(raw string) (models.AppointmentType, error) {
	switch raw {
	case "", "Presencial", string(models.TypeInPerson):
		return models.TypeInPerson, nil
	case "Telemedicina", string(models.TypeTelemedicine):
		return models.TypeTelemedicine, nil
	default:
		return "", validationErrorf("unsupported consultationType %q", raw)
	}
}

// validTimeOfDay accepts only zero-padded 24h HH:MM strings, matching
// what the slot grid emits. "9:00" is rejected on purpose: it would
// never compare equal to a grid slot.
func validTimeOfDay(t string) bool {
	if len(t) != 5 || t[2] != ':' {
		return false
	}
	for _, c := range []byte{t[0], t[1], t[3], t[4]} {
		if c < '0' || c > '9' {
			return false
		}
	}
	hh := (int(t[0]-'0') * 10) + int(t[1]-'0')
	mm := (int(t[3]-'0') * 10) + int(t[4]-'0')
	return hh <= 23 && mm <= 59
}

// lostRaceConflict rebuilds conflict details after the unique index
// rejected a write.
func (s *BookingService) lostRaceConflict(ctx context.Context, doctorID string, date time.Time, timeOfDay string) error {
	conflict, err := s.detector.FindConflict(ctx, doctorID, date, timeOfDay)
	if err != nil || conflict == nil {
		return &ConflictError{Time: timeOfDay}
	}
	return &ConflictError{
		AppointmentID: conflict.ID,
		Time:          conflict.Time,
		PatientName:   conflict.PatientName,
	}
}
