package scheduling

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"clinic-scheduling-server/internal/models"
)

// Query type labels reported in response metadata.
const (
	QuerySingleDay = "single_day"
	QueryFullMonth = "full_month"
)

// Bounds for month-mode suggestions. Responses stay small on purpose:
// the main consumer is an automation agent, not a calendar UI.
const (
	maxMonthSuggestions = 10
	maxDaysScanned      = 31
)

// Year window accepted by the availability query, relative to the
// current year.
const (
	yearWindowPast   = 1
	yearWindowFuture = 5
)

// AvailabilityQuery are the inputs of an availability lookup.
type AvailabilityQuery struct {
	DoctorID string
	Year     int
	Month    int
	Day      *int
}

// OccupiedSlot describes an existing appointment blocking a slot.
type OccupiedSlot struct {
	Date        string                   `json:"date"`
	Time        string                   `json:"time"`
	Duration    int                      `json:"duration"`
	Status      models.AppointmentStatus `json:"status"`
	PatientName string                   `json:"patientName"`
}

// SlotSuggestion is a single open slot, emitted in single-day mode.
type SlotSuggestion struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// DaySuggestion summarises an open day, emitted in month mode.
type DaySuggestion struct {
	Date             string `json:"date"`
	AvailableSlots   int    `json:"availableSlots"`
	PercentAvailable int    `json:"percentAvailable"`
}

// AvailabilityResult is the full outcome of an availability query.
type AvailabilityResult struct {
	QueryType        string
	Date             *string
	Month            string
	TotalOccupied    int
	OccupiedSlots    []OccupiedSlot
	DaySuggestions   []SlotSuggestion
	MonthSuggestions []DaySuggestion
}

// AvailabilityService computes occupied slots and open-slot suggestions
// for a doctor's calendar. Each query re-fetches from the store; there
// is no caching and no internal retry.
type AvailabilityService struct {
	repo   Repository
	hours  WorkingHours
	logger zerolog.Logger
	now    func() time.Time
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(repo Repository, hours WorkingHours, logger zerolog.Logger) *AvailabilityService {
	return &AvailabilityService{
		repo:   repo,
		hours:  hours,
		logger: logger,
		now:    time.Now,
	}
}

// QueryAvailability validates the query, fetches the doctor's month of
// appointments and produces occupied slots plus suggestions. Day 31 of
// a shorter month is accepted and normalized by date arithmetic rather
// than rejected.
func (s *AvailabilityService) QueryAvailability(ctx context.Context, q AvailabilityQuery) (*AvailabilityResult, error) {
	if err := s.validate(q); err != nil {
		return nil, err
	}

	appointments, err := s.repo.AppointmentsForMonth(ctx, q.DoctorID, q.Year, q.Month)
	if err != nil {
		return nil, err
	}

	result := &AvailabilityResult{
		Month:            time.Date(q.Year, time.Month(q.Month), 1, 0, 0, 0, 0, time.Local).Format("2006-01"),
		OccupiedSlots:    []OccupiedSlot{},
		DaySuggestions:   []SlotSuggestion{},
		MonthSuggestions: []DaySuggestion{},
	}

	if q.Day != nil {
		s.queryDay(result, q, appointments)
	} else {
		s.queryMonth(result, q, appointments)
	}
	result.TotalOccupied = len(result.OccupiedSlots)

	s.logger.Info().
		Str("doctor_id", q.DoctorID).
		Str("query_type", result.QueryType).
		Str("month", result.Month).
		Int("total_occupied", result.TotalOccupied).
		Msg("availability computed")
	return result, nil
}

func (s *AvailabilityService) validate(q AvailabilityQuery) error {
	if q.DoctorID == "" {
		return validationErrorf("doctorId is required")
	}
	currentYear := s.now().Year()
	if q.Year < currentYear-yearWindowPast || q.Year > currentYear+yearWindowFuture {
		return validationErrorf("year must be between %d and %d", currentYear-yearWindowPast, currentYear+yearWindowFuture)
	}
	if q.Month < 1 || q.Month > 12 {
		return validationErrorf("month must be between 1 and 12")
	}
	if q.Day != nil && (*q.Day < 1 || *q.Day > 31) {
		return validationErrorf("day must be between 1 and 31")
	}
	return nil
}

func (s *AvailabilityService) queryDay(result *AvailabilityResult, q AvailabilityQuery, appointments []models.Appointment) {
	result.QueryType = QuerySingleDay

	day := time.Date(q.Year, time.Month(q.Month), *q.Day, 0, 0, 0, 0, time.Local)
	dayStr := day.Format(models.DateLayout)
	result.Date = &dayStr

	occupiedTimes := make(map[string]bool)
	for _, apt := range appointments {
		if apt.Date.Format(models.DateLayout) != dayStr {
			continue
		}
		result.OccupiedSlots = append(result.OccupiedSlots, occupiedSlot(apt))
		occupiedTimes[apt.Time] = true
	}

	// Weekends carry no suggestions at all.
	if !s.hours.IsBookableDay(day) {
		return
	}
	for _, slot := range s.hours.SlotGrid() {
		if occupiedTimes[slot] {
			continue
		}
		result.DaySuggestions = append(result.DaySuggestions, SlotSuggestion{
			Date:      dayStr,
			Time:      slot,
			Available: true,
		})
	}
}

func (s *AvailabilityService) queryMonth(result *AvailabilityResult, q AvailabilityQuery, appointments []models.Appointment) {
	result.QueryType = QueryFullMonth

	occupiedPerDay := make(map[string]int)
	for _, apt := range appointments {
		result.OccupiedSlots = append(result.OccupiedSlots, occupiedSlot(apt))
		occupiedPerDay[apt.Date.Format(models.DateLayout)]++
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	totalSlots := s.hours.GridSize()

	for dayNum := 1; dayNum <= maxDaysScanned; dayNum++ {
		if len(result.MonthSuggestions) >= maxMonthSuggestions {
			break
		}
		day := time.Date(q.Year, time.Month(q.Month), dayNum, 0, 0, 0, 0, time.Local)
		if day.Month() != time.Month(q.Month) {
			// Short month: day 29/30/31 rolled over, nothing left to scan.
			break
		}
		if day.Before(today) || !s.hours.IsBookableDay(day) {
			continue
		}

		available := totalSlots - occupiedPerDay[day.Format(models.DateLayout)]
		if available <= 0 {
			continue
		}
		result.MonthSuggestions = append(result.MonthSuggestions, DaySuggestion{
			Date:             day.Format(models.DateLayout),
			AvailableSlots:   available,
			PercentAvailable: int(math.Round(float64(available) / float64(totalSlots) * 100)),
		})
	}
}

func occupiedSlot(apt models.Appointment) OccupiedSlot {
	return OccupiedSlot{
		Date:        apt.Date.Format(models.DateLayout),
		Time:        apt.Time,
		Duration:    apt.DurationMinutes,
		Status:      apt.Status,
		PatientName: apt.PatientName,
	}
}
