package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clinic-scheduling-server/internal/models"
)

func intPtr(v int) *int { return &v }

// newTestAvailability pins "now" to 2025-06-01 (a Sunday) so month-mode
// past-day filtering and year-window validation are deterministic.
func newTestAvailability(repo Repository) *AvailabilityService {
	svc := NewAvailabilityService(repo, DefaultWorkingHours(), zerolog.Nop())
	svc.now = func() time.Time {
		return time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local)
	}
	return svc
}

func TestQueryAvailabilityValidation(t *testing.T) {
	svc := newTestAvailability(new(MockRepository))
	ctx := context.Background()

	cases := []struct {
		name  string
		query AvailabilityQuery
	}{
		{"missing doctor", AvailabilityQuery{Year: 2025, Month: 6}},
		{"year below window", AvailabilityQuery{DoctorID: "d1", Year: 2023, Month: 6}},
		{"year above window", AvailabilityQuery{DoctorID: "d1", Year: 2031, Month: 6}},
		{"month too small", AvailabilityQuery{DoctorID: "d1", Year: 2025, Month: 0}},
		{"month too large", AvailabilityQuery{DoctorID: "d1", Year: 2025, Month: 13}},
		{"day too small", AvailabilityQuery{DoctorID: "d1", Year: 2025, Month: 6, Day: intPtr(0)}},
		{"day too large", AvailabilityQuery{DoctorID: "d1", Year: 2025, Month: 6, Day: intPtr(32)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.QueryAvailability(ctx, tc.query)
			assert.NotNil(t, AsValidationError(err), "expected validation error, got %v", err)
		})
	}
}

func TestQueryAvailabilityYearWindowEdges(t *testing.T) {
	repo := new(MockRepository)
	repo.On("AppointmentsForMonth", mock.Anything, "d1", mock.Anything, 6).Return([]models.Appointment{}, nil)
	svc := newTestAvailability(repo)

	_, err := svc.QueryAvailability(context.Background(), AvailabilityQuery{DoctorID: "d1", Year: 2024, Month: 6})
	assert.NoError(t, err)
	_, err = svc.QueryAvailability(context.Background(), AvailabilityQuery{DoctorID: "d1", Year: 2030, Month: 6})
	assert.NoError(t, err)
}

func TestSingleDayWeekendHasNoSuggestions(t *testing.T) {
	repo := new(MockRepository)
	repo.On("AppointmentsForMonth", mock.Anything, "d1", 2025, 6).Return([]models.Appointment{}, nil)
	svc := newTestAvailability(repo)

	// 2025-06-14 is a Saturday.
	result, err := svc.QueryAvailability(context.Background(), AvailabilityQuery{DoctorID: "d1", Year: 2025, Month: 6, Day: intPtr(14)})
	require.NoError(t, err)
	assert.Equal(t, QuerySingleDay, result.QueryType)
	assert.Empty(t, result.DaySuggestions)
}

func TestSingleDaySuggestionsExcludeOccupiedTimes(t *testing.T) {
	appointments := []models.Appointment{
		{DoctorID: "d1", Date: mustDate("2025-06-10"), Time: "09:00", DurationMinutes: 30, Status: models.StatusScheduled, PatientName: "Maria Souza"},
		{DoctorID: "d1", Date: mustDate("2025-06-10"), Time: "14:30", DurationMinutes: 30, Status: models.StatusScheduled, PatientName: "Joao Lima"},
		{DoctorID: "d1", Date: mustDate("2025-06-11"), Time: "09:00", DurationMinutes: 30, Status: models.StatusScheduled, PatientName: "Ana Reis"},
	}
	repo := new(MockRepository)
	repo.On("AppointmentsForMonth", mock.Anything, "d1", 2025, 6).Return(appointments, nil)
	svc := newTestAvailability(repo)

	result, err := svc.QueryAvailability(context.Background(), AvailabilityQuery{DoctorID: "d1", Year: 2025, Month: 6, Day: intPtr(10)})
	require.NoError(t, err)

	// Occupied slots are filtered to the requested day only.
	require.Len(t, result.OccupiedSlots, 2)
	assert.Equal(t, 2, result.TotalOccupied)
	assert.Equal(t, "09:00", result.OccupiedSlots[0].Time)
	assert.Equal(t, "Maria Souza", result.OccupiedSlots[0].PatientName)

	// 20 grid slots minus 2 occupied.
	assert.Len(t, result.DaySuggestions, 18)

	grid := make(map[string]bool)
	for _, slot := range DefaultWorkingHours().SlotGrid() {
		grid[slot] = true
	}
	previous := ""
	for _, s := range result.DaySuggestions {
		assert.True(t, s.Available)
		assert.Equal(t, "2025-06-10", s.Date)
		assert.NotEqual(t, "09:00", s.Time)
		assert.NotEqual(t, "14:30", s.Time)
		assert.True(t, grid[s.Time], "suggestion %s not on the grid", s.Time)
		assert.Greater(t, s.Time, previous, "suggestions must ascend")
		previous = s.Time
	}
}

func TestMonthModeEmptyCalendar(t *testing.T) {
	repo := new(MockRepository)
	repo.On("AppointmentsForMonth", mock.Anything, "d1", 2025, 6).Return([]models.Appointment{}, nil)
	svc := newTestAvailability(repo)

	result, err := svc.QueryAvailability(context.Background(), AvailabilityQuery{DoctorID: "d1", Year: 2025, Month: 6})
	require.NoError(t, err)

	assert.Equal(t, QueryFullMonth, result.QueryType)
	assert.Equal(t, "2025-06", result.Month)
	assert.Nil(t, result.Date)
	assert.Equal(t, 0, result.TotalOccupied)
	assert.Empty(t, result.OccupiedSlots)

	// With now pinned to Sunday 2025-06-01 the first bookable day is
	// Monday the 2nd; suggestions cap at 10 weekdays.
	require.Len(t, result.MonthSuggestions, 10)
	assert.Equal(t, "2025-06-02", result.MonthSuggestions[0].Date)
	assert.Equal(t, "2025-06-13", result.MonthSuggestions[9].Date)
	for _, s := range result.MonthSuggestions {
		assert.Equal(t, 20, s.AvailableSlots)
		assert.Equal(t, 100, s.PercentAvailable)
	}
}

func TestMonthModeSkipsPastDaysAndWeekends(t *testing.T) {
	appointments := []models.Appointment{
		{DoctorID: "d1", Date: mustDate("2025-06-02"), Time: "09:00", Status: models.StatusScheduled},
		{DoctorID: "d1", Date: mustDate("2025-06-02"), Time: "09:30", Status: models.StatusScheduled},
	}
	repo := new(MockRepository)
	repo.On("AppointmentsForMonth", mock.Anything, "d1", 2025, 6).Return(appointments, nil)
	svc := NewAvailabilityService(repo, DefaultWorkingHours(), zerolog.Nop())
	// Mid-month: days 1-15 are in the past.
	svc.now = func() time.Time {
		return time.Date(2025, 6, 16, 9, 0, 0, 0, time.Local)
	}

	result, err := svc.QueryAvailability(context.Background(), AvailabilityQuery{DoctorID: "d1", Year: 2025, Month: 6})
	require.NoError(t, err)

	require.NotEmpty(t, result.MonthSuggestions)
	// Monday the 16th itself counts as "today", not the past.
	assert.Equal(t, "2025-06-16", result.MonthSuggestions[0].Date)
	for _, s := range result.MonthSuggestions {
		day := mustDate(s.Date)
		assert.False(t, day.Before(mustDate("2025-06-16")), "past day %s suggested", s.Date)
		assert.NotContains(t, []time.Weekday{time.Saturday, time.Sunday}, day.Weekday())
	}
}

func TestMonthModePartiallyBookedDayPercentage(t *testing.T) {
	var appointments []models.Appointment
	grid := DefaultWorkingHours().SlotGrid()
	// Occupy 15 of 20 slots on Monday the 2nd.
	for i := 0; i < 15; i++ {
		appointments = append(appointments, models.Appointment{
			DoctorID: "d1", Date: mustDate("2025-06-02"), Time: grid[i], Status: models.StatusScheduled,
		})
	}
	repo := new(MockRepository)
	repo.On("AppointmentsForMonth", mock.Anything, "d1", 2025, 6).Return(appointments, nil)
	svc := newTestAvailability(repo)

	result, err := svc.QueryAvailability(context.Background(), AvailabilityQuery{DoctorID: "d1", Year: 2025, Month: 6})
	require.NoError(t, err)

	require.NotEmpty(t, result.MonthSuggestions)
	first := result.MonthSuggestions[0]
	assert.Equal(t, "2025-06-02", first.Date)
	assert.Equal(t, 5, first.AvailableSlots)
	assert.Equal(t, 25, first.PercentAvailable)
}

func TestMonthModeSkipsFullyBookedDays(t *testing.T) {
	var appointments []models.Appointment
	for _, slot := range DefaultWorkingHours().SlotGrid() {
		appointments = append(appointments, models.Appointment{
			DoctorID: "d1", Date: mustDate("2025-06-02"), Time: slot, Status: models.StatusScheduled,
		})
	}
	repo := new(MockRepository)
	repo.On("AppointmentsForMonth", mock.Anything, "d1", 2025, 6).Return(appointments, nil)
	svc := newTestAvailability(repo)

	result, err := svc.QueryAvailability(context.Background(), AvailabilityQuery{DoctorID: "d1", Year: 2025, Month: 6})
	require.NoError(t, err)

	for _, s := range result.MonthSuggestions {
		assert.NotEqual(t, "2025-06-02", s.Date)
	}
}

func TestQueryAvailabilityIdempotent(t *testing.T) {
	appointments := []models.Appointment{
		{DoctorID: "d1", Date: mustDate("2025-06-10"), Time: "09:00", Status: models.StatusScheduled, PatientName: "Maria Souza"},
	}
	repo := new(MockRepository)
	repo.On("AppointmentsForMonth", mock.Anything, "d1", 2025, 6).Return(appointments, nil)
	svc := newTestAvailability(repo)

	first, err := svc.QueryAvailability(context.Background(), AvailabilityQuery{DoctorID: "d1", Year: 2025, Month: 6, Day: intPtr(10)})
	require.NoError(t, err)
	second, err := svc.QueryAvailability(context.Background(), AvailabilityQuery{DoctorID: "d1", Year: 2025, Month: 6, Day: intPtr(10)})
	require.NoError(t, err)

	assert.Equal(t, first.OccupiedSlots, second.OccupiedSlots)
	assert.Equal(t, first.DaySuggestions, second.DaySuggestions)
}

func TestQueryAvailabilityStoreFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("AppointmentsForMonth", mock.Anything, "d1", 2025, 6).Return(nil, assert.AnError)
	svc := newTestAvailability(repo)

	_, err := svc.QueryAvailability(context.Background(), AvailabilityQuery{DoctorID: "d1", Year: 2025, Month: 6})
	require.Error(t, err)
	assert.Nil(t, AsValidationError(err))
	assert.Nil(t, AsConflictError(err))
}
