package scheduling

import (
	"fmt"
	"time"

	"clinic-scheduling-server/internal/config"
)

// WorkingHours is the clinic's static slot policy: a bookable day runs
// StartHour to EndHour in SlotMinutes steps, weekends are never
// bookable. No holiday calendar.
type WorkingHours struct {
	StartHour   int
	EndHour     int
	SlotMinutes int
}

// NewWorkingHours builds the policy from configuration.
func NewWorkingHours(cfg config.ScheduleConfig) WorkingHours {
	return WorkingHours{
		StartHour:   cfg.StartHour,
		EndHour:     cfg.EndHour,
		SlotMinutes: cfg.SlotMinutes,
	}
}

// DefaultWorkingHours returns the 08:00-18:00 / 30 minute policy.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{StartHour: 8, EndHour: 18, SlotMinutes: 30}
}

// IsBookableDay reports whether the date falls on a weekday.
func (w WorkingHours) IsBookableDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// SlotGrid enumerates every slot start time of a clinic day as a
// zero-padded HH:MM string, from StartHour inclusive to EndHour
// exclusive, in ascending order.
func (w WorkingHours) SlotGrid() []string {
	var grid []string
	for minutes := w.StartHour * 60; minutes < w.EndHour*60; minutes += w.SlotMinutes {
		grid = append(grid, fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
	}
	return grid
}

// GridSize returns the number of slots in a clinic day.
func (w WorkingHours) GridSize() int {
	return ((w.EndHour - w.StartHour) * 60) / w.SlotMinutes
}
