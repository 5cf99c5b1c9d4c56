package schedule

import (
	"sort"
	"time"

	"github.com/tacovision/backend/internal/domain/models"
)

// daysOfWeek is the Sunday-first canonical day naming.
var daysOfWeek = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayName returns the canonical name for a weekday.
func DayName(day time.Weekday) string {
	return daysOfWeek[int(day)]
}

// Aggregator turns a flat list of shift entries into the per-user and per-day
// views. It is pure: inputs are never mutated, outputs are freshly allocated,
// and repeated calls over identical input produce identical ordering.
type Aggregator struct {
	anchor time.Weekday
}

// NewAggregator builds an aggregator whose day ordering starts at the given
// week anchor (Wednesday-first, Sunday-first, and so on).
func NewAggregator(anchor time.Weekday) Aggregator {
	return Aggregator{anchor: anchor}
}

// DayOrder returns the seven canonical day names rotated so the week anchor
// comes first.
func (a Aggregator) DayOrder() []string {
	order := make([]string, 0, len(daysOfWeek))
	for i := 0; i < len(daysOfWeek); i++ {
		order = append(order, daysOfWeek[(int(a.anchor)+i)%len(daysOfWeek)])
	}
	return order
}

// dayIndex maps a day name to its position in the anchored order. Unknown day
// names sort after every real day.
func (a Aggregator) dayIndex(day string) int {
	for i, name := range a.DayOrder() {
		if name == day {
			return i
		}
	}
	return len(daysOfWeek)
}

// ShiftsForUser returns the shifts belonging to one user, ascending by day of
// week in the anchored order. Ties keep their original insertion order.
func (a Aggregator) ShiftsForUser(entries []models.ShiftEntry, userID string) []models.ShiftEntry {
	shifts := make([]models.ShiftEntry, 0)
	for _, entry := range entries {
		if entry.UserID == userID {
			shifts = append(shifts, entry)
		}
	}

	sort.SliceStable(shifts, func(i, j int) bool {
		return a.dayIndex(shifts[i].DayOfWeek) < a.dayIndex(shifts[j].DayOfWeek)
	})

	return shifts
}

// ShiftsByDay groups entries into one sequence per canonical day in anchored
// order. Days without shifts yield an empty slice. Within a day, shifts sort
// by parsed start time ascending; entries whose time range cannot be parsed
// fall back to case-sensitive lexical order of the employee name, which keeps
// the total order deterministic even for malformed input. Entries carrying an
// unrecognized day name are excluded from this view.
func (a Aggregator) ShiftsByDay(entries []models.ShiftEntry) []models.DaySchedule {
	grouped := make(map[string][]models.ShiftEntry, len(daysOfWeek))
	for _, day := range daysOfWeek {
		grouped[day] = []models.ShiftEntry{}
	}

	for _, entry := range entries {
		if _, known := grouped[entry.DayOfWeek]; known {
			grouped[entry.DayOfWeek] = append(grouped[entry.DayOfWeek], entry)
		}
	}

	days := make([]models.DaySchedule, 0, len(daysOfWeek))
	for _, day := range a.DayOrder() {
		shifts := grouped[day]
		sort.SliceStable(shifts, func(i, j int) bool {
			return shiftBefore(shifts[i], shifts[j])
		})
		days = append(days, models.DaySchedule{Day: day, Shifts: shifts})
	}

	return days
}

func shiftBefore(a, b models.ShiftEntry) bool {
	ta, okA := ParseStartTime(a.TimeRange)
	tb, okB := ParseStartTime(b.TimeRange)

	switch {
	case okA && okB:
		if ta.Minutes() != tb.Minutes() {
			return ta.Minutes() < tb.Minutes()
		}
		return a.Name < b.Name
	case okA:
		return true
	case okB:
		return false
	default:
		return a.Name < b.Name
	}
}
