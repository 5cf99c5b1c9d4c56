package schedule

import (
	"fmt"
	"time"
)

// StartOfWeek returns the most recent occurrence of anchor on or before ref,
// truncated to midnight in ref's location. Every date inside the same
// anchored 7-day window resolves to the same start, which makes the derived
// week key a stable document address.
func StartOfWeek(ref time.Time, anchor time.Weekday) time.Time {
	day := ref.Weekday()
	offset := int(day) - int(anchor)
	if day < anchor {
		offset = int(day) + 7 - int(anchor)
	}

	start := ref.AddDate(0, 0, -offset)
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
}

// WeekKey formats a week start date into the stable "week-YYYY-MM-DD" lookup
// key used to address one Schedule document per week.
func WeekKey(start time.Time) string {
	return fmt.Sprintf("week-%04d-%02d-%02d", start.Year(), int(start.Month()), start.Day())
}
