package schedule

import (
	"strings"

	"github.com/tacovision/backend/internal/domain/models"
)

// Normalize converts legacy shift entries into the current shape. Older
// extraction schemas emitted a single "timeAndDate" column instead of the
// separate dayOfWeek and timeRange fields; the discriminator is an explicit
// check, never a guess: an entry with timeAndDate set and dayOfWeek empty is
// legacy, everything else passes through untouched.
//
// A legacy value with a recognized leading day name ("Monday 8:00 AM - 4:00 PM")
// is split into day and range. When no day name is recognized the whole value
// is kept as an opaque time range with an empty day, which the aggregator
// already tolerates. The input slice is never mutated.
func Normalize(entries []models.ShiftEntry) []models.ShiftEntry {
	out := make([]models.ShiftEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, normalizeEntry(entry))
	}
	return out
}

func normalizeEntry(entry models.ShiftEntry) models.ShiftEntry {
	if entry.TimeAndDate == "" || entry.DayOfWeek != "" {
		entry.TimeAndDate = ""
		return entry
	}

	day, rest := splitLeadingDay(entry.TimeAndDate)
	entry.DayOfWeek = day
	entry.TimeRange = rest
	entry.TimeAndDate = ""
	return entry
}

func splitLeadingDay(value string) (day, rest string) {
	trimmed := strings.TrimSpace(value)
	for _, name := range daysOfWeek {
		if strings.EqualFold(trimmed, name) {
			return name, ""
		}
		if len(trimmed) > len(name) && strings.EqualFold(trimmed[:len(name)], name) {
			remainder := strings.TrimLeft(trimmed[len(name):], " ,")
			return name, remainder
		}
	}
	return "", trimmed
}
