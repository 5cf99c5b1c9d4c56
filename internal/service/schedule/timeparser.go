package schedule

import (
	"regexp"
	"strconv"
	"strings"
)

// TimeOfDay is a comparable clock time extracted from a shift's time range.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Minutes returns the time as minutes past midnight for ordering.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

var startTimePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(AM|PM)`)

// ParseStartTime extracts the start time from a range like
// "8:00 AM - 4:00 PM" and normalizes it to 24-hour form (12 AM is hour 0,
// PM adds 12 except for 12 PM). The second return is false when the leading
// segment does not match the expected pattern; callers fall back to a
// name-based ordering in that case.
func ParseStartTime(timeRange string) (TimeOfDay, bool) {
	start := timeRange
	if idx := strings.Index(timeRange, " - "); idx >= 0 {
		start = timeRange[:idx]
	}

	match := startTimePattern.FindStringSubmatch(strings.ToUpper(start))
	if match == nil {
		return TimeOfDay{}, false
	}

	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])
	if hour > 12 || minute > 59 {
		return TimeOfDay{}, false
	}

	switch match[3] {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}

	return TimeOfDay{Hour: hour, Minute: minute}, true
}
