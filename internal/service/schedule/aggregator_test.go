package schedule

import (
	"reflect"
	"testing"
	"time"

	"github.com/tacovision/backend/internal/domain/models"
)

func shift(name, userID, day, timeRange string) models.ShiftEntry {
	return models.ShiftEntry{Name: name, UserID: userID, DayOfWeek: day, TimeRange: timeRange, HoursWorked: "8"}
}

func TestDayOrder(t *testing.T) {
	agg := NewAggregator(time.Wednesday)
	want := []string{"Wednesday", "Thursday", "Friday", "Saturday", "Sunday", "Monday", "Tuesday"}
	if got := agg.DayOrder(); !reflect.DeepEqual(got, want) {
		t.Errorf("DayOrder = %v, want %v", got, want)
	}

	sunday := NewAggregator(time.Sunday)
	if got := sunday.DayOrder(); got[0] != "Sunday" || got[6] != "Saturday" {
		t.Errorf("sunday-first order = %v", got)
	}
}

func TestShiftsForUser(t *testing.T) {
	agg := NewAggregator(time.Sunday)
	entries := []models.ShiftEntry{
		shift("Jane Doe", "1002", "Friday", "8:00 AM - 4:00 PM"),
		shift("John Smith", "1001", "Monday", "9:00 AM - 5:00 PM"),
		shift("Jane Doe", "1002", "Monday", "12:00 PM - 8:00 PM"),
		shift("Jane Doe", "1002", "Friday", "4:00 PM - 10:00 PM"),
	}

	got := agg.ShiftsForUser(entries, "1002")
	if len(got) != 3 {
		t.Fatalf("expected 3 shifts, got %d", len(got))
	}
	if got[0].DayOfWeek != "Monday" {
		t.Errorf("first shift day = %s, want Monday", got[0].DayOfWeek)
	}
	// Two Friday shifts keep their insertion order.
	if got[1].TimeRange != "8:00 AM - 4:00 PM" || got[2].TimeRange != "4:00 PM - 10:00 PM" {
		t.Errorf("friday shifts out of insertion order: %v then %v", got[1].TimeRange, got[2].TimeRange)
	}
}

func TestShiftsForUserAnchoredOrder(t *testing.T) {
	agg := NewAggregator(time.Wednesday)
	entries := []models.ShiftEntry{
		shift("Jane Doe", "1002", "Monday", "9:00 AM - 5:00 PM"),
		shift("Jane Doe", "1002", "Wednesday", "8:00 AM - 4:00 PM"),
	}

	got := agg.ShiftsForUser(entries, "1002")
	// Wednesday-first rotation puts Monday near the end of the week.
	if got[0].DayOfWeek != "Wednesday" || got[1].DayOfWeek != "Monday" {
		t.Errorf("anchored order wrong: %s then %s", got[0].DayOfWeek, got[1].DayOfWeek)
	}
}

func TestShiftsForUserNoMatches(t *testing.T) {
	agg := NewAggregator(time.Sunday)
	got := agg.ShiftsForUser([]models.ShiftEntry{shift("John Smith", "1001", "Monday", "9:00 AM - 5:00 PM")}, "9999")
	if len(got) != 0 {
		t.Errorf("expected no shifts, got %v", got)
	}
}

func TestShiftsByDay(t *testing.T) {
	agg := NewAggregator(time.Sunday)
	entries := []models.ShiftEntry{
		shift("John Smith", "1001", "Monday", "12:00 PM - 8:00 PM"),
		shift("Jane Doe", "1002", "Monday", "8:00 AM - 4:00 PM"),
		shift("Ana Cruz", "1003", "Tuesday", "10:00 PM - 6:00 AM"),
	}

	days := agg.ShiftsByDay(entries)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}

	byName := map[string][]models.ShiftEntry{}
	for _, day := range days {
		byName[day.Day] = day.Shifts
	}

	monday := byName["Monday"]
	if len(monday) != 2 {
		t.Fatalf("expected 2 monday shifts, got %d", len(monday))
	}
	// Earlier start time first.
	if monday[0].Name != "Jane Doe" || monday[1].Name != "John Smith" {
		t.Errorf("monday order = %s then %s", monday[0].Name, monday[1].Name)
	}

	// Missing days are empty sequences, not nil or absent.
	if sunday, ok := byName["Sunday"]; !ok || sunday == nil || len(sunday) != 0 {
		t.Errorf("sunday should be an empty slice, got %v", byName["Sunday"])
	}
}

func TestShiftsByDayNameFallback(t *testing.T) {
	agg := NewAggregator(time.Sunday)
	entries := []models.ShiftEntry{
		shift("Zoe", "3", "Monday", "not a time"),
		shift("Adam", "1", "Monday", "also not a time"),
		shift("Mia", "2", "Monday", "11:00 AM - 7:00 PM"),
	}

	days := agg.ShiftsByDay(entries)
	var monday []models.ShiftEntry
	for _, day := range days {
		if day.Day == "Monday" {
			monday = day.Shifts
		}
	}

	// Parseable time first, then unparseable entries in lexical name order.
	got := []string{monday[0].Name, monday[1].Name, monday[2].Name}
	want := []string{"Mia", "Adam", "Zoe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fallback order = %v, want %v", got, want)
	}
}

func TestShiftsByDayDropsUnknownDays(t *testing.T) {
	agg := NewAggregator(time.Sunday)
	entries := []models.ShiftEntry{
		shift("Jane Doe", "1002", "Someday", "8:00 AM - 4:00 PM"),
		shift("Jane Doe", "1002", "", "8:00 AM - 4:00 PM"),
	}

	for _, day := range agg.ShiftsByDay(entries) {
		if len(day.Shifts) != 0 {
			t.Errorf("day %s unexpectedly has shifts", day.Day)
		}
	}
}

// TestAggregatorIdempotent runs both views twice over the same input and
// checks the input survives untouched and the outputs match exactly.
func TestAggregatorIdempotent(t *testing.T) {
	agg := NewAggregator(time.Wednesday)
	entries := []models.ShiftEntry{
		shift("John Smith", "1001", "Friday", "9:00 AM - 5:00 PM"),
		shift("Jane Doe", "1002", "Monday", "bad time"),
		shift("Ana Cruz", "1003", "Friday", "7:00 AM - 3:00 PM"),
	}
	snapshot := append([]models.ShiftEntry(nil), entries...)

	byDay1 := agg.ShiftsByDay(entries)
	byDay2 := agg.ShiftsByDay(entries)
	if !reflect.DeepEqual(byDay1, byDay2) {
		t.Error("ShiftsByDay is not idempotent")
	}

	user1 := agg.ShiftsForUser(entries, "1002")
	user2 := agg.ShiftsForUser(entries, "1002")
	if !reflect.DeepEqual(user1, user2) {
		t.Error("ShiftsForUser is not idempotent")
	}

	if !reflect.DeepEqual(entries, snapshot) {
		t.Error("aggregation mutated its input")
	}
}
