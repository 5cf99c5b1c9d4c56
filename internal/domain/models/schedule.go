package models

import "time"

// ShiftEntry is one row of a work schedule as extracted from a schedule PDF.
// UserID stays a string end to end; leading zeros are stripped by extraction
// but IDs are never treated as integers. TimeAndDate carries the legacy
// single-column variant produced by older extraction schemas; it is normalized
// away at ingestion.
type ShiftEntry struct {
	Name        string `bson:"name" json:"name"`
	UserID      string `bson:"userId" json:"userId"`
	DayOfWeek   string `bson:"dayOfWeek" json:"dayOfWeek"`
	TimeRange   string `bson:"timeRange" json:"timeRange"`
	HoursWorked string `bson:"hoursWorked" json:"hoursWorked"`
	TimeAndDate string `bson:"timeAndDate,omitempty" json:"timeAndDate,omitempty"`
}

// Schedule is the full set of shifts for one week. Its ID is the week key
// ("week-YYYY-MM-DD"), so re-uploading within the same week overwrites the
// document wholesale.
type Schedule struct {
	ID         string       `bson:"_id,omitempty" json:"id"`
	Entries    []ShiftEntry `bson:"entries" json:"entries"`
	UploadedAt time.Time    `bson:"uploadedAt" json:"uploadedAt"`
}

// DaySchedule is one canonical day with its shifts in deterministic order.
type DaySchedule struct {
	Day    string       `json:"day"`
	Shifts []ShiftEntry `json:"shifts"`
}
