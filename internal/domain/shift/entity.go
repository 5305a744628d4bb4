package shift

import "time"

// Shift is a named pair of time-of-day values. Only the clock fields of
// StartTime/EndTime are meaningful; the calendar date they carry is ignored.
// StartTime may be absent for shifts defined by end time only.
type Shift struct {
	ID        string
	Name      string
	StartTime *time.Time
	EndTime   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
