package domain

import (
	"time"

	"github.com/m04kA/SMC-SanitationBookingService/pkg/types"
)

// Slot a bookable (date, time) pair, computed on demand and never stored
type Slot struct {
	Date time.Time
	Time types.TimeString
}

// NewSlot normalizes the date to midnight in its location
func NewSlot(date time.Time, t types.TimeString) Slot {
	return Slot{Date: DateOnly(date), Time: t}
}

// Equal compares calendar dates and start times
func (s Slot) Equal(other Slot) bool {
	y1, m1, d1 := s.Date.Date()
	y2, m2, d2 := other.Date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 && s.Time == other.Time
}

// StartsAt returns the start moment of the slot in the location of its date
func (s Slot) StartsAt() (time.Time, error) {
	return s.Time.On(s.Date)
}

// String formats the slot as "2025-03-10 10:00"
func (s Slot) String() string {
	return s.Date.Format(DateFormat) + " " + s.Time.String()
}

// DateOnly truncates a moment to midnight of its calendar day
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
