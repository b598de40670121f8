package domain

import (
	"fmt"
	"iter"
	"time"

	"github.com/m04kA/SMC-SanitationBookingService/pkg/types"
)

// Slot validation errors
var (
	ErrSlotRequired        = fmt.Errorf("%w: slot date and time are required", ErrValidation)
	ErrSlotNotBusinessHour = fmt.Errorf("%w: slot time must be a whole business hour", ErrValidation)
	ErrSlotInPast          = fmt.Errorf("%w: slot is in the past", ErrValidation)
	ErrSlotOutsideWindow   = fmt.Errorf("%w: slot is outside the booking window", ErrValidation)
)

// Schedule business hours and booking window. Slots are one per whole hour from OpenHour to
// CloseHour inclusive, independent of the service duration.
type Schedule struct {
	OpenHour         int
	CloseHour        int
	LookaheadDays    int // default window for slot listing
	MaxLookaheadDays int // upper bound for listing and the window accepted on create/reschedule
	Location         *time.Location
}

// DefaultSchedule returns 09:00-17:00, 14 days ahead, UTC
func DefaultSchedule() Schedule {
	return Schedule{
		OpenHour:         BusinessOpenHour,
		CloseHour:        BusinessCloseHour,
		LookaheadDays:    DefaultLookaheadDays,
		MaxLookaheadDays: MaxLookaheadDays,
		Location:         time.UTC,
	}
}

// AvailableSlots is the calculator with the default schedule
func AvailableSlots(service *Service, bookings []*Booking, lookaheadDays int, now time.Time) iter.Seq[Slot] {
	return DefaultSchedule().AvailableSlots(service, bookings, lookaheadDays, now)
}

// AvailableSlots yields the bookable slots of the service in chronological order: lookaheadDays
// calendar days starting from the date of now, minus slots not strictly after now and slots held by
// a non-cancelled booking of the service. The sequence is lazy and can be ranged over repeatedly;
// every pass recomputes from the given bookings. A nil service or a non-positive window yields nothing.
func (s Schedule) AvailableSlots(service *Service, bookings []*Booking, lookaheadDays int, now time.Time) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		if service == nil || lookaheadDays <= 0 {
			return
		}

		current := now.In(s.location())
		today := DateOnly(current)

		for day := 0; day < lookaheadDays; day++ {
			date := today.AddDate(0, 0, day)
			for hour := s.OpenHour; hour <= s.CloseHour; hour++ {
				slot := NewSlot(date, types.FromHour(hour))

				if day == 0 {
					start, err := slot.StartsAt()
					if err != nil || !start.After(current) {
						continue
					}
				}

				if occupied(service.ID, slot, bookings) {
					continue
				}

				if !yield(slot) {
					return
				}
			}
		}
	}
}

// CheckSlot validates a requested slot against business hours, the clock and a window of days
// starting today. Occupation is not checked here.
func (s Schedule) CheckSlot(slot Slot, now time.Time, windowDays int) error {
	if slot.Date.IsZero() || slot.Time.IsZero() {
		return ErrSlotRequired
	}

	hour, whole := slot.Time.Hour()
	if !whole || hour < s.OpenHour || hour > s.CloseHour {
		return fmt.Errorf("%w: %s", ErrSlotNotBusinessHour, slot.Time)
	}

	now = now.In(s.location())
	date := time.Date(slot.Date.Year(), slot.Date.Month(), slot.Date.Day(), 0, 0, 0, 0, s.location())

	start, err := types.FromHour(hour).On(date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSlotNotBusinessHour, err)
	}
	if !start.After(now) {
		return fmt.Errorf("%w: %s", ErrSlotInPast, slot)
	}

	lastDay := DateOnly(now).AddDate(0, 0, windowDays-1)
	if date.After(lastDay) {
		return fmt.Errorf("%w: %s is more than %d days ahead", ErrSlotOutsideWindow, slot, windowDays)
	}

	return nil
}

// Localize moves the slot date to midnight in the schedule location
func (s Schedule) Localize(slot Slot) Slot {
	y, m, d := slot.Date.Date()
	return Slot{Date: time.Date(y, m, d, 0, 0, 0, 0, s.location()), Time: slot.Time}
}

// In converts a moment to the schedule location
func (s Schedule) In(t time.Time) time.Time {
	return t.In(s.location())
}

func (s Schedule) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// ContainsSlot reports whether the sequence yields the slot
func ContainsSlot(slots iter.Seq[Slot], slot Slot) bool {
	for candidate := range slots {
		if candidate.Equal(slot) {
			return true
		}
	}
	return false
}

func occupied(serviceID int64, slot Slot, bookings []*Booking) bool {
	for _, b := range bookings {
		if b.Occupies(serviceID, slot) {
			return true
		}
	}
	return false
}
