package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SanitationBookingService/pkg/types"
)

func TestBookingStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, true},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, BookingStatus("in_progress").IsValid())
}

func TestBooking_TransitionTo(t *testing.T) {
	b := &Booking{ID: 1, Status: StatusConfirmed}

	require.NoError(t, b.TransitionTo(StatusCancelled))
	assert.Equal(t, StatusCancelled, b.Status)

	err := b.TransitionTo(StatusPending)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, StatusCancelled, b.Status)
}

func TestBooking_Occupies(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	slot := NewSlot(date, types.TimeString("10:00"))

	b := &Booking{ServiceID: 1, BookingDate: date, StartTime: "10:00", Status: StatusPending}
	assert.True(t, b.Occupies(1, slot))
	assert.False(t, b.Occupies(2, slot))
	assert.False(t, b.Occupies(1, NewSlot(date, "11:00")))

	b.Status = StatusCancelled
	assert.False(t, b.Occupies(1, slot))
}

func TestBooking_PaymentStates(t *testing.T) {
	b := &Booking{
		Status:  StatusPending,
		Payment: Payment{Method: PaymentTransfer, CardKind: CardNone, Status: PaymentPending},
	}
	assert.True(t, b.IsPendingTransfer())
	assert.False(t, b.IsAwaitingReconfirmation())

	b.Payment.Status = PaymentApproved
	assert.False(t, b.IsPendingTransfer())
	assert.True(t, b.IsAwaitingReconfirmation())
}

func TestSlot_Equal(t *testing.T) {
	morning := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	midnight := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, Slot{Date: morning, Time: "10:00"}.Equal(NewSlot(midnight, "10:00")))
	assert.False(t, NewSlot(midnight, "10:00").Equal(NewSlot(midnight.AddDate(0, 0, 1), "10:00")))
	assert.Equal(t, "2025-03-10 10:00", NewSlot(morning, "10:00").String())
}
