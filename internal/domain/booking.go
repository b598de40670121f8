package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SanitationBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// validTransitions is the booking state machine. pending -> pending is the reschedule
// of a booking that was not confirmed yet. cancelled is terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusPending},
	StatusConfirmed: {StatusCancelled, StatusPending},
	StatusCancelled: {},
}

// IsValid returns true if the status is a known booking status
func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo returns true if the state machine allows s -> target
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no transition leaves the status
func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// PaymentMethod how the booking is paid
type PaymentMethod string

const (
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// CardKind kind of card for card payments
type CardKind string

const (
	CardNone   CardKind = "none"
	CardDebit  CardKind = "debit"
	CardCredit CardKind = "credit"
)

// PaymentStatus result of payment processing
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// Payment payment record attached to a booking
type Payment struct {
	Method   PaymentMethod
	CardKind CardKind
	ProofRef *string // transfer receipt reference, stored as given
	Status   PaymentStatus
}

// Booking represents a service booking in the system
type Booking struct {
	ID              int64
	ServiceID       int64
	ClientID        int64
	ClientType      ClientType
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int             // booking-local, inflated for business clients
	TotalPrice      decimal.Decimal // amount charged, with the business surcharge applied
	Status          BookingStatus
	Payment         Payment
	TechnicianID    *int64

	// Denormalized data for history
	ServiceName string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// Slot returns the slot held by the booking
func (b *Booking) Slot() Slot {
	return Slot{Date: b.BookingDate, Time: b.StartTime}
}

// Occupies returns true if the booking is active and holds the slot of the service
func (b *Booking) Occupies(serviceID int64, slot Slot) bool {
	return b.IsActive() && b.ServiceID == serviceID && b.Slot().Equal(slot)
}

// IsPendingTransfer returns true if the booking waits for an admin decision on a transfer
func (b *Booking) IsPendingTransfer() bool {
	return b.Payment.Method == PaymentTransfer && b.Payment.Status == PaymentPending
}

// IsAwaitingReconfirmation returns true for a pending booking whose payment is already approved.
// Rescheduling a paid booking leaves it in this state.
func (b *Booking) IsAwaitingReconfirmation() bool {
	return b.Status == StatusPending && b.Payment.Status == PaymentApproved
}

// TransitionTo moves the booking to the next status or fails with ErrInvalidState
func (b *Booking) TransitionTo(next BookingStatus) error {
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: booking %d cannot move from %s to %s", ErrInvalidState, b.ID, b.Status, next)
	}
	b.Status = next
	return nil
}

// BookingsFilter filter for booking lists
type BookingsFilter struct {
	ServiceID       *int64
	ClientID        *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	PaymentMethod   *PaymentMethod
	PaymentStatus   *PaymentStatus
	IncludeInactive bool // include cancelled bookings
}
