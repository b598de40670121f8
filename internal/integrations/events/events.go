package events

import (
	"time"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
)

// Routing keys событий бронирований
const (
	RKBookingCreated     = "booking.created"
	RKBookingConfirmed   = "booking.confirmed"
	RKBookingCancelled   = "booking.cancelled"
	RKBookingRescheduled = "booking.rescheduled"
	RKPaymentApproved    = "payment.approved"
	RKPaymentRejected    = "payment.rejected"
)

// BookingEvent тело сообщения о смене состояния бронирования
type BookingEvent struct {
	RoutingKey    string    `json:"-"`
	BookingID     int64     `json:"bookingId"`
	ServiceID     int64     `json:"serviceId"`
	ClientID      int64     `json:"clientId"`
	BookingDate   string    `json:"bookingDate"`
	StartTime     string    `json:"startTime"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentStatus string    `json:"paymentStatus"`
	TotalPrice    string    `json:"totalPrice"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewBookingEvent снимок бронирования для публикации
func NewBookingEvent(routingKey string, b *domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		RoutingKey:    routingKey,
		BookingID:     b.ID,
		ServiceID:     b.ServiceID,
		ClientID:      b.ClientID,
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		Status:        string(b.Status),
		PaymentMethod: string(b.Payment.Method),
		PaymentStatus: string(b.Payment.Status),
		TotalPrice:    b.TotalPrice.StringFixed(2),
		OccurredAt:    at.UTC(),
	}
}
