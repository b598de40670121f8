package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/types"
)

// PaymentRequest результат платёжного шага
type PaymentRequest struct {
	Method   string  `json:"method" validate:"required,oneof=debit credit transfer"`
	ProofRef *string `json:"proofRef,omitempty" validate:"omitempty,max=255"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID   int64          `json:"serviceId" validate:"required,gt=0"`
	BookingDate string         `json:"bookingDate" validate:"required,date"` // "2025-03-10"
	StartTime   string         `json:"startTime" validate:"required,clock"`  // "10:00"
	Payment     PaymentRequest `json:"payment" validate:"required"`
	Notes       *string        `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:  clientID,
		ServiceID: r.ServiceID,
		Date:      bookingDate,
		StartTime: startTime,
		Payment: createBooking.PaymentOutcome{
			Method:   r.Payment.Method,
			ProofRef: r.Payment.ProofRef,
		},
		Notes: r.Notes,
	}, nil
}
