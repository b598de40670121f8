package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	BookingDate string `json:"bookingDate" validate:"required,date"` // "2025-03-11"
	StartTime   string `json:"startTime" validate:"required,clock"`  // "14:00"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID int64, clientID *int64) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID: bookingID,
		ClientID:  clientID,
		Date:      date,
		StartTime: startTime,
	}, nil
}
