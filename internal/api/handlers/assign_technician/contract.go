package assign_technician

import (
	"context"

	"github.com/m04kA/SMC-SanitationBookingService/internal/service/bookings/models"
)

type BookingService interface {
	AssignTechnician(ctx context.Context, bookingID int64, req *models.AssignTechnicianRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
