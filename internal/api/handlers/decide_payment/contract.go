package decide_payment

import (
	"context"

	"github.com/m04kA/SMC-SanitationBookingService/internal/service/bookings/models"
	decidePayment "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/decide_payment"
)

type DecidePaymentUseCase interface {
	Execute(ctx context.Context, req *decidePayment.Request) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
