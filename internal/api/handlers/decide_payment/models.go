package decide_payment

import (
	decidePayment "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/decide_payment"
)

// DecisionRequest HTTP request model
type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *DecisionRequest) ToUseCaseRequest(bookingID int64) *decidePayment.Request {
	return &decidePayment.Request{
		BookingID: bookingID,
		Decision:  r.Decision,
	}
}
