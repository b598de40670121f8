package decide_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers"
	decidePayment "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/decide_payment"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgNotPendingTransfer = "бронирование не ожидает решения по переводу"
)

type Handler struct {
	useCase DecidePaymentUseCase
	logger  Logger
}

func NewHandler(useCase DecidePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/{bookingId}/decision
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/decision - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req DecisionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/decision - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if details := handlers.ValidateStruct(req); details != nil {
		h.logger.Warn("POST /admin/bookings/{id}/decision - Validation failed: %v", details)
		handlers.RespondValidationError(w, msgInvalidRequestBody, details)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, decidePayment.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/decision - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, decidePayment.ErrNotPendingTransfer):
			h.logger.Warn("POST /admin/bookings/{id}/decision - Not pending transfer: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgNotPendingTransfer)

		case errors.Is(err, decidePayment.ErrInvalidInput):
			h.logger.Warn("POST /admin/bookings/{id}/decision - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /admin/bookings/{id}/decision - Failed to decide: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/decision - Decision applied: booking_id=%d, decision=%s, status=%s",
		bookingID, req.Decision, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
