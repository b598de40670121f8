package assign_technician

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SanitationBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgCannotAssign       = "нельзя назначить техника на отменённое бронирование"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/bookings/{bookingId}/technician
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /admin/bookings/{id}/technician - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req AssignTechnicianRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/bookings/{id}/technician - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if details := handlers.ValidateStruct(req); details != nil {
		h.logger.Warn("PUT /admin/bookings/{id}/technician - Validation failed: %v", details)
		handlers.RespondValidationError(w, msgInvalidRequestBody, details)
		return
	}

	result, err := h.service.AssignTechnician(r.Context(), bookingID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PUT /admin/bookings/{id}/technician - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCannotAssign):
			h.logger.Warn("PUT /admin/bookings/{id}/technician - Cannot assign: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgCannotAssign)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PUT /admin/bookings/{id}/technician - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /admin/bookings/{id}/technician - Failed to assign: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/bookings/{id}/technician - Technician assigned: booking_id=%d, technician_id=%d",
		bookingID, req.TechnicianID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
