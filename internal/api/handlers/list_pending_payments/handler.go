package list_pending_payments

import (
	"net/http"

	"github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers"
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

// Handle GET /api/v1/admin/payments/pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListPendingTransfers(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/payments/pending - Failed to list pending transfers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/payments/pending - Review queue retrieved: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
