package list_services

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SanitationBookingService/internal/api/middleware"
	listEligibleServices "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/list_eligible_services"
)

const (
	msgClientNotFound = "клиент не найден"
	msgInvalidQuery   = "регион можно указать только вместе со страной"
)

type Handler struct {
	useCase ListServicesUseCase
	logger  Logger
}

func NewHandler(useCase ListServicesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
// Query params: country, region (опционально). С X-Client-ID используются данные клиента
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &listEligibleServices.Request{
		ClientID: middleware.ClientIDRef(r.Context()),
		Country:  r.URL.Query().Get("country"),
	}
	if region := r.URL.Query().Get("region"); region != "" {
		req.Region = &region
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, listEligibleServices.ErrClientNotFound):
			h.logger.Warn("GET /services - Client not found: client_id=%d", *req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, listEligibleServices.ErrInvalidInput):
			h.logger.Warn("GET /services - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /services - Failed to list services: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services - Services listed: country=%q, count=%d", req.Country, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
