package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SanitationBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "запрос не прошёл проверку"
	msgMissingClientID    = "отсутствует ID клиента"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgSlotLocked         = "слот бронируется другим запросом, попробуйте позже"
	msgClientNotFound     = "клиент не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceNotEligible = "услуга недоступна в вашей стране или регионе"
	msgInvalidPayment     = "для перевода требуется номер квитанции"
	msgInvalidSlot        = "некорректный временной слот"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if details := handlers.ValidateStruct(req); details != nil {
		h.logger.Warn("POST /bookings - Validation failed: client_id=%d, details=%v", clientID, details)
		handlers.RespondValidationError(w, msgValidationFailed, details)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: client_id=%d, service_id=%d, slot=%s %s",
				clientID, req.ServiceID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrSlotLocked):
			h.logger.Warn("POST /bookings - Slot locked: client_id=%d, service_id=%d", clientID, req.ServiceID)
			handlers.RespondConflict(w, msgSlotLocked)

		case errors.Is(err, createBooking.ErrClientNotFound):
			h.logger.Warn("POST /bookings - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceNotEligible):
			h.logger.Warn("POST /bookings - Service not eligible: client_id=%d, service_id=%d", clientID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotEligible)

		case errors.Is(err, createBooking.ErrInvalidPayment):
			h.logger.Warn("POST /bookings - Invalid payment: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidPayment)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /bookings - Invalid slot: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, service_id=%d, error=%v",
				clientID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, client_id=%d, status=%s",
		result.ID, clientID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
