package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
)

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = fmt.Errorf("%w: create_booking: client not found", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: create_booking: service not found", domain.ErrNotFound)

	// ErrServiceNotEligible возвращается, когда услуга недоступна клиенту (страна, регион, снята с каталога)
	ErrServiceNotEligible = fmt.Errorf("%w: create_booking: service is not eligible for the client", domain.ErrValidation)

	// ErrInvalidPayment возвращается при неизвестном способе оплаты или переводе без подтверждения
	ErrInvalidPayment = fmt.Errorf("%w: create_booking: invalid payment outcome", domain.ErrValidation)

	// ErrSlotNotAvailable возвращается, когда слот уже занят активным бронированием
	ErrSlotNotAvailable = fmt.Errorf("%w: create_booking: slot is not available", domain.ErrConflict)

	// ErrSlotLocked возвращается, когда слот удерживает параллельный запрос
	ErrSlotLocked = fmt.Errorf("%w: create_booking: slot is being booked by another request", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
