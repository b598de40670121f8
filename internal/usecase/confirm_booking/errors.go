package confirm_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: confirm_booking: booking not found", domain.ErrNotFound)

	// ErrNotAwaitingConfirmation возвращается, когда бронирование не в состоянии pending с одобренной оплатой
	ErrNotAwaitingConfirmation = fmt.Errorf("%w: confirm_booking: booking is not awaiting confirmation", domain.ErrInvalidState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: confirm_booking: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
