package decide_payment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: decide_payment: booking not found", domain.ErrNotFound)

	// ErrNotPendingTransfer возвращается, когда бронирование не ждёт решения по переводу
	ErrNotPendingTransfer = fmt.Errorf("%w: decide_payment: booking has no pending transfer", domain.ErrInvalidState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: decide_payment: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("decide_payment: internal error")
)
