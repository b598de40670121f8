package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому клиенту
	ErrAccessDenied = fmt.Errorf("%w: access denied", domain.ErrForbidden)

	// ErrCannotCancel возвращается, когда бронирование уже отменено
	ErrCannotCancel = fmt.Errorf("%w: booking cannot be cancelled", domain.ErrInvalidState)

	// ErrCannotAssign возвращается при назначении техника на отменённое бронирование
	ErrCannotAssign = fmt.Errorf("%w: technician cannot be assigned to a cancelled booking", domain.ErrInvalidState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
