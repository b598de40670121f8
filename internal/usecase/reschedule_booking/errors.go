package reschedule_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: reschedule_booking: booking not found", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга бронирования пропала из каталога
	ErrServiceNotFound = fmt.Errorf("%w: reschedule_booking: service not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда клиент переносит чужое бронирование
	ErrAccessDenied = fmt.Errorf("%w: reschedule_booking: booking belongs to another client", domain.ErrForbidden)

	// ErrCannotReschedule возвращается для отменённого бронирования
	ErrCannotReschedule = fmt.Errorf("%w: reschedule_booking: booking cannot be rescheduled", domain.ErrInvalidState)

	// ErrSameSlot возвращается, когда новый слот совпадает с текущим
	ErrSameSlot = fmt.Errorf("%w: reschedule_booking: new slot equals the current one", domain.ErrValidation)

	// ErrSlotNotAvailable возвращается, когда новый слот занят
	ErrSlotNotAvailable = fmt.Errorf("%w: reschedule_booking: slot is not available", domain.ErrConflict)

	// ErrSlotLocked возвращается, когда слот удерживает параллельный запрос
	ErrSlotLocked = fmt.Errorf("%w: reschedule_booking: slot is being booked by another request", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: reschedule_booking: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
