package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SanitationBookingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID int64            // ID бронирования
	ClientID  *int64           // ID клиента-владельца, nil для администратора
	Date      time.Time        // Новая дата
	StartTime types.TimeString // Новое время начала
}
