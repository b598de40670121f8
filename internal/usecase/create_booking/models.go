package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SanitationBookingService/pkg/types"
)

// Способы оплаты, приходящие от платёжного шага
const (
	MethodDebit    = "debit"
	MethodCredit   = "credit"
	MethodTransfer = "transfer"
)

// PaymentOutcome результат платёжного шага: карта уже списана или перевод ждёт проверки
type PaymentOutcome struct {
	Method   string  // debit | credit | transfer
	ProofRef *string // номер квитанции перевода
}

// Request модель запроса на создание бронирования
type Request struct {
	ClientID  int64            // ID клиента
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	Payment   PaymentOutcome   // Результат оплаты
	Notes     *string          // Дополнительные заметки (опционально)
}
