package get_available_slots

import (
	"strconv"

	getAvailableSlots "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/get_available_slots"
)

// ToUseCaseRequest создает запрос use case из параметров. Пустой days означает окно по умолчанию
func ToUseCaseRequest(serviceID int64, daysStr string) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{ServiceID: serviceID}
	if daysStr == "" {
		return req, nil
	}

	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		return nil, strconv.ErrSyntax
	}
	req.LookaheadDays = days

	return req, nil
}
