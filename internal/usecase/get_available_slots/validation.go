package get_available_slots

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.LookaheadDays < 0 {
		return fmt.Errorf("%w: lookahead days must not be negative", ErrInvalidInput)
	}

	return nil
}

// lookaheadDays применяет значение по умолчанию и верхнюю границу окна
func lookaheadDays(requested, defaultDays, maxDays int) int {
	if requested == 0 {
		return defaultDays
	}
	if requested > maxDays {
		return maxDays
	}
	return requested
}
