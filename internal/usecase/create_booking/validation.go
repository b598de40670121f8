package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса до обращения к хранилищу
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if _, _, err := paymentFromOutcome(req.Payment); err != nil {
		return err
	}

	return nil
}

// paymentFromOutcome переводит результат оплаты в запись оплаты и начальный статус бронирования.
// Карта списана сразу, поэтому бронирование подтверждено; перевод ждёт решения администратора
func paymentFromOutcome(outcome PaymentOutcome) (domain.Payment, domain.BookingStatus, error) {
	switch outcome.Method {
	case MethodDebit, MethodCredit:
		return domain.Payment{
			Method:   domain.PaymentCard,
			CardKind: domain.CardKind(outcome.Method),
			Status:   domain.PaymentApproved,
		}, domain.StatusConfirmed, nil

	case MethodTransfer:
		if outcome.ProofRef == nil || strings.TrimSpace(*outcome.ProofRef) == "" {
			return domain.Payment{}, "", fmt.Errorf("%w: transfer requires a proof reference", ErrInvalidPayment)
		}
		if utf8.RuneCountInString(*outcome.ProofRef) > domain.MaxProofRefLength {
			return domain.Payment{}, "", fmt.Errorf("%w: proof reference exceeds %d characters", ErrInvalidPayment, domain.MaxProofRefLength)
		}
		ref := *outcome.ProofRef
		return domain.Payment{
			Method:   domain.PaymentTransfer,
			CardKind: domain.CardNone,
			ProofRef: &ref,
			Status:   domain.PaymentPending,
		}, domain.StatusPending, nil

	default:
		return domain.Payment{}, "", fmt.Errorf("%w: unknown payment method %q", ErrInvalidPayment, outcome.Method)
	}
}
