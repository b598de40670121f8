package decide_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SanitationBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SanitationBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/ptr"
)

// rejectionReason причина отмены при отклонённом переводе
const rejectionReason = "transfer payment rejected"

// UseCase use case решения администратора по банковскому переводу
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute применяет решение к бронированию с переводом, ожидающим проверки.
// approve: оплата approved, бронирование confirmed. reject: оплата rejected, бронирование cancelled.
// Повторное решение возвращает ErrNotPendingTransfer без изменения данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("DecidePayment: booking=%d, decision=%s", req.BookingID, req.Decision)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.Decision != DecisionApprove && req.Decision != DecisionReject {
		return nil, fmt.Errorf("%w: unknown decision %q", ErrInvalidInput, req.Decision)
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("DecidePayment: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("DecidePayment: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if !booking.IsPendingTransfer() || booking.Status != domain.StatusPending {
			uc.logger.Warn("DecidePayment: booking id=%d is not awaiting a transfer decision (status=%s, payment=%s/%s)",
				booking.ID, booking.Status, booking.Payment.Method, booking.Payment.Status)
			return ErrNotPendingTransfer
		}

		if err := apply(booking, req.Decision, uc.timeProvider); err != nil {
			return fmt.Errorf("%w: %v", ErrNotPendingTransfer, err)
		}

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("DecidePayment: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("DecidePayment: booking id=%d is %s, payment %s", result.ID, result.Status, result.Payment.Status)

	uc.metrics.IncAdminDecision(req.Decision)

	routingKey := events.RKPaymentApproved
	if req.Decision == DecisionReject {
		routingKey = events.RKPaymentRejected
	}
	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(routingKey, result, uc.timeProvider.Now())); err != nil {
		uc.logger.Error("DecidePayment: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return models.FromDomainBooking(result), nil
}

func apply(booking *domain.Booking, decision string, clock TimeProvider) error {
	if decision == DecisionApprove {
		if err := booking.TransitionTo(domain.StatusConfirmed); err != nil {
			return err
		}
		booking.Payment.Status = domain.PaymentApproved
		return nil
	}

	if err := booking.TransitionTo(domain.StatusCancelled); err != nil {
		return err
	}
	booking.Payment.Status = domain.PaymentRejected
	booking.CancelledAt = ptr.Ptr(clock.Now())
	booking.CancellationReason = ptr.Ptr(rejectionReason)
	return nil
}
