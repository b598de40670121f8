package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SanitationBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SanitationBookingService/internal/service/bookings/models"
)

// UseCase use case повторного подтверждения перенесённого оплаченного бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переводит pending бронирование с одобренной оплатой в confirmed
func (uc *UseCase) Execute(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	uc.logger.Info("ConfirmBooking: booking=%d", bookingID)

	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ConfirmBooking: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmBooking: failed to get booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if !booking.IsAwaitingReconfirmation() {
			uc.logger.Warn("ConfirmBooking: booking id=%d is %s with payment %s",
				booking.ID, booking.Status, booking.Payment.Status)
			return ErrNotAwaitingConfirmation
		}

		if err := booking.TransitionTo(domain.StatusConfirmed); err != nil {
			return fmt.Errorf("%w: %v", ErrNotAwaitingConfirmation, err)
		}

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("ConfirmBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmBooking: booking id=%d confirmed", result.ID)

	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.RKBookingConfirmed, result, uc.timeProvider.Now())); err != nil {
		uc.logger.Error("ConfirmBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return models.FromDomainBooking(result), nil
}
