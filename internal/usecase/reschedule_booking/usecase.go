package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SanitationBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SanitationBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/slotlock"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/txmanager"
)

const operation = "reschedule"

// UseCase use case для переноса бронирования на другой слот
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	txManager    TransactionManager
	locker       SlotLocker
	publisher    EventPublisher
	metrics      Metrics
	schedule     domain.Schedule
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	locker SlotLocker,
	publisher EventPublisher,
	metrics Metrics,
	schedule domain.Schedule,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		txManager:    txManager,
		locker:       locker,
		publisher:    publisher,
		metrics:      metrics,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переносит бронирование. Статус сбрасывается в pending, оплата не меняется:
// перенос оплаченного бронирования оставляет его в ожидании повторного подтверждения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, date=%s, time=%s",
		req.BookingID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных и нового слота
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	now := uc.schedule.In(uc.timeProvider.Now())
	slot := domain.Slot{Time: req.StartTime}
	if !req.Date.IsZero() {
		slot = uc.schedule.Localize(domain.NewSlot(req.Date, req.StartTime))
	}
	if err := uc.schedule.CheckSlot(slot, now, uc.schedule.MaxLookaheadDays); err != nil {
		uc.logger.Warn("RescheduleBooking: slot validation failed: %v", err)
		return nil, err
	}

	// 2. Предварительная проверка бронирования вне транзакции, чтобы узнать услугу для ключа блокировки
	current, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkReschedulable(current, req.ClientID, slot); err != nil {
		return nil, err
	}

	service, err := uc.serviceRepo.GetByID(ctx, current.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("RescheduleBooking: service id=%d not found", current.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get service id=%d: %v", current.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Блокируем новый слот
	unlock, err := uc.locker.Lock(ctx, slotlock.Key(service.ID, slot.Date, slot.Time.String()))
	if err != nil {
		if errors.Is(err, slotlock.ErrLockTimeout) {
			uc.logger.Warn("RescheduleBooking: slot %s of service id=%d is locked", slot, service.ID)
			uc.metrics.IncSlotConflict(operation)
			return nil, ErrSlotLocked
		}
		uc.logger.Error("RescheduleBooking: failed to lock slot %s: %v", slot, err)
		return nil, fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
	}
	defer unlock()

	var (
		result         *domain.Booking
		previousStatus domain.BookingStatus
	)

	// 4. Перечитываем бронирование и занимаем слот в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.getBooking(txCtx, req.BookingID)
		if err != nil {
			return err
		}
		if err := uc.checkReschedulable(booking, req.ClientID, slot); err != nil {
			return err
		}

		bookings, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			ServiceID: ptr.Ptr(service.ID),
			StartDate: &slot.Date,
			EndDate:   &slot.Date,
		})
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		candidates := uc.candidates(service, booking, bookings, now)
		if !domain.ContainsSlot(candidates, slot) {
			uc.logger.Warn("RescheduleBooking: slot %s of service id=%d is taken", slot, service.ID)
			return ErrSlotNotAvailable
		}

		previousStatus = booking.Status
		if err := booking.TransitionTo(domain.StatusPending); err != nil {
			return fmt.Errorf("%w: %v", ErrCannotReschedule, err)
		}
		booking.BookingDate = slot.Date
		booking.StartTime = slot.Time

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("RescheduleBooking: slot %s taken concurrently: %v", slot, err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("RescheduleBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.IncSlotConflict(operation)
			return nil, err
		}
		if errors.Is(err, txmanager.ErrRetriesExhausted) {
			uc.logger.Warn("RescheduleBooking: serialization retries exhausted for slot %s: %v", slot, err)
			uc.metrics.IncSlotConflict(operation)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s, status %s -> %s, payment=%s",
		result.ID, slot, previousStatus, result.Status, result.Payment.Status)

	uc.metrics.IncReschedule(string(previousStatus))
	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.RKBookingRescheduled, result, uc.timeProvider.Now())); err != nil {
		uc.logger.Error("RescheduleBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return models.FromDomainBooking(result), nil
}

// candidates свободные слоты без учёта самого бронирования, за вычетом его текущего слота
func (uc *UseCase) candidates(service *domain.Service, booking *domain.Booking, bookings []*domain.Booking, now time.Time) iter.Seq[domain.Slot] {
	others := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != booking.ID {
			others = append(others, b)
		}
	}

	current := booking.Slot()
	return func(yield func(domain.Slot) bool) {
		for slot := range uc.schedule.AvailableSlots(service, others, uc.schedule.MaxLookaheadDays, now) {
			if slot.Equal(current) {
				continue
			}
			if !yield(slot) {
				return
			}
		}
	}
}

func (uc *UseCase) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}
	return booking, nil
}

// checkReschedulable владелец, статус и отличие от текущего слота
func (uc *UseCase) checkReschedulable(booking *domain.Booking, clientID *int64, slot domain.Slot) error {
	if clientID != nil && booking.ClientID != *clientID {
		uc.logger.Warn("RescheduleBooking: client=%d is not the owner of booking id=%d", *clientID, booking.ID)
		return ErrAccessDenied
	}

	if !booking.Status.CanTransitionTo(domain.StatusPending) {
		uc.logger.Warn("RescheduleBooking: booking id=%d cannot be rescheduled, status=%s", booking.ID, booking.Status)
		return ErrCannotReschedule
	}

	if booking.Slot().Equal(slot) {
		uc.logger.Warn("RescheduleBooking: booking id=%d already holds slot %s", booking.ID, slot)
		return ErrSameSlot
	}

	return nil
}
