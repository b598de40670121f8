package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/booking"
	clientRepo "github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/client"
	serviceRepo "github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SanitationBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SanitationBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/slotlock"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/txmanager"
)

const operation = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	clientRepo   ClientRepository
	txManager    TransactionManager
	locker       SlotLocker
	publisher    EventPublisher
	metrics      Metrics
	schedule     domain.Schedule
	pricing      domain.Pricing
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	locker SlotLocker,
	publisher EventPublisher,
	metrics Metrics,
	schedule domain.Schedule,
	pricing domain.Pricing,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		clientRepo:   clientRepo,
		txManager:    txManager,
		locker:       locker,
		publisher:    publisher,
		metrics:      metrics,
		schedule:     schedule,
		pricing:      pricing,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости и вставка выполняются под блокировкой слота в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: client=%d, service=%d, date=%s, time=%s, payment=%s",
		req.ClientID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.Payment.Method)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	payment, status, err := paymentFromOutcome(req.Payment)
	if err != nil {
		return nil, err
	}

	// 2. Проверяем слот: рабочий час, не в прошлом, в пределах окна бронирования
	now := uc.schedule.In(uc.timeProvider.Now())
	slot := domain.Slot{Time: req.StartTime}
	if !req.Date.IsZero() {
		slot = uc.schedule.Localize(domain.NewSlot(req.Date, req.StartTime))
	}
	if err := uc.schedule.CheckSlot(slot, now, uc.schedule.MaxLookaheadDays); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем клиента
	client, err := uc.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateBooking: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Услуга должна быть доступна в стране и регионе клиента
	if !domain.IsEligible(service, client) {
		uc.logger.Warn("CreateBooking: service id=%d is not eligible for client id=%d (%s)",
			service.ID, client.ID, client.Country)
		return nil, ErrServiceNotEligible
	}

	// 6. Блокируем слот
	unlock, err := uc.locker.Lock(ctx, slotlock.Key(service.ID, slot.Date, slot.Time.String()))
	if err != nil {
		if errors.Is(err, slotlock.ErrLockTimeout) {
			uc.logger.Warn("CreateBooking: slot %s of service id=%d is locked", slot, service.ID)
			uc.metrics.IncSlotConflict(operation)
			return nil, ErrSlotLocked
		}
		uc.logger.Error("CreateBooking: failed to lock slot %s: %v", slot, err)
		return nil, fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
	}
	defer unlock()

	// Переменная для хранения результата
	var result *domain.Booking

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Активные бронирования услуги на эту дату (FOR UPDATE)
		bookings, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			ServiceID: ptr.Ptr(service.ID),
			StartDate: &slot.Date,
			EndDate:   &slot.Date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 7.2. Слот должен быть среди свободных
		if !domain.ContainsSlot(uc.schedule.AvailableSlots(service, bookings, uc.schedule.MaxLookaheadDays, now), slot) {
			uc.logger.Warn("CreateBooking: slot %s of service id=%d is taken", slot, service.ID)
			return ErrSlotNotAvailable
		}

		// 7.3. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			ServiceID:       service.ID,
			ClientID:        client.ID,
			ClientType:      client.ClientType,
			BookingDate:     slot.Date,
			StartTime:       slot.Time,
			DurationMinutes: uc.pricing.DurationMinutes(service.DurationMinutes, client.ClientType),
			TotalPrice:      uc.pricing.TotalPrice(service.Price, client.ClientType),
			Status:          status,
			Payment:         payment,
			ServiceName:     service.Name,
			Notes:           req.Notes,
		}

		// 7.4. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: slot %s taken concurrently: %v", slot, err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.IncSlotConflict(operation)
			return nil, err
		}
		// Параллельные транзакции так и не разошлись: слот разыгран другим запросом
		if errors.Is(err, txmanager.ErrRetriesExhausted) {
			uc.logger.Warn("CreateBooking: serialization retries exhausted for slot %s: %v", slot, err)
			uc.metrics.IncSlotConflict(operation)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s, payment=%s/%s",
		result.ID, result.Status, result.Payment.Method, result.Payment.Status)

	uc.metrics.IncBookingCreated(string(result.Payment.Method), string(result.ClientType))
	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.RKBookingCreated, result, uc.timeProvider.Now())); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return models.FromDomainBooking(result), nil
}
