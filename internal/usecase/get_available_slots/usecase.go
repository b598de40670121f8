package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/ptr"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	schedule     domain.Schedule
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	schedule domain.Schedule,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, days=%d", req.ServiceID, req.LookaheadDays)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	days := lookaheadDays(req.LookaheadDays, uc.schedule.LookaheadDays, uc.schedule.MaxLookaheadDays)
	now := uc.schedule.In(uc.timeProvider.Now())

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	resp := &Response{
		ServiceID:     service.ID,
		LookaheadDays: days,
		Slots:         []Slot{},
	}

	// Снятая с каталога услуга не бронируется
	if !service.Available {
		uc.logger.Info("GetAvailableSlots: service id=%d is not available", service.ID)
		return resp, nil
	}

	// 3. Получаем активные бронирования услуги в окне
	startDate := domain.DateOnly(now)
	endDate := startDate.AddDate(0, 0, days-1)
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		ServiceID: ptr.Ptr(service.ID),
		StartDate: &startDate,
		EndDate:   &endDate,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Вычисляем свободные слоты
	for slot := range uc.schedule.AvailableSlots(service, bookings, days, now) {
		resp.Slots = append(resp.Slots, Slot{
			Date: slot.Date.Format(domain.DateFormat),
			Time: slot.Time.String(),
		})
	}

	uc.logger.Info("GetAvailableSlots: %d free slots for service=%d over %d days (%d active bookings)",
		len(resp.Slots), service.ID, days, len(bookings))

	return resp, nil
}
