package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SanitationBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SanitationBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/ptr"
)

// Service сервис для работы с бронированиями: чтение, отмена и назначение техника
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент видит только свои бронирования, администратор (clientID == nil) видит любые
func (s *Service) GetByID(ctx context.Context, id int64, clientID *int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for client=%s", id, formatClient(clientID))

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := checkOwner(booking, clientID); err != nil {
		s.logger.Warn("GetByID: access denied for client=%s to booking id=%d", formatClient(clientID), id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента, включая отменённые.
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	filter := domain.BookingsFilter{
		ClientID:        ptr.Ptr(req.ClientID),
		IncludeInactive: true,
	}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// ListPendingTransfers очередь проверки переводов: ожидающие решения бронирования, сначала старые
func (s *Service) ListPendingTransfers(ctx context.Context) (*models.BookingListResponse, error) {
	s.logger.Info("ListPendingTransfers: fetching review queue")

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		Status:        ptr.Ptr(domain.StatusPending),
		PaymentMethod: ptr.Ptr(domain.PaymentTransfer),
		PaymentStatus: ptr.Ptr(domain.PaymentPending),
	})
	if err != nil {
		s.logger.Error("ListPendingTransfers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPendingTransfers - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPendingTransfers: %d bookings awaiting review", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование.
// Клиент может отменить только своё бронирование, администратор (ClientID == nil) любое.
// Оплата не изменяется, слот освобождается
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by client=%s", bookingID, formatClient(req.ClientID))

	reason := strings.TrimSpace(req.CancellationReason)
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if err := checkOwner(booking, req.ClientID); err != nil {
			s.logger.Warn("Cancel: access denied for client=%s to booking id=%d", formatClient(req.ClientID), bookingID)
			return err
		}

		if err := booking.TransitionTo(domain.StatusCancelled); err != nil {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return fmt.Errorf("%w: %v", ErrCannotCancel, err)
		}

		booking.CancelledAt = ptr.Ptr(s.timeProvider.Now())
		if reason != "" {
			booking.CancellationReason = ptr.Ptr(reason)
		}

		if err := s.update(txCtx, "Cancel", booking); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.RKBookingCancelled, result)

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return models.FromDomainBooking(result), nil
}

// AssignTechnician назначает техника на активное бронирование
func (s *Service) AssignTechnician(ctx context.Context, bookingID int64, req *models.AssignTechnicianRequest) (*models.BookingResponse, error) {
	s.logger.Info("AssignTechnician: booking id=%d, technician=%d", bookingID, req.TechnicianID)

	if req.TechnicianID <= 0 {
		return nil, fmt.Errorf("%w: technicianId must be positive", ErrInvalidInput)
	}

	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "AssignTechnician", bookingID)
		if err != nil {
			return err
		}

		if !booking.IsActive() {
			s.logger.Warn("AssignTechnician: booking id=%d is cancelled", bookingID)
			return ErrCannotAssign
		}

		booking.TechnicianID = ptr.Ptr(req.TechnicianID)

		if err := s.update(txCtx, "AssignTechnician", booking); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AssignTechnician: technician=%d assigned to booking id=%d", req.TechnicianID, bookingID)
	return models.FromDomainBooking(result), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) update(ctx context.Context, op string, booking *domain.Booking) error {
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found during update", op, booking.ID)
			return ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return nil
}

// publish не прерывает операцию: бронирование уже сохранено
func (s *Service) publish(ctx context.Context, routingKey string, booking *domain.Booking) {
	event := events.NewBookingEvent(routingKey, booking, s.timeProvider.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish %s for booking id=%d: %v", routingKey, booking.ID, err)
	}
}

// checkOwner проверяет, что клиент владеет бронированием. nil означает администратора
func checkOwner(booking *domain.Booking, clientID *int64) error {
	if clientID == nil || booking.ClientID == *clientID {
		return nil
	}
	return ErrAccessDenied
}

func formatClient(clientID *int64) string {
	if clientID == nil {
		return "admin"
	}
	return fmt.Sprintf("%d", *clientID)
}
