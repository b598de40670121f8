package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	"github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/service"
)

// Ошибки совпадают с ошибками postgres-репозиториев, чтобы слои выше не различали драйверы

// ServiceRepository каталог услуг в памяти
type ServiceRepository struct {
	store *Store
}

// GetByID получает услугу по ID
func (r *ServiceRepository) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.services[id]
	if !ok {
		return nil, service.ErrServiceNotFound
	}
	cp := *s
	return &cp, nil
}

// List возвращает каталог, упорядоченный по стране, названию и ID
func (r *ServiceRepository) List(_ context.Context, country string) ([]*domain.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	services := make([]*domain.Service, 0, len(r.store.services))
	for _, s := range r.store.services {
		if country != "" && s.Country != country {
			continue
		}
		cp := *s
		services = append(services, &cp)
	}

	sort.Slice(services, func(i, j int) bool {
		a, b := services[i], services[j]
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	return services, nil
}

// ClientRepository клиенты в памяти
type ClientRepository struct {
	store *Store
}

// GetByID получает клиента по ID
func (r *ClientRepository) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.clients[id]
	if !ok {
		return nil, client.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

// BookingRepository бронирования в памяти
type BookingRepository struct {
	store *Store
}

// Create сохраняет бронирование, проверяя уникальность активного слота
func (r *BookingRepository) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.slotTakenLocked(b) {
		return nil, fmt.Errorf("%w: Create - slot %s of service %d", booking.ErrSlotNotAvailable, b.Slot(), b.ServiceID)
	}

	r.store.nextBookingID++
	now := r.store.now()
	b.ID = r.store.nextBookingID
	b.CreatedAt = now
	b.UpdatedAt = now

	cp := *b
	r.store.bookings[b.ID] = &cp

	return b, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

// List получает бронирования по фильтру с той же сортировкой, что и postgres-репозиторий
func (r *BookingRepository) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	bookings := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if !matches(b, filter) {
			continue
		}
		cp := *b
		bookings = append(bookings, &cp)
	}

	switch {
	case filter.PaymentStatus != nil && *filter.PaymentStatus == domain.PaymentPending:
		sort.Slice(bookings, func(i, j int) bool {
			if !bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
				return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
			}
			return bookings[i].ID < bookings[j].ID
		})
	case filter.ClientID != nil:
		sort.Slice(bookings, func(i, j int) bool { return slotBefore(bookings[j], bookings[i]) })
	default:
		sort.Slice(bookings, func(i, j int) bool { return slotBefore(bookings[i], bookings[j]) })
	}

	return bookings, nil
}

// Update сохраняет изменяемые поля бронирования
func (r *BookingRepository) Update(_ context.Context, b *domain.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.bookings[b.ID]
	if !ok {
		return booking.ErrBookingNotFound
	}

	if b.IsActive() && r.slotTakenLocked(b) {
		return fmt.Errorf("%w: Update - slot %s of service %d", booking.ErrSlotNotAvailable, b.Slot(), b.ServiceID)
	}

	stored.BookingDate = b.BookingDate
	stored.StartTime = b.StartTime
	stored.Status = b.Status
	stored.Payment.Status = b.Payment.Status
	stored.TechnicianID = b.TechnicianID
	stored.CancellationReason = b.CancellationReason
	stored.CancelledAt = b.CancelledAt
	stored.UpdatedAt = r.store.now()
	b.UpdatedAt = stored.UpdatedAt

	return nil
}

// slotTakenLocked повторяет частичный уникальный индекс (service_id, booking_date, start_time) WHERE status <> 'cancelled'
func (r *BookingRepository) slotTakenLocked(b *domain.Booking) bool {
	for id, other := range r.store.bookings {
		if id == b.ID {
			continue
		}
		if other.Occupies(b.ServiceID, b.Slot()) {
			return true
		}
	}
	return false
}

func matches(b *domain.Booking, f domain.BookingsFilter) bool {
	if f.ServiceID != nil && b.ServiceID != *f.ServiceID {
		return false
	}
	if f.ClientID != nil && b.ClientID != *f.ClientID {
		return false
	}
	date := domain.DateOnly(b.BookingDate)
	if f.StartDate != nil && date.Before(domain.DateOnly(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && date.After(domain.DateOnly(*f.EndDate)) {
		return false
	}
	if f.Status != nil {
		if b.Status != *f.Status {
			return false
		}
	} else if !f.IncludeInactive && !b.IsActive() {
		return false
	}
	if f.PaymentMethod != nil && b.Payment.Method != *f.PaymentMethod {
		return false
	}
	if f.PaymentStatus != nil && b.Payment.Status != *f.PaymentStatus {
		return false
	}
	return true
}

func slotBefore(a, b *domain.Booking) bool {
	da, db := domain.DateOnly(a.BookingDate), domain.DateOnly(b.BookingDate)
	if !da.Equal(db) {
		return da.Before(db)
	}
	if a.StartTime != b.StartTime {
		return a.StartTime.IsBefore(b.StartTime)
	}
	return a.ID < b.ID
}
