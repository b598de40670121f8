package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
)

// Store хранилище в памяти процесса: каталог, клиенты и бронирования
type Store struct {
	mu            sync.RWMutex
	services      map[int64]*domain.Service
	clients       map[int64]*domain.Client
	bookings      map[int64]*domain.Booking
	nextBookingID int64
	now           func() time.Time
	tx            *TxManager
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		services: make(map[int64]*domain.Service),
		clients:  make(map[int64]*domain.Client),
		bookings: make(map[int64]*domain.Booking),
		now:      time.Now,
		tx:       &TxManager{},
	}
}

// AddService добавляет или заменяет услугу каталога
func (s *Store) AddService(service *domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *service
	cp.CoverageRegions = append([]string(nil), service.CoverageRegions...)
	s.services[service.ID] = &cp
}

// AddClient добавляет или заменяет клиента
func (s *Store) AddClient(client *domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *client
	s.clients[client.ID] = &cp
}

// Services репозиторий услуг поверх хранилища
func (s *Store) Services() *ServiceRepository {
	return &ServiceRepository{store: s}
}

// Clients репозиторий клиентов поверх хранилища
func (s *Store) Clients() *ClientRepository {
	return &ClientRepository{store: s}
}

// Bookings репозиторий бронирований поверх хранилища
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// TxManager менеджер транзакций, сериализующий изменения хранилища
func (s *Store) TxManager() *TxManager {
	return s.tx
}

type seedFile struct {
	Services []struct {
		ID              int64    `toml:"id"`
		Country         string   `toml:"country"`
		CoverageRegions []string `toml:"coverage_regions"`
		Name            string   `toml:"name"`
		Price           string   `toml:"price"`
		DurationMinutes int      `toml:"duration_minutes"`
		Available       bool     `toml:"available"`
	} `toml:"services"`
	Clients []struct {
		ID         int64   `toml:"id"`
		Name       string  `toml:"name"`
		Country    string  `toml:"country"`
		Region     *string `toml:"region"`
		ClientType string  `toml:"client_type"`
	} `toml:"clients"`
}

// LoadSeed заполняет хранилище каталогом и клиентами из toml файла
func (s *Store) LoadSeed(path string) error {
	var seed seedFile
	if _, err := toml.DecodeFile(path, &seed); err != nil {
		return fmt.Errorf("decode seed file %s: %w", path, err)
	}

	now := s.now()
	for _, sv := range seed.Services {
		price, err := decimal.NewFromString(sv.Price)
		if err != nil {
			return fmt.Errorf("seed service %d: invalid price %q: %w", sv.ID, sv.Price, err)
		}
		service := &domain.Service{
			ID:              sv.ID,
			Country:         sv.Country,
			CoverageRegions: sv.CoverageRegions,
			Name:            sv.Name,
			Price:           price,
			DurationMinutes: sv.DurationMinutes,
			Available:       sv.Available,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if !service.IsValid() {
			return fmt.Errorf("seed service %d: price and duration must be positive", sv.ID)
		}
		s.AddService(service)
	}

	for _, c := range seed.Clients {
		clientType := domain.ClientType(c.ClientType)
		if !clientType.IsValid() {
			return fmt.Errorf("seed client %d: unknown client_type %q", c.ID, c.ClientType)
		}
		s.AddClient(&domain.Client{
			ID:         c.ID,
			Name:       c.Name,
			Country:    c.Country,
			Region:     c.Region,
			ClientType: clientType,
			CreatedAt:  now,
		})
	}

	return nil
}

type txKey struct{}

// TxManager выполняет функции строго по одной. Повторный вход с тем же контекстом не блокируется
type TxManager struct {
	mu sync.Mutex
}

// DoSerializable выполняет fn под общей блокировкой изменений
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}
