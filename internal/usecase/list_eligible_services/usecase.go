package list_eligible_services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/client"
)

// UseCase use case для получения услуг, доступных клиенту
type UseCase struct {
	serviceRepo ServiceRepository
	clientRepo  ClientRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(serviceRepo ServiceRepository, clientRepo ClientRepository, logger Logger) *UseCase {
	return &UseCase{
		serviceRepo: serviceRepo,
		clientRepo:  clientRepo,
		logger:      logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	client, err := uc.resolveClient(ctx, req)
	if err != nil {
		return nil, err
	}

	country := ""
	if client != nil {
		country = client.Country
	}

	catalog, err := uc.serviceRepo.List(ctx, country)
	if err != nil {
		uc.logger.Error("ListEligibleServices: failed to list catalog for country=%q: %v", country, err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	eligible := domain.EligibleServices(catalog, client)

	uc.logger.Info("ListEligibleServices: %d of %d services eligible (country=%q)", len(eligible), len(catalog), country)

	resp := &Response{Services: make([]Service, 0, len(eligible))}
	for _, s := range eligible {
		regions := s.CoverageRegions
		if regions == nil {
			regions = []string{}
		}
		resp.Services = append(resp.Services, Service{
			ID:              s.ID,
			Country:         s.Country,
			CoverageRegions: regions,
			Name:            s.Name,
			Price:           s.Price.StringFixed(2),
			DurationMinutes: s.DurationMinutes,
		})
	}

	return resp, nil
}

// resolveClient возвращает nil для публичного просмотра
func (uc *UseCase) resolveClient(ctx context.Context, req *Request) (*domain.Client, error) {
	if req.ClientID != nil {
		if *req.ClientID <= 0 {
			return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
		}
		client, err := uc.clientRepo.GetByID(ctx, *req.ClientID)
		if err != nil {
			if errors.Is(err, clientRepo.ErrClientNotFound) {
				uc.logger.Warn("ListEligibleServices: client id=%d not found", *req.ClientID)
				return nil, ErrClientNotFound
			}
			uc.logger.Error("ListEligibleServices: failed to get client id=%d: %v", *req.ClientID, err)
			return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
		}
		return client, nil
	}

	country := strings.TrimSpace(req.Country)
	if country == "" {
		if req.Region != nil && strings.TrimSpace(*req.Region) != "" {
			return nil, fmt.Errorf("%w: region requires country", ErrInvalidInput)
		}
		return nil, nil
	}

	return &domain.Client{Country: country, Region: req.Region}, nil
}
