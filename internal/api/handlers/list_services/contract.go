package list_services

import (
	"context"

	listEligibleServices "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/list_eligible_services"
)

type ListServicesUseCase interface {
	Execute(ctx context.Context, req *listEligibleServices.Request) (*listEligibleServices.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
