package service

import (
	"github.com/m04kA/SMC-SanitationBookingService/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
