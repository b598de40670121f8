package assign_technician

import (
	"github.com/m04kA/SMC-SanitationBookingService/internal/service/bookings/models"
)

// AssignTechnicianRequest HTTP request model
type AssignTechnicianRequest struct {
	TechnicianID int64 `json:"technicianId" validate:"required,gt=0"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AssignTechnicianRequest) ToServiceRequest() *models.AssignTechnicianRequest {
	return &models.AssignTechnicianRequest{TechnicianID: r.TechnicianID}
}
