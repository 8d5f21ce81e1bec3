package create_event

import "github.com/m04kA/SMC-EventSlots/internal/service/events/models"

// CreateEventRequest HTTP request model
type CreateEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Published   *bool  `json:"published"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateEventRequest) ToServiceRequest(ownerID int64) *models.CreateEventRequest {
	return &models.CreateEventRequest{
		Name:        r.Name,
		Description: r.Description,
		Published:   r.Published,
		OwnerID:     ownerID,
	}
}
