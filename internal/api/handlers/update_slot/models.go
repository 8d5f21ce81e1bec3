package update_slot

import (
	"github.com/m04kA/SMC-EventSlots/internal/api/handlers/create_slot"
	"github.com/m04kA/SMC-EventSlots/internal/service/slots/models"
)

// UpdateSlotRequest HTTP request model
// Все поля опциональны
type UpdateSlotRequest struct {
	Date      *string  `json:"date"`
	StartTime *string  `json:"startTime"`
	EndTime   *string  `json:"endTime"`
	Purpose   *string  `json:"purpose"`
	Capacity  *float64 `json:"capacity"`
	Status    *string  `json:"status"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSlotRequest) ToServiceRequest() (*models.UpdateSlotRequest, error) {
	req := &models.UpdateSlotRequest{
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Purpose:   r.Purpose,
		Status:    r.Status,
	}

	if r.Capacity != nil {
		capacity, err := create_slot.IntegerCapacity(*r.Capacity)
		if err != nil {
			return nil, err
		}
		req.Capacity = &capacity
	}

	return req, nil
}
