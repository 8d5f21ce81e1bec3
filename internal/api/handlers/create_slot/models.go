package create_slot

import (
	"errors"
	"math"

	"github.com/m04kA/SMC-EventSlots/internal/service/slots/models"
)

var errNotInteger = errors.New("capacity is not an integer")

// CreateSlotRequest HTTP request model
// Capacity декодируется как число с плавающей точкой, чтобы отличить 2.5 от 2
type CreateSlotRequest struct {
	EventID   int64    `json:"eventId"`
	Date      string   `json:"date"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Purpose   string   `json:"purpose"`
	Capacity  *float64 `json:"capacity"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateSlotRequest) ToServiceRequest(ownerID int64) (*models.CreateSlotRequest, error) {
	capacity := 0
	if r.Capacity != nil {
		c, err := IntegerCapacity(*r.Capacity)
		if err != nil {
			return nil, err
		}
		capacity = c
	}

	return &models.CreateSlotRequest{
		EventID:   r.EventID,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Purpose:   r.Purpose,
		Capacity:  capacity,
		OwnerID:   ownerID,
	}, nil
}

// IntegerCapacity проверяет, что JSON число целое и помещается в int32
func IntegerCapacity(value float64) (int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, errNotInteger
	}
	if value > math.MaxInt32 || value < math.MinInt32 {
		return 0, errNotInteger
	}
	return int(value), nil
}
