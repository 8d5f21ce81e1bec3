package models

import (
	"time"

	"github.com/m04kA/SMC-EventSlots/internal/domain"
	"github.com/m04kA/SMC-EventSlots/pkg/types"
)

// Request модели

// CreateSlotRequest запрос на создание слота
type CreateSlotRequest struct {
	EventID   int64  `validate:"required"`
	Date      string `validate:"required"`
	StartTime string `validate:"required"`
	EndTime   string `validate:"required"`
	Purpose   string `validate:"required"`
	Capacity  int
	OwnerID   int64
}

// UpdateSlotRequest запрос на обновление слота
// Все поля опциональны - обновляются только переданные непустые значения
type UpdateSlotRequest struct {
	Date      *string
	StartTime *string
	EndTime   *string
	Purpose   *string
	Capacity  *int
	Status    *string // только проверяется, никогда не сохраняется
}

// Response модели

// EventSummaryResponse краткие данные мероприятия в ответе со слотом
type EventSummaryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}

// BookingResponse запись в слоте
type BookingResponse struct {
	Name       string    `json:"name"`
	Enrollment string    `json:"enrollment"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	BookedAt   time.Time `json:"bookedAt"`
}

// SlotResponse ответ с данными слота. Status вычисляется при сборке ответа
type SlotResponse struct {
	ID        int64                `json:"id"`
	EventID   int64                `json:"eventId"`
	Event     EventSummaryResponse `json:"event"`
	Date      types.Date           `json:"date"`
	StartTime string               `json:"startTime"`
	EndTime   string               `json:"endTime"`
	Purpose   string               `json:"purpose"`
	Capacity  int                  `json:"capacity"`
	Status    domain.SlotStatus    `json:"status"`
	BookedBy  []BookingResponse    `json:"bookedBy"`
	CreatedBy int64                `json:"createdBy"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// FromDomainSlot конвертирует доменный слот в ответ
func FromDomainSlot(slot *domain.Slot) *SlotResponse {
	bookedBy := make([]BookingResponse, 0, len(slot.Bookings))
	for _, b := range slot.Bookings {
		bookedBy = append(bookedBy, BookingResponse{
			Name:       b.Name,
			Enrollment: b.Enrollment,
			Email:      b.Email,
			Phone:      b.Phone,
			BookedAt:   b.BookedAt,
		})
	}

	return &SlotResponse{
		ID:      slot.ID,
		EventID: slot.EventID,
		Event: EventSummaryResponse{
			ID:          slot.Event.ID,
			Name:        slot.Event.Name,
			Description: slot.Event.Description,
			Published:   slot.Event.Published,
		},
		Date:      types.NewDate(slot.Date),
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Purpose:   slot.Purpose,
		Capacity:  slot.Capacity,
		Status:    slot.Status(),
		BookedBy:  bookedBy,
		CreatedBy: slot.CreatedBy,
		CreatedAt: slot.CreatedAt,
		UpdatedAt: slot.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список слотов
func FromDomainSlotList(slots []*domain.Slot) []*SlotResponse {
	result := make([]*SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, FromDomainSlot(slot))
	}
	return result
}
