package models

import (
	"time"

	"github.com/m04kA/SMC-EventSlots/internal/domain"
)

// Request модели

// CreateEventRequest запрос на создание мероприятия
type CreateEventRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Published   *bool  `json:"published,omitempty"` // nil = опубликовано
	OwnerID     int64  `json:"-"`
}

// UpdateEventRequest запрос на обновление мероприятия
// Все поля опциональны - обновляются только переданные значения
type UpdateEventRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Published   *bool   `json:"published,omitempty"`
}

// Response модели

// EventResponse ответ с данными мероприятия
type EventResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Published   bool      `json:"published"`
	CreatedBy   int64     `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromDomainEvent конвертирует доменную модель в ответ
func FromDomainEvent(event *domain.Event) *EventResponse {
	return &EventResponse{
		ID:          event.ID,
		Name:        event.Name,
		Description: event.Description,
		Published:   event.Published,
		CreatedBy:   event.CreatedBy,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

// FromDomainEventList конвертирует список мероприятий
func FromDomainEventList(events []*domain.Event) []*EventResponse {
	result := make([]*EventResponse, 0, len(events))
	for _, event := range events {
		result = append(result, FromDomainEvent(event))
	}
	return result
}

// ToDomainEvent конвертирует запрос в доменную модель
func (r *CreateEventRequest) ToDomainEvent() *domain.Event {
	published := domain.DefaultEventPublished
	if r.Published != nil {
		published = *r.Published
	}
	return &domain.Event{
		Name:        r.Name,
		Description: r.Description,
		Published:   published,
		CreatedBy:   r.OwnerID,
	}
}
