package domain

import "time"

// Event публикуемое мероприятие, владеющее слотами
type Event struct {
	ID          int64
	Name        string
	Description string
	Published   bool
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventSummary краткие данные мероприятия, прикладываемые к слоту при чтении
type EventSummary struct {
	ID          int64
	Name        string
	Description string
	Published   bool
}

// Summary возвращает краткие данные мероприятия
func (e *Event) Summary() EventSummary {
	return EventSummary{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Published:   e.Published,
	}
}

// IsBookable true, если на слоты мероприятия можно записываться
func (s EventSummary) IsBookable() bool {
	return s.Published
}
