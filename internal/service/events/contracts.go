package events

import (
	"context"

	"github.com/m04kA/SMC-EventSlots/internal/domain"
)

// EventRepository интерфейс репозитория мероприятий
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	List(ctx context.Context, onlyPublished bool) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория слотов, нужен для каскадного удаления
type SlotRepository interface {
	DeleteByEventID(ctx context.Context, eventID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
