package slots

import (
	"context"

	"github.com/m04kA/SMC-EventSlots/internal/domain"
	"github.com/m04kA/SMC-EventSlots/pkg/keylock"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	Update(ctx context.Context, slot *domain.Slot) error
	Delete(ctx context.Context, id int64) error
}

// EventRepository интерфейс репозитория мероприятий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotLocker блокировка, сериализующая изменения одного слота
type SlotLocker interface {
	Lock(ctx context.Context, key string) (keylock.Unlock, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
