package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-EventSlots/internal/domain"
	"github.com/m04kA/SMC-EventSlots/pkg/keylock"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error)
	RemoveBooking(ctx context.Context, slotID, bookingID int64) error
	Touch(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotLocker блокировка, сериализующая изменения одного слота
type SlotLocker interface {
	Lock(ctx context.Context, key string) (keylock.Unlock, error)
}

// MetricsRecorder учет отмен
type MetricsRecorder interface {
	RecordCancellation()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
