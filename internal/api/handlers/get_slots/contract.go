package get_slots

import (
	"context"

	"github.com/m04kA/SMC-EventSlots/internal/service/slots/models"
)

type SlotService interface {
	GetAll(ctx context.Context) ([]*models.SlotResponse, error)
	GetByEvent(ctx context.Context, eventID int64) ([]*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
