package get_events

import (
	"context"

	"github.com/m04kA/SMC-EventSlots/internal/service/events/models"
)

type EventService interface {
	ListPublished(ctx context.Context) ([]*models.EventResponse, error)
	ListAll(ctx context.Context) ([]*models.EventResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
