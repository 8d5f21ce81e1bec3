package book_slot

import (
	"context"

	"github.com/m04kA/SMC-EventSlots/internal/service/slots/models"
	bookSlot "github.com/m04kA/SMC-EventSlots/internal/usecase/book_slot"
)

type BookSlotUseCase interface {
	Execute(ctx context.Context, req *bookSlot.Request) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
