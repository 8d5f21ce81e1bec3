package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-EventSlots/internal/service/slots/models"
	cancelBooking "github.com/m04kA/SMC-EventSlots/internal/usecase/cancel_booking"
)

type CancelBookingUseCase interface {
	Execute(ctx context.Context, req *cancelBooking.Request) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
