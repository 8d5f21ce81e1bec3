package cancel_booking

import "errors"

var (
	// ErrInvalidInput возвращается, когда не передан enrollment
	ErrInvalidInput = errors.New("cancel_booking: enrollment ID is required to cancel a booking")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("cancel_booking: slot not found")

	// ErrBookingNotFound возвращается, когда в слоте нет записи с таким enrollment
	ErrBookingNotFound = errors.New("cancel_booking: booking not found for this enrollment ID")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
