package cancel_booking

import cancelBooking "github.com/m04kA/SMC-EventSlots/internal/usecase/cancel_booking"

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Enrollment string `json:"enrollment"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(slotID int64) *cancelBooking.Request {
	return &cancelBooking.Request{
		SlotID:     slotID,
		Enrollment: r.Enrollment,
	}
}
