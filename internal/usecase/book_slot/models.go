package book_slot

import "github.com/m04kA/SMC-EventSlots/internal/domain"

// Request модель запроса на запись в слот
type Request struct {
	SlotID     int64
	Name       string `validate:"required"`
	Email      string `validate:"required"`
	Enrollment string `validate:"required"`
	Phone      string `validate:"required"`
}

// toBooking собирает запись из уже обрезанных полей запроса
func (r *Request) toBooking() domain.Booking {
	return domain.Booking{
		SlotID:     r.SlotID,
		Name:       r.Name,
		Enrollment: r.Enrollment,
		Email:      r.Email,
		Phone:      r.Phone,
	}
}
