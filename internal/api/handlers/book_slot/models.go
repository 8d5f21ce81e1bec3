package book_slot

import bookSlot "github.com/m04kA/SMC-EventSlots/internal/usecase/book_slot"

// BookSlotRequest HTTP request model
type BookSlotRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Enrollment string `json:"enrollment"`
	Phone      string `json:"phone"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *BookSlotRequest) ToUseCaseRequest(slotID int64) *bookSlot.Request {
	return &bookSlot.Request{
		SlotID:     slotID,
		Name:       r.Name,
		Email:      r.Email,
		Enrollment: r.Enrollment,
		Phone:      r.Phone,
	}
}
