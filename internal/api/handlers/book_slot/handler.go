package book_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventSlots/internal/api/handlers"
	bookSlot "github.com/m04kA/SMC-EventSlots/internal/usecase/book_slot"
)

const (
	msgInvalidSlotID       = "Invalid slot ID"
	msgInvalidRequestBody  = "Invalid request body"
	msgMissingFields       = "Name, email, enrollment, and phone are required"
	msgInvalidEmail        = "Please provide a valid email address"
	msgInvalidPhone        = "Please provide a valid phone number (10-15 digits)"
	msgNotFound            = "Slot not found"
	msgUnpublished         = "Cannot book slot for unpublished event"
	msgSlotFull            = "Slot is already full"
	msgDuplicateEnrollment = "This enrollment ID is already booked for this slot"
	msgDuplicateEmail      = "This email is already booked for this slot"
	msgDuplicatePhone      = "This phone number is already booked for this slot"
	msgDuplicate           = "This booking already exists for this slot"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/slots/{id}/book
// Публичный метод, токен не нужен
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.ParseIDVar(r, "id")
	if err != nil {
		h.logger.Warn("POST /slots/{id}/book - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req BookSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/{id}/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(slotID))
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, bookSlot.ErrInvalidEmail):
			handlers.RespondBadRequest(w, msgInvalidEmail)

		case errors.Is(err, bookSlot.ErrInvalidPhone):
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, bookSlot.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookSlot.ErrEventNotPublished):
			handlers.RespondForbidden(w, msgUnpublished)

		case errors.Is(err, bookSlot.ErrSlotFull):
			handlers.RespondBadRequest(w, msgSlotFull)

		case errors.Is(err, bookSlot.ErrDuplicateEnrollment):
			handlers.RespondBadRequest(w, msgDuplicateEnrollment)

		case errors.Is(err, bookSlot.ErrDuplicateEmail):
			handlers.RespondBadRequest(w, msgDuplicateEmail)

		case errors.Is(err, bookSlot.ErrDuplicatePhone):
			handlers.RespondBadRequest(w, msgDuplicatePhone)

		case errors.Is(err, bookSlot.ErrDuplicateBooking):
			handlers.RespondBadRequest(w, msgDuplicate)

		default:
			h.logger.Error("POST /slots/{id}/book - Failed to book slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/{id}/book - Slot booked: slot_id=%d, %d/%d spots taken",
		slotID, len(slot.BookedBy), slot.Capacity)
	handlers.RespondJSON(w, http.StatusOK, slot)
}
