package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventSlots/internal/api/handlers"
	"github.com/m04kA/SMC-EventSlots/internal/api/middleware"
	cancelBooking "github.com/m04kA/SMC-EventSlots/internal/usecase/cancel_booking"
)

const (
	msgInvalidSlotID      = "Invalid slot ID"
	msgInvalidRequestBody = "Invalid request body"
	msgMissingEnrollment  = "Enrollment ID is required to cancel a booking"
	msgSlotNotFound       = "Slot not found"
	msgBookingNotFound    = "Booking not found for this enrollment ID"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/slots/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.ParseIDVar(r, "id")
	if err != nil {
		h.logger.Warn("PUT /slots/{id}/cancel - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(slotID))
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingEnrollment)

		case errors.Is(err, cancelBooking.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("PUT /slots/{id}/cancel - Failed to cancel booking: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	caller, _ := middleware.CallerFromContext(r.Context())
	h.logger.Info("PUT /slots/{id}/cancel - Booking cancelled: slot_id=%d, user=%s", slotID, caller)
	handlers.RespondJSON(w, http.StatusOK, slot)
}
