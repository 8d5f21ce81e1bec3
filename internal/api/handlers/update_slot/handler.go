package update_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventSlots/internal/api/handlers"
	"github.com/m04kA/SMC-EventSlots/internal/service/slots"
)

const (
	msgInvalidSlotID      = "Invalid slot ID"
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidCapacity    = "Capacity must be a positive integer"
	msgInvalidDate        = "Invalid date"
	msgInvalidTime        = "Invalid time, expected HH:MM or H:MM AM/PM"
	msgStatusConflict     = "Cannot set status to available with existing bookings"
	msgCapacityConflict   = "Capacity cannot be lower than the number of existing bookings"
	msgNotFound           = "Slot not found"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/slots/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.ParseIDVar(r, "id")
	if err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid capacity: slot_id=%d, error=%v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidCapacity)
		return
	}

	slot, err := h.service.Update(r.Context(), slotID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrCapacityConflict):
			var conflict *slots.CapacityConflictError
			if errors.As(err, &conflict) {
				handlers.RespondBadRequest(w, conflict.Error())
			} else {
				handlers.RespondBadRequest(w, msgCapacityConflict)
			}

		case errors.Is(err, slots.ErrInvalidCapacity):
			handlers.RespondBadRequest(w, msgInvalidCapacity)

		case errors.Is(err, slots.ErrStatusConflict):
			handlers.RespondBadRequest(w, msgStatusConflict)

		case errors.Is(err, slots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, slots.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)

		default:
			h.logger.Error("PUT /slots/{id} - Failed to update slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slots/{id} - Slot updated: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, slot)
}
