package create_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventSlots/internal/api/handlers"
	"github.com/m04kA/SMC-EventSlots/internal/api/middleware"
	"github.com/m04kA/SMC-EventSlots/internal/service/slots"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgMissingFields      = "All fields are required, including capacity"
	msgInvalidCapacity    = "Capacity must be a positive integer"
	msgInvalidDate        = "Invalid date"
	msgInvalidTime        = "Invalid time, expected HH:MM or H:MM AM/PM"
	msgEventNotFound      = "Event not found"
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

// Handle POST /api/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	caller, _ := middleware.CallerFromContext(r.Context())

	serviceReq, err := req.ToServiceRequest(caller.ID)
	if err != nil {
		h.logger.Warn("POST /slots - Invalid capacity: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCapacity)
		return
	}

	slot, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, slots.ErrInvalidCapacity):
			handlers.RespondBadRequest(w, msgInvalidCapacity)

		case errors.Is(err, slots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, slots.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, slots.ErrEventNotFound):
			h.logger.Warn("POST /slots - Event not found: event_id=%d", req.EventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		default:
			h.logger.Error("POST /slots - Failed to create slot: event_id=%d, error=%v", req.EventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Slot created: slot_id=%d, event_id=%d, user=%s", slot.ID, slot.EventID, caller)
	handlers.RespondJSON(w, http.StatusCreated, slot)
}
