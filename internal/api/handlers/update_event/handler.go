package update_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventSlots/internal/api/handlers"
	"github.com/m04kA/SMC-EventSlots/internal/service/events"
	"github.com/m04kA/SMC-EventSlots/internal/service/events/models"
)

const (
	msgInvalidEventID     = "Invalid event ID"
	msgInvalidRequestBody = "Invalid request body"
	msgNotFound           = "Event not found"
	msgInvalidInput       = "Name and description must not be empty"
)

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/events/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := handlers.ParseIDVar(r, "id")
	if err != nil {
		h.logger.Warn("PUT /events/{id} - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	var req models.UpdateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /events/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	event, err := h.service.Update(r.Context(), eventID, &req)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("PUT /events/{id} - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("PUT /events/{id} - Invalid input: event_id=%d, error=%v", eventID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /events/{id} - Failed to update event: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /events/{id} - Event updated: event_id=%d", eventID)
	handlers.RespondJSON(w, http.StatusOK, event)
}
