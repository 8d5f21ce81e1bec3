package delete_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventSlots/internal/api/handlers"
	"github.com/m04kA/SMC-EventSlots/internal/service/events"
)

const (
	msgInvalidEventID = "Invalid event ID"
	msgNotFound       = "Event not found"
	msgDeleted        = "Event and associated slots removed"
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

// Handle DELETE /api/events/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := handlers.ParseIDVar(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /events/{id} - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	if err := h.service.Delete(r.Context(), eventID); err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("DELETE /events/{id} - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /events/{id} - Failed to delete event: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /events/{id} - Event deleted: event_id=%d", eventID)
	handlers.RespondMessage(w, http.StatusOK, msgDeleted)
}
