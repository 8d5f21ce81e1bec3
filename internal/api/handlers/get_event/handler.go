package get_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventSlots/internal/api/handlers"
	"github.com/m04kA/SMC-EventSlots/internal/service/events"
)

const (
	msgInvalidEventID = "Invalid event ID"
	msgNotFound       = "Event not found or not published"
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

// Handle GET /api/events/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := handlers.ParseIDVar(r, "id")
	if err != nil {
		h.logger.Warn("GET /events/{id} - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	event, err := h.service.GetPublished(r.Context(), eventID)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /events/{id} - Failed to get event: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, event)
}
