package create_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventSlots/internal/api/handlers"
	"github.com/m04kA/SMC-EventSlots/internal/api/middleware"
	"github.com/m04kA/SMC-EventSlots/internal/service/events"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgMissingFields      = "Name and description are required"
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

// Handle POST /api/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	caller, _ := middleware.CallerFromContext(r.Context())

	event, err := h.service.Create(r.Context(), req.ToServiceRequest(caller.ID))
	if err != nil {
		switch {
		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("POST /events - Missing required fields")
			handlers.RespondBadRequest(w, msgMissingFields)

		default:
			h.logger.Error("POST /events - Failed to create event: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /events - Event created: event_id=%d, user=%s", event.ID, caller)
	handlers.RespondJSON(w, http.StatusCreated, event)
}
