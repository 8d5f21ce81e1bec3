package get_slots

import (
	"net/http"

	"github.com/m04kA/SMC-EventSlots/internal/api/handlers"
)

const msgInvalidEventID = "Invalid event ID"

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

// Handle GET /api/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.GetAll(r.Context())
	if err != nil {
		h.logger.Error("GET /slots - Failed to list slots: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// HandleByEvent GET /api/slots/event/{eventId}
func (h *Handler) HandleByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := handlers.ParseIDVar(r, "eventId")
	if err != nil {
		h.logger.Warn("GET /slots/event/{eventId} - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	list, err := h.service.GetByEvent(r.Context(), eventID)
	if err != nil {
		h.logger.Error("GET /slots/event/{eventId} - Failed to list slots: event_id=%d, error=%v", eventID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
