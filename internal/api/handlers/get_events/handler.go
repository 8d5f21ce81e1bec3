package get_events

import (
	"net/http"

	"github.com/m04kA/SMC-EventSlots/internal/api/handlers"
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

// Handle GET /api/events
// Публичный список, только опубликованные мероприятия
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListPublished(r.Context())
	if err != nil {
		h.logger.Error("GET /events - Failed to list events: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// HandleAdmin GET /api/events/admin
// Все мероприятия, включая неопубликованные
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("GET /events/admin - Failed to list events: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
