package get_status

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-EventSlots/internal/api/handlers"
)

const statusOnline = "online"

// StatusResponse ответ проверки доступности
type StatusResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}

type Handler struct {
	environment  string
	timeProvider TimeProvider
}

func NewHandler(environment string) *Handler {
	return &Handler{
		environment:  environment,
		timeProvider: realTimeProvider{},
	}
}

// Handle GET /api/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{
		Status:      statusOnline,
		Timestamp:   h.timeProvider.Now().UTC(),
		Environment: h.environment,
	})
}
