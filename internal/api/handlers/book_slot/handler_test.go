package book_slot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventSlots/internal/service/slots/models"
	bookSlot "github.com/m04kA/SMC-EventSlots/internal/usecase/book_slot"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *bookSlot.Request) (*models.SlotResponse, error) {
	args := m.Called(ctx, req)
	if s, ok := args.Get(0).(*models.SlotResponse); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(t *testing.T, uc BookSlotUseCase, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc("/api/slots/{id:[0-9]+}/book", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPost)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return w
}

const validBody = `{"name":"Ada","email":"ada@example.com","enrollment":"EN-1","phone":"5550001111"}`

func TestHandle_Success(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *bookSlot.Request) bool {
		return r.SlotID == 5 && r.Enrollment == "EN-1" && r.Email == "ada@example.com"
	})).Return(&models.SlotResponse{
		ID:       5,
		Capacity: 1,
		Status:   "booked",
		BookedBy: []models.BookingResponse{{Name: "Ada", Enrollment: "EN-1"}},
	}, nil)

	w := serve(t, uc, "/api/slots/5/book", validBody)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"booked"`)
	assert.Contains(t, w.Body.String(), `"bookedBy":[{`)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{bookSlot.ErrInvalidInput, http.StatusBadRequest, msgMissingFields},
		{bookSlot.ErrInvalidEmail, http.StatusBadRequest, msgInvalidEmail},
		{bookSlot.ErrInvalidPhone, http.StatusBadRequest, msgInvalidPhone},
		{bookSlot.ErrSlotNotFound, http.StatusNotFound, msgNotFound},
		{bookSlot.ErrEventNotPublished, http.StatusForbidden, msgUnpublished},
		{bookSlot.ErrSlotFull, http.StatusBadRequest, msgSlotFull},
		{bookSlot.ErrDuplicateEnrollment, http.StatusBadRequest, msgDuplicateEnrollment},
		{bookSlot.ErrDuplicateEmail, http.StatusBadRequest, msgDuplicateEmail},
		{bookSlot.ErrDuplicatePhone, http.StatusBadRequest, msgDuplicatePhone},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "Server error"},
	}

	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tc.err)

			w := serve(t, uc, "/api/slots/5/book", validBody)

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, `{"message":"`+tc.message+`"}`, w.Body.String())
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &mockUseCase{}

	w := serve(t, uc, "/api/slots/5/book", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
