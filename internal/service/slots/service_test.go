package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventSlots/internal/domain"
	eventRepo "github.com/m04kA/SMC-EventSlots/internal/infra/storage/event"
	slotRepo "github.com/m04kA/SMC-EventSlots/internal/infra/storage/slot"
	"github.com/m04kA/SMC-EventSlots/internal/service/slots/models"
	"github.com/m04kA/SMC-EventSlots/pkg/keylock"
	"github.com/m04kA/SMC-EventSlots/pkg/ptr"
)

type mockSlotRepo struct {
	mock.Mock
}

func (m *mockSlotRepo) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	args := m.Called(ctx, slot)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Slot) *domain.Slot); ok {
		return fn(ctx, slot), args.Error(1)
	}
	if s, ok := args.Get(0).(*domain.Slot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*domain.Slot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSlotRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*domain.Slot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSlotRepo) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	args := m.Called(ctx, filter)
	if s, ok := args.Get(0).([]*domain.Slot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSlotRepo) Update(ctx context.Context, slot *domain.Slot) error {
	return m.Called(ctx, slot).Error(0)
}

func (m *mockSlotRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*domain.Event); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *mockSlotRepo, *mockEventRepo) {
	slots := &mockSlotRepo{}
	events := &mockEventRepo{}
	return NewService(slots, events, fakeTxManager{}, keylock.NewLocal(), nopLogger{}), slots, events
}

func slotWithBookings(id int64, capacity, booked int) *domain.Slot {
	slot := &domain.Slot{
		ID:        id,
		EventID:   1,
		Event:     domain.EventSummary{ID: 1, Name: "Open day", Published: true},
		Date:      time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00 AM",
		EndTime:   "11:00 AM",
		Purpose:   "Tour",
		Capacity:  capacity,
		Bookings:  make([]domain.Booking, 0),
	}
	for i := 0; i < booked; i++ {
		slot.Bookings = append(slot.Bookings, domain.Booking{Enrollment: string(rune('A' + i))})
	}
	return slot
}

func validCreateRequest() *models.CreateSlotRequest {
	return &models.CreateSlotRequest{
		EventID:   1,
		Date:      "2025-10-15T18:30:00-02:00",
		StartTime: "14:00",
		EndTime:   "03:30 PM",
		Purpose:   " Campus tour ",
		Capacity:  3,
		OwnerID:   42,
	}
}

func TestCreate_NormalizesDateAndTimes(t *testing.T) {
	svc, slots, events := newTestService()

	events.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Event{ID: 1, Name: "Open day", Description: "Desc", Published: true}, nil)
	slots.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Slot) bool {
		return s.Date.Equal(time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)) &&
			s.StartTime == "2:00 PM" &&
			s.EndTime == "3:30 PM" &&
			s.Purpose == "Campus tour" &&
			s.Capacity == 3 &&
			s.CreatedBy == 42
	})).Return(func(_ context.Context, s *domain.Slot) *domain.Slot {
		s.ID = 10
		s.Bookings = make([]domain.Booking, 0)
		return s
	}, nil)

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "2025-10-15", resp.Date.String())
	assert.Equal(t, "Open day", resp.Event.Name)
	assert.Equal(t, domain.SlotStatusAvailable, resp.Status)
	assert.NotNil(t, resp.BookedBy)
	assert.Empty(t, resp.BookedBy)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	svc, slots, events := newTestService()

	req := validCreateRequest()
	req.Purpose = "   "
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validCreateRequest()
	req.Capacity = 0
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	req = validCreateRequest()
	req.StartTime = "25:00"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTime)

	req = validCreateRequest()
	req.Date = "someday"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	events.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	slots.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_EventNotFound(t *testing.T) {
	svc, slots, events := newTestService()
	events.On("GetByID", mock.Anything, int64(1)).Return(nil, eventRepo.ErrEventNotFound)

	_, err := svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrEventNotFound)
	slots.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, slots, _ := newTestService()
	slots.On("GetByID", mock.Anything, int64(3)).Return(nil, slotRepo.ErrSlotNotFound)

	_, err := svc.GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestGetByID_DerivesStatus(t *testing.T) {
	svc, slots, _ := newTestService()
	slots.On("GetByID", mock.Anything, int64(3)).Return(slotWithBookings(3, 2, 2), nil)

	resp, err := svc.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusBooked, resp.Status)
	assert.Len(t, resp.BookedBy, 2)
}

func TestGetByEvent_FiltersByEvent(t *testing.T) {
	svc, slots, _ := newTestService()
	slots.On("List", mock.Anything, mock.MatchedBy(func(f domain.SlotFilter) bool {
		return f.EventID != nil && *f.EventID == 7
	})).Return([]*domain.Slot{slotWithBookings(1, 1, 0)}, nil)

	resp, err := svc.GetByEvent(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, resp, 1)
}

func TestUpdate_CapacityBelowBookingsLeavesSlotUnmodified(t *testing.T) {
	svc, slots, _ := newTestService()
	slot := slotWithBookings(5, 3, 2)
	slots.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(slot, nil)

	_, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{Capacity: ptr.Ptr(1)})
	assert.ErrorIs(t, err, ErrCapacityConflict)
	assert.Equal(t, 3, slot.Capacity)
	slots.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_CapacityEqualToBookingsAllowed(t *testing.T) {
	svc, slots, _ := newTestService()
	slots.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(slotWithBookings(5, 3, 2), nil)
	slots.On("Update", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{Capacity: ptr.Ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Capacity)
	assert.Equal(t, domain.SlotStatusBooked, resp.Status)
}

func TestUpdate_InvalidCapacity(t *testing.T) {
	svc, slots, _ := newTestService()
	slots.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(slotWithBookings(5, 3, 0), nil)

	_, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{Capacity: ptr.Ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestUpdate_StatusAvailableWithBookingsRejected(t *testing.T) {
	svc, slots, _ := newTestService()
	slots.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(slotWithBookings(5, 3, 1), nil)

	_, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{Status: ptr.Ptr("available")})
	assert.ErrorIs(t, err, ErrStatusConflict)
	slots.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_StatusIsNeverStored(t *testing.T) {
	svc, slots, _ := newTestService()
	slots.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(slotWithBookings(5, 3, 0), nil)
	slots.On("Update", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{Status: ptr.Ptr("booked")})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusAvailable, resp.Status)
}

func TestUpdate_OverwritesPresentFields(t *testing.T) {
	svc, slots, _ := newTestService()
	slots.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(slotWithBookings(5, 3, 0), nil)
	slots.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Slot) bool {
		return s.StartTime == "12:00 AM" &&
			s.EndTime == "11:00 AM" &&
			s.Purpose == "Interview" &&
			s.Date.Equal(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC))
	})).Return(nil)

	resp, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{
		Date:      ptr.Ptr("2025-12-01"),
		StartTime: ptr.Ptr("00:00"),
		EndTime:   ptr.Ptr(""),
		Purpose:   ptr.Ptr("Interview"),
	})
	require.NoError(t, err)
	assert.Equal(t, "12:00 AM", resp.StartTime)
	slots.AssertExpectations(t)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, slots, _ := newTestService()
	slots.On("GetByIDForUpdate", mock.Anything, int64(5)).Return(nil, slotRepo.ErrSlotNotFound)

	_, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{Purpose: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	svc, slots, _ := newTestService()
	slots.On("Delete", mock.Anything, int64(5)).Return(slotRepo.ErrSlotNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), 5), ErrSlotNotFound)
}
