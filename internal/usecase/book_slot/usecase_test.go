package book_slot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventSlots/internal/domain"
	slotRepo "github.com/m04kA/SMC-EventSlots/internal/infra/storage/slot"
	"github.com/m04kA/SMC-EventSlots/pkg/keylock"
	"github.com/m04kA/SMC-EventSlots/pkg/metrics"
)

// memorySlotRepo хранит слоты в памяти и отдает копии, как это делает БД
type memorySlotRepo struct {
	mu     sync.Mutex
	slots  map[int64]*domain.Slot
	nextID int64

	addErr error
}

func newMemorySlotRepo(slots ...*domain.Slot) *memorySlotRepo {
	r := &memorySlotRepo{slots: make(map[int64]*domain.Slot)}
	for _, s := range slots {
		r.slots[s.ID] = s
	}
	return r
}

func (r *memorySlotRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	cp := *s
	cp.Bookings = append([]domain.Booking(nil), s.Bookings...)
	return &cp, nil
}

func (r *memorySlotRepo) AddBooking(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if r.addErr != nil {
		return nil, r.addErr
	}

	// Даем другим горутинам шанс прочитать устаревшее состояние
	time.Sleep(time.Millisecond)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	booking.ID = r.nextID
	s := r.slots[booking.SlotID]
	s.Bookings = append(s.Bookings, *booking)
	return booking, nil
}

func (r *memorySlotRepo) Touch(context.Context, int64) error {
	return nil
}

func (r *memorySlotRepo) bookings(id int64) []domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Booking(nil), r.slots[id].Bookings...)
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingMetrics struct {
	mu      sync.Mutex
	results []string
}

func (m *recordingMetrics) RecordBooking(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

func (m *recordingMetrics) count(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.results {
		if r == result {
			n++
		}
	}
	return n
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var bookedAt = time.Date(2025, time.October, 1, 9, 0, 0, 0, time.UTC)

func newSlot(id int64, capacity int, published bool, bookings ...domain.Booking) *domain.Slot {
	return &domain.Slot{
		ID:        id,
		EventID:   1,
		Event:     domain.EventSummary{ID: 1, Name: "Open day", Published: published},
		Date:      time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00 AM",
		EndTime:   "11:00 AM",
		Purpose:   "Tour",
		Capacity:  capacity,
		Bookings:  append([]domain.Booking{}, bookings...),
	}
}

func newUseCase(repo SlotRepository, m MetricsRecorder) *UseCase {
	uc := NewUseCase(repo, passthroughTx{}, keylock.NewLocal(), m, nopLogger{})
	uc.timeProvider = fixedClock{now: bookedAt}
	return uc
}

func validRequest(slotID int64) *Request {
	return &Request{
		SlotID:     slotID,
		Name:       " Ada Lovelace ",
		Email:      "ada@example.com",
		Enrollment: " EN-001 ",
		Phone:      "+1 555-123-4567",
	}
}

var existing = domain.Booking{
	Name:       "Grace",
	Enrollment: "EN-100",
	Email:      "grace@example.com",
	Phone:      "5550001111",
}

func TestExecute_Success(t *testing.T) {
	repo := newMemorySlotRepo(newSlot(1, 2, true))
	m := &recordingMetrics{}
	uc := newUseCase(repo, m)

	resp, err := uc.Execute(context.Background(), validRequest(1))
	require.NoError(t, err)

	require.Len(t, resp.BookedBy, 1)
	assert.Equal(t, "Ada Lovelace", resp.BookedBy[0].Name)
	assert.Equal(t, "EN-001", resp.BookedBy[0].Enrollment)
	assert.True(t, bookedAt.Equal(resp.BookedBy[0].BookedAt))
	assert.Equal(t, domain.SlotStatusAvailable, resp.Status)
	assert.Equal(t, "Open day", resp.Event.Name)
	assert.Equal(t, 1, m.count(metrics.BookingResultSuccess))
}

func TestExecute_LastSpotMarksSlotBooked(t *testing.T) {
	repo := newMemorySlotRepo(newSlot(1, 2, true, existing))
	uc := newUseCase(repo, nil)

	resp, err := uc.Execute(context.Background(), validRequest(1))
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusBooked, resp.Status)
	assert.Len(t, resp.BookedBy, 2)
}

func TestExecute_RequiredFields(t *testing.T) {
	uc := newUseCase(newMemorySlotRepo(), nil)

	for _, mutate := range []func(r *Request){
		func(r *Request) { r.Name = "" },
		func(r *Request) { r.Email = "   " },
		func(r *Request) { r.Enrollment = "" },
		func(r *Request) { r.Phone = "\t" },
	} {
		req := validRequest(1)
		mutate(req)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestExecute_FormatValidation(t *testing.T) {
	uc := newUseCase(newMemorySlotRepo(), nil)

	for _, email := range []string{"not-an-email", "a@b", "a@b.toolong", "@example.com"} {
		req := validRequest(1)
		req.Email = email
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidEmail, email)
	}

	for _, phone := range []string{"12345", "phone-number", "+1 (555) 123-4567", "1234567890123456"} {
		req := validRequest(1)
		req.Phone = phone
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidPhone, phone)
	}

	req := validRequest(1)
	req.Email = "ADA.Lovelace@Example.CO.UK"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotFound, "uppercase email passes format check")
}

func TestExecute_ValidationBeforeLookup(t *testing.T) {
	uc := newUseCase(newMemorySlotRepo(), nil)

	req := validRequest(404)
	req.Email = "broken"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestExecute_SlotNotFound(t *testing.T) {
	m := &recordingMetrics{}
	uc := newUseCase(newMemorySlotRepo(), m)

	_, err := uc.Execute(context.Background(), validRequest(404))
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.Equal(t, 1, m.count(metrics.BookingResultNotFound))
}

func TestExecute_UnpublishedRegardlessOfCapacity(t *testing.T) {
	full := newSlot(1, 1, false, existing)
	free := newSlot(2, 5, false)
	uc := newUseCase(newMemorySlotRepo(full, free), nil)

	_, err := uc.Execute(context.Background(), validRequest(1))
	assert.ErrorIs(t, err, ErrEventNotPublished)

	_, err = uc.Execute(context.Background(), validRequest(2))
	assert.ErrorIs(t, err, ErrEventNotPublished)
}

func TestExecute_FullBeforeDuplicate(t *testing.T) {
	repo := newMemorySlotRepo(newSlot(1, 1, true, existing))
	uc := newUseCase(repo, nil)

	req := validRequest(1)
	req.Enrollment = existing.Enrollment
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestExecute_Duplicates(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(r *Request)
		expected error
	}{
		{"enrollment", func(r *Request) { r.Enrollment = " EN-100 " }, ErrDuplicateEnrollment},
		{"email", func(r *Request) { r.Email = "Grace@Example.com" }, ErrDuplicateEmail},
		{"phone", func(r *Request) { r.Phone = "5550001111 " }, ErrDuplicatePhone},
		{"enrollment wins over email", func(r *Request) {
			r.Enrollment = existing.Enrollment
			r.Email = existing.Email
		}, ErrDuplicateEnrollment},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMemorySlotRepo(newSlot(1, 5, true, existing))
			uc := newUseCase(repo, nil)

			req := validRequest(1)
			tc.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tc.expected)
			assert.ErrorIs(t, err, ErrDuplicateBooking)
			assert.Len(t, repo.bookings(1), 1)
		})
	}
}

func TestExecute_StorageUniqueViolation(t *testing.T) {
	repo := newMemorySlotRepo(newSlot(1, 5, true))
	repo.addErr = &slotRepo.DuplicateError{Field: domain.BookingFieldPhone}
	uc := newUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), validRequest(1))
	assert.ErrorIs(t, err, ErrDuplicatePhone)
}

func TestExecute_StorageFailureIsInternal(t *testing.T) {
	repo := newMemorySlotRepo(newSlot(1, 5, true))
	repo.addErr = errors.New("connection reset")
	m := &recordingMetrics{}
	uc := newUseCase(repo, m)

	_, err := uc.Execute(context.Background(), validRequest(1))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, m.count(metrics.BookingResultError))
}

func TestExecute_ConcurrentLastSpot(t *testing.T) {
	repo := newMemorySlotRepo(newSlot(1, 1, true))
	uc := newUseCase(repo, nil)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		full    int
	)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := &Request{
				SlotID:     1,
				Name:       fmt.Sprintf("Visitor %d", i),
				Email:      fmt.Sprintf("visitor%d@example.com", i),
				Enrollment: fmt.Sprintf("EN-%d", i),
				Phone:      fmt.Sprintf("555000111%d", i),
			}
			_, err := uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, ErrSlotFull):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, 1, full)
	assert.Len(t, repo.bookings(1), 1)
}

func TestExecute_NoOverbookingUnderLoad(t *testing.T) {
	const capacity = 5
	const attempts = 40

	repo := newMemorySlotRepo(newSlot(1, capacity, true))
	uc := newUseCase(repo, nil)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = uc.Execute(context.Background(), &Request{
				SlotID:     1,
				Name:       "Visitor",
				Email:      fmt.Sprintf("v%d@example.com", i),
				Enrollment: fmt.Sprintf("EN-%d", i),
				Phone:      fmt.Sprintf("55500%05d", i),
			})
		}(i)
	}
	wg.Wait()

	assert.Len(t, repo.bookings(1), capacity)
}

func TestNormalizeRequest_TrimsContactFieldsOnly(t *testing.T) {
	req := &Request{SlotID: 9, Name: " Ada ", Email: " ada@example.com\t", Enrollment: " EN-1 ", Phone: " 5550001111 "}

	normalizeRequest(req)

	assert.Equal(t, &Request{SlotID: 9, Name: "Ada", Email: "ada@example.com", Enrollment: "EN-1", Phone: "5550001111"}, req)
}
