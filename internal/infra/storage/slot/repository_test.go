package slot

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventSlots/internal/domain"
	"github.com/m04kA/SMC-EventSlots/pkg/dbmetrics"
)

var (
	slotRowColumns = []string{
		"id", "event_id", "slot_date", "start_time", "end_time", "purpose", "capacity",
		"created_by", "created_at", "updated_at", "name", "description", "published",
	}
	bookingRowColumns = []string{"id", "slot_id", "name", "enrollment", "email", "phone", "booked_at"}

	createdAt = time.Date(2025, time.October, 1, 9, 0, 0, 0, time.UTC)
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, *dbmetrics.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), mock, wrapped
}

func addSlotRow(rows *sqlmock.Rows, id int64, capacity int) *sqlmock.Rows {
	return rows.AddRow(
		id, int64(4), time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC), "10:00 AM", "11:00 AM", "Tour", capacity,
		int64(1), createdAt, createdAt, "Open day", "Campus tour", true,
	)
}

func addBookingRow(rows *sqlmock.Rows, id, slotID int64, enrollment string, minute int) *sqlmock.Rows {
	return rows.AddRow(
		id, slotID, "Visitor "+enrollment, enrollment, enrollment+"@example.com", "5550001111",
		createdAt.Add(time.Duration(minute)*time.Minute),
	)
}

func TestGetByIDForUpdate_RequiresTransaction(t *testing.T) {
	repo := NewRepository(nil)

	slot, err := repo.GetByIDForUpdate(context.Background(), 1)

	assert.Nil(t, slot)
	assert.ErrorIs(t, err, ErrTransactionRequired)
}

func TestGetByIDForUpdate_LocksSlotRowAndLoadsBookings(t *testing.T) {
	repo, mock, db := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM slots s JOIN events e ON e.id = s.event_id WHERE s.id = $1 FOR UPDATE OF s")).
		WithArgs(int64(5)).
		WillReturnRows(addSlotRow(sqlmock.NewRows(slotRowColumns), 5, 2))
	mock.ExpectQuery(regexp.QuoteMeta("FROM slot_bookings WHERE slot_id IN ($1) ORDER BY booked_at ASC, id ASC")).
		WithArgs(int64(5)).
		WillReturnRows(addBookingRow(addBookingRow(sqlmock.NewRows(bookingRowColumns), 1, 5, "EN-1", 0), 2, 5, "EN-2", 1))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	slot, err := repo.GetByIDForUpdate(ctx, 5)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.Equal(t, "Open day", slot.Event.Name)
	assert.Equal(t, int64(4), slot.Event.ID)
	require.Len(t, slot.Bookings, 2)
	assert.Equal(t, "EN-1", slot.Bookings[0].Enrollment)
	assert.Equal(t, "EN-2", slot.Bookings[1].Enrollment)
	assert.Equal(t, domain.SlotStatusBooked, slot.Status())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM slots s JOIN events e ON e.id = s.event_id WHERE s.id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(slotRowColumns))

	_, err := repo.GetByID(context.Background(), 9)

	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_GroupsBookingsBySlot(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	slotRows := addSlotRow(addSlotRow(sqlmock.NewRows(slotRowColumns), 1, 3), 2, 3)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY s.slot_date ASC, s.id ASC")).WillReturnRows(slotRows)

	bookingRows := sqlmock.NewRows(bookingRowColumns)
	addBookingRow(bookingRows, 10, 2, "EN-A", 0)
	addBookingRow(bookingRows, 11, 1, "EN-B", 1)
	addBookingRow(bookingRows, 12, 2, "EN-C", 2)
	mock.ExpectQuery(regexp.QuoteMeta("FROM slot_bookings WHERE slot_id IN ($1,$2)")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(bookingRows)

	list, err := repo.List(context.Background(), domain.SlotFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.Len(t, list[0].Bookings, 1)
	assert.Equal(t, "EN-B", list[0].Bookings[0].Enrollment)

	require.Len(t, list[1].Bookings, 2)
	assert.Equal(t, "EN-A", list[1].Bookings[0].Enrollment)
	assert.Equal(t, "EN-C", list[1].Bookings[1].Enrollment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptySkipsBookingQuery(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	eventID := int64(4)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.event_id = $1 ORDER BY s.slot_date ASC, s.id ASC")).
		WithArgs(eventID).
		WillReturnRows(sqlmock.NewRows(slotRowColumns))

	list, err := repo.List(context.Background(), domain.SlotFilter{EventID: &eventID})

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddBooking_Inserted(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO slot_bookings (slot_id,name,enrollment,email,phone,booked_at)")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(31)))

	booking, err := repo.AddBooking(context.Background(), &domain.Booking{SlotID: 5, Enrollment: "EN-1", BookedAt: createdAt})

	require.NoError(t, err)
	assert.Equal(t, int64(31), booking.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddBooking_UniqueViolationMapsToField(t *testing.T) {
	cases := map[string]domain.BookingField{
		constraintEnrollment: domain.BookingFieldEnrollment,
		constraintEmail:      domain.BookingFieldEmail,
		constraintPhone:      domain.BookingFieldPhone,
		"slot_bookings_pkey": domain.BookingFieldNone,
	}

	for constraint, field := range cases {
		t.Run(constraint, func(t *testing.T) {
			repo, mock, _ := newMockRepository(t)
			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO slot_bookings")).
				WillReturnError(&pq.Error{Code: pgUniqueViolation, Constraint: constraint})

			_, err := repo.AddBooking(context.Background(), &domain.Booking{SlotID: 5})

			assert.ErrorIs(t, err, ErrDuplicateBooking)
			var dup *DuplicateError
			require.True(t, errors.As(err, &dup))
			assert.Equal(t, field, dup.Field)
		})
	}
}

func TestAddBooking_ForeignKeyViolationIsSlotNotFound(t *testing.T) {
	repo, mock, _ := newMockRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO slot_bookings")).
		WillReturnError(&pq.Error{Code: pgForeignKeyViolation, Constraint: "slot_bookings_slot_id_fkey"})

	_, err := repo.AddBooking(context.Background(), &domain.Booking{SlotID: 404})

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestAddBooking_OtherErrorIsExecQuery(t *testing.T) {
	repo, mock, _ := newMockRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO slot_bookings")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.AddBooking(context.Background(), &domain.Booking{SlotID: 5})

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrDuplicateBooking)
}

func TestRemoveBooking_NotFound(t *testing.T) {
	repo, mock, _ := newMockRepository(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM slot_bookings WHERE id = $1 AND slot_id = $2")).
		WithArgs(int64(9), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RemoveBooking(context.Background(), 3, 9)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, _ := newMockRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE slots SET")).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	err := repo.Update(context.Background(), &domain.Slot{ID: 77, Capacity: 1, Date: createdAt})

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestDeleteByEventID_ReturnsCount(t *testing.T) {
	repo, mock, _ := newMockRepository(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM slots WHERE event_id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteByEventID(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}

func TestFieldByConstraint(t *testing.T) {
	assert.Equal(t, domain.BookingFieldEnrollment, fieldByConstraint(constraintEnrollment))
	assert.Equal(t, domain.BookingFieldEmail, fieldByConstraint(constraintEmail))
	assert.Equal(t, domain.BookingFieldPhone, fieldByConstraint(constraintPhone))
	assert.Equal(t, domain.BookingFieldNone, fieldByConstraint("slots_pkey"))
}
