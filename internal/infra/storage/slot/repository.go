package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-EventSlots/internal/domain"
	"github.com/m04kA/SMC-EventSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-EventSlots/pkg/psqlbuilder"
	"github.com/m04kA/SMC-EventSlots/pkg/types"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Имена ограничений уникальности из миграции
const (
	constraintEnrollment = "slot_bookings_slot_enrollment_key"
	constraintEmail      = "slot_bookings_slot_email_key"
	constraintPhone      = "slot_bookings_slot_phone_key"
)

// DuplicateError нарушение уникальности, поймано на уровне БД
type DuplicateError struct {
	Field domain.BookingField
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicateBooking.Error(), e.Field)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrDuplicateBooking)
func (e *DuplicateError) Unwrap() error {
	return ErrDuplicateBooking
}

var slotColumns = []string{
	"s.id",
	"s.event_id",
	"s.slot_date",
	"s.start_time",
	"s.end_time",
	"s.purpose",
	"s.capacity",
	"s.created_by",
	"s.created_at",
	"s.updated_at",
	"e.name",
	"e.description",
	"e.published",
}

var bookingColumns = []string{
	"id",
	"slot_id",
	"name",
	"enrollment",
	"email",
	"phone",
	"booked_at",
}

// Repository репозиторий слотов и записей в них
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	if err := row.Scan(
		&s.ID,
		&s.EventID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Purpose,
		&s.Capacity,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.Event.Name,
		&s.Event.Description,
		&s.Event.Published,
	); err != nil {
		return nil, err
	}
	s.Event.ID = s.EventID
	s.Date = types.TruncateToUTCDate(s.Date)
	s.Bookings = make([]domain.Booking, 0)
	return &s, nil
}

func (r *Repository) selectSlots() squirrel.SelectBuilder {
	return psqlbuilder.Select(slotColumns...).
		From("slots s").
		Join("events e ON e.id = s.event_id")
}

// Create создает слот. Записи слота не сохраняются, новый слот всегда пустой
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns("event_id", "slot_date", "start_time", "end_time", "purpose", "capacity", "created_by").
		Values(
			slot.EventID,
			slot.Date.Format(types.DateLayout),
			slot.StartTime,
			slot.EndTime,
			slot.Purpose,
			slot.Capacity,
			slot.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.Bookings = make([]domain.Booking, 0)
	return slot, nil
}

// GetByID получает слот вместе с мероприятием и записями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает слот и блокирует его строку до конца транзакции.
// Должен вызываться внутри транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrTransactionRequired
	}
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectSlots().Where(squirrel.Eq{"s.id": id})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF s")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	bookings, err := r.loadBookings(ctx, []int64{slot.ID})
	if err != nil {
		return nil, err
	}
	slot.Bookings = append(slot.Bookings, bookings[slot.ID]...)

	return slot, nil
}

// List возвращает слоты по фильтру, упорядоченные по дате и id
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectSlots().OrderBy("s.slot_date ASC", "s.id ASC")
	if filter.EventID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.event_id": *filter.EventID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
		ids = append(ids, slot.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return slots, nil
	}

	bookings, err := r.loadBookings(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, slot := range slots {
		slot.Bookings = append(slot.Bookings, bookings[slot.ID]...)
	}

	return slots, nil
}

// loadBookings загружает записи слотов одним запросом в порядке записи
func (r *Repository) loadBookings(ctx context.Context, slotIDs []int64) (map[int64][]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("slot_bookings").
		Where(squirrel.Eq{"slot_id": slotIDs}).
		OrderBy("booked_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadBookings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadBookings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.Booking, len(slotIDs))
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID,
			&b.SlotID,
			&b.Name,
			&b.Enrollment,
			&b.Email,
			&b.Phone,
			&b.BookedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: loadBookings - scan row: %v", ErrScanRow, err)
		}
		result[b.SlotID] = append(result[b.SlotID], b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadBookings - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Update перезаписывает изменяемые поля слота. Записи не затрагиваются
func (r *Repository) Update(ctx context.Context, slot *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("slot_date", slot.Date.Format(types.DateLayout)).
		Set("start_time", slot.StartTime).
		Set("end_time", slot.EndTime).
		Set("purpose", slot.Purpose).
		Set("capacity", slot.Capacity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSlotNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// Touch обновляет updated_at слота после изменения записей
func (r *Repository) Touch(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Touch - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Touch - execute update: %v", ErrExecQuery, err)
	}

	return requireAffected(result, ErrSlotNotFound, "Touch")
}

// Delete удаляет слот вместе с записями
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return requireAffected(result, ErrSlotNotFound, "Delete")
}

// DeleteByEventID удаляет все слоты мероприятия и возвращает их количество
func (r *Repository) DeleteByEventID(ctx context.Context, eventID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"event_id": eventID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByEventID - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByEventID - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByEventID - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// AddBooking добавляет запись в слот. Нарушение уникальности возвращается как *DuplicateError
func (r *Repository) AddBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_bookings").
		Columns("slot_id", "name", "enrollment", "email", "phone", "booked_at").
		Values(booking.SlotID, booking.Name, booking.Enrollment, booking.Email, booking.Phone, booking.BookedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddBooking - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch string(pqErr.Code) {
			case pgUniqueViolation:
				return nil, &DuplicateError{Field: fieldByConstraint(pqErr.Constraint)}
			case pgForeignKeyViolation:
				return nil, ErrSlotNotFound
			}
		}
		return nil, fmt.Errorf("%w: AddBooking - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// RemoveBooking удаляет запись из слота по id записи
func (r *Repository) RemoveBooking(ctx context.Context, slotID, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_bookings").
		Where(squirrel.Eq{"id": bookingID, "slot_id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveBooking - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveBooking - execute delete: %v", ErrExecQuery, err)
	}

	return requireAffected(result, ErrBookingNotFound, "RemoveBooking")
}

func requireAffected(result sql.Result, notFound error, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

func fieldByConstraint(constraint string) domain.BookingField {
	switch constraint {
	case constraintEnrollment:
		return domain.BookingFieldEnrollment
	case constraintEmail:
		return domain.BookingFieldEmail
	case constraintPhone:
		return domain.BookingFieldPhone
	default:
		return domain.BookingFieldNone
	}
}
