package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-EventSlots/internal/domain"
	"github.com/m04kA/SMC-EventSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-EventSlots/pkg/psqlbuilder"
)

var eventColumns = []string{
	"id",
	"name",
	"description",
	"published",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с мероприятиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мероприятий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает мероприятие
func (r *Repository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("events").
		Columns("name", "description", "published", "created_by").
		Values(event.Name, event.Description, event.Published, event.CreatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(
		&event.ID,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return event, nil
}

// GetByID получает мероприятие по ID независимо от публикации
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var event domain.Event
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&event.ID,
		&event.Name,
		&event.Description,
		&event.Published,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan event: %v", ErrScanRow, err)
	}

	return &event, nil
}

// List возвращает мероприятия, новые первыми. onlyPublished скрывает неопубликованные
func (r *Repository) List(ctx context.Context, onlyPublished bool) ([]*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(eventColumns...).
		From("events").
		OrderBy("created_at DESC", "id DESC")

	if onlyPublished {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"published": true})
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

	events := make([]*domain.Event, 0)
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.Description,
			&event.Published,
			&event.CreatedBy,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

// Update перезаписывает name, description и published
func (r *Repository) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("events").
		Set("name", event.Name).
		Set("description", event.Description).
		Set("published", event.Published).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": event.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&event.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return event, nil
}

// Delete удаляет мероприятие. Слоты удаляются каскадно
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
