package eventtype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

var eventTypeColumns = []string{
	"id",
	"user_id",
	"name",
	"slug",
	"description",
	"duration_minutes",
	"color",
	"is_active",
	"locations",
	"questions",
	"booking_rules",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с типами событий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый тип события
// Slug должен быть сгенерирован заранее на уровне сервиса;
// при гонке на уникальности возвращается ErrSlugTaken
func (r *Repository) Create(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("event_types").
		Columns(
			"user_id",
			"name",
			"slug",
			"description",
			"duration_minutes",
			"color",
			"is_active",
			"locations",
			"questions",
			"booking_rules",
		).
		Values(
			eventType.UserID,
			eventType.Name,
			eventType.Slug,
			eventType.Description,
			eventType.DurationMinutes,
			eventType.Color,
			eventType.IsActive,
			nullableJSON(eventType.Locations),
			nullableJSON(eventType.Questions),
			nullableJSON(eventType.BookingRules),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&eventType.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	eventType.CreatedAt = createdAt.Time
	eventType.UpdatedAt = updatedAt.Time

	return eventType, nil
}

// GetByID получает тип события по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.EventType, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetBySlug получает тип события по slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.EventType, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug})
}

// ListByUserID получает все типы событий хоста
func (r *Repository) ListByUserID(ctx context.Context, userID int64) ([]*domain.EventType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventTypeColumns...).
		From("event_types").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	eventTypes := make([]*domain.EventType, 0)
	for rows.Next() {
		eventType, err := scanEventType(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByUserID - scan row: %v", ErrScanRow, err)
		}
		eventTypes = append(eventTypes, eventType)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUserID - rows error: %v", ErrScanRow, err)
	}

	return eventTypes, nil
}

// SlugExists проверяет занятость slug
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("event_types").
		Where(squirrel.Eq{"slug": slug}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: SlugExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: SlugExists - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// Update обновляет только явно перечисленные поля типа события
// Новый slug передаётся отдельно — он вычисляется сервисом при смене имени
func (r *Repository) Update(ctx context.Context, id int64, upd domain.EventTypeUpdate, newSlug *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("event_types").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.Name != nil {
		updateBuilder = updateBuilder.Set("name", *upd.Name)
	}
	if newSlug != nil {
		updateBuilder = updateBuilder.Set("slug", *newSlug)
	}
	if upd.Description != nil {
		updateBuilder = updateBuilder.Set("description", *upd.Description)
	}
	if upd.DurationMinutes != nil {
		updateBuilder = updateBuilder.Set("duration_minutes", *upd.DurationMinutes)
	}
	if upd.Color != nil {
		updateBuilder = updateBuilder.Set("color", *upd.Color)
	}
	if upd.IsActive != nil {
		updateBuilder = updateBuilder.Set("is_active", *upd.IsActive)
	}
	if upd.Locations != nil {
		updateBuilder = updateBuilder.Set("locations", []byte(upd.Locations))
	}
	if upd.Questions != nil {
		updateBuilder = updateBuilder.Set("questions", []byte(upd.Questions))
	}
	if upd.BookingRules != nil {
		updateBuilder = updateBuilder.Set("booking_rules", []byte(upd.BookingRules))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEventTypeNotFound
	}

	return nil
}

// Delete удаляет тип события (физическое удаление; связанные события
// остаются с event_type_id = NULL за счёт ON DELETE SET NULL)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("event_types").
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
		return ErrEventTypeNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.EventType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventTypeColumns...).
		From("event_types").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	eventType, err := scanEventType(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrEventTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan event type: %v", ErrScanRow, err)
	}

	return eventType, nil
}

// isUniqueViolation распознаёт нарушение уникального ограничения PostgreSQL
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}

// nullableJSON возвращает nil для пустых JSON значений
func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

// scanEventType сканирует одну строку в доменную модель
func scanEventType(scan func(dest ...interface{}) error) (*domain.EventType, error) {
	var eventType domain.EventType
	var locations, questions, bookingRules []byte
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&eventType.ID,
		&eventType.UserID,
		&eventType.Name,
		&eventType.Slug,
		&eventType.Description,
		&eventType.DurationMinutes,
		&eventType.Color,
		&eventType.IsActive,
		&locations,
		&questions,
		&bookingRules,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	eventType.Locations = locations
	eventType.Questions = questions
	eventType.BookingRules = bookingRules
	eventType.CreatedAt = createdAt.Time
	eventType.UpdatedAt = updatedAt.Time

	return &eventType, nil
}
