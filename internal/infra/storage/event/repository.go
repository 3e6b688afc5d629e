package event

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var eventColumns = []string{
	"id",
	"user_id",
	"event_type_id",
	"title",
	"start_time",
	"end_time",
	"description",
	"attendee_name",
	"attendee_email",
	"attendee_phone",
	"location",
	"answers",
	"is_confirmed",
	"created_at",
}

// Repository репозиторий для работы с событиями календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое событие
// Если в контексте передана активная транзакция, использует её —
// это обязательное условие для пути резервирования слота (см. usecase create_booking)
func (r *Repository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("events").
		Columns(
			"user_id",
			"event_type_id",
			"title",
			"start_time",
			"end_time",
			"description",
			"attendee_name",
			"attendee_email",
			"attendee_phone",
			"location",
			"answers",
			"is_confirmed",
		).
		Values(
			event.UserID,
			event.EventTypeID,
			event.Title,
			event.StartTime,
			event.EndTime,
			event.Description,
			event.AttendeeName,
			event.AttendeeEmail,
			event.AttendeePhone,
			event.Location,
			nullableJSON(event.Answers),
			event.IsConfirmed,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&event.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	event.CreatedAt = createdAt.Time

	return event, nil
}

// GetByID получает событие по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	event, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan event: %v", ErrScanRow, err)
	}

	return event, nil
}

// GetOverlapping получает все события хоста, строго пересекающие интервал [start, end)
// Используется строгий предикат пересечения: start_time < end AND end_time > start,
// касание границ пересечением не считается
//
// excludeID позволяет исключить одно событие из проверки (для обновления времени события)
//
// Внутри транзакции добавляется FOR UPDATE — блокировка строк на время
// проверки конфликтов перед вставкой (предотвращение двойного бронирования)
func (r *Repository) GetOverlapping(ctx context.Context, userID int64, start, end time.Time, excludeID *int64) ([]*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// List получает страницу событий хоста с фильтрацией по статусу и поиском
// Сортировка — по времени начала, сначала новые
func (r *Repository) List(ctx context.Context, filter domain.EventsFilter, now time.Time) ([]*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(eventColumns...).From("events"), filter, now).
		OrderBy("start_time DESC")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	selectBuilder = selectBuilder.
		Limit(uint64(domain.DefaultEventsPerPage)).
		Offset(uint64((page - 1) * domain.DefaultEventsPerPage))

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Count возвращает общее количество событий под фильтром (для пагинации)
func (r *Repository) Count(ctx context.Context, filter domain.EventsFilter, now time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("events"), filter, now).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: Count - scan total: %v", ErrScanRow, err)
	}

	return total, nil
}

// Update обновляет только явно перечисленные поля события
func (r *Repository) Update(ctx context.Context, id int64, upd domain.EventUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("events").Where(squirrel.Eq{"id": id})

	if upd.Title != nil {
		updateBuilder = updateBuilder.Set("title", *upd.Title)
	}
	if upd.StartTime != nil {
		updateBuilder = updateBuilder.Set("start_time", *upd.StartTime)
	}
	if upd.EndTime != nil {
		updateBuilder = updateBuilder.Set("end_time", *upd.EndTime)
	}
	if upd.Description != nil {
		updateBuilder = updateBuilder.Set("description", *upd.Description)
	}
	if upd.AttendeeName != nil {
		updateBuilder = updateBuilder.Set("attendee_name", *upd.AttendeeName)
	}
	if upd.AttendeeEmail != nil {
		updateBuilder = updateBuilder.Set("attendee_email", *upd.AttendeeEmail)
	}
	if upd.AttendeePhone != nil {
		updateBuilder = updateBuilder.Set("attendee_phone", *upd.AttendeePhone)
	}
	if upd.Location != nil {
		updateBuilder = updateBuilder.Set("location", *upd.Location)
	}
	if upd.IsConfirmed != nil {
		updateBuilder = updateBuilder.Set("is_confirmed", *upd.IsConfirmed)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// Delete удаляет событие (физическое удаление — терминальное состояние
// после отмены с рассылкой уведомлений)
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

// applyFilter накладывает условия EventsFilter на запрос
// Статусы интерпретируются относительно текущего дня:
// today — события сегодняшнего дня, upcoming — после конца сегодняшнего дня,
// past — до начала сегодняшнего дня
func applyFilter(selectBuilder squirrel.SelectBuilder, filter domain.EventsFilter, now time.Time) squirrel.SelectBuilder {
	selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": filter.UserID})

	if filter.Status != nil {
		todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		todayEnd := todayStart.AddDate(0, 0, 1)

		switch *filter.Status {
		case domain.EventStatusToday:
			selectBuilder = selectBuilder.
				Where(squirrel.GtOrEq{"start_time": todayStart}).
				Where(squirrel.Lt{"start_time": todayEnd})
		case domain.EventStatusUpcoming:
			selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": todayEnd})
		case domain.EventStatusPast:
			selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": todayStart})
		}
	}

	if filter.Query != nil && *filter.Query != "" {
		pattern := "%" + *filter.Query + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	return selectBuilder
}

// nullableJSON возвращает nil для пустых JSON значений, чтобы в БД
// записывался NULL, а не пустая строка
func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

// scanEvent сканирует одну строку в доменную модель
func scanEvent(scan func(dest ...interface{}) error) (*domain.Event, error) {
	var event domain.Event
	var eventTypeID sql.NullInt64
	var answers []byte
	var createdAt sql.NullTime

	err := scan(
		&event.ID,
		&event.UserID,
		&eventTypeID,
		&event.Title,
		&event.StartTime,
		&event.EndTime,
		&event.Description,
		&event.AttendeeName,
		&event.AttendeeEmail,
		&event.AttendeePhone,
		&event.Location,
		&answers,
		&event.IsConfirmed,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if eventTypeID.Valid {
		event.EventTypeID = &eventTypeID.Int64
	}
	event.Answers = answers
	event.CreatedAt = createdAt.Time

	return &event, nil
}

// scanEvents сканирует результаты запроса в слайс событий
func scanEvents(rows *sql.Rows) ([]*domain.Event, error) {
	events := make([]*domain.Event, 0)

	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEvents - scan row: %v", ErrScanRow, err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEvents - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}
