package outbox

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var taskColumns = []string{
	"id",
	"kind",
	"channel",
	"recipient",
	"payload",
	"status",
	"attempts",
	"last_error",
	"created_at",
	"sent_at",
}

// Repository репозиторий outbox задач уведомлений
// Задачи вставляются в той же транзакции, что и бронирование,
// и доставляются фоновым воркером после коммита
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория outbox
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Enqueue ставит задачу уведомления в очередь
// Обязана вызываться внутри транзакции бронирования/отмены —
// так коммит бронирования и постановка уведомления атомарны
func (r *Repository) Enqueue(ctx context.Context, task *domain.NotificationTask) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notification_outbox").
		Columns(
			"id",
			"kind",
			"channel",
			"recipient",
			"payload",
			"status",
		).
		Values(
			task.ID,
			task.Kind,
			task.Channel,
			task.Recipient,
			[]byte(task.Payload),
			domain.NotificationPending,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Enqueue - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Enqueue - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// FetchPending выбирает пачку ожидающих задач в порядке создания
// Внутри транзакции воркера добавляется FOR UPDATE SKIP LOCKED,
// чтобы несколько инстансов воркера не брали одни и те же задачи
func (r *Repository) FetchPending(ctx context.Context, limit int) ([]*domain.NotificationTask, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(taskColumns...).
		From("notification_outbox").
		Where(squirrel.Eq{"status": domain.NotificationPending}).
		OrderBy("created_at ASC").
		Limit(uint64(limit))

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE SKIP LOCKED")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FetchPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tasks := make([]*domain.NotificationTask, 0)
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: FetchPending - scan row: %v", ErrScanRow, err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchPending - rows error: %v", ErrScanRow, err)
	}

	return tasks, nil
}

// MarkSent помечает задачу доставленной
func (r *Repository) MarkSent(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notification_outbox").
		Set("status", domain.NotificationSent).
		Set("sent_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkSent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkSent - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// MarkAttemptFailed фиксирует неудачную попытку доставки
// Задача остаётся pending до исчерпания maxAttempts, после чего
// переводится в failed и больше не выбирается воркером
func (r *Repository) MarkAttemptFailed(ctx context.Context, id string, attempts int, maxAttempts int, lastError string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	status := domain.NotificationPending
	if attempts >= maxAttempts {
		status = domain.NotificationFailed
	}

	query, args, err := psqlbuilder.Update("notification_outbox").
		Set("status", status).
		Set("attempts", attempts).
		Set("last_error", lastError).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkAttemptFailed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkAttemptFailed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkAttemptFailed - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// scanTask сканирует одну строку в доменную модель
func scanTask(scan func(dest ...interface{}) error) (*domain.NotificationTask, error) {
	var task domain.NotificationTask
	var payload []byte
	var createdAt sql.NullTime
	var sentAt sql.NullTime

	err := scan(
		&task.ID,
		&task.Kind,
		&task.Channel,
		&task.Recipient,
		&payload,
		&task.Status,
		&task.Attempts,
		&task.LastError,
		&createdAt,
		&sentAt,
	)
	if err != nil {
		return nil, err
	}

	task.Payload = payload
	task.CreatedAt = createdAt.Time
	if sentAt.Valid {
		task.SentAt = &sentAt.Time
	}

	return &task, nil
}
