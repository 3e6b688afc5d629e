package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var settingsColumns = []string{
	"id",
	"user_id",
	"working_hours",
	"notification_settings",
	"display_name",
	"notify_email",
	"notify_phone",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с настройками пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUserID получает настройки пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("settings").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Settings
	var workingHours, notificationSettings []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.UserID,
		&workingHours,
		&notificationSettings,
		&s.DisplayName,
		&s.NotifyEmail,
		&s.NotifyPhone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan settings: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(workingHours, &s.WorkingHours); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - unmarshal working_hours: %v", ErrScanRow, err)
	}
	if err := json.Unmarshal(notificationSettings, &s.NotificationSettings); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - unmarshal notification_settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создаёт или полностью обновляет настройки пользователя
// (настройки — единственная точка изменения рабочих часов)
func (r *Repository) Upsert(ctx context.Context, s *domain.Settings) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	workingHours, err := json.Marshal(s.WorkingHours)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - working_hours: %v", ErrMarshal, err)
	}
	notificationSettings, err := json.Marshal(s.NotificationSettings)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - notification_settings: %v", ErrMarshal, err)
	}

	query, args, err := psqlbuilder.Insert("settings").
		Columns(
			"user_id",
			"working_hours",
			"notification_settings",
			"display_name",
			"notify_email",
			"notify_phone",
		).
		Values(
			s.UserID,
			workingHours,
			notificationSettings,
			s.DisplayName,
			s.NotifyEmail,
			s.NotifyPhone,
		).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			working_hours = EXCLUDED.working_hours,
			notification_settings = EXCLUDED.notification_settings,
			display_name = EXCLUDED.display_name,
			notify_email = EXCLUDED.notify_email,
			notify_phone = EXCLUDED.notify_phone,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
