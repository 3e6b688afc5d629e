package usersettings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/usersettings/models"
)

// Service сервис для работы с настройками пользователя
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get получает настройки пользователя
// При первом обращении создаёт запись с дефолтным расписанием Пн-Пт 09:00-17:00
func (s *Service) Get(ctx context.Context, userID int64) (*models.SettingsResponse, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return s.bootstrap(ctx, userID)
		}
		s.logger.Error("Get: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// GetDomain получает доменную модель настроек, создавая дефолтную при отсутствии
// Используется расчётом слотов и бронированием
func (s *Service) GetDomain(ctx context.Context, userID int64) (*domain.Settings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Error("GetDomain: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetDomain - repository error: %v", ErrInternal, err)
	}

	defaults := defaultSettings(userID)
	created, err := s.settingsRepo.Upsert(ctx, defaults)
	if err != nil {
		s.logger.Error("GetDomain: failed to bootstrap settings for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetDomain - bootstrap error: %v", ErrInternal, err)
	}
	return created, nil
}

// Update обновляет настройки пользователя
// Расписание валидируется целиком: у включённых дней начало строго раньше конца
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for user=%d", req.UserID)

	if req.WorkingHours != nil {
		if err := req.WorkingHours.Validate(); err != nil {
			s.logger.Warn("Update: invalid schedule for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
	}

	// Читаем текущие настройки (или дефолты) и накладываем изменения
	current, err := s.GetDomain(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.WorkingHours != nil {
		current.WorkingHours = *req.WorkingHours
	}
	if req.NotificationSettings != nil {
		current.NotificationSettings = *req.NotificationSettings
	}
	if req.DisplayName != nil {
		current.DisplayName = *req.DisplayName
	}
	if req.NotifyEmail != nil {
		current.NotifyEmail = *req.NotifyEmail
	}
	if req.NotifyPhone != nil {
		current.NotifyPhone = req.NotifyPhone
	}

	updated, err := s.settingsRepo.Upsert(ctx, current)
	if err != nil {
		s.logger.Error("Update: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated settings for user=%d", req.UserID)
	return models.FromDomainSettings(updated), nil
}

// bootstrap создаёт настройки по умолчанию для нового пользователя
func (s *Service) bootstrap(ctx context.Context, userID int64) (*models.SettingsResponse, error) {
	s.logger.Info("bootstrap: creating default settings for user=%d", userID)

	created, err := s.settingsRepo.Upsert(ctx, defaultSettings(userID))
	if err != nil {
		s.logger.Error("bootstrap: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: bootstrap - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(created), nil
}

func defaultSettings(userID int64) *domain.Settings {
	return &domain.Settings{
		UserID:               userID,
		WorkingHours:         domain.DefaultWeekSchedule(),
		NotificationSettings: domain.DefaultNotificationSettings(),
	}
}
