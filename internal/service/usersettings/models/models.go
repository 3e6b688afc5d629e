package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек
// Незаполненные секции не изменяются
type UpdateSettingsRequest struct {
	UserID               int64                        `json:"-"`
	WorkingHours         *domain.WeekSchedule         `json:"workingHours,omitempty"`
	NotificationSettings *domain.NotificationSettings `json:"notificationSettings,omitempty"`
	DisplayName          *string                      `json:"displayName,omitempty"`
	NotifyEmail          *string                      `json:"notifyEmail,omitempty"`
	NotifyPhone          *string                      `json:"notifyPhone,omitempty"`
}

// Response модели

// SettingsResponse ответ с настройками пользователя
type SettingsResponse struct {
	UserID               int64                       `json:"userId"`
	WorkingHours         domain.WeekSchedule         `json:"workingHours"`
	NotificationSettings domain.NotificationSettings `json:"notificationSettings"`
	DisplayName          string                      `json:"displayName"`
	NotifyEmail          string                      `json:"notifyEmail"`
	NotifyPhone          *string                     `json:"notifyPhone,omitempty"`
	UpdatedAt            time.Time                   `json:"updatedAt"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.Settings) *SettingsResponse {
	if s == nil {
		return nil
	}

	return &SettingsResponse{
		UserID:               s.UserID,
		WorkingHours:         s.WorkingHours,
		NotificationSettings: s.NotificationSettings,
		DisplayName:          s.DisplayName,
		NotifyEmail:          s.NotifyEmail,
		NotifyPhone:          s.NotifyPhone,
		UpdatedAt:            s.UpdatedAt,
	}
}
