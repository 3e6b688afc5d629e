package get_public_event_type

import (
	"context"

	eventTypeModels "github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes/models"
	settingsModels "github.com/m04kA/SMC-SchedulingService/internal/service/usersettings/models"
)

type EventTypeService interface {
	GetPublic(ctx context.Context, identifier string, byID bool, id int64) (*eventTypeModels.PublicEventTypeResponse, error)
}

type SettingsService interface {
	Get(ctx context.Context, userID int64) (*settingsModels.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
