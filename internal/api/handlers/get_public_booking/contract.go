package get_public_booking

import (
	"context"

	eventModels "github.com/m04kA/SMC-SchedulingService/internal/service/events/models"
)

type EventService interface {
	GetPublic(ctx context.Context, id int64) (*eventModels.PublicEventResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
