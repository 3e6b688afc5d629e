package cancel_event

import (
	"context"

	cancelEvent "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_event"
)

type CancelEventUseCase interface {
	Execute(ctx context.Context, req *cancelEvent.Request) (*cancelEvent.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
