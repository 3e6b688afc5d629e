package eventtypes

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventTypeRepository интерфейс репозитория типов событий
type EventTypeRepository interface {
	Create(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error)
	GetByID(ctx context.Context, id int64) (*domain.EventType, error)
	GetBySlug(ctx context.Context, slug string) (*domain.EventType, error)
	ListByUserID(ctx context.Context, userID int64) ([]*domain.EventType, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, id int64, upd domain.EventTypeUpdate, newSlug *string) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
