package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventTypeRepository интерфейс репозитория типов событий
type EventTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.EventType, error)
}

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	// GetOverlapping получает события хоста, пересекающиеся с интервалом
	GetOverlapping(ctx context.Context, userID int64, start, end time.Time, excludeID *int64) ([]*domain.Event, error)
}

// SettingsProvider интерфейс доступа к настройкам хоста
// Возвращает дефолтное расписание, если хост ещё не настраивал часы
type SettingsProvider interface {
	GetDomain(ctx context.Context, userID int64) (*domain.Settings, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
