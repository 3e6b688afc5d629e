package notify

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// OutboxRepository интерфейс очереди уведомлений
type OutboxRepository interface {
	// FetchPending выбирает пачку задач; в транзакции — с блокировкой SKIP LOCKED
	FetchPending(ctx context.Context, limit int) ([]*domain.NotificationTask, error)
	MarkSent(ctx context.Context, id string) error
	MarkAttemptFailed(ctx context.Context, id string, attempts int, maxAttempts int, lastError string) error
}

// Mailer интерфейс почтового шлюза
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMSSender интерфейс SMS шлюза
type SMSSender interface {
	Send(ctx context.Context, to, text string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
