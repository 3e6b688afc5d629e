package cancel_event

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
)

// UseCase use case отмены события
// Отмена терминальна: уведомления ставятся в outbox и событие удаляется
// в одной транзакции
type UseCase struct {
	eventRepo  EventRepository
	outboxRepo OutboxRepository
	settings   SettingsProvider
	txManager  TransactionManager
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	outboxRepo OutboxRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:  eventRepo,
		outboxRepo: outboxRepo,
		settings:   settings,
		txManager:  txManager,
		logger:     logger,
	}
}

// Execute выполняет отмену события
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelEvent: event=%d, user=%d", req.EventID, req.UserID)

	// 1. Валидация входных данных
	if req.EventID <= 0 {
		return nil, fmt.Errorf("%w: eventID must be positive", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	// 2. Получаем событие и проверяем владельца
	event, err := uc.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			uc.logger.Warn("CancelEvent: event id=%d not found", req.EventID)
			return nil, ErrEventNotFound
		}
		uc.logger.Error("CancelEvent: failed to get event id=%d: %v", req.EventID, err)
		return nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}
	if event.UserID != req.UserID {
		uc.logger.Warn("CancelEvent: access denied for user=%d to event id=%d", req.UserID, req.EventID)
		return nil, ErrAccessDenied
	}

	// 3. Получаем настройки хоста для собирания уведомлений
	settings, err := uc.settings.GetDomain(ctx, event.UserID)
	if err != nil {
		uc.logger.Error("CancelEvent: failed to get settings for user=%d: %v", event.UserID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	tasks, err := buildCancellationTasks(event, settings, req.Reason)
	if err != nil {
		return nil, err
	}

	// 4. Уведомления и удаление атомарны: либо событие удалено и все задачи
	// в очереди, либо ничего не произошло
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, task := range tasks {
			if err := uc.outboxRepo.Enqueue(txCtx, task); err != nil {
				uc.logger.Error("CancelEvent: failed to enqueue notification: %v", err)
				return fmt.Errorf("%w: failed to enqueue notification: %v", ErrInternal, err)
			}
		}

		if err := uc.eventRepo.Delete(txCtx, req.EventID); err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return ErrEventNotFound
			}
			uc.logger.Error("CancelEvent: failed to delete event id=%d: %v", req.EventID, err)
			return fmt.Errorf("%w: failed to delete event: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelEvent: cancelled event id=%d, %d notifications queued", req.EventID, len(tasks))

	return &Response{
		EventID:       req.EventID,
		Notifications: len(tasks),
	}, nil
}
