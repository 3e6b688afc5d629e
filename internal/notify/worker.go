package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/mailer"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/smsgateway"
)

// Config параметры воркера доставки уведомлений
type Config struct {
	Interval       time.Duration // Период опроса outbox
	BatchSize      int           // Максимум задач за проход
	MaxAttempts    int           // Попыток до перевода задачи в failed
	RetryBaseDelay time.Duration // Базовая задержка ретраев внутри попытки
}

// Worker фоновый обработчик outbox уведомлений
// Берёт pending задачи пачками, доставляет через шлюзы и помечает результат
// Ошибки доставки не выходят за пределы воркера: бронирование уже закоммичено
type Worker struct {
	outbox    OutboxRepository
	mailer    Mailer
	sms       SMSSender
	txManager TransactionManager
	cfg       Config
	logger    Logger
}

// NewWorker создает новый экземпляр воркера уведомлений
func NewWorker(
	outbox OutboxRepository,
	mailerClient Mailer,
	smsClient SMSSender,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *Worker {
	return &Worker{
		outbox:    outbox,
		mailer:    mailerClient,
		sms:       smsClient,
		txManager: txManager,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run запускает цикл обработки до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("notify: worker started, interval=%s, batch=%d", w.cfg.Interval, w.cfg.BatchSize)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("notify: worker stopped")
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch обрабатывает одну пачку pending задач
// Выборка и смена статусов идут в одной транзакции: SKIP LOCKED не даёт
// двум инстансам воркера схватить одни и те же задачи
func (w *Worker) ProcessBatch(ctx context.Context) {
	err := w.txManager.Do(ctx, func(txCtx context.Context) error {
		tasks, err := w.outbox.FetchPending(txCtx, w.cfg.BatchSize)
		if err != nil {
			return fmt.Errorf("fetch pending tasks: %w", err)
		}

		for _, task := range tasks {
			w.processTask(txCtx, task)
		}
		return nil
	})

	if err != nil {
		w.logger.Error("notify: batch failed: %v", err)
	}
}

// processTask доставляет одну задачу и фиксирует результат
func (w *Worker) processTask(ctx context.Context, task *domain.NotificationTask) {
	err := w.deliver(ctx, task)
	if err == nil {
		if err := w.outbox.MarkSent(ctx, task.ID); err != nil {
			w.logger.Error("notify: failed to mark task id=%s sent: %v", task.ID, err)
		}
		w.logger.Info("notify: delivered %s/%s to %s", task.Kind, task.Channel, task.Recipient)
		return
	}

	attempts := task.Attempts + 1
	w.logger.Warn("notify: delivery failed for task id=%s (attempt %d/%d): %v",
		task.ID, attempts, w.cfg.MaxAttempts, err)

	if markErr := w.outbox.MarkAttemptFailed(ctx, task.ID, attempts, w.cfg.MaxAttempts, err.Error()); markErr != nil {
		w.logger.Error("notify: failed to record attempt for task id=%s: %v", task.ID, markErr)
	}
}

// deliver отправляет задачу через соответствующий шлюз
// Сетевые сбои ретраятся с экспоненциальной задержкой; отклонённые шлюзом
// сообщения не ретраятся — повтор даст тот же результат
func (w *Worker) deliver(ctx context.Context, task *domain.NotificationTask) error {
	var payload domain.NotificationPayload
	if err := json.Unmarshal(task.Payload, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	backoff := retry.WithMaxRetries(2, retry.NewExponential(w.cfg.RetryBaseDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		switch task.Channel {
		case domain.ChannelEmail:
			err = w.mailer.Send(ctx, task.Recipient, payload.Subject, payload.Body)
		case domain.ChannelSMS:
			err = w.sms.Send(ctx, task.Recipient, payload.Body)
		default:
			return fmt.Errorf("%w: %s", ErrUnknownChannel, task.Channel)
		}

		if err == nil {
			return nil
		}
		if errors.Is(err, mailer.ErrRejected) || errors.Is(err, smsgateway.ErrRejected) {
			return err
		}
		return retry.RetryableError(err)
	})
}
