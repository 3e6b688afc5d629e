package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/calendarlinks"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// UseCase use case публичного бронирования слота
type UseCase struct {
	eventTypeRepo EventTypeRepository
	eventRepo     EventRepository
	outboxRepo    OutboxRepository
	settings      SettingsProvider
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventTypeRepo EventTypeRepository,
	eventRepo EventRepository,
	outboxRepo OutboxRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventTypeRepo: eventTypeRepo,
		eventRepo:     eventRepo,
		outboxRepo:    outboxRepo,
		settings:      settings,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет бронирование слота
// Проверка занятости и вставка идут в сериализуемой транзакции: из двух
// конкурирующих броней на пересекающиеся интервалы выигрывает ровно одна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: eventType=%d, date=%s, time=%s",
		req.EventTypeID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тип события; брони принимают только активные типы
	eventType, err := uc.eventTypeRepo.GetByID(ctx, req.EventTypeID)
	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			uc.logger.Warn("CreateBooking: event type id=%d not found", req.EventTypeID)
			return nil, ErrEventTypeNotFound
		}
		uc.logger.Error("CreateBooking: failed to get event type id=%d: %v", req.EventTypeID, err)
		return nil, fmt.Errorf("%w: failed to get event type: %v", ErrInternal, err)
	}
	if !eventType.IsBookable() {
		uc.logger.Warn("CreateBooking: event type id=%d is not bookable", req.EventTypeID)
		return nil, ErrEventTypeNotFound
	}

	// 3. Считаем интервал: конец = начало + длительность типа события
	start, err := req.StartTime.On(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}
	end := start.Add(time.Duration(eventType.DurationMinutes) * time.Minute)

	now := uc.timeProvider.Now()
	if start.Before(now) {
		uc.logger.Warn("CreateBooking: slot %s is in the past", start)
		return nil, fmt.Errorf("%w: slot is in the past", ErrSlotUnavailable)
	}

	// 4. Получаем настройки хоста и проверяем попадание в рабочие часы
	settings, err := uc.settings.GetDomain(ctx, eventType.UserID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get settings for user=%d: %v", eventType.UserID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	if err := validateSlotFits(settings.WorkingHours, start, end, eventType.DurationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: slot %s rejected: %v", start, err)
		return nil, err
	}

	title := eventType.Name
	name := req.Name
	email := req.Email

	event := &domain.Event{
		UserID:        eventType.UserID,
		EventTypeID:   &eventType.ID,
		Title:         title,
		StartTime:     start,
		EndTime:       end,
		Description:   req.Notes,
		AttendeeName:  &name,
		AttendeeEmail: &email,
		AttendeePhone: req.Phone,
		Location:      req.Location,
		Answers:       req.Answers,
		IsConfirmed:   true,
	}

	links := calendarlinks.Build(title, start, end, descriptionOrEmpty(req.Notes), locationOrEmpty(req.Location))

	// 5. Сериализуемая транзакция: проверка занятости, вставка события
	// и постановка уведомлений в outbox атомарны
	var result *domain.Event
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Читаем пересекающиеся события с блокировкой строк
		overlapping, err := uc.eventRepo.GetOverlapping(txCtx, eventType.UserID, start, end, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping events: %v", err)
			return fmt.Errorf("%w: failed to get overlapping events: %v", ErrInternal, err)
		}

		// 5.2. Строгое пересечение — слот занят
		if hasOverlap(overlapping, start, end) {
			uc.logger.Warn("CreateBooking: slot %s is taken for user=%d", start, eventType.UserID)
			return ErrSlotTaken
		}

		// 5.3. Создаем событие
		created, err := uc.eventRepo.Create(txCtx, event)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create event: %v", err)
			return fmt.Errorf("%w: failed to create event: %v", ErrInternal, err)
		}

		// 5.4. Ставим уведомления в очередь в той же транзакции
		tasks, err := buildNotificationTasks(created, settings, links)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			if err := uc.outboxRepo.Enqueue(txCtx, task); err != nil {
				uc.logger.Error("CreateBooking: failed to enqueue notification: %v", err)
				return fmt.Errorf("%w: failed to enqueue notification: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигравшая из конкурирующих транзакций может упасть и на коммите
		// (SQLSTATE 40001): для клиента это та же занятость слота
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serialization failure, slot contested for user=%d at %s",
				eventType.UserID, start)
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created event id=%d for user=%d at %s",
		result.ID, result.UserID, start)

	return &Response{
		ID:            result.ID,
		EventTypeID:   eventType.ID,
		Title:         result.Title,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		AttendeeName:  name,
		AttendeeEmail: email,
		Location:      result.Location,
		IsConfirmed:   result.IsConfirmed,
		CalendarLinks: links,
		CreatedAt:     result.CreatedAt,
	}, nil
}

func descriptionOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func locationOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
