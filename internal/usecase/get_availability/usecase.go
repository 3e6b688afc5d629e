package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
)

// UseCase use case расчёта доступных слотов по типу события
type UseCase struct {
	eventTypeRepo EventTypeRepository
	eventRepo     EventRepository
	settings      SettingsProvider
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventTypeRepo EventTypeRepository,
	eventRepo EventRepository,
	settings SettingsProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventTypeRepo: eventTypeRepo,
		eventRepo:     eventRepo,
		settings:      settings,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет расчёт доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: eventType=%d, range=%s..%s",
		req.EventTypeID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тип события
	eventType, err := uc.eventTypeRepo.GetByID(ctx, req.EventTypeID)
	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			uc.logger.Warn("GetAvailability: event type id=%d not found", req.EventTypeID)
			return nil, ErrEventTypeNotFound
		}
		uc.logger.Error("GetAvailability: failed to get event type id=%d: %v", req.EventTypeID, err)
		return nil, fmt.Errorf("%w: failed to get event type: %v", ErrInternal, err)
	}

	// 3. Проверяем доступ: хост видит свои типы, публика — только активные
	if req.RequestorID != nil {
		if eventType.UserID != *req.RequestorID {
			uc.logger.Warn("GetAvailability: access denied for user=%d to event type id=%d",
				*req.RequestorID, req.EventTypeID)
			return nil, ErrAccessDenied
		}
	} else if !eventType.IsBookable() {
		uc.logger.Info("GetAvailability: event type id=%d is not bookable", req.EventTypeID)
		return nil, ErrEventTypeNotFound
	}

	// 4. Получаем текущее время
	now := uc.timeProvider.Now()

	// 5. Получаем рабочие часы хоста (с дефолтами при первом обращении)
	settings, err := uc.settings.GetDomain(ctx, eventType.UserID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get settings for user=%d: %v", eventType.UserID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 6. Загружаем события хоста за весь диапазон одним запросом
	rangeStart := truncateToDay(req.StartDate)
	rangeEnd := truncateToDay(req.EndDate).AddDate(0, 0, 1)

	var events []*domain.Event
	if !rangeEnd.Before(rangeStart) {
		events, err = uc.eventRepo.GetOverlapping(ctx, eventType.UserID, rangeStart, rangeEnd, nil)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to get events for user=%d: %v", eventType.UserID, err)
			return nil, fmt.Errorf("%w: failed to get events: %v", ErrInternal, err)
		}
	}

	// 7. Считаем свободные слоты
	timeSlots, err := computeSlots(
		settings.WorkingHours,
		events,
		eventType.DurationMinutes,
		req.StartDate,
		req.EndDate,
		now,
	)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(timeSlots))
	for _, s := range timeSlots {
		slots = append(slots, Slot{StartTime: s.Start, EndTime: s.End})
	}

	uc.logger.Info("GetAvailability: %d slots for eventType=%d in %s..%s",
		len(slots), req.EventTypeID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	return &Response{
		EventTypeID:     eventType.ID,
		DurationMinutes: eventType.DurationMinutes,
		StartDate:       req.StartDate.Format(domain.DateFormat),
		EndDate:         req.EndDate.Format(domain.DateFormat),
		Slots:           slots,
	}, nil
}
