package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
	"github.com/m04kA/SMC-SchedulingService/internal/service/events/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// Service сервис для работы с календарём событий
type Service struct {
	eventRepo    EventRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса событий
func NewService(
	eventRepo EventRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		eventRepo:    eventRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает событие владельца
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.EventResponse, error) {
	event, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainEvent(event), nil
}

// GetPublic получает бронирование для публичной страницы подтверждения
// Отдаются только события, созданные через публичную запись; личные
// события календаря наружу не видны
func (s *Service) GetPublic(ctx context.Context, id int64) (*models.PublicEventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("GetPublic: repository error for event id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetPublic - repository error: %v", ErrInternal, err)
	}

	if event.EventTypeID == nil {
		return nil, ErrEventNotFound
	}

	return models.FromDomainEventPublic(event), nil
}

// List получает события пользователя с фильтрацией и пагинацией
func (s *Service) List(ctx context.Context, req *models.ListEventsRequest) (*models.EventListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.timeProvider.Now()

	events, err := s.eventRepo.List(ctx, filter, now)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	total, err := s.eventRepo.Count(ctx, filter, now)
	if err != nil {
		s.logger.Error("List: count error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - count error: %v", ErrInternal, err)
	}

	return models.FromDomainEventList(events, total, filter.Page, domain.DefaultEventsPerPage), nil
}

// Create создает событие вручную (блокировка времени, личная встреча)
// Проверка пересечений и вставка выполняются в serializable транзакции,
// чтобы два пересекающихся события нельзя было создать параллельно
func (s *Service) Create(ctx context.Context, req *models.CreateEventRequest) (*models.EventResponse, error) {
	s.logger.Info("Create: creating event %q for user=%d", req.Title, req.UserID)

	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	event := &domain.Event{
		UserID:      req.UserID,
		Title:       req.Title,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
		Location:    req.Location,
		IsConfirmed: true,
	}

	var created *domain.Event
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		overlapping, err := s.eventRepo.GetOverlapping(ctx, req.UserID, req.StartTime, req.EndTime, nil)
		if err != nil {
			return fmt.Errorf("%w: Create - check overlap: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			return ErrTimeConflict
		}

		created, err = s.eventRepo.Create(ctx, event)
		if err != nil {
			return fmt.Errorf("%w: Create - insert event: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrTimeConflict) {
			s.logger.Warn("Create: time conflict for user=%d at %s", req.UserID, req.StartTime)
			return nil, ErrTimeConflict
		}
		// Обрыв сериализации на коммите — тот же конфликт времени
		if txmanager.IsSerializationFailure(err) {
			s.logger.Warn("Create: serialization failure for user=%d at %s", req.UserID, req.StartTime)
			return nil, ErrTimeConflict
		}
		s.logger.Error("Create: transaction error for user=%d: %v", req.UserID, err)
		return nil, err
	}

	s.logger.Info("Create: created event id=%d for user=%d", created.ID, req.UserID)
	return models.FromDomainEvent(created), nil
}

// Update обновляет событие
// При переносе времени пересечения проверяются заново, само событие
// исключается из проверки
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateEventRequest) (*models.EventResponse, error) {
	s.logger.Info("Update: updating event id=%d for user=%d", id, req.UserID)

	event, err := s.getOwned(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}

	upd := req.ToDomainUpdate()

	// Итоговый интервал после применения обновления
	newStart := event.StartTime
	newEnd := event.EndTime
	if upd.StartTime != nil {
		newStart = *upd.StartTime
	}
	if upd.EndTime != nil {
		newEnd = *upd.EndTime
	}
	if !newEnd.After(newStart) {
		return nil, ErrInvalidTimeRange
	}

	if upd.ChangesTimes() {
		err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
			overlapping, err := s.eventRepo.GetOverlapping(ctx, req.UserID, newStart, newEnd, &id)
			if err != nil {
				return fmt.Errorf("%w: Update - check overlap: %v", ErrInternal, err)
			}
			if len(overlapping) > 0 {
				return ErrTimeConflict
			}
			return s.updateEvent(ctx, id, upd)
		})
	} else {
		err = s.updateEvent(ctx, id, upd)
	}

	if err != nil {
		if errors.Is(err, ErrTimeConflict) {
			s.logger.Warn("Update: time conflict for event id=%d", id)
			return nil, ErrTimeConflict
		}
		if txmanager.IsSerializationFailure(err) {
			s.logger.Warn("Update: serialization failure for event id=%d", id)
			return nil, ErrTimeConflict
		}
		s.logger.Error("Update: error for event id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload event id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - reload error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated event id=%d", id)
	return models.FromDomainEvent(updated), nil
}

func (s *Service) updateEvent(ctx context.Context, id int64, upd domain.EventUpdate) error {
	if err := s.eventRepo.Update(ctx, id, upd); err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("%w: updateEvent - repository error: %v", ErrInternal, err)
	}
	return nil
}

// getOwned получает событие и проверяет владельца
func (s *Service) getOwned(ctx context.Context, id int64, userID int64) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("getOwned: repository error for event id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getOwned - repository error: %v", ErrInternal, err)
	}

	if event.UserID != userID {
		s.logger.Warn("getOwned: access denied for user=%d to event id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return event, nil
}
