package eventtypes

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes/models"
)

// Service сервис для работы с типами событий
type Service struct {
	eventTypeRepo EventTypeRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса типов событий
func NewService(eventTypeRepo EventTypeRepository, logger Logger) *Service {
	return &Service{
		eventTypeRepo: eventTypeRepo,
		logger:        logger,
	}
}

// Create создает новый тип события
// Slug генерируется из названия, при коллизии добавляется случайный суффикс
func (s *Service) Create(ctx context.Context, req *models.CreateEventTypeRequest) (*models.EventTypeResponse, error) {
	s.logger.Info("Create: creating event type %q for user=%d", req.Name, req.UserID)

	if err := validateName(req.Name); err != nil {
		s.logger.Warn("Create: invalid name for user=%d: %v", req.UserID, err)
		return nil, err
	}
	if err := validateDuration(req.DurationMinutes); err != nil {
		s.logger.Warn("Create: invalid duration=%d for user=%d", req.DurationMinutes, req.UserID)
		return nil, err
	}

	color := domain.DefaultEventTypeColor
	if req.Color != nil && *req.Color != "" {
		color = *req.Color
	}

	eventType := &domain.EventType{
		UserID:          req.UserID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Color:           color,
		IsActive:        true,
		Locations:       req.Locations,
		Questions:       req.Questions,
		BookingRules:    req.BookingRules,
	}

	// Повторяем при гонке за slug: UNIQUE индекс — последняя линия защиты
	var created *domain.EventType
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, err := s.generateSlug(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		eventType.Slug = slug

		created, err = s.eventTypeRepo.Create(ctx, eventType)
		if err == nil {
			break
		}
		if errors.Is(err, eventTypeRepo.ErrSlugTaken) {
			s.logger.Warn("Create: slug %q taken, retrying for user=%d", slug, req.UserID)
			continue
		}
		s.logger.Error("Create: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	if created == nil {
		s.logger.Error("Create: exhausted slug attempts for user=%d", req.UserID)
		return nil, fmt.Errorf("%w: Create - could not allocate slug", ErrInternal)
	}

	s.logger.Info("Create: created event type id=%d slug=%s for user=%d", created.ID, created.Slug, req.UserID)
	return models.FromDomainEventType(created), nil
}

// GetByID получает тип события владельца
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.EventTypeResponse, error) {
	eventType, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainEventType(eventType), nil
}

// List получает все типы событий пользователя
func (s *Service) List(ctx context.Context, userID int64) (*models.EventTypeListResponse, error) {
	types, err := s.eventTypeRepo.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEventTypeList(types), nil
}

// Update обновляет тип события
// Смена названия влечёт регенерацию slug — старые публичные ссылки перестают работать
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateEventTypeRequest) (*models.EventTypeResponse, error) {
	s.logger.Info("Update: updating event type id=%d for user=%d", id, req.UserID)

	eventType, err := s.getOwned(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.DurationMinutes != nil {
		if err := validateDuration(*req.DurationMinutes); err != nil {
			return nil, err
		}
	}

	upd := req.ToDomainUpdate()
	if upd.IsEmpty() {
		return models.FromDomainEventType(eventType), nil
	}

	var newSlug *string
	if req.Name != nil && *req.Name != eventType.Name {
		slug, err := s.generateSlug(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		newSlug = &slug
	}

	if err := s.eventTypeRepo.Update(ctx, id, upd, newSlug); err != nil {
		s.logger.Error("Update: repository error for event type id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.eventTypeRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload event type id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - reload error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated event type id=%d slug=%s", updated.ID, updated.Slug)
	return models.FromDomainEventType(updated), nil
}

// Delete удаляет тип события
// Существующие события остаются в календаре (event_type_id обнуляется на уровне БД)
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting event type id=%d for user=%d", id, userID)

	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}

	if err := s.eventTypeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			return ErrEventTypeNotFound
		}
		s.logger.Error("Delete: repository error for event type id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted event type id=%d", id)
	return nil
}

// GetPublic получает активный тип события для публичной страницы бронирования
// identifier — slug либо числовой ID (byID=true)
func (s *Service) GetPublic(ctx context.Context, identifier string, byID bool, id int64) (*models.PublicEventTypeResponse, error) {
	var eventType *domain.EventType
	var err error

	if byID {
		eventType, err = s.eventTypeRepo.GetByID(ctx, id)
	} else {
		eventType, err = s.eventTypeRepo.GetBySlug(ctx, identifier)
	}

	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			return nil, ErrEventTypeNotFound
		}
		s.logger.Error("GetPublic: repository error for identifier=%s: %v", identifier, err)
		return nil, fmt.Errorf("%w: GetPublic - repository error: %v", ErrInternal, err)
	}

	// Неактивные типы не публикуются
	if !eventType.IsActive {
		return nil, ErrEventTypeNotFound
	}

	return models.FromDomainEventTypePublic(eventType), nil
}

// getOwned получает тип события и проверяет владельца
func (s *Service) getOwned(ctx context.Context, id int64, userID int64) (*domain.EventType, error) {
	eventType, err := s.eventTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			return nil, ErrEventTypeNotFound
		}
		s.logger.Error("getOwned: repository error for event type id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getOwned - repository error: %v", ErrInternal, err)
	}

	if eventType.UserID != userID {
		s.logger.Warn("getOwned: access denied for user=%d to event type id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return eventType, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	return nil
}

func validateDuration(minutes int) error {
	if minutes < domain.MinDurationMinutes || minutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	return nil
}
