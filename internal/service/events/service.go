package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	eventRepo "github.com/m04kA/SMC-EventSlots/internal/infra/storage/event"
	"github.com/m04kA/SMC-EventSlots/internal/service/events/models"
)

// Service сервис для работы с мероприятиями
type Service struct {
	eventRepo EventRepository
	slotRepo  SlotRepository
	txManager TransactionManager
	validate  *validator.Validate
	logger    Logger
}

// NewService создает новый экземпляр сервиса мероприятий
func NewService(
	eventRepo EventRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		eventRepo: eventRepo,
		slotRepo:  slotRepo,
		txManager: txManager,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

// Create создает мероприятие. Доступно только администраторам
func (s *Service) Create(ctx context.Context, req *models.CreateEventRequest) (*models.EventResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: name and description are required", ErrInvalidInput)
	}

	created, err := s.eventRepo.Create(ctx, req.ToDomainEvent())
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created event id=%d by user=%d", created.ID, created.CreatedBy)
	return models.FromDomainEvent(created), nil
}

// Update обновляет переданные поля мероприятия
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateEventRequest) (*models.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		event.Name = name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, fmt.Errorf("%w: description must not be empty", ErrInvalidInput)
		}
		event.Description = description
	}
	if req.Published != nil {
		event.Published = *req.Published
	}

	updated, err := s.eventRepo.Update(ctx, event)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	s.logger.Info("Update: updated event id=%d", id)
	return models.FromDomainEvent(updated), nil
}

// Delete удаляет мероприятие и все его слоты в одной транзакции
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		deleted, err := s.slotRepo.DeleteByEventID(txCtx, id)
		if err != nil {
			s.logger.Error("Delete: failed to delete slots of event id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - delete slots: %v", ErrInternal, err)
		}

		if err := s.eventRepo.Delete(txCtx, id); err != nil {
			return s.mapRepoError("Delete", id, err)
		}

		s.logger.Info("Delete: deleted event id=%d with %d slots", id, deleted)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEventNotFound) || errors.Is(err, ErrInternal) {
			return err
		}
		s.logger.Error("Delete: transaction error for event id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - transaction: %v", ErrInternal, err)
	}

	return nil
}

// ListPublished возвращает опубликованные мероприятия, новые первыми
func (s *Service) ListPublished(ctx context.Context) ([]*models.EventResponse, error) {
	return s.list(ctx, true)
}

// ListAll возвращает все мероприятия. Доступно только администраторам
func (s *Service) ListAll(ctx context.Context) ([]*models.EventResponse, error) {
	return s.list(ctx, false)
}

func (s *Service) list(ctx context.Context, onlyPublished bool) ([]*models.EventResponse, error) {
	events, err := s.eventRepo.List(ctx, onlyPublished)
	if err != nil {
		s.logger.Error("List: repository error (onlyPublished=%v): %v", onlyPublished, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainEventList(events), nil
}

// GetPublished возвращает опубликованное мероприятие.
// Неопубликованное мероприятие для публичного чтения не существует
func (s *Service) GetPublished(ctx context.Context, id int64) (*models.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetPublished", id, err)
	}

	if !event.Published {
		s.logger.Warn("GetPublished: event id=%d is not published", id)
		return nil, ErrEventNotFound
	}

	return models.FromDomainEvent(event), nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, eventRepo.ErrEventNotFound) {
		s.logger.Warn("%s: event id=%d not found", op, id)
		return ErrEventNotFound
	}
	s.logger.Error("%s: repository error for event id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
