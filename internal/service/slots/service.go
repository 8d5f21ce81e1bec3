package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-EventSlots/internal/domain"
	eventRepo "github.com/m04kA/SMC-EventSlots/internal/infra/storage/event"
	slotRepo "github.com/m04kA/SMC-EventSlots/internal/infra/storage/slot"
	"github.com/m04kA/SMC-EventSlots/internal/service/slots/models"
	"github.com/m04kA/SMC-EventSlots/pkg/types"
)

// Service сервис жизненного цикла слотов
type Service struct {
	slotRepo  SlotRepository
	eventRepo EventRepository
	txManager TransactionManager
	locker    SlotLocker
	validate  *validator.Validate
	logger    Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	eventRepo EventRepository,
	txManager TransactionManager,
	locker SlotLocker,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:  slotRepo,
		eventRepo: eventRepo,
		txManager: txManager,
		locker:    locker,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

// Create создает пустой слот мероприятия. Дата и время приводятся к формату хранения
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	req.Date = strings.TrimSpace(req.Date)
	req.StartTime = strings.TrimSpace(req.StartTime)
	req.EndTime = strings.TrimSpace(req.EndTime)
	req.Purpose = strings.TrimSpace(req.Purpose)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: all fields are required, including capacity", ErrInvalidInput)
	}
	if req.Capacity < domain.MinCapacity {
		s.logger.Warn("Create: invalid capacity %d", req.Capacity)
		return nil, ErrInvalidCapacity
	}

	date, err := types.NormalizeDate(req.Date)
	if err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	startTime, err := canonicalTime("startTime", req.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := canonicalTime("endTime", req.EndTime)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("Create: event id=%d not found", req.EventID)
			return nil, ErrEventNotFound
		}
		s.logger.Error("Create: failed to get event id=%d: %v", req.EventID, err)
		return nil, fmt.Errorf("%w: Create - get event: %v", ErrInternal, err)
	}

	created, err := s.slotRepo.Create(ctx, &domain.Slot{
		EventID:   event.ID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Purpose:   req.Purpose,
		Capacity:  req.Capacity,
		CreatedBy: req.OwnerID,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}
	created.Event = event.Summary()

	s.logger.Info("Create: created slot id=%d for event id=%d, capacity=%d", created.ID, event.ID, created.Capacity)
	return models.FromDomainSlot(created), nil
}

// GetByID возвращает слот с данными мероприятия и записями
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// GetByEvent возвращает слоты мероприятия. Отсутствие мероприятия дает пустой список
func (s *Service) GetByEvent(ctx context.Context, eventID int64) ([]*models.SlotResponse, error) {
	return s.list(ctx, domain.SlotFilter{EventID: &eventID})
}

// GetAll возвращает все слоты
func (s *Service) GetAll(ctx context.Context) ([]*models.SlotResponse, error) {
	return s.list(ctx, domain.SlotFilter{})
}

func (s *Service) list(ctx context.Context, filter domain.SlotFilter) ([]*models.SlotResponse, error) {
	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSlotList(slots), nil
}

// Update изменяет переданные поля слота.
// Чтение, проверка и запись идут под блокировкой слота в одной транзакции,
// поэтому вместимость сравнивается с актуальным числом записей
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	unlock, err := s.locker.Lock(ctx, domain.SlotLockKey(id))
	if err != nil {
		s.logger.Error("Update: failed to lock slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - lock slot: %v", ErrInternal, err)
	}
	defer unlock()

	var result *domain.Slot

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				s.logger.Warn("Update: slot id=%d not found", id)
				return ErrSlotNotFound
			}
			s.logger.Error("Update: failed to get slot id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - get slot: %v", ErrInternal, err)
		}

		if err := applyUpdate(slot, req); err != nil {
			s.logger.Warn("Update: slot id=%d rejected: %v", id, err)
			return err
		}

		if err := s.slotRepo.Update(txCtx, slot); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			s.logger.Error("Update: repository error for slot id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		result = slot
		return nil
	})
	if err != nil {
		return nil, s.wrapTxError("Update", err)
	}

	s.logger.Info("Update: updated slot id=%d", id)
	return models.FromDomainSlot(result), nil
}

// Delete удаляет слот вместе с записями
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.slotRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Delete: slot id=%d not found", id)
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: repository error for slot id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted slot id=%d", id)
	return nil
}

// applyUpdate применяет изменения к слоту. При ошибке слот не должен сохраняться
func applyUpdate(slot *domain.Slot, req *models.UpdateSlotRequest) error {
	if value, ok := present(req.Date); ok {
		date, err := types.NormalizeDate(value)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		slot.Date = date
	}
	if value, ok := present(req.StartTime); ok {
		startTime, err := canonicalTime("startTime", value)
		if err != nil {
			return err
		}
		slot.StartTime = startTime
	}
	if value, ok := present(req.EndTime); ok {
		endTime, err := canonicalTime("endTime", value)
		if err != nil {
			return err
		}
		slot.EndTime = endTime
	}
	if value, ok := present(req.Purpose); ok {
		slot.Purpose = value
	}
	if req.Capacity != nil {
		capacity := *req.Capacity
		if capacity < domain.MinCapacity {
			return ErrInvalidCapacity
		}
		if !slot.CanSetCapacity(capacity) {
			return &CapacityConflictError{Requested: capacity, Booked: slot.BookedCount()}
		}
		slot.Capacity = capacity
	}
	if req.Status != nil && domain.SlotStatus(*req.Status) == domain.SlotStatusAvailable && slot.BookedCount() > 0 {
		return ErrStatusConflict
	}
	return nil
}

func present(value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	trimmed := strings.TrimSpace(*value)
	return trimmed, trimmed != ""
}

func canonicalTime(field, value string) (string, error) {
	canonical, err := types.CanonicalTime(value)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidTime, field, err)
	}
	return canonical, nil
}

func (s *Service) wrapTxError(op string, err error) error {
	for _, known := range []error{
		ErrSlotNotFound,
		ErrInvalidDate,
		ErrInvalidTime,
		ErrInvalidCapacity,
		ErrCapacityConflict,
		ErrStatusConflict,
		ErrInternal,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	s.logger.Error("%s: transaction error: %v", op, err)
	return fmt.Errorf("%w: %s - transaction: %v", ErrInternal, op, err)
}
