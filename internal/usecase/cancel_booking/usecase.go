package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-EventSlots/internal/domain"
	slotRepo "github.com/m04kA/SMC-EventSlots/internal/infra/storage/slot"
	slotModels "github.com/m04kA/SMC-EventSlots/internal/service/slots/models"
)

// UseCase use case отмены записи администратором
type UseCase struct {
	slotRepo  SlotRepository
	txManager TransactionManager
	locker    SlotLocker
	metrics   MetricsRecorder
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	txManager TransactionManager,
	locker SlotLocker,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:  slotRepo,
		txManager: txManager,
		locker:    locker,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute удаляет первую запись слота с точно совпадающим enrollment
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*slotModels.SlotResponse, error) {
	enrollment := strings.TrimSpace(req.Enrollment)
	if enrollment == "" {
		uc.logger.Warn("CancelBooking: slot=%d empty enrollment", req.SlotID)
		return nil, ErrInvalidInput
	}

	unlock, err := uc.locker.Lock(ctx, domain.SlotLockKey(req.SlotID))
	if err != nil {
		uc.logger.Error("CancelBooking: failed to lock slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: lock slot: %v", ErrInternal, err)
	}
	defer unlock()

	var result *domain.Slot

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := uc.slotRepo.GetByIDForUpdate(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: get slot: %v", ErrInternal, err)
		}

		idx := slot.FindBookingByEnrollment(enrollment)
		if idx < 0 {
			return ErrBookingNotFound
		}

		if err := uc.slotRepo.RemoveBooking(txCtx, slot.ID, slot.Bookings[idx].ID); err != nil {
			if errors.Is(err, slotRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: remove booking: %v", ErrInternal, err)
		}

		if err := uc.slotRepo.Touch(txCtx, slot.ID); err != nil {
			return fmt.Errorf("%w: touch slot: %v", ErrInternal, err)
		}

		slot.Bookings = append(slot.Bookings[:idx], slot.Bookings[idx+1:]...)
		result = slot
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound), errors.Is(err, ErrBookingNotFound):
			uc.logger.Warn("CancelBooking: slot=%d enrollment=%s rejected: %v", req.SlotID, enrollment, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CancelBooking: slot=%d failed: %v", req.SlotID, err)
			return nil, err
		default:
			uc.logger.Error("CancelBooking: slot=%d transaction error: %v", req.SlotID, err)
			return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.RecordCancellation()
	}

	uc.logger.Info("CancelBooking: enrollment=%s removed from slot id=%d", enrollment, result.ID)
	return slotModels.FromDomainSlot(result), nil
}
