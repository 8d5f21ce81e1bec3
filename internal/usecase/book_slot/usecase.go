package book_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-EventSlots/internal/domain"
	slotRepo "github.com/m04kA/SMC-EventSlots/internal/infra/storage/slot"
	slotModels "github.com/m04kA/SMC-EventSlots/internal/service/slots/models"
	"github.com/m04kA/SMC-EventSlots/pkg/metrics"
)

// UseCase use case записи посетителя в слот
type UseCase struct {
	slotRepo     SlotRepository
	txManager    TransactionManager
	locker       SlotLocker
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
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
		slotRepo:     slotRepo,
		txManager:    txManager,
		locker:       locker,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет запись в слот.
// Порядок проверок фиксирован: поля, формат, существование слота, публикация, вместимость, дубликаты.
// Все проверки слота и вставка выполняются под блокировкой слота в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*slotModels.SlotResponse, error) {
	normalizeRequest(req)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: slot=%d validation failed: %v", req.SlotID, err)
		uc.record(err)
		return nil, err
	}

	unlock, err := uc.locker.Lock(ctx, domain.SlotLockKey(req.SlotID))
	if err != nil {
		uc.logger.Error("BookSlot: failed to lock slot id=%d: %v", req.SlotID, err)
		err = fmt.Errorf("%w: lock slot: %v", ErrInternal, err)
		uc.record(err)
		return nil, err
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

		if !slot.Event.IsBookable() {
			return ErrEventNotPublished
		}

		if slot.IsFull() {
			return ErrSlotFull
		}

		candidate := req.toBooking()
		if field := slot.DuplicateField(candidate); field != domain.BookingFieldNone {
			return duplicateError(field)
		}

		candidate.BookedAt = uc.timeProvider.Now().UTC()

		created, err := uc.slotRepo.AddBooking(txCtx, &candidate)
		if err != nil {
			var dup *slotRepo.DuplicateError
			if errors.As(err, &dup) {
				return duplicateError(dup.Field)
			}
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: add booking: %v", ErrInternal, err)
		}

		if err := uc.slotRepo.Touch(txCtx, slot.ID); err != nil {
			return fmt.Errorf("%w: touch slot: %v", ErrInternal, err)
		}

		slot.Bookings = append(slot.Bookings, *created)
		slot.UpdatedAt = created.BookedAt
		result = slot
		return nil
	})
	if err != nil {
		err = uc.wrapTxError(err)
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("BookSlot: slot=%d failed: %v", req.SlotID, err)
		} else {
			uc.logger.Warn("BookSlot: slot=%d rejected: %v", req.SlotID, err)
		}
		uc.record(err)
		return nil, err
	}

	uc.logger.Info("BookSlot: enrollment=%s booked slot id=%d, %d/%d spots taken",
		req.Enrollment, result.ID, result.BookedCount(), result.Capacity)
	uc.record(nil)
	return slotModels.FromDomainSlot(result), nil
}

func duplicateError(field domain.BookingField) error {
	switch field {
	case domain.BookingFieldEnrollment:
		return ErrDuplicateEnrollment
	case domain.BookingFieldEmail:
		return ErrDuplicateEmail
	case domain.BookingFieldPhone:
		return ErrDuplicatePhone
	default:
		return ErrDuplicateBooking
	}
}

func (uc *UseCase) wrapTxError(err error) error {
	for _, known := range []error{
		ErrSlotNotFound,
		ErrEventNotPublished,
		ErrSlotFull,
		ErrDuplicateBooking,
		ErrInternal,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: transaction: %v", ErrInternal, err)
}

func (uc *UseCase) record(err error) {
	if uc.metrics == nil {
		return
	}

	result := metrics.BookingResultError
	switch {
	case err == nil:
		result = metrics.BookingResultSuccess
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrInvalidPhone):
		result = metrics.BookingResultInvalid
	case errors.Is(err, ErrSlotNotFound):
		result = metrics.BookingResultNotFound
	case errors.Is(err, ErrEventNotPublished):
		result = metrics.BookingResultUnpublished
	case errors.Is(err, ErrSlotFull):
		result = metrics.BookingResultFull
	case errors.Is(err, ErrDuplicateBooking):
		result = metrics.BookingResultDuplicate
	}
	uc.metrics.RecordBooking(result)
}
