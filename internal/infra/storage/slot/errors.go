package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrBookingNotFound возвращается, когда запись в слоте не найдена
	ErrBookingNotFound = errors.New("slot.repository: booking not found")

	// ErrDuplicateBooking возвращается при нарушении уникальности записи в слоте
	ErrDuplicateBooking = errors.New("slot.repository: duplicate booking")

	// ErrTransactionRequired возвращается, когда блокирующее чтение вызвано вне транзакции
	ErrTransactionRequired = errors.New("slot.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
