package slots

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slots: slot not found")

	// ErrEventNotFound возвращается, когда мероприятие слота не найдено
	ErrEventNotFound = errors.New("slots: event not found")

	// ErrInvalidInput возвращается, когда не заполнены обязательные поля
	ErrInvalidInput = errors.New("slots: invalid input data")

	// ErrInvalidDate возвращается, когда дату слота нельзя распознать
	ErrInvalidDate = errors.New("slots: invalid date")

	// ErrInvalidTime возвращается, когда время начала или окончания некорректно
	ErrInvalidTime = errors.New("slots: invalid time")

	// ErrInvalidCapacity возвращается, когда вместимость не положительное целое
	ErrInvalidCapacity = errors.New("slots: capacity must be a positive integer")

	// ErrCapacityConflict возвращается при попытке уменьшить вместимость ниже числа записей
	ErrCapacityConflict = errors.New("slots: capacity is below current bookings")

	// ErrStatusConflict возвращается при попытке объявить слот с записями свободным
	ErrStatusConflict = errors.New("slots: cannot set status to available with existing bookings")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots: internal error")
)

// CapacityConflictError запрошенная вместимость меньше числа записей в слоте
type CapacityConflictError struct {
	Requested int
	Booked    int
}

func (e *CapacityConflictError) Error() string {
	return fmt.Sprintf("Cannot set capacity to %d. There are already %d bookings.", e.Requested, e.Booked)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrCapacityConflict)
func (e *CapacityConflictError) Unwrap() error {
	return ErrCapacityConflict
}
