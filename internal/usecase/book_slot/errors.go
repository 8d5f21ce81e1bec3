package book_slot

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается, когда не заполнены обязательные поля
	ErrInvalidInput = errors.New("book_slot: name, email, enrollment, and phone are required")

	// ErrInvalidEmail возвращается при некорректном email
	ErrInvalidEmail = errors.New("book_slot: please provide a valid email address")

	// ErrInvalidPhone возвращается при некорректном номере телефона
	ErrInvalidPhone = errors.New("book_slot: please provide a valid phone number (10-15 digits)")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("book_slot: slot not found")

	// ErrEventNotPublished возвращается при записи в слот неопубликованного мероприятия
	ErrEventNotPublished = errors.New("book_slot: cannot book slot for unpublished event")

	// ErrSlotFull возвращается, когда в слоте не осталось мест
	ErrSlotFull = errors.New("book_slot: slot is already full")

	// ErrDuplicateBooking общий класс ошибок повторной записи
	ErrDuplicateBooking = errors.New("book_slot: duplicate booking")

	// ErrDuplicateEnrollment enrollment уже записан в этот слот
	ErrDuplicateEnrollment = fmt.Errorf("%w: this enrollment ID is already booked for this slot", ErrDuplicateBooking)

	// ErrDuplicateEmail email уже записан в этот слот
	ErrDuplicateEmail = fmt.Errorf("%w: this email is already booked for this slot", ErrDuplicateBooking)

	// ErrDuplicatePhone телефон уже записан в этот слот
	ErrDuplicatePhone = fmt.Errorf("%w: this phone number is already booked for this slot", ErrDuplicateBooking)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slot: internal error")
)
