package events

import "errors"

var (
	// ErrEventNotFound возвращается, когда мероприятие не найдено или не опубликовано
	ErrEventNotFound = errors.New("events: event not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("events: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("events: internal error")
)
