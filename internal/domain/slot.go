package domain

import (
	"strconv"
	"time"
)

// SlotStatus производный статус слота, в БД не хранится
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
)

// Slot временное окно мероприятия с ограниченной вместимостью
type Slot struct {
	ID        int64
	EventID   int64
	Event     EventSummary
	Date      time.Time // полночь UTC
	StartTime string    // "H:MM AM/PM"
	EndTime   string    // "H:MM AM/PM"
	Purpose   string
	Capacity  int
	CreatedBy int64
	Bookings  []Booking // в порядке записи

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookedCount количество записей в слоте
func (s *Slot) BookedCount() int {
	return len(s.Bookings)
}

// IsFull true, если свободных мест не осталось
func (s *Slot) IsFull() bool {
	return len(s.Bookings) >= s.Capacity
}

// Status вычисляется при каждом чтении из числа записей и вместимости
func (s *Slot) Status() SlotStatus {
	if s.IsFull() {
		return SlotStatusBooked
	}
	return SlotStatusAvailable
}

// CanSetCapacity проверяет, что новая вместимость не меньше числа уже существующих записей
func (s *Slot) CanSetCapacity(capacity int) bool {
	return capacity >= MinCapacity && capacity >= len(s.Bookings)
}

// FindBookingByEnrollment индекс первой записи с указанным enrollment или -1
func (s *Slot) FindBookingByEnrollment(enrollment string) int {
	for i := range s.Bookings {
		if s.Bookings[i].Enrollment == enrollment {
			return i
		}
	}
	return -1
}

// DuplicateField возвращает поле, по которому candidate совпадает с существующей записью.
// Поля проверяются в порядке enrollment, email, phone
func (s *Slot) DuplicateField(candidate Booking) BookingField {
	for _, b := range s.Bookings {
		if b.Enrollment == candidate.Enrollment {
			return BookingFieldEnrollment
		}
	}
	for _, b := range s.Bookings {
		if b.SameEmail(candidate.Email) {
			return BookingFieldEmail
		}
	}
	for _, b := range s.Bookings {
		if b.Phone == candidate.Phone {
			return BookingFieldPhone
		}
	}
	return BookingFieldNone
}

// SlotFilter фильтр списка слотов
type SlotFilter struct {
	EventID *int64 // nil - все слоты
}

// SlotLockKey ключ блокировки, сериализующей изменения одного слота
func SlotLockKey(id int64) string {
	return "slot:" + strconv.FormatInt(id, 10)
}
