package domain

import (
	"strings"
	"time"
)

// BookingField поле записи, участвующее в проверке уникальности
type BookingField string

const (
	BookingFieldNone       BookingField = ""
	BookingFieldEnrollment BookingField = "enrollment"
	BookingFieldEmail      BookingField = "email"
	BookingFieldPhone      BookingField = "phone"
)

// Booking запись посетителя в слот. Существует только внутри слота
type Booking struct {
	ID         int64
	SlotID     int64
	Name       string
	Enrollment string
	Email      string
	Phone      string
	BookedAt   time.Time
}

// Normalize обрезает пробелы во всех контактных полях
func (b Booking) Normalize() Booking {
	b.Name = strings.TrimSpace(b.Name)
	b.Enrollment = strings.TrimSpace(b.Enrollment)
	b.Email = strings.TrimSpace(b.Email)
	b.Phone = strings.TrimSpace(b.Phone)
	return b
}

// SameEmail сравнивает email без учета регистра
func (b Booking) SameEmail(email string) bool {
	return strings.EqualFold(b.Email, email)
}
