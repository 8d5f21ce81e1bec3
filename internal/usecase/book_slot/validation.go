package book_slot

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`(?i)^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,15}$`)
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	_ = validate.RegisterValidation("booking_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("booking_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

// normalizeRequest обрезает пробелы, пустая после обрезки строка считается отсутствующей
func normalizeRequest(req *Request) {
	b := req.toBooking().Normalize()
	req.Name, req.Email, req.Enrollment, req.Phone = b.Name, b.Email, b.Enrollment, b.Phone
}

// validateRequest проверяет обязательные поля, затем формат email и телефона
func validateRequest(req *Request) error {
	if err := validate.Struct(req); err != nil {
		return ErrInvalidInput
	}
	if err := validate.Var(req.Email, "booking_email"); err != nil {
		return ErrInvalidEmail
	}
	if err := validate.Var(req.Phone, "booking_phone"); err != nil {
		return ErrInvalidPhone
	}
	return nil
}
