package types

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout формат даты слота в API
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDate возвращается, когда строку нельзя распознать как дату
	ErrInvalidDate = errors.New("types: invalid date")
)

// NormalizeDate разбирает произвольную дату и обрезает её до полуночи UTC.
// Значения без смещения считаются заданными в UTC.
func NormalizeDate(input string) (time.Time, error) {
	value := strings.TrimSpace(input)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	parsed, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	return TruncateToUTCDate(parsed), nil
}

// TruncateToUTCDate отбрасывает время суток, оставляя календарный день в UTC
func TruncateToUTCDate(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// Date дата без времени, в JSON сериализуется как "YYYY-MM-DD"
type Date time.Time

// NewDate создает Date из time.Time
func NewDate(t time.Time) Date {
	return Date(TruncateToUTCDate(t))
}

// String возвращает дату в формате YYYY-MM-DD
func (d Date) String() string {
	return time.Time(d).Format(DateLayout)
}

// MarshalJSON реализует json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}
