package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidTime возвращается, когда строку времени нельзя привести к 12-часовому формату
	ErrInvalidTime = errors.New("types: invalid time")
)

var (
	// time24Pattern HH:MM (час может быть из одной цифры)
	time24Pattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

	// time12Pattern формат хранения времени слота: H:MM AM/PM
	time12Pattern = regexp.MustCompile(`^(1[0-2]|0?[1-9]):([0-5][0-9]) ?([AP]M)$`)
)

// ConvertTo12Hour переводит время из 24-часового формата "HH:MM" в "H:MM AM/PM".
// Строки, уже записанные в 12-часовом формате, не поддерживаются - для них есть CanonicalTime.
func ConvertTo12Hour(input string) (string, error) {
	m := time24Pattern.FindStringSubmatch(input)
	if m == nil {
		return "", fmt.Errorf("%w: %q is not HH:MM", ErrInvalidTime, input)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])

	if hour < 0 || hour > 23 {
		return "", fmt.Errorf("%w: hour %d out of range", ErrInvalidTime, hour)
	}
	if minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: minute %d out of range", ErrInvalidTime, minute)
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}

	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour12, minute, period), nil
}

// IsCanonical12Hour проверяет строку по шаблону формата хранения
func IsCanonical12Hour(value string) bool {
	return time12Pattern.MatchString(value)
}

// CanonicalTime приводит входное время к виду "H:MM AM/PM".
// Значения в 12-часовом формате только переформатируются (без ведущего нуля, с одним пробелом),
// остальные проходят через ConvertTo12Hour.
func CanonicalTime(input string) (string, error) {
	value := strings.TrimSpace(input)
	if value == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidTime)
	}

	if m := time12Pattern.FindStringSubmatch(value); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%d:%s %s", hour, m[2], m[3]), nil
	}

	return ConvertTo12Hour(value)
}
