package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

const (
	longLayout  = "15:04:05"
	shortLayout = "15:04"
	dayEnd      = "24:00:00"
)

// TimeString время суток в формате "HH:MM:SS" без привязки к дате и часовому поясу.
// Допускается "24:00:00" как обозначение конца суток (так хранит PostgreSQL TIME).
type TimeString string

// NewTimeString создает TimeString из времени суток переданного момента
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(longLayout))
}

// NewTimeStringFromString парсит "HH:MM" или "HH:MM:SS" и нормализует к "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if s == dayEnd || s == "24:00" {
		return TimeString(dayEnd), nil
	}

	layout := longLayout
	if len(s) == len(shortLayout) {
		layout = shortLayout
	}

	parsed, err := time.Parse(layout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(parsed), nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	_, err := t.Offset()
	return err
}

// Offset возвращает смещение от полуночи
func (t TimeString) Offset() (time.Duration, error) {
	if t == dayEnd {
		return 24 * time.Hour, nil
	}
	parsed, err := time.Parse(longLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return time.Duration(parsed.Hour())*time.Hour +
		time.Duration(parsed.Minute())*time.Minute +
		time.Duration(parsed.Second())*time.Second, nil
}

// On привязывает время суток к полуночи (UTC) указанной даты
func (t TimeString) On(date time.Time) (time.Time, error) {
	offset, err := t.Offset()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(offset), nil
}

// AddMinutes прибавляет минуты. Выход за пределы суток считается ошибкой
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	offset, err := t.Offset()
	if err != nil {
		return "", err
	}
	next := offset + time.Duration(minutes)*time.Minute
	if next < 0 || next > 24*time.Hour {
		return "", fmt.Errorf("%w: %s %+d minutes leaves the day", ErrInvalidTimeString, t, minutes)
	}
	if next == 24*time.Hour {
		return TimeString(dayEnd), nil
	}
	return NewTimeString(time.Time{}.Add(next)), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Offset()
	b, errB := other.Offset()
	return errA == nil && errB == nil && a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Offset()
	b, errB := other.Offset()
	return errA == nil && errB == nil && a > b
}

// Scan реализует sql.Scanner для колонок TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// PostgreSQL может вернуть дробные секунды: "09:00:00.000000"
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
