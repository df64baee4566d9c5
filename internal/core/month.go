package core

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// MonthID identifies a calendar month as "YYYY-MM". The format sorts
// lexicographically in chronological order.
type MonthID string

const monthLayout = "2006-01"

var (
	monthIDPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

	ErrInvalidMonthID = errors.New("invalid month id")
)

// ParseMonthID validates s and returns it as a MonthID.
func ParseMonthID(s string) (MonthID, error) {
	if !monthIDPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonthID, s)
	}
	month, _ := strconv.Atoi(s[5:])
	if month < 1 || month > 12 {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonthID, s)
	}
	return MonthID(s), nil
}

// IsMonthID reports whether s has the YYYY-MM shape with a valid month.
func IsMonthID(s string) bool {
	_, err := ParseMonthID(s)
	return err == nil
}

// MonthIDOf returns the month containing t, in UTC.
func MonthIDOf(t time.Time) MonthID {
	return MonthID(t.UTC().Format(monthLayout))
}

func (m MonthID) String() string {
	return string(m)
}

// Before reports whether m is strictly earlier than other.
func (m MonthID) Before(other MonthID) bool {
	return m < other
}

// Time returns the first instant of the month in UTC.
func (m MonthID) Time() (time.Time, error) {
	t, err := time.Parse(monthLayout, string(m))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonthID, string(m))
	}
	return t, nil
}

// DaysInMonth returns 28..31, or 31 if m cannot be parsed.
func (m MonthID) DaysInMonth() int {
	t, err := m.Time()
	if err != nil {
		return 31
	}
	return t.AddDate(0, 1, -1).Day()
}
