package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for every stored date.
const DateLayout = "2006-01-02"

// TimeLayout is the 24-hour clock format of MealRecord.FedTime.
const TimeLayout = "15:04"

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the calendar date of t in t's own location.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays shifts a "YYYY-MM-DD" date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// ExpiryFor derives the expiry date of a cube made on madeDate.
func ExpiryFor(madeDate string) (string, error) {
	return AddDays(madeDate, ShelfLifeDays)
}

// DaysBetween returns to - from in whole calendar days.
func DaysBetween(from, to string) (int, error) {
	f, err := ParseDate(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f).Hours() / 24), nil
}

// ValidateFedTime checks the optional "HH:MM" clock value of a meal.
func ValidateFedTime(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(TimeLayout, s); err != nil || len(s) != len(TimeLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return nil
}
