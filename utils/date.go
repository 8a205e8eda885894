package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	// DateLayout is the layout dates are typed in on the search form.
	DateLayout = "02-01-2006"
	// ISODate is how dates travel in JSON and in the PDF.
	ISODate = "2006-01-02"
)

const secondsPerDay = 24 * 60 * 60

var ErrDateFormat = errors.New("invalid_date_format")

// ParseDate reads a DD-MM-YYYY date by position: day from characters [0:2],
// month from [3:5], year from the last four. The separators are never looked
// at, so "01x01x2024" parses as 1 January 2024.
func ParseDate(text string) (time.Time, error) {
	chars := []rune(text)
	if len(chars) != len(DateLayout) {
		return time.Time{}, ErrDateFormat
	}

	day, err := strconv.Atoi(string(chars[:2]))
	if err != nil {
		return time.Time{}, ErrDateFormat
	}
	month, err := strconv.Atoi(string(chars[3:5]))
	if err != nil {
		return time.Time{}, ErrDateFormat
	}
	year, err := strconv.Atoi(string(chars[len(chars)-4:]))
	if err != nil {
		return time.Time{}, ErrDateFormat
	}

	if year < 1 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, ErrDateFormat
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises 31-02 into March; reject instead.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, ErrDateFormat
	}
	return t, nil
}

// DateOnly drops the clock and zone, keeping the calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights counts whole calendar days from checkIn to checkOut. Inverted or equal
// dates yield zero or a negative count.
func Nights(checkIn, checkOut time.Time) int {
	// time.Duration overflows past ~292 years; count in Unix days instead.
	return int(DateOnly(checkOut).Unix()/secondsPerDay - DateOnly(checkIn).Unix()/secondsPerDay)
}

func NightsLabel(n int) string {
	if n > 1 {
		return fmt.Sprintf("%d nights", n)
	}
	return fmt.Sprintf("%d night", n)
}

func FormatDate(t time.Time) string {
	return t.Format(ISODate)
}
