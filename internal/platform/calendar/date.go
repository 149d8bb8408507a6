// Package calendar implements the scheduling core shared by the appointment
// API: date/time normalization, bookable-slot generation, calendar bucketing
// and doctor double-booking detection. The package is pure computation; it
// never logs and never touches storage, so callers decide how parse failures
// and conflicts are surfaced.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parse errors. Callers that need to distinguish a malformed string from a
// well-formed but impossible date (e.g. 31/02/2024) can use errors.Is.
var (
	ErrBadFormat       = errors.New("unrecognized date/time format")
	ErrBadCalendarDate = errors.New("invalid calendar date")
	ErrBadClock        = errors.New("invalid time of day")
)

// Date is a calendar date with no time-of-day component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Clock is a time of day at minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseDate normalizes the date representations accepted by the API.
// Strings containing "/" are read as DD/MM/YYYY; anything else is tried as
// ISO 8601 (date-only, then full timestamp). Impossible calendar dates such
// as 31/02/2024 are rejected rather than rolled into a neighboring date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("parse date: empty string: %w", ErrBadFormat)
	}

	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return Date{}, fmt.Errorf("parse date %q: want DD/MM/YYYY: %w", s, ErrBadFormat)
		}
		day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 != nil || err2 != nil || err3 != nil {
			return Date{}, fmt.Errorf("parse date %q: non-numeric field: %w", s, ErrBadFormat)
		}
		return makeDate(year, month, day, s)
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return dateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return dateOf(t), nil
	}
	return Date{}, fmt.Errorf("parse date %q: %w", s, ErrBadFormat)
}

// makeDate builds a Date and verifies the fields round-trip through time.Date,
// which catches out-of-range days and months uniformly for every caller.
func makeDate(year, month, day int, src string) (Date, error) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Date{}, fmt.Errorf("parse date %q: %w", src, ErrBadCalendarDate)
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

func dateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseClock reads an HH:MM or HH:MM:SS string. Seconds are discarded.
// Hour and minute ranges are enforced; "25:00" is an error, not a wrap.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return Clock{}, fmt.Errorf("parse time %q: want HH:MM: %w", s, ErrBadFormat)
	}
	hour, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	minute, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return Clock{}, fmt.Errorf("parse time %q: non-numeric field: %w", s, ErrBadFormat)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("parse time %q: %w", s, ErrBadClock)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// Weekday returns the day of week for d.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// String formats d as ISO 8601 (YYYY-MM-DD).
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return dateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Minutes returns c as minutes after midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// AddMinutes returns c shifted forward by n minutes within the same day.
// The result is not wrapped; callers compare Minutes() values directly.
func (c Clock) AddMinutes(n int) Clock {
	total := c.Minutes() + n
	return Clock{Hour: total / 60, Minute: total % 60}
}

// String formats c as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
