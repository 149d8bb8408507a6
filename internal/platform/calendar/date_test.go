package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateSlashFormat(t *testing.T) {
	tests := []struct {
		in    string
		year  int
		month time.Month
		day   int
	}{
		{"10/05/2024", 2024, time.May, 10},
		{"01/01/2000", 2000, time.January, 1},
		{"29/02/2024", 2024, time.February, 29},
		{"31/12/1999", 1999, time.December, 31},
		{" 05/07/2025 ", 2025, time.July, 5},
	}
	for _, tt := range tests {
		d, err := ParseDate(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.year, d.Year, "input %q", tt.in)
		assert.Equal(t, tt.month, d.Month, "input %q", tt.in)
		assert.Equal(t, tt.day, d.Day, "input %q", tt.in)
	}
}

func TestParseDateISO(t *testing.T) {
	d, err := ParseDate("2024-05-10")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.May, Day: 10}, d)

	d, err = ParseDate("2024-05-10T09:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.May, Day: 10}, d)
}

func TestParseDateRejectsImpossibleDates(t *testing.T) {
	for _, in := range []string{"31/02/2024", "29/02/2023", "00/01/2024", "15/13/2024", "32/01/2024"} {
		_, err := ParseDate(in)
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, ErrBadCalendarDate, "input %q", in)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "10/05", "a/b/c", "10-05-2024", "next tuesday"} {
		_, err := ParseDate(in)
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, ErrBadFormat, "input %q", in)
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 9, Minute: 30}, c)

	// Seconds are discarded.
	c, err = ParseClock("14:05:59")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 14, Minute: 5}, c)

	_, err = ParseClock("9")
	assert.ErrorIs(t, err, ErrBadFormat)

	for _, in := range []string{"24:00", "12:60", "-1:30"} {
		_, err := ParseClock(in)
		assert.ErrorIs(t, err, ErrBadClock, "input %q", in)
	}
}

func TestDateWeekdayAndArithmetic(t *testing.T) {
	// 10/05/2024 is a Friday.
	d, err := ParseDate("10/05/2024")
	require.NoError(t, err)
	assert.Equal(t, time.Friday, d.Weekday())

	assert.Equal(t, "2024-05-10", d.String())
	assert.Equal(t, Date{Year: 2024, Month: time.June, Day: 2}, d.AddDays(23))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.AddDays(1).Before(d))
}

func TestClockMinutes(t *testing.T) {
	c := Clock{Hour: 9, Minute: 15}
	assert.Equal(t, 555, c.Minutes())
	assert.Equal(t, Clock{Hour: 10, Minute: 0}, c.AddMinutes(45))
	assert.Equal(t, "09:15", c.String())
}
