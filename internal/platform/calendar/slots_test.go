package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotsForWeekday(t *testing.T) {
	// 14/05/2024 is a Tuesday: full shift 08:00-20:00.
	d := Date{Year: 2024, Month: time.May, Day: 14}
	require.Equal(t, time.Tuesday, d.Weekday())

	slots := SlotsFor(d)
	require.Len(t, slots, 24)
	assert.Equal(t, Clock{Hour: 8, Minute: 0}, slots[0])
	assert.Equal(t, Clock{Hour: 19, Minute: 30}, slots[len(slots)-1])

	for i := 1; i < len(slots); i++ {
		assert.Equal(t, SlotMinutes, slots[i].Minutes()-slots[i-1].Minutes())
	}
	for _, s := range slots {
		assert.Less(t, s.Minutes(), 20*60)
		assert.GreaterOrEqual(t, s.Minutes(), 8*60)
	}
}

func TestSlotsForSunday(t *testing.T) {
	// 12/05/2024 is a Sunday: morning shift 08:00-12:00.
	d := Date{Year: 2024, Month: time.May, Day: 12}
	require.Equal(t, time.Sunday, d.Weekday())

	slots := SlotsFor(d)
	require.Len(t, slots, 8)
	assert.Equal(t, Clock{Hour: 8, Minute: 0}, slots[0])
	assert.Equal(t, Clock{Hour: 11, Minute: 30}, slots[len(slots)-1])
}

func TestSlotsForIsDeterministic(t *testing.T) {
	d := Date{Year: 2024, Month: time.May, Day: 14}
	assert.Equal(t, SlotsFor(d), SlotsFor(d))
}

func TestSnapToSlot(t *testing.T) {
	assert.Equal(t, Clock{Hour: 9, Minute: 0}, SnapToSlot(Clock{Hour: 9, Minute: 15}))
	assert.Equal(t, Clock{Hour: 9, Minute: 30}, SnapToSlot(Clock{Hour: 9, Minute: 45}))
	assert.Equal(t, Clock{Hour: 9, Minute: 0}, SnapToSlot(Clock{Hour: 9, Minute: 0}))
	assert.Equal(t, Clock{Hour: 9, Minute: 30}, SnapToSlot(Clock{Hour: 9, Minute: 59}))
}
