package calendar

import "time"

// SlotMinutes is the booking granularity of the day view.
const SlotMinutes = 30

// OpenHours returns the clinic's opening window for the given date as an
// opening hour (inclusive) and closing hour (exclusive). Sundays run a short
// morning shift; every other day is the full shift.
func OpenHours(d Date) (open, close int) {
	if d.Weekday() == time.Sunday {
		return 8, 12
	}
	return 8, 20
}

// SlotsFor generates the ordered sequence of bookable slot start times for
// the given date at half-hour granularity. The sequence covers
// [open:00, close:00) and depends only on the date, so regenerating it for
// the same date always yields the same slots.
func SlotsFor(d Date) []Clock {
	open, close := OpenHours(d)
	slots := make([]Clock, 0, (close-open)*60/SlotMinutes)
	for m := open * 60; m < close*60; m += SlotMinutes {
		slots = append(slots, Clock{Hour: m / 60, Minute: m % 60})
	}
	return slots
}

// SnapToSlot aligns c down to the start of the slot containing it, so an
// appointment booked at 09:15 lands in the 09:00 slot instead of vanishing
// from the day view.
func SnapToSlot(c Clock) Clock {
	m := c.Minutes()
	m -= m % SlotMinutes
	return Clock{Hour: m / 60, Minute: m % 60}
}
