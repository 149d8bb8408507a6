package calendar

// Entry is a normalized appointment as seen by the scheduling core. The
// surrounding API stores richer records; only the fields that drive bucketing
// and conflict detection cross into this package.
type Entry struct {
	ID              int64
	DoctorID        int64
	Date            Date
	Start           Clock
	DurationMinutes int
}

// End returns the exclusive end of the occupied interval.
func (e Entry) End() Clock {
	return e.Start.AddMinutes(e.DurationMinutes)
}

// RawEntry is an appointment whose date and time are still strings, as they
// arrive from storage or from a client payload.
type RawEntry struct {
	ID              int64
	DoctorID        int64
	Date            string
	Time            string
	DurationMinutes int
}

// Skipped records an entry that was dropped during normalization, together
// with the reason. Exclusion is fail-soft: one bad record never aborts a
// view, and the caller decides whether to log the skip.
type Skipped struct {
	ID    int64
	Field string
	Err   error
}

// Normalize parses every raw entry, returning the usable entries in input
// order plus a skip report for the ones whose date or time did not parse.
func Normalize(raw []RawEntry) ([]Entry, []Skipped) {
	entries := make([]Entry, 0, len(raw))
	var skipped []Skipped
	for _, r := range raw {
		d, err := ParseDate(r.Date)
		if err != nil {
			skipped = append(skipped, Skipped{ID: r.ID, Field: "date", Err: err})
			continue
		}
		c, err := ParseClock(r.Time)
		if err != nil {
			skipped = append(skipped, Skipped{ID: r.ID, Field: "time", Err: err})
			continue
		}
		entries = append(entries, Entry{
			ID:              r.ID,
			DoctorID:        r.DoctorID,
			Date:            d,
			Start:           c,
			DurationMinutes: r.DurationMinutes,
		})
	}
	return entries, skipped
}

// BucketByDay partitions entries by calendar date for the month and week
// views. A single index pass; each entry lands in exactly one bucket and
// order within a bucket follows input order.
func BucketByDay(entries []Entry) map[Date][]Entry {
	buckets := make(map[Date][]Entry)
	for _, e := range entries {
		buckets[e.Date] = append(buckets[e.Date], e)
	}
	return buckets
}

// BucketBySlot partitions the given date's entries into day-view slots. With
// snap enabled, off-grid start times (09:15, 09:45) are aligned down to the
// slot containing them; without it, only exact slot-boundary starts match and
// off-grid entries appear in no slot.
func BucketBySlot(entries []Entry, d Date, snap bool) map[Clock][]Entry {
	buckets := make(map[Clock][]Entry)
	for _, e := range entries {
		if e.Date != d {
			continue
		}
		key := e.Start
		if snap {
			key = SnapToSlot(key)
		}
		if key.Minute%SlotMinutes != 0 {
			continue
		}
		buckets[key] = append(buckets[key], e)
	}
	return buckets
}
