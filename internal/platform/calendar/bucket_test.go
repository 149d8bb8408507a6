package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSkipsBadRecords(t *testing.T) {
	raw := []RawEntry{
		{ID: 1, DoctorID: 7, Date: "10/05/2024", Time: "09:00", DurationMinutes: 30},
		{ID: 2, DoctorID: 7, Date: "31/02/2024", Time: "09:00", DurationMinutes: 30},
		{ID: 3, DoctorID: 7, Date: "10/05/2024", Time: "25:00", DurationMinutes: 30},
		{ID: 4, DoctorID: 8, Date: "2024-05-10", Time: "10:30:00", DurationMinutes: 60},
	}

	entries, skipped := Normalize(raw)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].ID)
	assert.Equal(t, int64(4), entries[1].ID)

	require.Len(t, skipped, 2)
	assert.Equal(t, int64(2), skipped[0].ID)
	assert.Equal(t, "date", skipped[0].Field)
	assert.ErrorIs(t, skipped[0].Err, ErrBadCalendarDate)
	assert.Equal(t, int64(3), skipped[1].ID)
	assert.Equal(t, "time", skipped[1].Field)
	assert.ErrorIs(t, skipped[1].Err, ErrBadClock)
}

func TestBucketByDay(t *testing.T) {
	may10 := Date{Year: 2024, Month: time.May, Day: 10}
	may11 := Date{Year: 2024, Month: time.May, Day: 11}
	entries := []Entry{
		{ID: 1, Date: may10, Start: Clock{Hour: 9}},
		{ID: 2, Date: may11, Start: Clock{Hour: 9}},
		{ID: 3, Date: may10, Start: Clock{Hour: 14}},
	}

	buckets := BucketByDay(entries)
	require.Len(t, buckets, 2)
	require.Len(t, buckets[may10], 2)
	assert.Equal(t, int64(1), buckets[may10][0].ID)
	assert.Equal(t, int64(3), buckets[may10][1].ID)
	require.Len(t, buckets[may11], 1)

	// Idempotent: rebucketing an unchanged set yields identical assignments.
	assert.Equal(t, buckets, BucketByDay(entries))
}

func TestBucketBySlotExactMatch(t *testing.T) {
	d := Date{Year: 2024, Month: time.May, Day: 10}
	other := Date{Year: 2024, Month: time.May, Day: 11}
	entries := []Entry{
		{ID: 1, Date: d, Start: Clock{Hour: 9, Minute: 0}},
		{ID: 2, Date: d, Start: Clock{Hour: 9, Minute: 30}},
		{ID: 3, Date: d, Start: Clock{Hour: 9, Minute: 15}},
		{ID: 4, Date: other, Start: Clock{Hour: 9, Minute: 0}},
	}

	buckets := BucketBySlot(entries, d, false)
	require.Len(t, buckets[Clock{Hour: 9, Minute: 0}], 1)
	require.Len(t, buckets[Clock{Hour: 9, Minute: 30}], 1)

	// Off-grid start appears in neither adjacent slot in exact-match mode.
	var total int
	for _, b := range buckets {
		total += len(b)
	}
	assert.Equal(t, 2, total)
}

func TestBucketBySlotSnap(t *testing.T) {
	d := Date{Year: 2024, Month: time.May, Day: 10}
	entries := []Entry{
		{ID: 1, Date: d, Start: Clock{Hour: 9, Minute: 0}},
		{ID: 2, Date: d, Start: Clock{Hour: 9, Minute: 15}},
		{ID: 3, Date: d, Start: Clock{Hour: 9, Minute: 45}},
	}

	buckets := BucketBySlot(entries, d, true)
	require.Len(t, buckets[Clock{Hour: 9, Minute: 0}], 2)
	assert.Equal(t, int64(1), buckets[Clock{Hour: 9, Minute: 0}][0].ID)
	assert.Equal(t, int64(2), buckets[Clock{Hour: 9, Minute: 0}][1].ID)
	require.Len(t, buckets[Clock{Hour: 9, Minute: 30}], 1)
	assert.Equal(t, int64(3), buckets[Clock{Hour: 9, Minute: 30}][0].ID)
}
