package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var may10 = Date{Year: 2024, Month: time.May, Day: 10}

func entry(id, doctorID int64, hour, minute, duration int) Entry {
	return Entry{
		ID:              id,
		DoctorID:        doctorID,
		Date:            may10,
		Start:           Clock{Hour: hour, Minute: minute},
		DurationMinutes: duration,
	}
}

func TestConflictsContainedInterval(t *testing.T) {
	// 09:30-10:00 sits inside 09:00-10:00 for the same doctor.
	a := entry(1, 7, 9, 0, 60)
	b := entry(2, 7, 9, 30, 30)

	pairs := Conflicts([]Entry{a, b})
	require.Len(t, pairs, 1)
	assert.Equal(t, int64(1), pairs[0].A.ID)
	assert.Equal(t, int64(2), pairs[0].B.ID)
}

func TestConflictsTouchingIntervalsDoNotConflict(t *testing.T) {
	// A ends at 09:30 exactly when B starts: half-open boundary, no overlap.
	a := entry(1, 7, 9, 0, 30)
	b := entry(2, 7, 9, 30, 30)

	assert.False(t, Overlaps(a, b))
	assert.Empty(t, Conflicts([]Entry{a, b}))
}

func TestConflictsRequireSameDoctor(t *testing.T) {
	a := entry(1, 7, 9, 0, 60)
	b := entry(2, 8, 9, 0, 60)

	assert.Empty(t, Conflicts([]Entry{a, b}))
}

func TestConflictsRequireSameDate(t *testing.T) {
	a := entry(1, 7, 9, 0, 60)
	b := entry(2, 7, 9, 0, 60)
	b.Date = may10.AddDays(1)

	assert.Empty(t, Conflicts([]Entry{a, b}))
}

func TestConflictsMultiplePairs(t *testing.T) {
	// Three mutually overlapping appointments report all three pairs.
	a := entry(1, 7, 9, 0, 90)
	b := entry(2, 7, 9, 30, 60)
	c := entry(3, 7, 10, 0, 30)
	// And an unrelated one later in the day.
	d := entry(4, 7, 14, 0, 30)

	pairs := Conflicts([]Entry{a, b, c, d})
	require.Len(t, pairs, 3)
	assert.Equal(t, [2]int64{1, 2}, [2]int64{pairs[0].A.ID, pairs[0].B.ID})
	assert.Equal(t, [2]int64{1, 3}, [2]int64{pairs[1].A.ID, pairs[1].B.ID})
	assert.Equal(t, [2]int64{2, 3}, [2]int64{pairs[2].A.ID, pairs[2].B.ID})
}

func TestConflictsMatchPairwiseScan(t *testing.T) {
	entries := []Entry{
		entry(1, 7, 8, 0, 45),
		entry(2, 7, 8, 30, 30),
		entry(3, 8, 8, 0, 120),
		entry(4, 7, 9, 0, 30),
		entry(5, 8, 9, 30, 60),
		entry(6, 7, 8, 15, 15),
		entry(7, 8, 10, 0, 30),
	}

	// Reference: the naive O(n^2) definition.
	var want [][2]int64
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			if a.DoctorID == b.DoctorID && a.Date == b.Date && Overlaps(a, b) {
				want = append(want, [2]int64{a.ID, b.ID})
			}
		}
	}

	got := Conflicts(entries)
	require.Len(t, got, len(want))
	gotIDs := make([][2]int64, len(got))
	for i, p := range got {
		gotIDs[i] = [2]int64{p.A.ID, p.B.ID}
	}
	assert.ElementsMatch(t, want, gotIDs)
}

func TestConflictsZeroDuration(t *testing.T) {
	// A zero-length appointment occupies no time and cannot overlap.
	a := entry(1, 7, 9, 0, 0)
	b := entry(2, 7, 9, 0, 30)

	assert.Empty(t, Conflicts([]Entry{a, b}))
}
