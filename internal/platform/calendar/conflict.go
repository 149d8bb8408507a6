package calendar

import "sort"

// ConflictPair is an unordered pair of entries for the same doctor on the
// same date whose occupied intervals overlap. A is always the entry that
// appeared earlier in the input. Conflicts are derived fresh from the input
// set and are never persisted.
type ConflictPair struct {
	A Entry
	B Entry
}

// Overlaps reports whether the occupied intervals of a and b intersect.
// Intervals are half-open, so an appointment ending at 09:30 never conflicts
// with one starting at 09:30.
func Overlaps(a, b Entry) bool {
	return a.Start.Minutes() < b.End().Minutes() && b.Start.Minutes() < a.End().Minutes()
}

type conflictKey struct {
	doctorID int64
	date     Date
}

type indexedEntry struct {
	Entry
	idx int
}

// Conflicts returns every conflicting pair in the input set. Entries are
// grouped by doctor and date, each group is sorted by start time and swept
// once, so the cost is O(n log n) instead of a full pairwise scan while the
// reported set is identical. Pair order follows input order.
func Conflicts(entries []Entry) []ConflictPair {
	groups := make(map[conflictKey][]indexedEntry)
	for i, e := range entries {
		k := conflictKey{doctorID: e.DoctorID, date: e.Date}
		groups[k] = append(groups[k], indexedEntry{Entry: e, idx: i})
	}

	type indexedPair struct {
		pair ConflictPair
		a, b int
	}
	var found []indexedPair
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Start.Minutes() < group[j].Start.Minutes()
		})
		for i := range group {
			for j := i + 1; j < len(group); j++ {
				// Starts are sorted, so once one stops overlapping the
				// rest of the group cannot overlap either.
				if group[j].Start.Minutes() >= group[i].End().Minutes() {
					break
				}
				if !Overlaps(group[i].Entry, group[j].Entry) {
					continue
				}
				a, b := group[i], group[j]
				if b.idx < a.idx {
					a, b = b, a
				}
				found = append(found, indexedPair{
					pair: ConflictPair{A: a.Entry, B: b.Entry},
					a:    a.idx,
					b:    b.idx,
				})
			}
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].a != found[j].a {
			return found[i].a < found[j].a
		}
		return found[i].b < found[j].b
	})
	pairs := make([]ConflictPair, len(found))
	for i, f := range found {
		pairs[i] = f.pair
	}
	return pairs
}
