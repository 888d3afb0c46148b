package workspace

import (
	"sort"
)

// IntervalSet is an ascending list of disjoint intervals. Intervals that overlap or touch within
// the tolerance are merged.
type IntervalSet struct {
	tolerance float64
	intervals []Interval
}

// NewIntervalSet returns an empty set merging within tolerance.
func NewIntervalSet(tolerance float64) *IntervalSet {
	return &IntervalSet{tolerance: tolerance}
}

// Union merges iv into the set. A single insertion may fold a whole chain of intervals that
// iv bridges.
func (s *IntervalSet) Union(iv Interval) {
	s.intervals = append(s.intervals, iv)
	sort.Slice(s.intervals, func(i, j int) bool { return s.intervals[i].Lo < s.intervals[j].Lo })
	for s.fold() {
	}
}

// fold merges the first overlapping neighbor pair it finds and reports whether it did.
func (s *IntervalSet) fold() bool {
	for i := 0; i+1 < len(s.intervals); i++ {
		cur, next := s.intervals[i], s.intervals[i+1]
		if next.Lo > cur.Hi+s.tolerance {
			continue
		}
		if next.Hi > cur.Hi {
			cur.Hi = next.Hi
		}
		s.intervals[i] = cur
		s.intervals = append(s.intervals[:i+1], s.intervals[i+2:]...)
		return true
	}
	return false
}

// Intervals returns a copy of the merged intervals in ascending order.
func (s *IntervalSet) Intervals() []Interval {
	return append([]Interval{}, s.intervals...)
}

// Len returns the number of disjoint intervals.
func (s *IntervalSet) Len() int {
	return len(s.intervals)
}

// Covers reports whether a single interval spans r within tolerance.
func (s *IntervalSet) Covers(r Interval) bool {
	for _, iv := range s.intervals {
		if iv.Lo <= r.Lo+s.tolerance && iv.Hi >= r.Hi-s.tolerance {
			return true
		}
	}
	return false
}
