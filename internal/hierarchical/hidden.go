package hierarchical

import "slices"

// HiddenRowSet is a sorted, deduplicated set of row indexes.
type HiddenRowSet struct {
	rows []int
}

// NewHiddenRowSet creates a set holding indexes.
func NewHiddenRowSet(indexes ...int) *HiddenRowSet {
	s := &HiddenRowSet{}
	s.Add(indexes...)
	return s
}

// Add inserts indexes and returns those that were not present yet.
func (s *HiddenRowSet) Add(indexes ...int) []int {
	var added []int
	for _, idx := range indexes {
		i, found := slices.BinarySearch(s.rows, idx)
		if found {
			continue
		}
		s.rows = slices.Insert(s.rows, i, idx)
		added = append(added, idx)
	}
	return added
}

// Remove deletes indexes and returns those that were present.
func (s *HiddenRowSet) Remove(indexes ...int) []int {
	var removed []int
	for _, idx := range indexes {
		i, found := slices.BinarySearch(s.rows, idx)
		if !found {
			continue
		}
		s.rows = slices.Delete(s.rows, i, i+1)
		removed = append(removed, idx)
	}
	return removed
}

// Contains reports whether idx is in the set.
func (s *HiddenRowSet) Contains(idx int) bool {
	_, found := slices.BinarySearch(s.rows, idx)
	return found
}

// Len returns the number of indexes.
func (s *HiddenRowSet) Len() int { return len(s.rows) }

// Indexes returns a copy of the indexes in ascending order.
func (s *HiddenRowSet) Indexes() []int {
	return slices.Clone(s.rows)
}

// Clear removes every index.
func (s *HiddenRowSet) Clear() {
	s.rows = s.rows[:0]
}

// Reset replaces the content with indexes.
func (s *HiddenRowSet) Reset(indexes []int) {
	s.rows = slices.Clone(indexes)
	slices.Sort(s.rows)
	s.rows = slices.Compact(s.rows)
}
