package layer

import "slices"

// LabelStack is an ordered set of labels, most specific first.
type LabelStack struct {
	labels []string
}

// NewLabelStack creates a stack holding the given labels in order.
func NewLabelStack(labels ...string) *LabelStack {
	s := &LabelStack{}
	for _, l := range labels {
		s.Add(l)
	}
	return s
}

// Add appends a label at the bottom if it is not present yet.
func (s *LabelStack) Add(label string) {
	if s.Has(label) {
		return
	}
	s.labels = append(s.labels, label)
}

// AddOnTop puts a label on top, moving it there if it is already present.
func (s *LabelStack) AddOnTop(label string) {
	s.Remove(label)
	s.labels = append([]string{label}, s.labels...)
}

// Remove deletes a label and reports whether it was present.
func (s *LabelStack) Remove(label string) bool {
	i := slices.Index(s.labels, label)
	if i < 0 {
		return false
	}
	s.labels = slices.Delete(s.labels, i, i+1)
	return true
}

// Has reports whether the label is present.
func (s *LabelStack) Has(label string) bool {
	return slices.Contains(s.labels, label)
}

// Len returns the number of labels.
func (s *LabelStack) Len() int {
	return len(s.labels)
}

// Labels returns a copy of the labels, top first.
func (s *LabelStack) Labels() []string {
	return slices.Clone(s.labels)
}
