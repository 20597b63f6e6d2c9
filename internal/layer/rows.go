package layer

// RowVisibility caches the mapping between the rows of a layer that hides
// some rows by index and the positions of its underlying layer. The cache is
// built lazily and must be invalidated whenever the hidden set or the
// underlying rows change.
type RowVisibility struct {
	underlying Layer
	hidden     func(rowIndex int) bool

	valid bool
	// local position -> underlying position
	toUnderlying []int
	// underlying position -> local position or -1
	toLocal []int
}

// NewRowVisibility creates a cache over underlying. hidden reports whether a
// row index is hidden locally.
func NewRowVisibility(underlying Layer, hidden func(rowIndex int) bool) *RowVisibility {
	return &RowVisibility{underlying: underlying, hidden: hidden}
}

// Invalidate drops the cache.
func (v *RowVisibility) Invalidate() {
	v.valid = false
}

func (v *RowVisibility) build() {
	if v.valid {
		return
	}
	count := v.underlying.RowCount()
	v.toUnderlying = v.toUnderlying[:0]
	if cap(v.toLocal) < count {
		v.toLocal = make([]int, count)
	}
	v.toLocal = v.toLocal[:count]
	for pos := 0; pos < count; pos++ {
		if v.hidden(v.underlying.RowIndexByPosition(pos)) {
			v.toLocal[pos] = -1
			continue
		}
		v.toLocal[pos] = len(v.toUnderlying)
		v.toUnderlying = append(v.toUnderlying, pos)
	}
	v.valid = true
}

// Count returns the number of visible rows.
func (v *RowVisibility) Count() int {
	v.build()
	return len(v.toUnderlying)
}

// LocalToUnderlying converts a local row position or returns -1.
func (v *RowVisibility) LocalToUnderlying(localRowPosition int) int {
	v.build()
	if localRowPosition < 0 || localRowPosition >= len(v.toUnderlying) {
		return -1
	}
	return v.toUnderlying[localRowPosition]
}

// UnderlyingToLocal converts an underlying row position or returns -1 if the
// row is hidden.
func (v *RowVisibility) UnderlyingToLocal(underlyingRowPosition int) int {
	v.build()
	if underlyingRowPosition < 0 || underlyingRowPosition >= len(v.toLocal) {
		return -1
	}
	return v.toLocal[underlyingRowPosition]
}
