package layer

import "slices"

// ColumnReorderLayer keeps a custom order of the underlying columns.
type ColumnReorderLayer struct {
	Transform
	// local position -> column index
	order []int
}

// NewColumnReorderLayer creates a reorder layer showing underlying columns in
// their original order.
func NewColumnReorderLayer(underlying Layer) *ColumnReorderLayer {
	l := &ColumnReorderLayer{}
	l.Init(l, underlying)
	l.sync()
	return l
}

// sync keeps the order of known columns and appends new ones.
func (l *ColumnReorderLayer) sync() {
	u := l.Underlying()
	present := make(map[int]bool, u.ColumnCount())
	for pos := 0; pos < u.ColumnCount(); pos++ {
		present[u.ColumnIndexByPosition(pos)] = true
	}
	l.order = slices.DeleteFunc(l.order, func(idx int) bool {
		return !present[idx]
	})
	for pos := 0; pos < u.ColumnCount(); pos++ {
		idx := u.ColumnIndexByPosition(pos)
		if !slices.Contains(l.order, idx) {
			l.order = append(l.order, idx)
		}
	}
}

// ColumnOrder returns the column indexes in display order.
func (l *ColumnReorderLayer) ColumnOrder() []int {
	return slices.Clone(l.order)
}

func (l *ColumnReorderLayer) ColumnCount() int {
	return len(l.order)
}

func (l *ColumnReorderLayer) LocalToUnderlyingColumnPosition(localColumnPosition int) int {
	if localColumnPosition < 0 || localColumnPosition >= len(l.order) {
		return -1
	}
	return l.Underlying().ColumnPositionByIndex(l.order[localColumnPosition])
}

func (l *ColumnReorderLayer) UnderlyingToLocalColumnPosition(underlyingColumnPosition int) int {
	idx := l.Underlying().ColumnIndexByPosition(underlyingColumnPosition)
	if idx < 0 {
		return -1
	}
	return slices.Index(l.order, idx)
}

// ReorderColumn moves the column at from so that it is placed before the
// column currently at to. A target equal to the column count appends.
func (l *ColumnReorderLayer) ReorderColumn(from, to int) bool {
	return l.ReorderColumns([]int{from}, to)
}

// ReorderColumns moves several columns, keeping their relative order.
func (l *ColumnReorderLayer) ReorderColumns(from []int, to int) bool {
	if to < 0 || to > len(l.order) || len(from) == 0 {
		return false
	}
	sorted := slices.Clone(from)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	if sorted[0] < 0 || sorted[len(sorted)-1] >= len(l.order) {
		return false
	}

	moved := make([]int, 0, len(sorted))
	shift := 0
	for _, pos := range sorted {
		moved = append(moved, l.order[pos])
		if pos < to {
			shift++
		}
	}
	remaining := slices.DeleteFunc(slices.Clone(l.order), func(idx int) bool {
		return slices.Contains(moved, idx)
	})
	l.order = slices.Insert(remaining, to-shift, moved...)
	l.FireEvent(ColumnReorderEvent{Layer: l, FromColumnPositions: sorted, ToColumnPosition: to})
	return true
}

// DoCommand handles reorder commands addressed to this layer.
func (l *ColumnReorderLayer) DoCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case ColumnReorderCommand:
		return l.ReorderColumn(c.FromColumnPosition, c.ToColumnPosition)
	case MultiColumnReorderCommand:
		return l.ReorderColumns(c.FromColumnPositions, c.ToColumnPosition)
	}
	return l.Transform.DoCommand(cmd)
}

// HandleEvent resynchronises the order on horizontal changes.
func (l *ColumnReorderLayer) HandleEvent(ev Event) {
	if sc, ok := ev.(StructuralChange); ok && sc.HorizontalStructureChanged() {
		l.sync()
	}
	l.Transform.HandleEvent(ev)
}
