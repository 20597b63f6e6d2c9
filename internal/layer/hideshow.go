package layer

import "slices"

// ColumnHideShowLayer hides columns by index.
type ColumnHideShowLayer struct {
	Transform
	hidden map[int]bool

	valid bool
	// local position -> underlying position
	positions []int
}

// NewColumnHideShowLayer creates a column hide/show layer over underlying.
func NewColumnHideShowLayer(underlying Layer) *ColumnHideShowLayer {
	l := &ColumnHideShowLayer{hidden: make(map[int]bool)}
	l.Init(l, underlying)
	return l
}

func (l *ColumnHideShowLayer) build() {
	if l.valid {
		return
	}
	l.positions = l.positions[:0]
	u := l.Underlying()
	for pos := 0; pos < u.ColumnCount(); pos++ {
		if !l.hidden[u.ColumnIndexByPosition(pos)] {
			l.positions = append(l.positions, pos)
		}
	}
	l.valid = true
}

func (l *ColumnHideShowLayer) ColumnCount() int {
	l.build()
	return len(l.positions)
}

func (l *ColumnHideShowLayer) LocalToUnderlyingColumnPosition(localColumnPosition int) int {
	l.build()
	if localColumnPosition < 0 || localColumnPosition >= len(l.positions) {
		return -1
	}
	return l.positions[localColumnPosition]
}

func (l *ColumnHideShowLayer) UnderlyingToLocalColumnPosition(underlyingColumnPosition int) int {
	l.build()
	return slices.Index(l.positions, underlyingColumnPosition)
}

// IsColumnIndexHidden reports whether a column index is hidden here.
func (l *ColumnHideShowLayer) IsColumnIndexHidden(columnIndex int) bool {
	return l.hidden[columnIndex]
}

// HiddenColumnIndexes returns the hidden column indexes in ascending order.
func (l *ColumnHideShowLayer) HiddenColumnIndexes() []int {
	out := make([]int, 0, len(l.hidden))
	for idx := range l.hidden {
		out = append(out, idx)
	}
	slices.Sort(out)
	return out
}

// HideColumnIndexes hides columns by index.
func (l *ColumnHideShowLayer) HideColumnIndexes(indexes ...int) {
	var changed []int
	for _, idx := range indexes {
		if idx >= 0 && !l.hidden[idx] {
			l.hidden[idx] = true
			changed = append(changed, idx)
		}
	}
	if len(changed) == 0 {
		return
	}
	l.valid = false
	l.FireEvent(ColumnsHiddenEvent{Layer: l, ColumnIndexes: changed})
}

// ShowAllColumns reveals every hidden column.
func (l *ColumnHideShowLayer) ShowAllColumns() {
	if len(l.hidden) == 0 {
		return
	}
	shown := l.HiddenColumnIndexes()
	clear(l.hidden)
	l.valid = false
	l.FireEvent(ColumnsShownEvent{Layer: l, ColumnIndexes: shown})
}

// DoCommand handles hide and show commands addressed to this layer.
func (l *ColumnHideShowLayer) DoCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case HideColumnsCommand:
		indexes := make([]int, 0, len(c.ColumnPositions))
		for _, pos := range c.ColumnPositions {
			indexes = append(indexes, l.ColumnIndexByPosition(pos))
		}
		l.HideColumnIndexes(indexes...)
		return true
	case ShowAllColumnsCommand:
		l.ShowAllColumns()
		return true
	}
	return l.Transform.DoCommand(cmd)
}

// HandleEvent drops the position cache on horizontal changes.
func (l *ColumnHideShowLayer) HandleEvent(ev Event) {
	if sc, ok := ev.(StructuralChange); ok && sc.HorizontalStructureChanged() {
		l.valid = false
	}
	l.Transform.HandleEvent(ev)
}

// RowHideShowLayer hides rows by index.
type RowHideShowLayer struct {
	Transform
	hidden  map[int]bool
	visible *RowVisibility
}

// NewRowHideShowLayer creates a row hide/show layer over underlying.
func NewRowHideShowLayer(underlying Layer) *RowHideShowLayer {
	l := &RowHideShowLayer{hidden: make(map[int]bool)}
	l.visible = NewRowVisibility(underlying, func(rowIndex int) bool {
		return l.hidden[rowIndex]
	})
	l.Init(l, underlying)
	return l
}

func (l *RowHideShowLayer) RowCount() int {
	return l.visible.Count()
}

func (l *RowHideShowLayer) LocalToUnderlyingRowPosition(localRowPosition int) int {
	return l.visible.LocalToUnderlying(localRowPosition)
}

func (l *RowHideShowLayer) UnderlyingToLocalRowPosition(underlyingRowPosition int) int {
	return l.visible.UnderlyingToLocal(underlyingRowPosition)
}

// CellByPosition shrinks spanning cells to their visible rows.
func (l *RowHideShowLayer) CellByPosition(columnPosition, rowPosition int) *Cell {
	cell := l.Transform.CellByPosition(columnPosition, rowPosition)
	if cell == nil || cell.RowSpan <= 1 {
		return cell
	}
	under := l.Underlying().CellByPosition(
		l.LocalToUnderlyingColumnPosition(columnPosition),
		l.LocalToUnderlyingRowPosition(rowPosition))
	origin, span := -1, 0
	for r := 0; r < under.RowSpan; r++ {
		local := l.UnderlyingToLocalRowPosition(under.OriginRowPosition + r)
		if local < 0 {
			continue
		}
		if origin < 0 {
			origin = local
		}
		span++
	}
	cell.OriginRowPosition, cell.RowSpan = origin, span
	return cell
}

// IsRowIndexHidden reports whether a row index is hidden here.
func (l *RowHideShowLayer) IsRowIndexHidden(rowIndex int) bool {
	return l.hidden[rowIndex]
}

// HiddenRowIndexes returns the hidden row indexes in ascending order.
func (l *RowHideShowLayer) HiddenRowIndexes() []int {
	out := make([]int, 0, len(l.hidden))
	for idx := range l.hidden {
		out = append(out, idx)
	}
	slices.Sort(out)
	return out
}

// HideRowIndexes hides rows by index.
func (l *RowHideShowLayer) HideRowIndexes(indexes ...int) {
	var changed []int
	for _, idx := range indexes {
		if idx >= 0 && !l.hidden[idx] {
			l.hidden[idx] = true
			changed = append(changed, idx)
		}
	}
	if len(changed) == 0 {
		return
	}
	l.visible.Invalidate()
	l.FireEvent(RowsHiddenEvent{Layer: l, RowIndexes: changed})
}

// ShowAllRows reveals every hidden row.
func (l *RowHideShowLayer) ShowAllRows() {
	if len(l.hidden) == 0 {
		return
	}
	shown := l.HiddenRowIndexes()
	clear(l.hidden)
	l.visible.Invalidate()
	l.FireEvent(RowsShownEvent{Layer: l, RowIndexes: shown})
}

// DoCommand handles hide and show commands addressed to this layer.
func (l *RowHideShowLayer) DoCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case HideRowsCommand:
		indexes := make([]int, 0, len(c.RowPositions))
		for _, pos := range c.RowPositions {
			indexes = append(indexes, l.RowIndexByPosition(pos))
		}
		l.HideRowIndexes(indexes...)
		return true
	case ShowAllRowsCommand:
		l.ShowAllRows()
		return true
	}
	return l.Transform.DoCommand(cmd)
}

// HandleEvent drops the position cache on vertical changes.
func (l *RowHideShowLayer) HandleEvent(ev Event) {
	if sc, ok := ev.(StructuralChange); ok && sc.VerticalStructureChanged() {
		l.visible.Invalidate()
	}
	l.Transform.HandleEvent(ev)
}
