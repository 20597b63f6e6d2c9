package layer

import (
	"fmt"
	"maps"
	"slices"
)

// CellKey identifies a cell by column and row index.
type CellKey struct {
	ColumnIndex int
	RowIndex    int
}

func (k CellKey) String() string {
	return fmt.Sprintf("[%d,%d]", k.ColumnIndex, k.RowIndex)
}

// SelectionLayer keeps the set of selected cells by index so that the
// selection survives hiding and reordering above and below it.
type SelectionLayer struct {
	Transform
	selected map[CellKey]bool
	anchor   *CellKey
}

// NewSelectionLayer creates a selection layer over underlying.
func NewSelectionLayer(underlying Layer) *SelectionLayer {
	l := &SelectionLayer{selected: make(map[CellKey]bool)}
	l.Init(l, underlying)
	return l
}

func (l *SelectionLayer) key(columnPosition, rowPosition int) (CellKey, bool) {
	col := l.ColumnIndexByPosition(columnPosition)
	row := l.RowIndexByPosition(rowPosition)
	if col < 0 || row < 0 {
		return CellKey{}, false
	}
	return CellKey{ColumnIndex: col, RowIndex: row}, true
}

// IsCellPositionSelected reports whether the cell at a position is selected.
func (l *SelectionLayer) IsCellPositionSelected(columnPosition, rowPosition int) bool {
	k, ok := l.key(columnPosition, rowPosition)
	return ok && l.selected[k]
}

// IsRowPositionSelected reports whether any cell in a row is selected.
func (l *SelectionLayer) IsRowPositionSelected(rowPosition int) bool {
	row := l.RowIndexByPosition(rowPosition)
	if row < 0 {
		return false
	}
	for k := range l.selected {
		if k.RowIndex == row {
			return true
		}
	}
	return false
}

// SelectedCells returns the selected cells ordered by row then column.
func (l *SelectionLayer) SelectedCells() []CellKey {
	keys := slices.Collect(maps.Keys(l.selected))
	slices.SortFunc(keys, func(a, b CellKey) int {
		if a.RowIndex != b.RowIndex {
			return a.RowIndex - b.RowIndex
		}
		return a.ColumnIndex - b.ColumnIndex
	})
	return keys
}

// DisplayModeByPosition returns DisplaySelect for selected cells.
func (l *SelectionLayer) DisplayModeByPosition(columnPosition, rowPosition int) DisplayMode {
	if l.IsCellPositionSelected(columnPosition, rowPosition) {
		return DisplaySelect
	}
	return l.Transform.DisplayModeByPosition(columnPosition, rowPosition)
}

// SelectCell selects a single cell. Control toggles the cell, shift selects
// the rectangle from the last anchor.
func (l *SelectionLayer) SelectCell(columnPosition, rowPosition int, shift, ctrl bool) {
	k, ok := l.key(columnPosition, rowPosition)
	if !ok {
		return
	}
	switch {
	case shift && l.anchor != nil:
		anchorCol := l.ColumnPositionByIndex(l.anchor.ColumnIndex)
		anchorRow := l.RowPositionByIndex(l.anchor.RowIndex)
		if anchorCol >= 0 && anchorRow >= 0 {
			l.selected = selectRect(l, l.selected, anchorCol, anchorRow, columnPosition, rowPosition, ctrl)
			break
		}
		fallthrough
	case ctrl:
		l.selected = toggleCell(l.selected, k)
		l.anchor = &k
	default:
		l.selected = map[CellKey]bool{k: true}
		l.anchor = &k
	}
	l.FireEvent(CellSelectionEvent{Layer: l, ColumnPosition: columnPosition, RowPosition: rowPosition})
}

// SelectRegion selects a rectangle of positions.
func (l *SelectionLayer) SelectRegion(columnPosition, rowPosition, width, height int, shift, ctrl bool) {
	if width <= 0 || height <= 0 {
		return
	}
	l.selected = selectRect(l, l.selected, columnPosition, rowPosition,
		columnPosition+width-1, rowPosition+height-1, shift || ctrl)
	if k, ok := l.key(columnPosition, rowPosition); ok {
		l.anchor = &k
	}
	l.FireEvent(CellSelectionEvent{Layer: l, ColumnPosition: columnPosition, RowPosition: rowPosition})
}

// ClearSelection removes every selection.
func (l *SelectionLayer) ClearSelection() {
	l.selected = make(map[CellKey]bool)
	l.anchor = nil
	l.FireEvent(CellSelectionEvent{Layer: l, ColumnPosition: -1, RowPosition: -1})
}

// Search scans the cells row by row, starting after the anchor if there is
// one, for the first value accepted by match. The found cell is selected and
// a SearchEvent is fired. It returns nil if nothing matched.
func (l *SelectionLayer) Search(match func(value any) bool) *PositionCoordinate {
	cols, rows := l.ColumnCount(), l.RowCount()
	if cols == 0 || rows == 0 {
		return nil
	}
	start := 0
	if l.anchor != nil {
		col := l.ColumnPositionByIndex(l.anchor.ColumnIndex)
		row := l.RowPositionByIndex(l.anchor.RowIndex)
		if col >= 0 && row >= 0 {
			start = row*cols + col + 1
		}
	}
	total := cols * rows
	for i := 0; i < total; i++ {
		n := (start + i) % total
		col, row := n%cols, n/cols
		if match(l.DataValueByPosition(col, row)) {
			coord := &PositionCoordinate{Layer: l, ColumnPosition: col, RowPosition: row}
			l.SelectCell(col, row, false, false)
			l.FireEvent(SearchEvent{Coordinate: coord})
			return coord
		}
	}
	return nil
}

// SearchCommand asks the selection layer to search for a value.
type SearchCommand struct {
	Match func(value any) bool
	// Result receives the found coordinate or nil.
	Result *PositionCoordinate
}

// DoCommand handles selection and search commands addressed to this layer.
func (l *SelectionLayer) DoCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case SelectCellCommand:
		l.SelectCell(c.ColumnPosition, c.RowPosition, c.ShiftMask, c.ControlMask)
		return true
	case SelectRegionCommand:
		l.SelectRegion(c.ColumnPosition, c.RowPosition, c.Width, c.Height, c.ShiftMask, c.ControlMask)
		return true
	case ClearAllSelectionsCommand:
		l.ClearSelection()
		return true
	case *SearchCommand:
		c.Result = l.Search(c.Match)
		return true
	}
	return l.Transform.DoCommand(cmd)
}

// toggleCell returns a new selection with the cell toggled.
func toggleCell(selected map[CellKey]bool, k CellKey) map[CellKey]bool {
	result := maps.Clone(selected)
	if result[k] {
		delete(result, k)
	} else {
		result[k] = true
	}
	return result
}

// selectRect returns a new selection with the rectangle between two corners
// selected, added to the previous selection if additive is set.
func selectRect(l Layer, selected map[CellKey]bool, col1, row1, col2, row2 int, additive bool) map[CellKey]bool {
	var result map[CellKey]bool
	if additive {
		result = maps.Clone(selected)
	} else {
		result = make(map[CellKey]bool)
	}
	col1, col2 = min(col1, col2), max(col1, col2)
	row1, row2 = min(row1, row2), max(row1, row2)
	for row := row1; row <= row2; row++ {
		rowIdx := l.RowIndexByPosition(row)
		if rowIdx < 0 {
			continue
		}
		for col := col1; col <= col2; col++ {
			if colIdx := l.ColumnIndexByPosition(col); colIdx >= 0 {
				result[CellKey{ColumnIndex: colIdx, RowIndex: rowIdx}] = true
			}
		}
	}
	return result
}
