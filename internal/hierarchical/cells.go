package hierarchical

import (
	"github.com/artpar/hiergrid/internal/layer"
	"github.com/artpar/hiergrid/internal/painter"
)

// CellByPosition returns the cell at a position. A level header cell is one
// column wide and spans the rows of the cell right of it. Spanning data
// cells lose the rows that are hidden.
func (t *TreeLayer) CellByPosition(columnPosition, rowPosition int) *layer.Cell {
	if t.IsLevelHeaderColumn(columnPosition) {
		right := t.CellByPosition(columnPosition+1, rowPosition)
		if right == nil {
			return nil
		}
		return &layer.Cell{
			Layer:                t,
			ColumnPosition:       columnPosition,
			RowPosition:          rowPosition,
			OriginColumnPosition: columnPosition,
			OriginRowPosition:    right.OriginRowPosition,
			ColumnSpan:           1,
			RowSpan:              right.RowSpan,
		}
	}

	if columnPosition < 0 || columnPosition >= t.ColumnCount() ||
		rowPosition < 0 || rowPosition >= t.RowCount() {
		return nil
	}
	u := t.Underlying()
	under := u.CellByPosition(
		t.LocalToUnderlyingColumnPosition(columnPosition),
		t.LocalToUnderlyingRowPosition(rowPosition))
	if under == nil {
		return nil
	}

	cell := &layer.Cell{
		Layer:                t,
		ColumnPosition:       columnPosition,
		RowPosition:          rowPosition,
		OriginColumnPosition: t.UnderlyingToLocalColumnPosition(under.OriginColumnPosition),
		OriginRowPosition:    t.UnderlyingToLocalRowPosition(under.OriginRowPosition),
		ColumnSpan:           under.ColumnSpan,
		RowSpan:              under.RowSpan,
	}
	if cell.OriginColumnPosition < 0 {
		cell.OriginColumnPosition = columnPosition
	}
	if cell.OriginRowPosition < 0 {
		cell.OriginRowPosition = rowPosition
	}
	if under.IsSpanned() {
		for r := 0; r < under.RowSpan; r++ {
			if t.IsRowIndexHidden(u.RowIndexByPosition(under.OriginRowPosition + r)) {
				cell.RowSpan--
			}
		}
	}
	return cell
}

// DataValueByPosition returns nil for level headers.
func (t *TreeLayer) DataValueByPosition(columnPosition, rowPosition int) any {
	if t.IsLevelHeaderColumn(columnPosition) {
		return nil
	}
	return t.Transform.DataValueByPosition(columnPosition, rowPosition)
}

// DisplayModeByPosition returns DisplaySelect for a level header when a cell
// of its level is selected in the row.
func (t *TreeLayer) DisplayModeByPosition(columnPosition, rowPosition int) layer.DisplayMode {
	if slot := t.headerSlot(columnPosition); slot >= 0 {
		if t.isRowPositionInLevelSelected(slot, rowPosition) {
			return layer.DisplaySelect
		}
		return layer.DisplayNormal
	}
	return t.Transform.DisplayModeByPosition(columnPosition, rowPosition)
}

func (t *TreeLayer) isRowPositionInLevelSelected(level, rowPosition int) bool {
	if t.selection == nil {
		return false
	}
	selRow := layer.ConvertRowPosition(t, rowPosition, t.selection)
	if selRow < 0 || !t.selection.IsRowPositionSelected(selRow) {
		return false
	}
	for _, columnIndex := range t.schema.ColumnsOfLevel(level) {
		col := t.selection.ColumnPositionByIndex(columnIndex)
		if col >= 0 && t.selection.IsCellPositionSelected(col, selRow) {
			return true
		}
	}
	return false
}

// isTreeColumn reports whether a position shows collapsible nodes.
func (t *TreeLayer) isTreeColumn(columnPosition int) bool {
	col := t.LocalToUnderlyingColumnPosition(columnPosition)
	if t.useTreeColumnIndex {
		col = t.ColumnIndexByPosition(columnPosition)
	}
	return t.schema.IsTreeColumn(col)
}

// ConfigLabelsByPosition adds the tree labels to the underlying labels.
func (t *TreeLayer) ConfigLabelsByPosition(columnPosition, rowPosition int) *layer.LabelStack {
	if t.IsLevelHeaderColumn(columnPosition) {
		return layer.NewLabelStack(LevelHeaderCell)
	}

	labels := t.Transform.ConfigLabelsByPosition(columnPosition, rowPosition)

	if t.isTreeColumn(columnPosition) {
		labels.AddOnTop(TreeColumnCell)
		if cell := t.CellByPosition(columnPosition, rowPosition); cell != nil {
			labels.AddOnTop(TreeDepth0)
			switch {
			case cell.RowSpan > 1:
				labels.AddOnTop(TreeExpanded)
			case t.IsCollapsed(columnPosition, rowPosition):
				labels.AddOnTop(TreeCollapsed)
			default:
				// no handle when the parent is collapsed and children are
				// not handled
				labels.AddOnTop(TreeLeaf)
			}
		}
	}

	if t.handleCollapsedChildren && t.belowCollapsedLevel(columnPosition, rowPosition) {
		labels.AddOnTop(CollapsedChild)
		for _, l := range treeLabels {
			labels.Remove(l)
		}
	}
	return labels
}

// belowCollapsedLevel reports whether a level header left of the position,
// other than the nearest one, belongs to a level whose node is collapsed in
// the row.
func (t *TreeLayer) belowCollapsedLevel(columnPosition, rowPosition int) bool {
	direct := true
	collapsed := false
	shift := 0
	if t.showLevelHeader {
		shift = 1
	}
	for i := len(t.headerPositions) - 1; i >= 0; i-- {
		pos := t.headerPositions[i]
		if pos >= columnPosition {
			continue
		}
		if direct {
			direct = false
		} else if t.IsCollapsed(pos+shift, rowPosition) {
			collapsed = true
		}
	}
	return collapsed
}

// ProvidedLabels adds the tree labels to the underlying ones.
func (t *TreeLayer) ProvidedLabels() []string {
	labels := t.Transform.ProvidedLabels()
	return append(labels, TreeColumnCell, TreeLeaf, TreeCollapsed, TreeExpanded, TreeDepth0, LevelHeaderCell, CollapsedChild)
}

// CellPainter returns the painter for a cell. Tree column cells get the tree
// structure painter with the regular painter as its base. A missing tree
// structure painter is logged and the regular painter is used.
func (t *TreeLayer) CellPainter(cell *layer.Cell, reg *painter.Registry) painter.Painter {
	labels := cell.Labels()
	mode := cell.DisplayMode()
	base := reg.Painter(painter.AttrCellPainter, mode, labels.Labels())
	if !labels.Has(TreeColumnCell) {
		return base
	}
	treePainter := reg.Painter(painter.AttrTreeStructurePainter, mode, labels.Labels())
	tp := painter.FindTreeImagePainter(treePainter)
	if tp == nil {
		t.logger.Warn("no tree image painter registered for tree structure painter",
			"column", cell.ColumnPosition, "row", cell.RowPosition)
		return base
	}
	tp.SetBase(base)
	return treePainter
}
