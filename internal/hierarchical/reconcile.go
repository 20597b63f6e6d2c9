package hierarchical

import (
	"github.com/artpar/hiergrid/internal/layer"
)

// HandleEvent keeps the collapsed nodes, the hidden rows and the header
// positions consistent with the layers beneath before passing the event on.
func (t *TreeLayer) HandleEvent(ev layer.Event) {
	switch e := ev.(type) {
	case layer.StructuralChange:
		// Rows and columns are reconciled independently, a full refresh
		// needs both.
		if e.VerticalStructureChanged() {
			t.reconcileRows()
		}
		if e.HorizontalStructureChanged() {
			t.calculateHeaderPositions()
		}
	case layer.SearchEvent:
		t.handleSearch(e)
	}
	t.Transform.HandleEvent(ev)
}

// reconcileRows moves every collapsed node to the new index of its row and
// recomputes the hidden rows from scratch. Nodes whose row disappeared are
// kept under decreasing negative placeholders or dropped.
func (t *TreeLayer) reconcileRows() {
	t.visible.Invalidate()
	placeholder := -1
	var updated []TreeNode
	dropped := 0
	for _, n := range t.collapsed.Nodes() {
		if top := t.FindTopRowIndex(n.ColumnIndex, n.Row()); top >= 0 {
			updated = append(updated, NewTreeNode(n.ColumnIndex, top, t.rows.At(top)))
			continue
		}
		if t.retainRemovedRowNodes {
			n.RowIndex = placeholder
			updated = append(updated, n)
			placeholder--
			continue
		}
		dropped++
	}
	t.collapsed.Replace(updated)

	hidden := NewHiddenRowSet()
	for _, n := range t.collapsed.Nodes() {
		hidden.Add(t.ChildIndexes(n.ColumnIndex, n.RowIndex)...)
	}
	t.hidden.Reset(hidden.Indexes())
	t.logger.Debug("reconciled collapsed nodes",
		"nodes", t.collapsed.Len(), "retained", -placeholder-1, "dropped", dropped, "hidden", t.hidden.Len())
}

// handleSearch makes the row of a search result visible. The coordinate
// belongs to a layer beneath the tree, where no row is collapsed.
func (t *TreeLayer) handleSearch(ev layer.SearchEvent) {
	coord := ev.Coordinate
	if coord == nil || coord.Layer == nil {
		return
	}
	found := coord.Layer.RowIndexByPosition(coord.RowPosition)
	if found < 0 {
		return
	}

	if t.IsRowIndexHidden(found) {
		if t.expandOnSearch {
			// the leaf level is not collapsible
			for level := t.schema.Levels() - 2; level >= 0; level-- {
				t.expandAncestor(coord, level)
			}
		} else {
			t.visible.Invalidate()
			t.hidden.Remove(found)
		}
	} else {
		lvl := t.schema.LevelOf(coord.Layer.ColumnIndexByPosition(coord.ColumnPosition))
		for level := 0; level <= lvl; level++ {
			t.expandAncestor(coord, level)
		}
	}

	t.visible.Invalidate()
	t.logger.Debug("search result shown", "row", found)
	t.FireEvent(layer.RowsShownEvent{Layer: t, RowIndexes: []int{found}})
}

// expandAncestor expands the node of a level that contains the coordinate's
// row if it is collapsed.
func (t *TreeLayer) expandAncestor(coord *layer.PositionCoordinate, level int) {
	nodeColumn := t.schema.NodeColumnOf(level)
	if nodeColumn < 0 {
		return
	}
	src := coord.Layer
	pos := src.ColumnPositionByIndex(nodeColumn)
	if pos < 0 {
		return
	}
	cell := src.CellByPosition(pos, coord.RowPosition)
	if cell == nil {
		return
	}
	col := src.ColumnIndexByPosition(cell.OriginColumnPosition)
	row := src.RowIndexByPosition(cell.OriginRowPosition)
	if t.IsNodeCollapsed(col, row) {
		t.ExpandOrCollapse(col, row)
	}
}
