package hierarchical

import (
	"slices"

	"github.com/artpar/hiergrid/internal/layer"
)

// ChildIndexes returns the indexes of the rows following rowIndex that share
// its level object at the level of columnIndex. The scan stops at the first
// row with a different object.
func (t *TreeLayer) ChildIndexes(columnIndex, rowIndex int) []int {
	row := t.rows.At(rowIndex)
	if row == nil {
		return nil
	}
	level := t.schema.LevelOf(columnIndex)
	obj := row.Object(level)
	if obj == nil {
		return nil
	}
	var children []int
	for i := rowIndex + 1; i < t.rows.Len(); i++ {
		if t.rows.At(i).Object(level) != obj {
			break
		}
		children = append(children, i)
	}
	return children
}

// FindTopRowIndex returns the index of the first row of the run that
// shares row's level object at the level of columnIndex, or -1 if row is no
// longer in the list.
func (t *TreeLayer) FindTopRowIndex(columnIndex int, row *Row) int {
	if row == nil {
		return -1
	}
	idx := t.rows.IndexOf(row)
	if idx < 0 {
		return -1
	}
	level := t.schema.LevelOf(columnIndex)
	obj := row.Object(level)
	top := idx - 1
	for ; top >= 0; top-- {
		if t.rows.At(top).Object(level) != obj {
			break
		}
	}
	return top + 1
}

// IsCollapsed reports whether the node at a position is collapsed.
func (t *TreeLayer) IsCollapsed(columnPosition, rowPosition int) bool {
	return t.collapsed.Contains(NodeKey{
		ColumnIndex: t.ColumnIndexByPosition(columnPosition),
		RowIndex:    t.RowIndexByPosition(rowPosition),
	})
}

// IsNodeCollapsed reports whether the node with the given indexes is
// collapsed.
func (t *TreeLayer) IsNodeCollapsed(columnIndex, rowIndex int) bool {
	return t.collapsed.Contains(NodeKey{ColumnIndex: columnIndex, RowIndex: rowIndex})
}

// CollapsedNodes returns a snapshot of the collapsed nodes.
func (t *TreeLayer) CollapsedNodes() []TreeNode {
	return t.collapsed.Nodes()
}

// ExpandOrCollapse toggles the node at the given indexes.
func (t *TreeLayer) ExpandOrCollapse(columnIndex, rowIndex int) {
	t.ExpandOrCollapseToLevel(columnIndex, rowIndex, -1)
}

// ExpandOrCollapseToLevel toggles the node at the given indexes. When the
// node is expanded, collapsed nodes inside it whose column is at or before
// the node column of toLevel are expanded as well; deeper ones stay
// collapsed. toLevel is ignored when collapsing. Leaf columns are never
// collapsed.
func (t *TreeLayer) ExpandOrCollapseToLevel(columnIndex, rowIndex, toLevel int) {
	if level := t.schema.LevelOf(columnIndex); level < 0 || level >= t.schema.Levels()-1 {
		t.logger.Debug("expand/collapse on a leaf column", "column", columnIndex, "row", rowIndex)
		return
	}
	row := t.rows.At(rowIndex)
	if row == nil {
		t.logger.Warn("expand/collapse on unknown row", "column", columnIndex, "row", rowIndex)
		return
	}
	children := t.ChildIndexes(columnIndex, rowIndex)
	key := NodeKey{ColumnIndex: columnIndex, RowIndex: rowIndex}

	if !t.collapsed.Contains(key) {
		t.visible.Invalidate()
		t.collapsed.Add(NewTreeNode(columnIndex, rowIndex, row))
		t.hidden.Add(children...)
		t.logger.Debug("collapsed node", "node", key, "hidden", len(children))
		t.FireEvent(layer.RowsHiddenEvent{Layer: t, RowIndexes: children})
		return
	}

	last := rowIndex
	if len(children) > 0 {
		last = children[len(children)-1]
	}
	toLevelColumn := -1
	if toLevel >= 0 {
		toLevelColumn = t.levelNodeColumn(toLevel)
	}

	t.visible.Invalidate()
	t.collapsed.Remove(key)
	reveal := NewHiddenRowSet(children...)
	cascaded := t.collapsed.RemoveFunc(func(n TreeNode) bool {
		if n.RowIndex < rowIndex || n.RowIndex > last {
			return false
		}
		if n.ColumnIndex > toLevelColumn {
			reveal.Remove(t.ChildIndexes(n.ColumnIndex, n.RowIndex)...)
			return false
		}
		return true
	})
	shown := reveal.Indexes()
	t.hidden.Remove(shown...)
	t.logger.Debug("expanded node", "node", key, "shown", len(shown), "cascaded", len(cascaded))
	t.FireEvent(layer.RowsShownEvent{Layer: t, RowIndexes: shown})
}

// levelNodeColumn returns the node column of a level, clamped to the leaf
// level.
func (t *TreeLayer) levelNodeColumn(level int) int {
	if level >= t.schema.Levels() {
		level = t.schema.Levels() - 1
	}
	return t.schema.NodeColumnOf(level)
}

// CollapseAll collapses every node of every collapsible level. Only the
// outermost level hides rows; deeper nodes are registered so that they stay
// collapsed when their parent is expanded.
func (t *TreeLayer) CollapseAll() {
	nodeColumns := t.schema.NodeColumns()
	if len(nodeColumns) == 0 {
		return
	}
	slices.Sort(nodeColumns)

	var rowsToHide []int
	t.forEachNodeRoot(nodeColumns[0], func(rowIndex int) {
		rowsToHide = append(rowsToHide, t.ChildIndexes(nodeColumns[0], rowIndex)...)
	})
	for _, col := range nodeColumns[1:max(1, len(nodeColumns)-1)] {
		t.forEachNodeRoot(col, nil)
	}

	// TODO: decide whether rows hidden by a row hide command below a node
	// should be collapsed with it once row hiding is routed through the tree.
	t.visible.Invalidate()
	t.hidden.Add(rowsToHide...)
	t.logger.Debug("collapsed all", "nodes", t.collapsed.Len(), "hidden", len(rowsToHide))
	t.FireEvent(layer.RowsHiddenEvent{Layer: t, RowIndexes: rowsToHide})
}

// forEachNodeRoot registers every visible spanning cell of a node column as
// collapsed and calls fn with its row index.
func (t *TreeLayer) forEachNodeRoot(columnIndex int, fn func(rowIndex int)) {
	pos := t.ColumnPositionByIndex(columnIndex)
	if pos < 0 {
		return
	}
	for row := 0; row < t.RowCount(); row++ {
		cell := t.CellByPosition(pos, row)
		if cell == nil || cell.RowSpan <= 1 {
			continue
		}
		rowIndex := t.RowIndexByPosition(row)
		t.collapsed.Add(NewTreeNode(columnIndex, rowIndex, t.rows.At(rowIndex)))
		if fn != nil {
			fn(rowIndex)
		}
		row += cell.RowSpan - 1
	}
}

// ExpandAll expands every node.
func (t *TreeLayer) ExpandAll() {
	shown := t.hidden.Indexes()
	t.visible.Invalidate()
	t.hidden.Clear()
	t.collapsed.Clear()
	t.logger.Debug("expanded all", "shown", len(shown))
	t.FireEvent(layer.RowsShownEvent{Layer: t, RowIndexes: shown})
}

// ExpandAllToLevel expands every node whose column is at or before the node
// column of toLevel. A negative level expands the outermost level.
func (t *TreeLayer) ExpandAllToLevel(toLevel int) {
	if t.schema.Levels() == 0 {
		return
	}
	toLevelColumn := t.schema.NodeColumnOf(0)
	if toLevel >= 0 {
		toLevelColumn = t.levelNodeColumn(toLevel)
	}

	t.visible.Invalidate()
	t.collapsed.RemoveFunc(func(n TreeNode) bool {
		return n.ColumnIndex <= toLevelColumn
	})
	remain := NewHiddenRowSet()
	for _, n := range t.collapsed.Nodes() {
		remain.Add(t.ChildIndexes(n.ColumnIndex, n.RowIndex)...)
	}
	var shown []int
	for _, idx := range t.hidden.Indexes() {
		if !remain.Contains(idx) {
			shown = append(shown, idx)
		}
	}
	t.hidden.Reset(remain.Indexes())
	t.logger.Debug("expanded to level", "level", toLevel, "shown", len(shown))
	t.FireEvent(layer.RowsShownEvent{Layer: t, RowIndexes: shown})
}

// ToggleAt toggles the node at a local position and reports whether the
// position is a tree column cell.
func (t *TreeLayer) ToggleAt(columnPosition, rowPosition int) bool {
	if t.IsLevelHeaderColumn(columnPosition) || !t.isTreeColumn(columnPosition) {
		return false
	}
	cell := t.CellByPosition(columnPosition, rowPosition)
	if cell == nil {
		return false
	}
	col := t.ColumnIndexByPosition(cell.OriginColumnPosition)
	row := t.RowIndexByPosition(cell.OriginRowPosition)
	if col < 0 || row < 0 {
		return false
	}
	t.ExpandOrCollapse(col, row)
	return true
}

// CleanupRetainedCollapsedNodes removes every node kept for a removed row.
func (t *TreeLayer) CleanupRetainedCollapsedNodes() {
	removed := t.collapsed.RemoveFunc(TreeNode.Retained)
	t.logger.Debug("cleaned up retained nodes", "removed", len(removed))
}

// CleanupRetainedCollapsedNode removes the node created for row.
func (t *TreeLayer) CleanupRetainedCollapsedNode(row *Row) {
	done := false
	t.collapsed.RemoveFunc(func(n TreeNode) bool {
		if done || !n.References(row) {
			return false
		}
		done = true
		return true
	})
}
