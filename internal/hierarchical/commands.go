package hierarchical

import "github.com/artpar/hiergrid/internal/layer"

// TreeExpandCollapseCommand toggles the node at the given indexes. ToLevel
// limits the cascade of an expand, -1 expands the node only.
type TreeExpandCollapseCommand struct {
	ColumnIndex int
	RowIndex    int
	ToLevel     int
}

// TreeExpandAllCommand expands every node.
type TreeExpandAllCommand struct{}

// TreeCollapseAllCommand collapses every node.
type TreeCollapseAllCommand struct{}

// TreeExpandToLevelCommand expands every node up to a level.
type TreeExpandToLevelCommand struct {
	Level int
}

// DoCommand handles the tree commands and adjusts selection, resize and
// reorder commands for the level header columns before passing them on.
func (t *TreeLayer) DoCommand(cmd layer.Command) bool {
	switch c := cmd.(type) {
	case TreeExpandCollapseCommand:
		t.ExpandOrCollapseToLevel(c.ColumnIndex, c.RowIndex, c.ToLevel)
		return true
	case TreeExpandAllCommand:
		t.ExpandAll()
		return true
	case TreeCollapseAllCommand:
		t.CollapseAll()
		return true
	case TreeExpandToLevelCommand:
		t.ExpandAllToLevel(c.Level)
		return true

	case layer.SelectCellCommand:
		if t.IsLevelHeaderColumn(c.ColumnPosition) {
			return t.selectLevel(c)
		}
	case layer.ConfigureScalingCommand:
		t.dpi = c.HorizontalDPIConverter
	case *layer.ClientAreaResizeCommand:
		// percentage sizing beneath must not count the level headers
		area := c.ClientArea
		area.Width -= len(t.headerPositions) * t.scaledLevelHeaderWidth()
		c.CalcArea = &area
	case layer.ColumnReorderCommand:
		if !t.IsValidTargetColumnPosition(c.FromColumnPosition, c.ToColumnPosition) {
			return true
		}
		if t.IsLevelHeaderColumn(c.ToColumnPosition) {
			c.ToColumnPosition++
			cmd = c
		}
	case layer.MultiColumnReorderCommand:
		for _, from := range c.FromColumnPositions {
			if !t.IsValidTargetColumnPosition(from, c.ToColumnPosition) {
				return true
			}
		}
		if t.IsLevelHeaderColumn(c.ToColumnPosition) {
			c.ToColumnPosition++
			cmd = c
		}
	}
	return t.Transform.DoCommand(cmd)
}

// selectLevel selects the data columns right of a level header for the rows
// the header cell spans. The region is handed to the underlying layer in its
// own positions; the width counts data columns only.
func (t *TreeLayer) selectLevel(c layer.SelectCellCommand) bool {
	clicked := t.CellByPosition(c.ColumnPosition, c.RowPosition)
	if clicked == nil {
		return false
	}
	headersRight := 0
	for _, pos := range t.headerPositions {
		if pos >= c.ColumnPosition {
			headersRight++
		}
	}
	col := t.LocalToUnderlyingColumnPosition(clicked.ColumnPosition + 1)
	row := t.LocalToUnderlyingRowPosition(clicked.OriginRowPosition)
	if row < 0 {
		return false
	}
	t.Underlying().DoCommand(layer.SelectRegionCommand{
		ColumnPosition: col,
		RowPosition:    row,
		Width:          t.ColumnCount() - headersRight - clicked.ColumnPosition,
		Height:         clicked.RowSpan,
		ShiftMask:      c.ShiftMask,
		ControlMask:    c.ControlMask,
	})
	return true
}
