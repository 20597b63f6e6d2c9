package hierarchical

import "slices"

// LevelSchema maps hierarchy levels to column indexes. It is derived once
// from the column depths.
//
// Columns are scanned left to right. Column 0 opens level 0. A column at the
// depth of the current level joins it, a deeper column opens the next level
// and becomes its node column. Columns that step back to a shallower depth
// belong to no level. The last level opened is the leaf level and its node
// column is the leaf column.
type LevelSchema struct {
	depths       []int
	nodeColumns  []int
	levelColumns [][]int
	leafColumn   int
}

// NewLevelSchema builds the schema for columns with the given depths.
func NewLevelSchema(depths []int) *LevelSchema {
	s := &LevelSchema{depths: slices.Clone(depths)}
	if len(depths) == 0 {
		return s
	}
	s.nodeColumns = []int{0}
	s.levelColumns = [][]int{{0}}
	current := 0
	for col := 1; col < len(depths); col++ {
		switch d := depths[col]; {
		case d == current:
			s.levelColumns[current] = append(s.levelColumns[current], col)
		case d > current:
			s.nodeColumns = append(s.nodeColumns, col)
			s.levelColumns = append(s.levelColumns, []int{col})
			current++
			s.leafColumn = col
		}
	}
	return s
}

// SchemaFromColumns builds the schema for a column binding.
func SchemaFromColumns(columns []Column) *LevelSchema {
	return NewLevelSchema(Depths(columns))
}

// Levels returns the number of levels including the leaf level.
func (s *LevelSchema) Levels() int {
	return len(s.nodeColumns)
}

// ColumnCount returns the number of columns the schema was built for.
func (s *LevelSchema) ColumnCount() int {
	return len(s.depths)
}

// NodeColumnOf returns the first column index of a level or -1.
func (s *LevelSchema) NodeColumnOf(level int) int {
	if level < 0 || level >= len(s.nodeColumns) {
		return -1
	}
	return s.nodeColumns[level]
}

// NodeColumns returns the node column of every level in level order.
func (s *LevelSchema) NodeColumns() []int {
	return slices.Clone(s.nodeColumns)
}

// ColumnsOfLevel returns the column indexes of a level or nil.
func (s *LevelSchema) ColumnsOfLevel(level int) []int {
	if level < 0 || level >= len(s.levelColumns) {
		return nil
	}
	return slices.Clone(s.levelColumns[level])
}

// LevelOf returns the depth of a column index or -1 if it is out of range.
func (s *LevelSchema) LevelOf(columnIndex int) int {
	if columnIndex < 0 || columnIndex >= len(s.depths) {
		return -1
	}
	return s.depths[columnIndex]
}

// LeafColumn returns the node column of the leaf level.
func (s *LevelSchema) LeafColumn() int {
	return s.leafColumn
}

// IsTreeColumn reports whether a column index carries collapsible nodes.
func (s *LevelSchema) IsTreeColumn(columnIndex int) bool {
	return slices.Contains(s.nodeColumns, columnIndex) && columnIndex != s.leafColumn
}

// HeaderPositions returns the local position of the level header of every
// level: the node column shifted right by the headers before it and left by
// the columns before it that are hidden beneath the tree.
func (s *LevelSchema) HeaderPositions(hidden func(columnIndex int) bool) []int {
	positions := make([]int, len(s.nodeColumns))
	for level, nodeColumn := range s.nodeColumns {
		hiddenBelow := 0
		for i := nodeColumn - 1; i >= 0; i-- {
			if hidden(i) {
				hiddenBelow++
			}
		}
		positions[level] = nodeColumn + level - hiddenBelow
	}
	return positions
}
