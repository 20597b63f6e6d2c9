package layer

// Cell describes the area covered by a cell in a layer. Spanning cells cover
// more than one position; the origin is their top left position.
type Cell struct {
	Layer                Layer
	ColumnPosition       int
	RowPosition          int
	OriginColumnPosition int
	OriginRowPosition    int
	ColumnSpan           int
	RowSpan              int
}

// NewCell creates a 1x1 cell at the given position.
func NewCell(l Layer, columnPosition, rowPosition int) *Cell {
	return &Cell{
		Layer:                l,
		ColumnPosition:       columnPosition,
		RowPosition:          rowPosition,
		OriginColumnPosition: columnPosition,
		OriginRowPosition:    rowPosition,
		ColumnSpan:           1,
		RowSpan:              1,
	}
}

// IsSpanned reports whether the cell covers more than one position.
func (c *Cell) IsSpanned() bool {
	return c.ColumnSpan > 1 || c.RowSpan > 1
}

// IsOrigin reports whether the cell's requested position is its origin.
func (c *Cell) IsOrigin() bool {
	return c.ColumnPosition == c.OriginColumnPosition && c.RowPosition == c.OriginRowPosition
}

// DataValue returns the value of the cell's origin.
func (c *Cell) DataValue() any {
	return c.Layer.DataValueByPosition(c.OriginColumnPosition, c.OriginRowPosition)
}

// Labels returns the labels of the cell's requested position.
func (c *Cell) Labels() *LabelStack {
	return c.Layer.ConfigLabelsByPosition(c.ColumnPosition, c.RowPosition)
}

// DisplayMode returns the display mode of the cell's requested position.
func (c *Cell) DisplayMode() DisplayMode {
	return c.Layer.DisplayModeByPosition(c.ColumnPosition, c.RowPosition)
}
