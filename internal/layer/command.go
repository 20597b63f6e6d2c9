package layer

// Command is anything that can be passed down a layer stack.
type Command interface{}

// Translator converts local positions of a transforming layer into positions
// of the layer directly beneath it.
type Translator interface {
	LocalToUnderlyingColumnPosition(localColumnPosition int) int
	LocalToUnderlyingRowPosition(localRowPosition int) int
}

// Translatable is a command carrying positions that must be converted when
// it moves to an underlying layer. ToUnderlying returns false if a position
// cannot be converted, in which case the command is dropped.
type Translatable interface {
	Command
	ToUnderlying(t Translator) (Command, bool)
}

// SelectCellCommand selects a single cell.
type SelectCellCommand struct {
	ColumnPosition int
	RowPosition    int
	ShiftMask      bool
	ControlMask    bool
}

// ToUnderlying converts the cell position.
func (c SelectCellCommand) ToUnderlying(t Translator) (Command, bool) {
	col := t.LocalToUnderlyingColumnPosition(c.ColumnPosition)
	row := t.LocalToUnderlyingRowPosition(c.RowPosition)
	if col < 0 || row < 0 {
		return nil, false
	}
	c.ColumnPosition, c.RowPosition = col, row
	return c, true
}

// SelectRegionCommand selects a rectangle of cells.
type SelectRegionCommand struct {
	ColumnPosition int
	RowPosition    int
	Width          int
	Height         int
	ShiftMask      bool
	ControlMask    bool
}

// ToUnderlying converts the region's corners.
func (c SelectRegionCommand) ToUnderlying(t Translator) (Command, bool) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, false
	}
	startCol := t.LocalToUnderlyingColumnPosition(c.ColumnPosition)
	endCol := t.LocalToUnderlyingColumnPosition(c.ColumnPosition + c.Width - 1)
	startRow := t.LocalToUnderlyingRowPosition(c.RowPosition)
	endRow := t.LocalToUnderlyingRowPosition(c.RowPosition + c.Height - 1)
	if startCol < 0 || endCol < 0 || startRow < 0 || endRow < 0 {
		return nil, false
	}
	c.ColumnPosition, c.Width = startCol, endCol-startCol+1
	c.RowPosition, c.Height = startRow, endRow-startRow+1
	return c, true
}

// ClearAllSelectionsCommand removes every selection.
type ClearAllSelectionsCommand struct{}

// ColumnReorderCommand moves a column so that it is placed before the column
// currently at ToColumnPosition. A target equal to the column count appends.
type ColumnReorderCommand struct {
	FromColumnPosition int
	ToColumnPosition   int
}

// ToUnderlying converts both positions.
func (c ColumnReorderCommand) ToUnderlying(t Translator) (Command, bool) {
	from := t.LocalToUnderlyingColumnPosition(c.FromColumnPosition)
	to := translateTarget(t, c.ToColumnPosition)
	if from < 0 || to < 0 {
		return nil, false
	}
	c.FromColumnPosition, c.ToColumnPosition = from, to
	return c, true
}

// MultiColumnReorderCommand moves several columns to one target.
type MultiColumnReorderCommand struct {
	FromColumnPositions []int
	ToColumnPosition    int
}

// ToUnderlying converts every position.
func (c MultiColumnReorderCommand) ToUnderlying(t Translator) (Command, bool) {
	from := make([]int, 0, len(c.FromColumnPositions))
	for _, pos := range c.FromColumnPositions {
		u := t.LocalToUnderlyingColumnPosition(pos)
		if u < 0 {
			return nil, false
		}
		from = append(from, u)
	}
	to := translateTarget(t, c.ToColumnPosition)
	if to < 0 {
		return nil, false
	}
	return MultiColumnReorderCommand{FromColumnPositions: from, ToColumnPosition: to}, true
}

// translateTarget converts a reorder target, which may be one past the last
// column.
func translateTarget(t Translator, to int) int {
	if u := t.LocalToUnderlyingColumnPosition(to); u >= 0 {
		return u
	}
	if to > 0 {
		if u := t.LocalToUnderlyingColumnPosition(to - 1); u >= 0 {
			return u + 1
		}
	}
	return -1
}

// HideColumnsCommand hides the columns at the given positions.
type HideColumnsCommand struct {
	ColumnPositions []int
}

// ToUnderlying converts every position.
func (c HideColumnsCommand) ToUnderlying(t Translator) (Command, bool) {
	out := make([]int, 0, len(c.ColumnPositions))
	for _, pos := range c.ColumnPositions {
		if u := t.LocalToUnderlyingColumnPosition(pos); u >= 0 {
			out = append(out, u)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return HideColumnsCommand{ColumnPositions: out}, true
}

// ShowAllColumnsCommand reveals every hidden column.
type ShowAllColumnsCommand struct{}

// HideRowsCommand hides the rows at the given positions.
type HideRowsCommand struct {
	RowPositions []int
}

// ToUnderlying converts every position.
func (c HideRowsCommand) ToUnderlying(t Translator) (Command, bool) {
	out := make([]int, 0, len(c.RowPositions))
	for _, pos := range c.RowPositions {
		if u := t.LocalToUnderlyingRowPosition(pos); u >= 0 {
			out = append(out, u)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return HideRowsCommand{RowPositions: out}, true
}

// ShowAllRowsCommand reveals every hidden row.
type ShowAllRowsCommand struct{}

// Rectangle is an area in pixels.
type Rectangle struct {
	X, Y          int
	Width, Height int
}

// ClientAreaResizeCommand announces the size of the area the grid is shown
// in. Layers that reserve space for themselves shrink CalcArea before
// passing the command on; percentage sizing uses CalcArea.
type ClientAreaResizeCommand struct {
	ClientArea Rectangle
	CalcArea   *Rectangle
}

// NewClientAreaResizeCommand creates a resize command whose calc area starts
// out equal to the client area.
func NewClientAreaResizeCommand(area Rectangle) *ClientAreaResizeCommand {
	calc := area
	return &ClientAreaResizeCommand{ClientArea: area, CalcArea: &calc}
}

// DPIConverter scales pixel values for the current display density.
type DPIConverter interface {
	ConvertPixelToDPI(pixel int) int
}

// DPIConverterFunc adapts a function to DPIConverter.
type DPIConverterFunc func(pixel int) int

// ConvertPixelToDPI calls f(pixel).
func (f DPIConverterFunc) ConvertPixelToDPI(pixel int) int {
	return f(pixel)
}

// ScaleDPI returns a converter that multiplies pixel values by factor.
func ScaleDPI(factor float64) DPIConverter {
	return DPIConverterFunc(func(pixel int) int {
		return int(float64(pixel)*factor + 0.5)
	})
}

// ConfigureScalingCommand distributes the DPI converters to every layer.
type ConfigureScalingCommand struct {
	HorizontalDPIConverter DPIConverter
	VerticalDPIConverter   DPIConverter
}
