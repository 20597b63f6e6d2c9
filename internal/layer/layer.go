// Package layer defines the contract shared by the tiers of a grid and the
// plain layers a tree sits on: data, column reorder, hide/show and selection.
package layer

// Layer is one tier of a grid. It owns a contiguous, 0-based local position
// space and maps it onto the stable index space of the data beneath it.
type Layer interface {
	// ColumnCount returns the number of visible columns.
	ColumnCount() int

	// RowCount returns the number of visible rows.
	RowCount() int

	// ColumnIndexByPosition returns the index of the column at a position or -1.
	ColumnIndexByPosition(columnPosition int) int

	// ColumnPositionByIndex returns the position of a column index or -1.
	ColumnPositionByIndex(columnIndex int) int

	// RowIndexByPosition returns the index of the row at a position or -1.
	RowIndexByPosition(rowPosition int) int

	// RowPositionByIndex returns the position of a row index or -1.
	RowPositionByIndex(rowIndex int) int

	// CellByPosition returns the cell covering a position or nil.
	CellByPosition(columnPosition, rowPosition int) *Cell

	// DataValueByPosition returns the value shown at a position.
	DataValueByPosition(columnPosition, rowPosition int) any

	// ConfigLabelsByPosition returns the labels used for styling lookups.
	ConfigLabelsByPosition(columnPosition, rowPosition int) *LabelStack

	// DisplayModeByPosition returns the display mode of a position.
	DisplayModeByPosition(columnPosition, rowPosition int) DisplayMode

	// ColumnWidthByPosition returns the width of a column in pixels.
	ColumnWidthByPosition(columnPosition int) int

	// StartXOfColumnPosition returns the x offset of a column in pixels.
	StartXOfColumnPosition(columnPosition int) int

	// Width returns the total width in pixels.
	Width() int

	// PreferredWidth returns the width the layer would like to have.
	PreferredWidth() int

	// DoCommand executes a command and reports whether it was handled.
	DoCommand(cmd Command) bool

	// AddListener registers a listener for events fired by this layer.
	AddListener(l Listener)

	// ProvidedLabels returns every label this layer may attach.
	ProvidedLabels() []string
}

// DisplayMode is the interaction state a cell is painted in.
type DisplayMode int

const (
	DisplayNormal DisplayMode = iota
	DisplaySelect
	DisplayHover
)

// String returns the display mode name.
func (m DisplayMode) String() string {
	switch m {
	case DisplayNormal:
		return "NORMAL"
	case DisplaySelect:
		return "SELECT"
	case DisplayHover:
		return "HOVER"
	default:
		return "UNKNOWN"
	}
}

// AdditionalPositionModifier is the factor used to encode synthetic columns,
// which have no index in the data, as negative indexes. A synthetic column in
// slot n (1-based) is reported as n*AdditionalPositionModifier.
const AdditionalPositionModifier = -1000000

// Listener receives events fired by a layer.
type Listener interface {
	HandleEvent(ev Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(ev Event)

// HandleEvent calls f(ev).
func (f ListenerFunc) HandleEvent(ev Event) {
	f(ev)
}

// Listeners is an ordered list of listeners notified synchronously.
type Listeners struct {
	list []Listener
}

// Add appends a listener.
func (ls *Listeners) Add(l Listener) {
	if l == nil {
		return
	}
	ls.list = append(ls.list, l)
}

// Len returns the number of registered listeners.
func (ls *Listeners) Len() int {
	return len(ls.list)
}

// Fire notifies every listener in registration order.
func (ls *Listeners) Fire(ev Event) {
	for _, l := range ls.list {
		l.HandleEvent(ev)
	}
}

// ConvertRowPosition converts a row position of one layer into the position
// of the same row index in another layer.
func ConvertRowPosition(source Layer, rowPosition int, target Layer) int {
	if source == target {
		return rowPosition
	}
	rowIndex := source.RowIndexByPosition(rowPosition)
	if rowIndex < 0 {
		return -1
	}
	return target.RowPositionByIndex(rowIndex)
}

// ConvertColumnPosition converts a column position of one layer into the
// position of the same column index in another layer.
func ConvertColumnPosition(source Layer, columnPosition int, target Layer) int {
	if source == target {
		return columnPosition
	}
	columnIndex := source.ColumnIndexByPosition(columnPosition)
	if columnIndex < 0 {
		return -1
	}
	return target.ColumnPositionByIndex(columnIndex)
}

// ColumnPositionByX returns the column position containing the x coordinate
// or -1 if x is outside the layer.
func ColumnPositionByX(l Layer, x int) int {
	if x < 0 {
		return -1
	}
	start := 0
	for pos := 0; pos < l.ColumnCount(); pos++ {
		width := l.ColumnWidthByPosition(pos)
		if x < start+width {
			return pos
		}
		start += width
	}
	return -1
}

// PositionCoordinate identifies a cell position within a specific layer.
type PositionCoordinate struct {
	Layer          Layer
	ColumnPosition int
	RowPosition    int
}
