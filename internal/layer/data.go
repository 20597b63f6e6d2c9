package layer

// DataProvider exposes a table of values by column and row index.
type DataProvider interface {
	ColumnCount() int
	RowCount() int
	DataValue(columnIndex, rowIndex int) any
}

// SpanProvider is implemented by providers whose cells can span several
// positions. The returned origin is an index pair.
type SpanProvider interface {
	CellSpan(columnIndex, rowIndex int) (originColumn, originRow, columnSpan, rowSpan int)
}

// LabelAccumulator adds labels for a cell of a DataLayer.
type LabelAccumulator func(labels *LabelStack, columnIndex, rowIndex int)

// DefaultColumnWidth is the width of a column without explicit width.
const DefaultColumnWidth = 100

// DataLayer is the bottom of a layer stack. Positions and indexes are the
// same in this layer.
type DataLayer struct {
	provider     DataProvider
	listeners    Listeners
	defaultWidth int
	widths       map[int]int
	percentage   bool
	calcWidth    int
	accumulator  LabelAccumulator
	dpi          DPIConverter
}

// DataLayerOption configures a DataLayer.
type DataLayerOption func(*DataLayer)

// WithDefaultColumnWidth sets the width used for columns without explicit width.
func WithDefaultColumnWidth(width int) DataLayerOption {
	return func(d *DataLayer) {
		d.defaultWidth = width
	}
}

// WithColumnWidth sets the width of a single column index.
func WithColumnWidth(columnIndex, width int) DataLayerOption {
	return func(d *DataLayer) {
		d.widths[columnIndex] = width
	}
}

// WithPercentageSizing distributes the client area width over all columns in
// proportion to their configured widths.
func WithPercentageSizing(enabled bool) DataLayerOption {
	return func(d *DataLayer) {
		d.percentage = enabled
	}
}

// WithLabelAccumulator sets the function that labels cells.
func WithLabelAccumulator(acc LabelAccumulator) DataLayerOption {
	return func(d *DataLayer) {
		d.accumulator = acc
	}
}

// NewDataLayer creates a data layer over a provider.
func NewDataLayer(provider DataProvider, opts ...DataLayerOption) *DataLayer {
	d := &DataLayer{
		provider:     provider,
		defaultWidth: DefaultColumnWidth,
		widths:       make(map[int]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Provider returns the data provider.
func (d *DataLayer) Provider() DataProvider {
	return d.provider
}

func (d *DataLayer) ColumnCount() int {
	return d.provider.ColumnCount()
}

func (d *DataLayer) RowCount() int {
	return d.provider.RowCount()
}

func (d *DataLayer) ColumnIndexByPosition(columnPosition int) int {
	if columnPosition < 0 || columnPosition >= d.ColumnCount() {
		return -1
	}
	return columnPosition
}

func (d *DataLayer) ColumnPositionByIndex(columnIndex int) int {
	return d.ColumnIndexByPosition(columnIndex)
}

func (d *DataLayer) RowIndexByPosition(rowPosition int) int {
	if rowPosition < 0 || rowPosition >= d.RowCount() {
		return -1
	}
	return rowPosition
}

func (d *DataLayer) RowPositionByIndex(rowIndex int) int {
	return d.RowIndexByPosition(rowIndex)
}

// CellByPosition returns the cell at a position. Spans come from the
// provider if it implements SpanProvider.
func (d *DataLayer) CellByPosition(columnPosition, rowPosition int) *Cell {
	if d.ColumnIndexByPosition(columnPosition) < 0 || d.RowIndexByPosition(rowPosition) < 0 {
		return nil
	}
	cell := NewCell(d, columnPosition, rowPosition)
	if sp, ok := d.provider.(SpanProvider); ok {
		cell.OriginColumnPosition, cell.OriginRowPosition, cell.ColumnSpan, cell.RowSpan =
			sp.CellSpan(columnPosition, rowPosition)
	}
	return cell
}

func (d *DataLayer) DataValueByPosition(columnPosition, rowPosition int) any {
	if d.ColumnIndexByPosition(columnPosition) < 0 || d.RowIndexByPosition(rowPosition) < 0 {
		return nil
	}
	return d.provider.DataValue(columnPosition, rowPosition)
}

func (d *DataLayer) ConfigLabelsByPosition(columnPosition, rowPosition int) *LabelStack {
	labels := NewLabelStack()
	if d.accumulator != nil && d.ColumnIndexByPosition(columnPosition) >= 0 && d.RowIndexByPosition(rowPosition) >= 0 {
		d.accumulator(labels, columnPosition, rowPosition)
	}
	return labels
}

func (d *DataLayer) DisplayModeByPosition(int, int) DisplayMode {
	return DisplayNormal
}

// ColumnWidthByPosition returns the scaled column width. With percentage
// sizing the last client area width is shared by all columns.
func (d *DataLayer) ColumnWidthByPosition(columnPosition int) int {
	if d.ColumnIndexByPosition(columnPosition) < 0 {
		return 0
	}
	if d.percentage && d.calcWidth > 0 {
		total := 0
		for i := 0; i < d.ColumnCount(); i++ {
			total += d.configuredWidth(i)
		}
		if total == 0 {
			return 0
		}
		start := d.calcWidth * d.sumWidths(columnPosition) / total
		end := d.calcWidth * d.sumWidths(columnPosition+1) / total
		return end - start
	}
	return d.scale(d.configuredWidth(columnPosition))
}

func (d *DataLayer) configuredWidth(columnIndex int) int {
	if w, ok := d.widths[columnIndex]; ok {
		return w
	}
	return d.defaultWidth
}

func (d *DataLayer) sumWidths(upTo int) int {
	sum := 0
	for i := 0; i < upTo; i++ {
		sum += d.configuredWidth(i)
	}
	return sum
}

func (d *DataLayer) scale(width int) int {
	if d.dpi == nil {
		return width
	}
	return d.dpi.ConvertPixelToDPI(width)
}

func (d *DataLayer) StartXOfColumnPosition(columnPosition int) int {
	if columnPosition < 0 || columnPosition > d.ColumnCount() {
		return -1
	}
	x := 0
	for pos := 0; pos < columnPosition; pos++ {
		x += d.ColumnWidthByPosition(pos)
	}
	return x
}

func (d *DataLayer) Width() int {
	return d.StartXOfColumnPosition(d.ColumnCount())
}

// PreferredWidth ignores percentage sizing.
func (d *DataLayer) PreferredWidth() int {
	width := 0
	for i := 0; i < d.ColumnCount(); i++ {
		width += d.scale(d.configuredWidth(i))
	}
	return width
}

// SetColumnWidth changes the configured width of a column.
func (d *DataLayer) SetColumnWidth(columnIndex, width int) {
	d.widths[columnIndex] = width
}

// DoCommand handles resize and scaling commands.
func (d *DataLayer) DoCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case *ClientAreaResizeCommand:
		if c.CalcArea != nil {
			d.calcWidth = c.CalcArea.Width
		} else {
			d.calcWidth = c.ClientArea.Width
		}
		return d.percentage
	case ConfigureScalingCommand:
		d.dpi = c.HorizontalDPIConverter
		return true
	}
	return false
}

func (d *DataLayer) AddListener(l Listener) {
	d.listeners.Add(l)
}

// FireEvent notifies listeners.
func (d *DataLayer) FireEvent(ev Event) {
	d.listeners.Fire(ev)
}

// RefreshRows tells listeners that rows were added, removed or reordered in
// the provider.
func (d *DataLayer) RefreshRows() {
	d.FireEvent(RowStructuralRefreshEvent{Layer: d})
}

func (d *DataLayer) ProvidedLabels() []string {
	return nil
}
