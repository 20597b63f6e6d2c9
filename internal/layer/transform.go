package layer

// Transformer is a layer that sits on top of exactly one other layer and can
// translate its local positions into the positions of that layer.
type Transformer interface {
	Layer
	Listener
	Translator
	UnderlyingToLocalColumnPosition(underlyingColumnPosition int) int
	UnderlyingToLocalRowPosition(underlyingRowPosition int) int
}

// Transform carries the pass-through behaviour shared by all transforming
// layers. Concrete layers embed it, call Init and override what they change.
// Calls that must reach overridden methods go through self.
type Transform struct {
	underlying Layer
	self       Transformer
	listeners  Listeners
}

// Init wires the transform to its concrete layer and registers the concrete
// layer as a listener of the underlying layer.
func (t *Transform) Init(self Transformer, underlying Layer) {
	t.self = self
	t.underlying = underlying
	underlying.AddListener(self)
}

// Underlying returns the layer directly beneath.
func (t *Transform) Underlying() Layer {
	return t.underlying
}

// LocalToUnderlyingColumnPosition is the identity.
func (t *Transform) LocalToUnderlyingColumnPosition(localColumnPosition int) int {
	return localColumnPosition
}

// LocalToUnderlyingRowPosition is the identity.
func (t *Transform) LocalToUnderlyingRowPosition(localRowPosition int) int {
	return localRowPosition
}

// UnderlyingToLocalColumnPosition is the identity.
func (t *Transform) UnderlyingToLocalColumnPosition(underlyingColumnPosition int) int {
	return underlyingColumnPosition
}

// UnderlyingToLocalRowPosition is the identity.
func (t *Transform) UnderlyingToLocalRowPosition(underlyingRowPosition int) int {
	return underlyingRowPosition
}

func (t *Transform) ColumnCount() int {
	return t.underlying.ColumnCount()
}

func (t *Transform) RowCount() int {
	return t.underlying.RowCount()
}

func (t *Transform) ColumnIndexByPosition(columnPosition int) int {
	if columnPosition < 0 || columnPosition >= t.self.ColumnCount() {
		return -1
	}
	return t.underlying.ColumnIndexByPosition(t.self.LocalToUnderlyingColumnPosition(columnPosition))
}

func (t *Transform) ColumnPositionByIndex(columnIndex int) int {
	pos := t.underlying.ColumnPositionByIndex(columnIndex)
	if pos < 0 {
		return -1
	}
	return t.self.UnderlyingToLocalColumnPosition(pos)
}

func (t *Transform) RowIndexByPosition(rowPosition int) int {
	if rowPosition < 0 || rowPosition >= t.self.RowCount() {
		return -1
	}
	return t.underlying.RowIndexByPosition(t.self.LocalToUnderlyingRowPosition(rowPosition))
}

func (t *Transform) RowPositionByIndex(rowIndex int) int {
	pos := t.underlying.RowPositionByIndex(rowIndex)
	if pos < 0 {
		return -1
	}
	return t.self.UnderlyingToLocalRowPosition(pos)
}

// CellByPosition fetches the underlying cell and moves it into the local
// position space. Origins that are not visible locally collapse onto the
// requested position.
func (t *Transform) CellByPosition(columnPosition, rowPosition int) *Cell {
	if columnPosition < 0 || columnPosition >= t.self.ColumnCount() ||
		rowPosition < 0 || rowPosition >= t.self.RowCount() {
		return nil
	}
	under := t.underlying.CellByPosition(
		t.self.LocalToUnderlyingColumnPosition(columnPosition),
		t.self.LocalToUnderlyingRowPosition(rowPosition))
	if under == nil {
		return nil
	}
	cell := &Cell{
		Layer:                t.self,
		ColumnPosition:       columnPosition,
		RowPosition:          rowPosition,
		OriginColumnPosition: t.self.UnderlyingToLocalColumnPosition(under.OriginColumnPosition),
		OriginRowPosition:    t.self.UnderlyingToLocalRowPosition(under.OriginRowPosition),
		ColumnSpan:           under.ColumnSpan,
		RowSpan:              under.RowSpan,
	}
	if cell.OriginColumnPosition < 0 {
		cell.OriginColumnPosition = columnPosition
	}
	if cell.OriginRowPosition < 0 {
		cell.OriginRowPosition = rowPosition
	}
	return cell
}

func (t *Transform) DataValueByPosition(columnPosition, rowPosition int) any {
	return t.underlying.DataValueByPosition(
		t.self.LocalToUnderlyingColumnPosition(columnPosition),
		t.self.LocalToUnderlyingRowPosition(rowPosition))
}

func (t *Transform) ConfigLabelsByPosition(columnPosition, rowPosition int) *LabelStack {
	return t.underlying.ConfigLabelsByPosition(
		t.self.LocalToUnderlyingColumnPosition(columnPosition),
		t.self.LocalToUnderlyingRowPosition(rowPosition))
}

func (t *Transform) DisplayModeByPosition(columnPosition, rowPosition int) DisplayMode {
	return t.underlying.DisplayModeByPosition(
		t.self.LocalToUnderlyingColumnPosition(columnPosition),
		t.self.LocalToUnderlyingRowPosition(rowPosition))
}

func (t *Transform) ColumnWidthByPosition(columnPosition int) int {
	return t.underlying.ColumnWidthByPosition(t.self.LocalToUnderlyingColumnPosition(columnPosition))
}

// StartXOfColumnPosition sums the local widths left of the position.
func (t *Transform) StartXOfColumnPosition(columnPosition int) int {
	if columnPosition < 0 || columnPosition > t.self.ColumnCount() {
		return -1
	}
	x := 0
	for pos := 0; pos < columnPosition; pos++ {
		x += t.self.ColumnWidthByPosition(pos)
	}
	return x
}

func (t *Transform) Width() int {
	return t.self.StartXOfColumnPosition(t.self.ColumnCount())
}

func (t *Transform) PreferredWidth() int {
	return t.underlying.PreferredWidth()
}

// DoCommand converts translatable commands to underlying positions and
// passes everything else on unchanged.
func (t *Transform) DoCommand(cmd Command) bool {
	if tc, ok := cmd.(Translatable); ok {
		converted, ok := tc.ToUnderlying(t.self)
		if !ok {
			return false
		}
		cmd = converted
	}
	return t.underlying.DoCommand(cmd)
}

func (t *Transform) AddListener(l Listener) {
	t.listeners.Add(l)
}

// HandleEvent passes underlying events on to this layer's listeners.
func (t *Transform) HandleEvent(ev Event) {
	t.listeners.Fire(ev)
}

// FireEvent notifies this layer's listeners.
func (t *Transform) FireEvent(ev Event) {
	t.listeners.Fire(ev)
}

func (t *Transform) ProvidedLabels() []string {
	return t.underlying.ProvidedLabels()
}
