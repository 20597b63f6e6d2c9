package layer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridProvider serves "c<col>r<row>" for every cell.
type gridProvider struct {
	cols, rows int
}

func (p *gridProvider) ColumnCount() int { return p.cols }
func (p *gridProvider) RowCount() int    { return p.rows }
func (p *gridProvider) DataValue(col, row int) any {
	return fmt.Sprintf("c%dr%d", col, row)
}

// eventRecorder collects every event it receives.
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) HandleEvent(ev Event) {
	r.events = append(r.events, ev)
}

func newGrid(t *testing.T, cols, rows int) *DataLayer {
	t.Helper()
	return NewDataLayer(&gridProvider{cols: cols, rows: rows})
}

func TestDataLayer(t *testing.T) {
	t.Run("positions equal indexes", func(t *testing.T) {
		d := newGrid(t, 3, 4)

		assert.Equal(t, 3, d.ColumnCount())
		assert.Equal(t, 4, d.RowCount())
		assert.Equal(t, 2, d.ColumnIndexByPosition(2))
		assert.Equal(t, -1, d.ColumnIndexByPosition(3))
		assert.Equal(t, -1, d.RowPositionByIndex(-1))
		assert.Equal(t, "c1r2", d.DataValueByPosition(1, 2))
		assert.Nil(t, d.DataValueByPosition(5, 0))
	})

	t.Run("widths and start x", func(t *testing.T) {
		d := NewDataLayer(&gridProvider{cols: 3, rows: 1}, WithColumnWidth(1, 50))

		assert.Equal(t, 100, d.ColumnWidthByPosition(0))
		assert.Equal(t, 50, d.ColumnWidthByPosition(1))
		assert.Equal(t, 150, d.StartXOfColumnPosition(2))
		assert.Equal(t, 250, d.Width())
		assert.Equal(t, 1, ColumnPositionByX(d, 120))
		assert.Equal(t, -1, ColumnPositionByX(d, 250))
	})

	t.Run("percentage sizing uses calc area", func(t *testing.T) {
		d := NewDataLayer(&gridProvider{cols: 2, rows: 1}, WithPercentageSizing(true))
		cmd := NewClientAreaResizeCommand(Rectangle{Width: 300})
		cmd.CalcArea.Width = 200

		assert.True(t, d.DoCommand(cmd))
		assert.Equal(t, 100, d.ColumnWidthByPosition(0))
		assert.Equal(t, 200, d.Width())
		assert.Equal(t, 200, d.PreferredWidth())
	})

	t.Run("scaling", func(t *testing.T) {
		d := newGrid(t, 1, 1)
		d.DoCommand(ConfigureScalingCommand{HorizontalDPIConverter: ScaleDPI(1.5)})

		assert.Equal(t, 150, d.ColumnWidthByPosition(0))
	})

	t.Run("label accumulator", func(t *testing.T) {
		d := NewDataLayer(&gridProvider{cols: 2, rows: 1}, WithLabelAccumulator(func(labels *LabelStack, col, row int) {
			labels.Add(fmt.Sprintf("COLUMN_%d", col))
		}))

		assert.Equal(t, []string{"COLUMN_1"}, d.ConfigLabelsByPosition(1, 0).Labels())
	})
}

func TestLabelStack(t *testing.T) {
	s := NewLabelStack("A", "B", "A")
	assert.Equal(t, []string{"A", "B"}, s.Labels())

	s.AddOnTop("B")
	assert.Equal(t, []string{"B", "A"}, s.Labels())

	s.AddOnTop("C")
	assert.True(t, s.Has("C"))
	assert.True(t, s.Remove("A"))
	assert.False(t, s.Remove("A"))
	assert.Equal(t, []string{"C", "B"}, s.Labels())
	assert.Equal(t, 2, s.Len())
}

func TestColumnHideShowLayer(t *testing.T) {
	d := newGrid(t, 4, 2)
	l := NewColumnHideShowLayer(d)
	rec := &eventRecorder{}
	l.AddListener(rec)

	l.HideColumnIndexes(1, 2)

	assert.Equal(t, 2, l.ColumnCount())
	assert.Equal(t, 3, l.ColumnIndexByPosition(1))
	assert.Equal(t, -1, l.ColumnPositionByIndex(2))
	assert.Equal(t, 1, l.ColumnPositionByIndex(3))
	assert.Equal(t, "c3r1", l.DataValueByPosition(1, 1))
	require.Len(t, rec.events, 1)
	assert.Equal(t, ColumnsHiddenEvent{Layer: l, ColumnIndexes: []int{1, 2}}, rec.events[0])

	t.Run("hide command uses local positions", func(t *testing.T) {
		assert.True(t, l.DoCommand(HideColumnsCommand{ColumnPositions: []int{0}}))
		assert.Equal(t, []int{0, 1, 2}, l.HiddenColumnIndexes())
	})

	t.Run("show all", func(t *testing.T) {
		assert.True(t, l.DoCommand(ShowAllColumnsCommand{}))
		assert.Equal(t, 4, l.ColumnCount())
		ev, ok := rec.events[len(rec.events)-1].(ColumnsShownEvent)
		require.True(t, ok)
		assert.Equal(t, []int{0, 1, 2}, ev.ColumnIndexes)
	})
}

func TestRowHideShowLayer(t *testing.T) {
	d := newGrid(t, 1, 5)
	l := NewRowHideShowLayer(d)

	l.HideRowIndexes(1, 3)

	assert.Equal(t, 3, l.RowCount())
	assert.Equal(t, []int{0, 2, 4}, []int{l.RowIndexByPosition(0), l.RowIndexByPosition(1), l.RowIndexByPosition(2)})
	assert.Equal(t, -1, l.RowPositionByIndex(3))
	assert.Equal(t, 2, l.RowPositionByIndex(4))
	assert.True(t, l.IsRowIndexHidden(1))

	t.Run("hide command converted from layer above", func(t *testing.T) {
		top := NewSelectionLayer(l)
		assert.True(t, top.DoCommand(HideRowsCommand{RowPositions: []int{0}}))
		assert.Equal(t, []int{0, 1, 3}, l.HiddenRowIndexes())
	})

	t.Run("structural refresh rebuilds cache", func(t *testing.T) {
		p := d.Provider().(*gridProvider)
		p.rows = 7
		d.RefreshRows()
		assert.Equal(t, 4, l.RowCount())
	})
}

func TestColumnReorderLayer(t *testing.T) {
	tests := []struct {
		name     string
		from     []int
		to       int
		expected []int
	}{
		{"move right", []int{0}, 2, []int{1, 0, 2, 3}},
		{"move left", []int{3}, 1, []int{0, 3, 1, 2}},
		{"append", []int{0}, 4, []int{1, 2, 3, 0}},
		{"multi keeps order", []int{2, 0}, 4, []int{1, 3, 0, 2}},
		{"noop onto itself", []int{1}, 1, []int{0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewColumnReorderLayer(newGrid(t, 4, 1))

			assert.True(t, l.ReorderColumns(tt.from, tt.to))
			assert.Equal(t, tt.expected, l.ColumnOrder())
			for pos, idx := range tt.expected {
				assert.Equal(t, idx, l.ColumnIndexByPosition(pos))
				assert.Equal(t, pos, l.ColumnPositionByIndex(idx))
			}
		})
	}

	t.Run("invalid target", func(t *testing.T) {
		l := NewColumnReorderLayer(newGrid(t, 2, 1))
		assert.False(t, l.ReorderColumn(0, 3))
		assert.False(t, l.ReorderColumn(-1, 1))
	})

	t.Run("command translated through hidden columns", func(t *testing.T) {
		l := NewColumnReorderLayer(newGrid(t, 4, 1))
		hide := NewColumnHideShowLayer(l)
		hide.HideColumnIndexes(1)

		// local 0 -> index 0, target local 2 -> index 3
		assert.True(t, hide.DoCommand(ColumnReorderCommand{FromColumnPosition: 0, ToColumnPosition: 2}))
		assert.Equal(t, []int{1, 2, 0, 3}, l.ColumnOrder())
	})

	t.Run("command append through hidden columns", func(t *testing.T) {
		l := NewColumnReorderLayer(newGrid(t, 3, 1))
		hide := NewColumnHideShowLayer(l)
		hide.HideColumnIndexes(1)

		assert.True(t, hide.DoCommand(ColumnReorderCommand{FromColumnPosition: 0, ToColumnPosition: 2}))
		assert.Equal(t, []int{1, 2, 0}, l.ColumnOrder())
	})
}

func TestSelectionLayer(t *testing.T) {
	newSelection := func(t *testing.T) (*SelectionLayer, *eventRecorder) {
		t.Helper()
		l := NewSelectionLayer(newGrid(t, 3, 3))
		rec := &eventRecorder{}
		l.AddListener(rec)
		return l, rec
	}

	t.Run("select cell replaces selection", func(t *testing.T) {
		l, rec := newSelection(t)
		l.SelectCell(0, 0, false, false)
		l.SelectCell(1, 1, false, false)

		assert.Equal(t, []CellKey{{1, 1}}, l.SelectedCells())
		assert.Equal(t, DisplaySelect, l.DisplayModeByPosition(1, 1))
		assert.Equal(t, DisplayNormal, l.DisplayModeByPosition(0, 0))
		assert.Len(t, rec.events, 2)
	})

	t.Run("control toggles", func(t *testing.T) {
		l, _ := newSelection(t)
		l.SelectCell(0, 0, false, false)
		l.SelectCell(2, 2, false, true)
		l.SelectCell(0, 0, false, true)

		assert.Equal(t, []CellKey{{2, 2}}, l.SelectedCells())
	})

	t.Run("shift extends from anchor", func(t *testing.T) {
		l, _ := newSelection(t)
		l.SelectCell(0, 0, false, false)
		l.SelectCell(1, 1, true, false)

		assert.Equal(t, []CellKey{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, l.SelectedCells())
		assert.True(t, l.IsRowPositionSelected(1))
		assert.False(t, l.IsRowPositionSelected(2))
	})

	t.Run("region command", func(t *testing.T) {
		l, _ := newSelection(t)
		assert.True(t, l.DoCommand(SelectRegionCommand{ColumnPosition: 1, RowPosition: 1, Width: 2, Height: 1}))

		assert.Equal(t, []CellKey{{1, 1}, {2, 1}}, l.SelectedCells())
	})

	t.Run("clear", func(t *testing.T) {
		l, _ := newSelection(t)
		l.SelectCell(0, 0, false, false)
		assert.True(t, l.DoCommand(ClearAllSelectionsCommand{}))
		assert.Empty(t, l.SelectedCells())
	})

	t.Run("search fires event and continues after anchor", func(t *testing.T) {
		l, rec := newSelection(t)
		match := func(v any) bool {
			s, _ := v.(string)
			return s == "c1r1" || s == "c2r2"
		}

		first := l.Search(match)
		require.NotNil(t, first)
		assert.Equal(t, 1, first.ColumnPosition)
		assert.Equal(t, 1, first.RowPosition)
		assert.Contains(t, rec.events, SearchEvent{Coordinate: first})

		cmd := &SearchCommand{Match: match}
		assert.True(t, l.DoCommand(cmd))
		require.NotNil(t, cmd.Result)
		assert.Equal(t, 2, cmd.Result.RowPosition)
	})

	t.Run("search without match", func(t *testing.T) {
		l, _ := newSelection(t)
		assert.Nil(t, l.Search(func(any) bool { return false }))
	})
}

func TestTransformPassThrough(t *testing.T) {
	d := newGrid(t, 2, 2)
	rows := NewRowHideShowLayer(d)
	sel := NewSelectionLayer(rows)
	rec := &eventRecorder{}
	sel.AddListener(rec)

	rows.HideRowIndexes(0)

	assert.Equal(t, 1, sel.RowCount())
	assert.Equal(t, 1, sel.RowIndexByPosition(0))
	assert.Equal(t, "c0r1", sel.DataValueByPosition(0, 0))
	require.Len(t, rec.events, 1)
	assert.IsType(t, RowsHiddenEvent{}, rec.events[0])

	cell := sel.CellByPosition(1, 0)
	require.NotNil(t, cell)
	assert.Equal(t, Layer(sel), cell.Layer)
	assert.True(t, cell.IsOrigin())
	assert.Nil(t, sel.CellByPosition(0, 1))

	assert.Equal(t, 0, ConvertRowPosition(rows, 0, sel))
	assert.Equal(t, -1, ConvertRowPosition(d, 0, sel))
}

func TestSelectRegionTranslation(t *testing.T) {
	d := newGrid(t, 4, 4)
	hide := NewColumnHideShowLayer(d)
	hide.HideColumnIndexes(0)

	converted, ok := SelectRegionCommand{ColumnPosition: 0, RowPosition: 1, Width: 2, Height: 2}.ToUnderlying(hide)
	require.True(t, ok)
	assert.Equal(t, SelectRegionCommand{ColumnPosition: 1, RowPosition: 1, Width: 2, Height: 2}, converted)

	_, ok = SelectRegionCommand{ColumnPosition: 0, RowPosition: 0, Width: 0, Height: 1}.ToUnderlying(hide)
	assert.False(t, ok)
}
