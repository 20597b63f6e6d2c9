package layer

// Event is anything a layer fires to its listeners.
type Event interface{}

// StructuralChange is implemented by events that change the row or column
// structure of a layer. Listeners must drop caches derived from positions or
// indexes when they receive one.
type StructuralChange interface {
	Event
	VerticalStructureChanged() bool
	HorizontalStructureChanged() bool
}

// RowsHiddenEvent reports row indexes that became hidden.
type RowsHiddenEvent struct {
	Layer      Layer
	RowIndexes []int
}

func (RowsHiddenEvent) VerticalStructureChanged() bool   { return true }
func (RowsHiddenEvent) HorizontalStructureChanged() bool { return false }

// RowsShownEvent reports row indexes that became visible.
type RowsShownEvent struct {
	Layer      Layer
	RowIndexes []int
}

func (RowsShownEvent) VerticalStructureChanged() bool   { return true }
func (RowsShownEvent) HorizontalStructureChanged() bool { return false }

// ColumnsHiddenEvent reports column indexes that became hidden.
type ColumnsHiddenEvent struct {
	Layer         Layer
	ColumnIndexes []int
}

func (ColumnsHiddenEvent) VerticalStructureChanged() bool   { return false }
func (ColumnsHiddenEvent) HorizontalStructureChanged() bool { return true }

// ColumnsShownEvent reports column indexes that became visible.
type ColumnsShownEvent struct {
	Layer         Layer
	ColumnIndexes []int
}

func (ColumnsShownEvent) VerticalStructureChanged() bool   { return false }
func (ColumnsShownEvent) HorizontalStructureChanged() bool { return true }

// ColumnReorderEvent reports that columns were moved.
type ColumnReorderEvent struct {
	Layer               Layer
	FromColumnPositions []int
	ToColumnPosition    int
}

func (ColumnReorderEvent) VerticalStructureChanged() bool   { return false }
func (ColumnReorderEvent) HorizontalStructureChanged() bool { return true }

// RowStructuralRefreshEvent reports that rows were inserted, removed or
// reordered in the underlying data.
type RowStructuralRefreshEvent struct {
	Layer Layer
}

func (RowStructuralRefreshEvent) VerticalStructureChanged() bool   { return true }
func (RowStructuralRefreshEvent) HorizontalStructureChanged() bool { return false }

// StructuralRefreshEvent reports that rows and columns may have changed.
type StructuralRefreshEvent struct {
	Layer Layer
}

func (StructuralRefreshEvent) VerticalStructureChanged() bool   { return true }
func (StructuralRefreshEvent) HorizontalStructureChanged() bool { return true }

// SearchEvent reports the cell found by a search. The coordinate is expressed
// in the positions of the layer that performed the search.
type SearchEvent struct {
	Coordinate *PositionCoordinate
}

// CellSelectionEvent reports a selection change.
type CellSelectionEvent struct {
	Layer          Layer
	ColumnPosition int
	RowPosition    int
}
