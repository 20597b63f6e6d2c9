package hierarchical

// DataProvider reads cell values from a row list through a column binding
// and lets the cells of non-leaf levels span the rows that share their level
// object.
type DataProvider struct {
	rows    RowList
	columns []Column
	schema  *LevelSchema
	// column index -> level, for columns of collapsible levels
	spanning map[int]int
}

// NewDataProvider creates a provider for rows and columns.
func NewDataProvider(rows RowList, columns []Column) *DataProvider {
	p := &DataProvider{
		rows:     rows,
		columns:  columns,
		schema:   SchemaFromColumns(columns),
		spanning: make(map[int]int),
	}
	for level := 0; level < p.schema.Levels()-1; level++ {
		for _, col := range p.schema.ColumnsOfLevel(level) {
			p.spanning[col] = level
		}
	}
	return p
}

// Schema returns the level schema derived from the columns.
func (p *DataProvider) Schema() *LevelSchema {
	return p.schema
}

// Columns returns the column binding.
func (p *DataProvider) Columns() []Column {
	return p.columns
}

func (p *DataProvider) ColumnCount() int {
	return len(p.columns)
}

func (p *DataProvider) RowCount() int {
	return p.rows.Len()
}

// DataValue returns the value of a cell or nil.
func (p *DataProvider) DataValue(columnIndex, rowIndex int) any {
	row := p.rows.At(rowIndex)
	if row == nil || columnIndex < 0 || columnIndex >= len(p.columns) || p.columns[columnIndex].Value == nil {
		return nil
	}
	return p.columns[columnIndex].Value(row)
}

// CellSpan returns the run of rows sharing the level object of a spanning
// column. Other columns do not span.
func (p *DataProvider) CellSpan(columnIndex, rowIndex int) (originColumn, originRow, columnSpan, rowSpan int) {
	level, ok := p.spanning[columnIndex]
	row := p.rows.At(rowIndex)
	if !ok || row == nil || row.Object(level) == nil {
		return columnIndex, rowIndex, 1, 1
	}
	obj := row.Object(level)
	top := rowIndex
	for top > 0 && p.rows.At(top-1).Object(level) == obj {
		top--
	}
	bottom := rowIndex
	for bottom+1 < p.rows.Len() && p.rows.At(bottom+1).Object(level) == obj {
		bottom++
	}
	return columnIndex, top, 1, bottom - top + 1
}
