// Package hierarchical shows a de-normalised object tree as a grid with
// collapsible levels and synthetic level header columns.
package hierarchical

import (
	"fmt"
	"log/slog"

	"github.com/artpar/hiergrid/internal/layer"
)

// DefaultLevelHeaderWidth is the unscaled width of a level header column.
const DefaultLevelHeaderWidth = 20

// Selection is the part of a selection layer the tree needs to highlight
// level headers.
type Selection interface {
	layer.Layer
	IsRowPositionSelected(rowPosition int) bool
	IsCellPositionSelected(columnPosition, rowPosition int) bool
}

// TreeLayer shows a de-normalised hierarchical row list as a tree. Every
// level gets a synthetic level header column in front of its node column,
// and the child rows of collapsed nodes are hidden.
type TreeLayer struct {
	layer.Transform

	rows      RowList
	schema    *LevelSchema
	selection Selection
	logger    *slog.Logger

	headerPositions []int
	collapsed       *CollapsedNodeRegistry
	hidden          *HiddenRowSet
	visible         *layer.RowVisibility

	levelHeaderWidth int
	dpi              layer.DPIConverter

	showLevelHeader         bool
	handleCollapsedChildren bool
	retainRemovedRowNodes   bool
	expandOnSearch          bool
	useTreeColumnIndex      bool
}

// Option configures a TreeLayer.
type Option func(*TreeLayer)

// WithSelection sets the selection layer used to highlight level headers.
func WithSelection(s Selection) Option {
	return func(t *TreeLayer) {
		t.selection = s
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *TreeLayer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithShowLevelHeader toggles the level header columns.
func WithShowLevelHeader(show bool) Option {
	return func(t *TreeLayer) {
		t.showLevelHeader = show
	}
}

// WithHandleCollapsedChildren toggles the COLLAPSED_CHILD labelling.
func WithHandleCollapsedChildren(handle bool) Option {
	return func(t *TreeLayer) {
		t.handleCollapsedChildren = handle
	}
}

// WithRetainRemovedRowNodes keeps collapsed nodes whose row was removed.
func WithRetainRemovedRowNodes(retain bool) Option {
	return func(t *TreeLayer) {
		t.retainRemovedRowNodes = retain
	}
}

// WithExpandOnSearch expands the ancestors of hidden search results.
func WithExpandOnSearch(expand bool) Option {
	return func(t *TreeLayer) {
		t.expandOnSearch = expand
	}
}

// WithUseTreeColumnIndex identifies tree columns by index instead of
// underlying position.
func WithUseTreeColumnIndex(use bool) Option {
	return func(t *TreeLayer) {
		t.useTreeColumnIndex = use
	}
}

// WithLevelHeaderWidth sets the unscaled level header width.
func WithLevelHeaderWidth(width int) Option {
	return func(t *TreeLayer) {
		t.levelHeaderWidth = width
	}
}

// New creates a tree layer over underlying. rows is the list the underlying
// data layer reads from and schema describes its columns.
func New(underlying layer.Layer, rows RowList, schema *LevelSchema, opts ...Option) *TreeLayer {
	t := &TreeLayer{
		rows:                    rows,
		schema:                  schema,
		logger:                  slog.New(slog.DiscardHandler),
		collapsed:               NewCollapsedNodeRegistry(),
		hidden:                  NewHiddenRowSet(),
		levelHeaderWidth:        DefaultLevelHeaderWidth,
		showLevelHeader:         true,
		handleCollapsedChildren: true,
		retainRemovedRowNodes:   true,
		expandOnSearch:          true,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.visible = layer.NewRowVisibility(underlying, t.hidden.Contains)
	t.Init(t, underlying)
	t.calculateHeaderPositions()
	return t
}

// Schema returns the level schema.
func (t *TreeLayer) Schema() *LevelSchema {
	return t.schema
}

// Rows returns the row list.
func (t *TreeLayer) Rows() RowList {
	return t.rows
}

// ShowLevelHeader reports whether level header columns are shown.
func (t *TreeLayer) ShowLevelHeader() bool {
	return t.showLevelHeader
}

// SetShowLevelHeader shows or hides the level header columns.
func (t *TreeLayer) SetShowLevelHeader(show bool) {
	t.showLevelHeader = show
	t.calculateHeaderPositions()
	t.FireEvent(layer.StructuralRefreshEvent{Layer: t})
}

// HandleCollapsedChildren reports whether cells below a collapsed ancestor
// level get the COLLAPSED_CHILD label.
func (t *TreeLayer) HandleCollapsedChildren() bool {
	return t.handleCollapsedChildren
}

// SetHandleCollapsedChildren toggles the COLLAPSED_CHILD labelling.
func (t *TreeLayer) SetHandleCollapsedChildren(handle bool) {
	t.handleCollapsedChildren = handle
}

// RetainRemovedRowNodes reports whether nodes of removed rows are kept.
func (t *TreeLayer) RetainRemovedRowNodes() bool {
	return t.retainRemovedRowNodes
}

// SetRetainRemovedRowNodes toggles keeping nodes of removed rows. Nodes that
// are already retained stay until CleanupRetainedCollapsedNodes is called.
func (t *TreeLayer) SetRetainRemovedRowNodes(retain bool) {
	t.retainRemovedRowNodes = retain
}

// ExpandOnSearch reports whether search results expand their ancestors.
func (t *TreeLayer) ExpandOnSearch() bool {
	return t.expandOnSearch
}

// SetExpandOnSearch toggles expanding ancestors of search results.
func (t *TreeLayer) SetExpandOnSearch(expand bool) {
	t.expandOnSearch = expand
}

// UseTreeColumnIndex reports whether tree columns are identified by index.
func (t *TreeLayer) UseTreeColumnIndex() bool {
	return t.useTreeColumnIndex
}

// SetUseTreeColumnIndex switches tree column detection between index and
// underlying position.
func (t *TreeLayer) SetUseTreeColumnIndex(use bool) {
	t.useTreeColumnIndex = use
}

// LevelHeaderWidth returns the unscaled level header width.
func (t *TreeLayer) LevelHeaderWidth() int {
	return t.levelHeaderWidth
}

// SetLevelHeaderWidth sets the unscaled level header width.
func (t *TreeLayer) SetLevelHeaderWidth(width int) {
	t.levelHeaderWidth = width
}

func (t *TreeLayer) scaledLevelHeaderWidth() int {
	if t.dpi != nil {
		return t.dpi.ConvertPixelToDPI(t.levelHeaderWidth)
	}
	return t.levelHeaderWidth
}

func (t *TreeLayer) calculateHeaderPositions() {
	if !t.showLevelHeader {
		t.headerPositions = nil
		return
	}
	u := t.Underlying()
	t.headerPositions = t.schema.HeaderPositions(func(columnIndex int) bool {
		return u.ColumnPositionByIndex(columnIndex) < 0
	})
}

// LevelHeaderPositions returns the local positions of the level headers.
func (t *TreeLayer) LevelHeaderPositions() []int {
	return append([]int(nil), t.headerPositions...)
}

// IsLevelHeaderColumn reports whether a position is a level header column.
func (t *TreeLayer) IsLevelHeaderColumn(columnPosition int) bool {
	return t.headerSlot(columnPosition) >= 0
}

// headerSlot returns the level of the header at a position or -1.
func (t *TreeLayer) headerSlot(columnPosition int) int {
	for i, pos := range t.headerPositions {
		if pos == columnPosition {
			return i
		}
	}
	return -1
}

// LevelByColumnIndex returns the level of a column index or -1.
func (t *TreeLayer) LevelByColumnIndex(columnIndex int) int {
	return t.schema.LevelOf(columnIndex)
}

// ColumnIndexesForLevel returns the column indexes of a level.
func (t *TreeLayer) ColumnIndexesForLevel(level int) []int {
	return t.schema.ColumnsOfLevel(level)
}

// Columns

func (t *TreeLayer) ColumnCount() int {
	return t.Underlying().ColumnCount() + len(t.headerPositions)
}

// ColumnIndexByPosition returns level*AdditionalPositionModifier for the
// header of a level (1-based) and the underlying index otherwise.
func (t *TreeLayer) ColumnIndexByPosition(columnPosition int) int {
	if columnPosition < 0 || columnPosition >= t.ColumnCount() {
		return -1
	}
	if slot := t.headerSlot(columnPosition); slot >= 0 {
		return (slot + 1) * layer.AdditionalPositionModifier
	}
	return t.Transform.ColumnIndexByPosition(columnPosition)
}

// ColumnPositionByIndex resolves header sentinels back to header positions.
// A sentinel without a header is a programming error and panics.
func (t *TreeLayer) ColumnPositionByIndex(columnIndex int) int {
	if columnIndex < 0 && columnIndex%layer.AdditionalPositionModifier == 0 {
		slot := columnIndex/layer.AdditionalPositionModifier - 1
		if slot >= len(t.headerPositions) {
			panic(fmt.Sprintf("hierarchical: no level header for column index %d", columnIndex))
		}
		return t.headerPositions[slot]
	}
	pos := t.Underlying().ColumnPositionByIndex(columnIndex)
	if pos < 0 {
		return -1
	}
	for _, h := range t.headerPositions {
		if pos >= h {
			pos++
		} else {
			break
		}
	}
	return pos
}

// LocalToUnderlyingColumnPosition drops the headers at or before the
// position. A header maps to the data column right of it.
func (t *TreeLayer) LocalToUnderlyingColumnPosition(localColumnPosition int) int {
	i := 0
	for ; i < len(t.headerPositions); i++ {
		if localColumnPosition < t.headerPositions[i] {
			break
		}
	}
	return localColumnPosition - i
}

func (t *TreeLayer) UnderlyingToLocalColumnPosition(underlyingColumnPosition int) int {
	idx := t.Underlying().ColumnIndexByPosition(underlyingColumnPosition)
	if idx < 0 {
		return -1
	}
	return t.ColumnPositionByIndex(idx)
}

// Rows

func (t *TreeLayer) RowCount() int {
	return t.visible.Count()
}

func (t *TreeLayer) LocalToUnderlyingRowPosition(localRowPosition int) int {
	return t.visible.LocalToUnderlying(localRowPosition)
}

func (t *TreeLayer) UnderlyingToLocalRowPosition(underlyingRowPosition int) int {
	return t.visible.UnderlyingToLocal(underlyingRowPosition)
}

// IsRowIndexHidden reports whether a row index is hidden by a collapsed node
// or by a layer beneath.
func (t *TreeLayer) IsRowIndexHidden(rowIndex int) bool {
	return t.hidden.Contains(rowIndex) || t.Underlying().RowPositionByIndex(rowIndex) < 0
}

// HiddenRowIndexes returns the row indexes hidden by collapsed nodes.
func (t *TreeLayer) HiddenRowIndexes() []int {
	return t.hidden.Indexes()
}

// Width

// ColumnWidthByPosition returns the scaled header width for headers.
func (t *TreeLayer) ColumnWidthByPosition(columnPosition int) int {
	if t.IsLevelHeaderColumn(columnPosition) {
		return t.scaledLevelHeaderWidth()
	}
	return t.Transform.ColumnWidthByPosition(columnPosition)
}

func (t *TreeLayer) StartXOfColumnPosition(columnPosition int) int {
	if t.IsLevelHeaderColumn(columnPosition) {
		return t.StartXOfColumnPosition(columnPosition+1) - t.scaledLevelHeaderWidth()
	}
	start := t.Underlying().StartXOfColumnPosition(t.LocalToUnderlyingColumnPosition(columnPosition))
	for _, pos := range t.headerPositions {
		if columnPosition >= pos {
			start += t.scaledLevelHeaderWidth()
		} else {
			break
		}
	}
	return start
}

func (t *TreeLayer) Width() int {
	return t.Underlying().Width() + len(t.headerPositions)*t.scaledLevelHeaderWidth()
}

func (t *TreeLayer) PreferredWidth() int {
	return t.Underlying().PreferredWidth() + len(t.headerPositions)*t.scaledLevelHeaderWidth()
}

// ColumnPositionByX returns the column at an x coordinate or -1.
func (t *TreeLayer) ColumnPositionByX(x int) int {
	return layer.ColumnPositionByX(t, x)
}

// IsValidTargetColumnPosition reports whether the column at from may be
// moved to to. Level headers cannot move and data columns cannot leave
// their level.
func (t *TreeLayer) IsValidTargetColumnPosition(from, to int) bool {
	fromIndex := t.ColumnIndexByPosition(from)
	toIndex := t.ColumnIndexByPosition(to)
	if fromIndex < 0 {
		return false
	}
	if toIndex < 0 && from < to {
		toIndex = t.ColumnIndexByPosition(to - 1)
	} else if toIndex < 0 && from > to {
		return false
	}

	fromLevel := t.LevelByColumnIndex(fromIndex)
	toLevel := t.LevelByColumnIndex(toIndex)
	if fromLevel == toLevel {
		return true
	}
	if t.showLevelHeader {
		return false
	}
	// without headers the column left of the target marks the level border
	return fromLevel == t.LevelByColumnIndex(toIndex-1)
}
