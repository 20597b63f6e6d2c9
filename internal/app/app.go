// Package app assembles the layer stack of a hierarchical grid and fans the
// events leaving it out to named hooks.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/artpar/hiergrid/internal/config"
	"github.com/artpar/hiergrid/internal/dataset"
	"github.com/artpar/hiergrid/internal/hierarchical"
	"github.com/artpar/hiergrid/internal/layer"
	"github.com/artpar/hiergrid/internal/painter"
)

// HookHandler is a function that handles a hook event.
type HookHandler func(ctx context.Context, data any) (any, error)

// Hook names. Handlers receive the layer event.
const (
	HookRowsHidden = "rows_hidden"
	HookRowsShown  = "rows_shown"
	HookStructural = "structural"
	HookSearch     = "search"
)

// Common errors.
var (
	ErrNotTreeCell = errors.New("position is not a tree node")
	ErrNotFound    = errors.New("no matching cell")
)

// Grid is a dataset shown through the layer stack
// data -> column reorder -> column hide -> row hide -> selection -> tree.
type Grid struct {
	config config.Config
	logger *slog.Logger
	hooks  map[string][]HookHandler

	model     *dataset.Model
	data      *layer.DataLayer
	reorder   *layer.ColumnReorderLayer
	colHide   *layer.ColumnHideShowLayer
	rowHide   *layer.RowHideShowLayer
	selection *layer.SelectionLayer
	tree      *hierarchical.TreeLayer
	painters  *painter.Registry
}

// Option is a function that configures the Grid.
type Option func(*Grid)

// WithConfig sets the configuration.
func WithConfig(cfg config.Config) Option {
	return func(g *Grid) {
		g.config = cfg
	}
}

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Grid) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithHook registers a hook handler.
func WithHook(hook string, handler HookHandler) Option {
	return func(g *Grid) {
		g.RegisterHook(hook, handler)
	}
}

// New builds the grid for ds.
func New(ds *dataset.Dataset, opts ...Option) (*Grid, error) {
	g := &Grid{
		config: config.Default(),
		logger: slog.New(slog.DiscardHandler),
		hooks:  make(map[string][]HookHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	model, err := dataset.NewModel(ds)
	if err != nil {
		return nil, fmt.Errorf("failed to build rows: %w", err)
	}
	g.model = model

	provider := hierarchical.NewDataProvider(model.Rows(), model.Columns())
	g.data = layer.NewDataLayer(provider, layer.WithDefaultColumnWidth(g.config.Render.ColumnWidth))
	g.reorder = layer.NewColumnReorderLayer(g.data)
	g.colHide = layer.NewColumnHideShowLayer(g.reorder)
	g.rowHide = layer.NewRowHideShowLayer(g.colHide)
	g.selection = layer.NewSelectionLayer(g.rowHide)

	tc := g.config.Tree
	g.tree = hierarchical.New(g.selection, model.Rows(), provider.Schema(),
		hierarchical.WithSelection(g.selection),
		hierarchical.WithLogger(g.logger),
		hierarchical.WithShowLevelHeader(tc.ShowLevelHeader),
		hierarchical.WithHandleCollapsedChildren(tc.HandleCollapsedChildren),
		hierarchical.WithRetainRemovedRowNodes(tc.RetainRemovedRowNodes),
		hierarchical.WithExpandOnSearch(tc.ExpandOnSearch),
		hierarchical.WithUseTreeColumnIndex(tc.UseTreeColumnIndex),
		hierarchical.WithLevelHeaderWidth(tc.LevelHeaderWidth),
	)
	if tc.DPIScale != 1 {
		scale := layer.ScaleDPI(tc.DPIScale)
		g.tree.DoCommand(layer.ConfigureScalingCommand{HorizontalDPIConverter: scale, VerticalDPIConverter: scale})
	}
	g.tree.AddListener(layer.ListenerFunc(g.dispatch))

	g.painters = painter.NewRegistry()
	hierarchical.ConfigurePainters(g.painters, g.config.Render.Color)
	return g, nil
}

// Config returns the configuration.
func (g *Grid) Config() config.Config {
	return g.config
}

// Logger returns the logger handed to every component.
func (g *Grid) Logger() *slog.Logger {
	return g.logger
}

// Tree returns the top layer.
func (g *Grid) Tree() *hierarchical.TreeLayer {
	return g.tree
}

// Selection returns the selection layer.
func (g *Grid) Selection() *layer.SelectionLayer {
	return g.selection
}

// Model returns the dataset model.
func (g *Grid) Model() *dataset.Model {
	return g.model
}

// Painters returns the painter registry.
func (g *Grid) Painters() *painter.Registry {
	return g.painters
}

// RegisterHook registers a hook handler for the given hook name.
func (g *Grid) RegisterHook(hook string, handler HookHandler) {
	g.hooks[hook] = append(g.hooks[hook], handler)
}

// GetHooks returns all handlers for the given hook.
func (g *Grid) GetHooks(hook string) []HookHandler {
	return g.hooks[hook]
}

// ExecuteHooks executes all handlers for the given hook in order. Each
// handler receives the result of the previous one.
func (g *Grid) ExecuteHooks(ctx context.Context, hook string, data any) (any, error) {
	result := data
	for _, handler := range g.hooks[hook] {
		var err error
		result, err = handler(ctx, result)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// dispatch maps the events leaving the tree layer to hooks.
func (g *Grid) dispatch(ev layer.Event) {
	var hook string
	switch ev.(type) {
	case layer.RowsHiddenEvent:
		hook = HookRowsHidden
	case layer.RowsShownEvent:
		hook = HookRowsShown
	case layer.SearchEvent:
		hook = HookSearch
	case layer.StructuralChange:
		hook = HookStructural
	default:
		return
	}
	if _, err := g.ExecuteHooks(context.Background(), hook, ev); err != nil {
		g.logger.Warn("hook failed", "hook", hook, "error", err)
	}
}

// Toggle expands or collapses the node at a position of the tree layer.
func (g *Grid) Toggle(columnPosition, rowPosition int) error {
	if !g.tree.ToggleAt(columnPosition, rowPosition) {
		return fmt.Errorf("%w: column %d row %d", ErrNotTreeCell, columnPosition, rowPosition)
	}
	return nil
}

// CollapseAll collapses every node.
func (g *Grid) CollapseAll() {
	g.tree.DoCommand(hierarchical.TreeCollapseAllCommand{})
}

// ExpandAll expands every node.
func (g *Grid) ExpandAll() {
	g.tree.DoCommand(hierarchical.TreeExpandAllCommand{})
}

// ExpandToLevel expands every node up to level.
func (g *Grid) ExpandToLevel(level int) {
	g.tree.DoCommand(hierarchical.TreeExpandToLevelCommand{Level: level})
}

// HideColumns hides data columns by index.
func (g *Grid) HideColumns(indexes ...int) {
	g.colHide.HideColumnIndexes(indexes...)
}

// Search selects the next cell whose text contains query, ignoring case.
// Hidden results are made visible by the tree layer.
func (g *Grid) Search(query string) (*layer.PositionCoordinate, error) {
	q := strings.ToLower(query)
	cmd := &layer.SearchCommand{Match: func(v any) bool {
		return v != nil && strings.Contains(strings.ToLower(painter.FormatValue(v)), q)
	}}
	g.tree.DoCommand(cmd)
	if cmd.Result == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, query)
	}
	return cmd.Result, nil
}

// Reload merges ds into the shown dataset and lets the layers reconcile.
func (g *Grid) Reload(ds *dataset.Dataset) error {
	if err := g.model.Reload(ds); err != nil {
		return fmt.Errorf("failed to reload dataset: %w", err)
	}
	g.data.RefreshRows()
	g.logger.Info("dataset reloaded", "rows", g.model.Rows().Len(), "collapsed", len(g.tree.CollapsedNodes()))
	return nil
}

// Render writes the visible grid as text.
func (g *Grid) Render(w io.Writer) error {
	opts := painter.RenderOptions{
		PixelsPerChar: g.config.Render.PixelsPerChar,
		Separator:     g.config.Render.Separator,
	}
	if g.config.Render.Header {
		opts.Header = g.columnTitle
	}
	return painter.Render(w, g.tree, g.painters, opts)
}

func (g *Grid) columnTitle(columnPosition int) string {
	if g.tree.IsLevelHeaderColumn(columnPosition) {
		return ""
	}
	idx := g.tree.ColumnIndexByPosition(columnPosition)
	columns := g.model.Columns()
	if idx < 0 || idx >= len(columns) {
		return ""
	}
	name := columns[idx].Name
	if i := strings.LastIndex(name, hierarchical.PathSeparator); i >= 0 {
		name = name[i+1:]
	}
	return name
}
