package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artpar/hiergrid/internal/app"
	"github.com/artpar/hiergrid/internal/dataset"
	"github.com/artpar/hiergrid/internal/layer"
)

// RenderOptions holds options shared by the render and watch commands.
type RenderOptions struct {
	Config        string
	LogLevel      string
	CollapseAll   bool
	ExpandLevel   int
	Toggles       []string
	Search        string
	NoLevelHeader bool
	HideColumns   []int
	Trace         bool
	Dir           string
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a dataset as a tree grid",
		Long: `Render a YAML or JSON dataset as a tree grid.

Tree operations are applied in this order: --hide-column, --collapse-all,
--expand-level, --toggle, --search.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}

	addRenderFlags(cmd, opts)
	cmd.Flags().StringVarP(&opts.Dir, "dir", "d", "", "Dataset directory; FILE names a dataset in it")
	return cmd
}

func addRenderFlags(cmd *cobra.Command, opts *RenderOptions) {
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.CollapseAll, "collapse-all", false, "Collapse every node")
	cmd.Flags().IntVar(&opts.ExpandLevel, "expand-level", -1, "Expand every node up to this level")
	cmd.Flags().StringArrayVarP(&opts.Toggles, "toggle", "t", nil, "Toggle the node at a position (format: column,row)")
	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "Select and reveal the first cell containing this text")
	cmd.Flags().BoolVar(&opts.NoLevelHeader, "no-level-header", false, "Hide the level header columns")
	cmd.Flags().IntSliceVar(&opts.HideColumns, "hide-column", nil, "Hide a data column by index")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "Print tree events to stderr")
}

func runRender(cmd *cobra.Command, file string, opts *RenderOptions) error {
	ds, err := loadDataset(cmd.Context(), file, opts.Dir)
	if err != nil {
		return err
	}
	grid, err := newGrid(cmd, ds, opts)
	if err != nil {
		return err
	}
	if err := applyOperations(grid, opts); err != nil {
		return err
	}
	return grid.Render(cmd.OutOrStdout())
}

func loadDataset(ctx context.Context, file, dir string) (*dataset.Dataset, error) {
	if dir == "" {
		return dataset.Load(file)
	}
	store, err := dataset.NewStore(dir)
	if err != nil {
		return nil, err
	}
	return store.Get(ctx, file)
}

// newGrid builds the grid for ds from the command's flags.
func newGrid(cmd *cobra.Command, ds *dataset.Dataset, opts *RenderOptions) (*app.Grid, error) {
	cfg, err := loadConfig(opts.Config, opts.LogLevel)
	if err != nil {
		return nil, err
	}
	if opts.NoLevelHeader {
		cfg.Tree.ShowLevelHeader = false
	}

	gridOpts := []app.Option{
		app.WithConfig(cfg),
		app.WithLogger(newLogger(cmd.ErrOrStderr(), cfg.Log)),
	}
	if opts.Trace {
		for _, hook := range []string{app.HookRowsHidden, app.HookRowsShown, app.HookStructural, app.HookSearch} {
			gridOpts = append(gridOpts, app.WithHook(hook, traceHook(cmd.ErrOrStderr(), hook)))
		}
	}
	return app.New(ds, gridOpts...)
}

func traceHook(w io.Writer, hook string) app.HookHandler {
	return func(ctx context.Context, data any) (any, error) {
		switch ev := data.(type) {
		case layer.RowsHiddenEvent:
			fmt.Fprintf(w, "%s %v\n", hook, ev.RowIndexes)
		case layer.RowsShownEvent:
			fmt.Fprintf(w, "%s %v\n", hook, ev.RowIndexes)
		case layer.SearchEvent:
			if ev.Coordinate != nil {
				fmt.Fprintf(w, "%s column=%d row=%d\n", hook, ev.Coordinate.ColumnPosition, ev.Coordinate.RowPosition)
			}
		default:
			fmt.Fprintf(w, "%s %T\n", hook, data)
		}
		return data, nil
	}
}

func applyOperations(grid *app.Grid, opts *RenderOptions) error {
	if len(opts.HideColumns) > 0 {
		grid.HideColumns(opts.HideColumns...)
	}
	if opts.CollapseAll {
		grid.CollapseAll()
	}
	if opts.ExpandLevel >= 0 {
		grid.ExpandToLevel(opts.ExpandLevel)
	}
	for _, t := range opts.Toggles {
		col, row, err := parsePosition(t)
		if err != nil {
			return err
		}
		if err := grid.Toggle(col, row); err != nil {
			return err
		}
	}
	if opts.Search != "" {
		if _, err := grid.Search(opts.Search); err != nil {
			return err
		}
	}
	return nil
}

// parsePosition parses "column,row".
func parsePosition(s string) (int, int, error) {
	colStr, rowStr, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid position %q: expected column,row", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid column in %q: %w", s, err)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row in %q: %w", s, err)
	}
	return col, row, nil
}
