package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/artpar/hiergrid/internal/app"
	"github.com/artpar/hiergrid/internal/dataset"
	"github.com/artpar/hiergrid/internal/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &RenderOptions{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-render a dataset whenever it changes",
		Long: `Render a dataset and render it again after every change to the file.
Collapsed nodes follow their records across edits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, args[0], opts, debounce)
		},
	}

	addRenderFlags(cmd, opts)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounceDuration, "Delay before reloading after a change")
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, path string, opts *RenderOptions, debounce time.Duration) error {
	ds, err := dataset.Load(path)
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

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	var mu sync.Mutex
	render := func() {
		if err := grid.Render(out); err != nil {
			fmt.Fprintf(errOut, "render failed: %v\n", err)
		}
		fmt.Fprintln(out)
	}
	render()

	w, err := watch.New(path,
		watch.WithDebounceDuration(debounce),
		watch.WithLogger(grid.Logger()),
		watch.WithOnChange(func() {
			mu.Lock()
			defer mu.Unlock()
			if err := reload(grid, path); err != nil {
				fmt.Fprintf(errOut, "reload failed: %v\n", err)
				return
			}
			render()
		}),
		watch.WithOnError(func(err error) {
			fmt.Fprintf(errOut, "watch error: %v\n", err)
		}),
	)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	defer w.Stop()

	<-ctx.Done()
	return nil
}

func reload(grid *app.Grid, path string) error {
	ds, err := dataset.Load(path)
	if err != nil {
		return err
	}
	return grid.Reload(ds)
}
