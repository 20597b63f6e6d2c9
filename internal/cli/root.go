package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/artpar/hiergrid/internal/config"
)

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "hiergrid",
		Short:        "hiergrid - hierarchical tree grid for the terminal",
		Long:         "hiergrid renders nested datasets as a grid with collapsible levels.",
		Version:      version,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewRenderCommand())
	cmd.AddCommand(NewWatchCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewImportCommand())

	return cmd
}

// loadConfig reads the configuration file if one is given and applies the
// log level flag on top.
func loadConfig(path, logLevel string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("invalid --log-level: %w", err)
		}
	}
	return cfg, nil
}

// newLogger creates the text logger written to w.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}
