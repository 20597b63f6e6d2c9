// Package config holds the tree and rendering settings read from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

// Config is the complete configuration.
type Config struct {
	Tree   TreeConfig   `yaml:"tree"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

// TreeConfig mirrors the tree layer flags.
type TreeConfig struct {
	ShowLevelHeader         bool    `yaml:"show_level_header"`
	HandleCollapsedChildren bool    `yaml:"handle_collapsed_children"`
	RetainRemovedRowNodes   bool    `yaml:"retain_removed_row_nodes"`
	ExpandOnSearch          bool    `yaml:"expand_on_search"`
	UseTreeColumnIndex      bool    `yaml:"use_tree_column_index"`
	LevelHeaderWidth        int     `yaml:"level_header_width" validate:"min=1,max=400"`
	DPIScale                float64 `yaml:"dpi_scale" validate:"gt=0,lte=8"`
}

// RenderConfig controls the text output.
type RenderConfig struct {
	// PixelsPerChar converts layer widths to text columns.
	PixelsPerChar int    `yaml:"pixels_per_char" validate:"min=1"`
	ColumnWidth   int    `yaml:"column_width" validate:"min=1"`
	Separator     string `yaml:"separator"`
	Color         bool   `yaml:"color"`
	Header        bool   `yaml:"header"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Tree: TreeConfig{
			ShowLevelHeader:         true,
			HandleCollapsedChildren: true,
			RetainRemovedRowNodes:   true,
			ExpandOnSearch:          true,
			LevelHeaderWidth:        16,
			DPIScale:                1,
		},
		Render: RenderConfig{
			PixelsPerChar: 8,
			ColumnWidth:   96,
			Separator:     " ",
			Header:        true,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags and reports the first failure.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	e := verrs[0]
	switch e.Tag() {
	case "min":
		return fmt.Errorf("%w: %s must be at least %s", ErrInvalidConfig, e.Namespace(), e.Param())
	case "max", "lte":
		return fmt.Errorf("%w: %s must not exceed %s", ErrInvalidConfig, e.Namespace(), e.Param())
	case "oneof":
		return fmt.Errorf("%w: %s must be one of %s", ErrInvalidConfig, e.Namespace(), e.Param())
	default:
		return fmt.Errorf("%w: %s failed %s", ErrInvalidConfig, e.Namespace(), e.Tag())
	}
}

// SlogLevel returns the slog level of the configured log level.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
