package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersYAML = `
name: orders
columns: [name, orders.number, orders.items.sku, orders.items.qty]
records:
  - id: acme
    fields: {name: ACME}
    children:
      - id: o1
        fields: {number: A-1}
        children:
          - id: i1
            fields: {sku: X-1, qty: 2}
          - id: i2
            fields: {sku: X-2, qty: 1}
      - id: o2
        fields: {number: A-2}
  - id: globex
    fields: {name: Globex}
    children:
      - id: o3
        fields: {number: G-1}
        children:
          - id: i3
            fields: {sku: Y-1, qty: 5}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewRootCommand(t *testing.T) {
	t.Run("creates root command", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		assert.NotNil(t, cmd)
		assert.Equal(t, "hiergrid", cmd.Use)
		assert.Equal(t, "1.0.0", cmd.Version)
	})

	for _, name := range []string{"render", "watch", "list", "import"} {
		t.Run("has "+name+" subcommand", func(t *testing.T) {
			cmd := NewRootCommand("1.0.0")
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Contains(t, sub.Use, name)
		})
	}

	t.Run("render has tree flags", func(t *testing.T) {
		cmd := NewRenderCommand()
		for _, name := range []string{"config", "collapse-all", "expand-level", "toggle", "search",
			"no-level-header", "hide-column", "log-level", "trace", "dir"} {
			assert.NotNil(t, cmd.Flags().Lookup(name), name)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := loadConfig("", "")
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Log.Level)
	})

	t.Run("log level flag overrides file", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "config.yaml", "log:\n  level: info\n")
		cfg, err := loadConfig(path, "debug")
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, err := loadConfig("", "loud")
		assert.ErrorContains(t, err, "--log-level")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), "")
		assert.Error(t, err)
	})
}
