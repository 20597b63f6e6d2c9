package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/hiergrid/internal/app"
)

func executeRender(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRenderCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "orders.yaml", ordersYAML)

	t.Run("renders every row", func(t *testing.T) {
		out, _, err := executeRender(t, file)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		require.Len(t, lines, 5)
		assert.Contains(t, lines[0], "name")
		assert.Contains(t, lines[0], "sku")
		for _, want := range []string{"ACME", "A-1", "X-1", "X-2", "A-2", "Globex", "Y-1"} {
			assert.Contains(t, out, want)
		}
	})

	t.Run("collapse all", func(t *testing.T) {
		out, _, err := executeRender(t, file, "--collapse-all")
		require.NoError(t, err)
		assert.NotContains(t, out, "X-2")
		assert.NotContains(t, out, "A-2")
		assert.Contains(t, out, "Globex")
	})

	t.Run("expand level", func(t *testing.T) {
		out, _, err := executeRender(t, file, "--collapse-all", "--expand-level", "0")
		require.NoError(t, err)
		assert.Contains(t, out, "A-2")
		assert.NotContains(t, out, "X-2")
	})

	t.Run("toggle with trace", func(t *testing.T) {
		out, errOut, err := executeRender(t, file, "--toggle", "1,0", "--trace")
		require.NoError(t, err)
		assert.NotContains(t, out, "A-2")
		assert.Contains(t, errOut, "rows_hidden [1 2]")
	})

	t.Run("toggle on a level header", func(t *testing.T) {
		_, _, err := executeRender(t, file, "--toggle", "0,0")
		assert.ErrorIs(t, err, app.ErrNotTreeCell)
	})

	t.Run("search reveals collapsed rows", func(t *testing.T) {
		out, _, err := executeRender(t, file, "--collapse-all", "--search", "x-2")
		require.NoError(t, err)
		assert.Contains(t, out, "X-2")
	})

	t.Run("search without match", func(t *testing.T) {
		_, _, err := executeRender(t, file, "--search", "nothing")
		assert.ErrorIs(t, err, app.ErrNotFound)
	})

	t.Run("without level headers", func(t *testing.T) {
		out, _, err := executeRender(t, file, "--no-level-header")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "name"), out)
	})

	t.Run("hide column", func(t *testing.T) {
		out, _, err := executeRender(t, file, "--hide-column", "3")
		require.NoError(t, err)
		assert.NotContains(t, out, "qty")
		assert.Contains(t, out, "sku")
	})

	t.Run("config file", func(t *testing.T) {
		cfg := writeFile(t, dir, "config.yaml", "render:\n  header: false\n")
		out, _, err := executeRender(t, file, "--config", cfg)
		require.NoError(t, err)
		assert.NotContains(t, out, "sku")
		assert.Equal(t, 4, strings.Count(out, "\n"))
	})

	t.Run("debug logging", func(t *testing.T) {
		_, errOut, err := executeRender(t, file, "--collapse-all", "--log-level", "debug")
		require.NoError(t, err)
		assert.Contains(t, errOut, "collapsed all")
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := executeRender(t, filepath.Join(dir, "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid toggle", func(t *testing.T) {
		_, _, err := executeRender(t, file, "--toggle", "x")
		assert.ErrorContains(t, err, "expected column,row")
	})
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in       string
		col, row int
		wantErr  bool
	}{
		{in: "1,0", col: 1, row: 0},
		{in: " 3 , 12 ", col: 3, row: 12},
		{in: "1", wantErr: true},
		{in: "a,1", wantErr: true},
		{in: "1,b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			col, row, err := parsePosition(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.col, col)
			assert.Equal(t, tt.row, row)
		})
	}
}

func TestListAndImport(t *testing.T) {
	src := writeFile(t, t.TempDir(), "orders.json", `{"columns": ["name"], "records": [{"id": "a", "fields": {"name": "A"}}]}`)
	dir := filepath.Join(t.TempDir(), "store")

	t.Run("empty directory", func(t *testing.T) {
		out := &bytes.Buffer{}
		cmd := NewListCommand()
		cmd.SetOut(out)
		cmd.SetArgs([]string{"--dir", dir})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "No datasets found")
	})

	t.Run("import then list", func(t *testing.T) {
		out := &bytes.Buffer{}
		cmd := NewImportCommand()
		cmd.SetOut(out)
		cmd.SetArgs([]string{src, "--dir", dir, "--name", "clients"})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "Imported clients")

		out.Reset()
		cmd = NewListCommand()
		cmd.SetOut(out)
		cmd.SetArgs([]string{"--dir", dir})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "clients\t1 columns\t1 records")
	})

	t.Run("render by name", func(t *testing.T) {
		out, _, err := executeRender(t, "clients", "--dir", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "A")
		assert.Contains(t, out, "name")
	})
}
