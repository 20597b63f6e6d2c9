package painter

import (
	"fmt"
	"io"
	"strings"

	"github.com/artpar/hiergrid/internal/layer"
)

// DefaultPixelsPerChar converts layer pixel widths to text columns.
const DefaultPixelsPerChar = 8

// PainterSource is implemented by layers that choose painters themselves.
type PainterSource interface {
	CellPainter(cell *layer.Cell, reg *Registry) Painter
}

// RenderOptions controls the text output of Render.
type RenderOptions struct {
	PixelsPerChar int
	Separator     string
	// Header returns the title of a column position. No header line is
	// written when it is nil.
	Header func(columnPosition int) string
}

// Render writes one line per visible row of l. Values of spanning cells are
// written on their origin row only.
func Render(w io.Writer, l layer.Layer, reg *Registry, opts RenderOptions) error {
	ppc := opts.PixelsPerChar
	if ppc <= 0 {
		ppc = DefaultPixelsPerChar
	}
	sep := opts.Separator
	if sep == "" {
		sep = " "
	}

	cols := l.ColumnCount()
	widths := make([]int, cols)
	for col := range widths {
		widths[col] = max(1, l.ColumnWidthByPosition(col)/ppc)
	}

	if opts.Header != nil {
		parts := make([]string, cols)
		for col := range parts {
			parts[col] = Fit(opts.Header(col), widths[col], false)
		}
		if err := writeLine(w, parts, sep); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	src, hasSource := l.(PainterSource)
	for row := 0; row < l.RowCount(); row++ {
		parts := make([]string, cols)
		for col := range parts {
			cell := l.CellByPosition(col, row)
			if cell == nil || cell.OriginRowPosition != row {
				parts[col] = Fit("", widths[col], false)
				continue
			}
			var p Painter
			if hasSource {
				p = src.CellPainter(cell, reg)
			} else {
				p = reg.Painter(AttrCellPainter, cell.DisplayMode(), cell.Labels().Labels())
			}
			if p == nil {
				p = NewTextPainter()
			}
			parts[col] = p.Paint(cell, widths[col])
		}
		if err := writeLine(w, parts, sep); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}
	return nil
}

// RenderString renders l into a string.
func RenderString(l layer.Layer, reg *Registry, opts RenderOptions) string {
	var sb strings.Builder
	// strings.Builder never fails
	_ = Render(&sb, l, reg, opts)
	return sb.String()
}

func writeLine(w io.Writer, parts []string, sep string) error {
	_, err := io.WriteString(w, strings.TrimRight(strings.Join(parts, sep), " ")+"\n")
	return err
}
