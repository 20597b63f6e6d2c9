// Package painter turns layer cells into fixed width text. Painters are
// looked up in a Registry by attribute, display mode and cell label.
package painter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/artpar/hiergrid/internal/layer"
)

// Painter renders a cell into exactly width display cells.
type Painter interface {
	Paint(cell *layer.Cell, width int) string
}

// Wrapper is a painter that delegates to one wrapped painter.
type Wrapper interface {
	Painter
	Wrapped() Painter
}

// Decorator is a painter composed of a base and a decoration painter.
type Decorator interface {
	Painter
	Base() Painter
	Decoration() Painter
}

// TextPainter paints the cell value.
type TextPainter struct {
	Style      *lipgloss.Style
	Format     func(value any) string
	AlignRight bool
}

// NewTextPainter creates an unstyled, left aligned text painter.
func NewTextPainter() *TextPainter {
	return &TextPainter{}
}

// Paint formats the cell value and fits it to width.
func (p *TextPainter) Paint(cell *layer.Cell, width int) string {
	var value any
	if cell != nil {
		value = cell.DataValue()
	}
	format := p.Format
	if format == nil {
		format = FormatValue
	}
	return render(p.Style, Fit(format(value), width, p.AlignRight))
}

// FormatValue prints nil as an empty string and everything else with %v.
func FormatValue(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

// FillPainter repeats a string over the whole width.
type FillPainter struct {
	Fill  string
	Style *lipgloss.Style
}

func (p *FillPainter) Paint(_ *layer.Cell, width int) string {
	if width <= 0 {
		return ""
	}
	fill := p.Fill
	if fill == "" {
		fill = " "
	}
	n := width/max(1, runewidth.StringWidth(fill)) + 1
	s := runewidth.Truncate(strings.Repeat(fill, n), width, "")
	return render(p.Style, runewidth.FillRight(s, width))
}

// StylePainter applies a style to the output of the wrapped painter.
type StylePainter struct {
	wrapped Painter
	style   lipgloss.Style
}

// NewStylePainter wraps p with style.
func NewStylePainter(p Painter, style lipgloss.Style) *StylePainter {
	return &StylePainter{wrapped: p, style: style}
}

func (p *StylePainter) Wrapped() Painter { return p.wrapped }

func (p *StylePainter) Paint(cell *layer.Cell, width int) string {
	return p.style.Render(p.wrapped.Paint(cell, width))
}

// DecoratorPainter paints a fixed width decoration left of its base.
type DecoratorPainter struct {
	base       Painter
	decoration Painter
	width      int
}

// NewDecoratorPainter creates a decorator with a decoration of the given
// width.
func NewDecoratorPainter(base, decoration Painter, decorationWidth int) *DecoratorPainter {
	return &DecoratorPainter{base: base, decoration: decoration, width: decorationWidth}
}

func (p *DecoratorPainter) Base() Painter       { return p.base }
func (p *DecoratorPainter) Decoration() Painter { return p.decoration }

func (p *DecoratorPainter) Paint(cell *layer.Cell, width int) string {
	if width <= p.width {
		return p.decoration.Paint(cell, width)
	}
	return p.decoration.Paint(cell, p.width) + p.base.Paint(cell, width-p.width)
}

// TreeImagePainter paints the marker of the first cell label it knows, then
// the base painter in the remaining width.
type TreeImagePainter struct {
	base    Painter
	markers map[string]string
}

// NewTreeImagePainter creates a tree painter with markers keyed by label.
func NewTreeImagePainter(markers map[string]string) *TreeImagePainter {
	return &TreeImagePainter{markers: markers, base: NewTextPainter()}
}

// SetBase sets the painter used for the cell content.
func (p *TreeImagePainter) SetBase(base Painter) {
	if base != nil {
		p.base = base
	}
}

func (p *TreeImagePainter) Base() Painter { return p.base }

func (p *TreeImagePainter) Paint(cell *layer.Cell, width int) string {
	marker := ""
	if cell != nil {
		for _, l := range cell.Labels().Labels() {
			if m, ok := p.markers[l]; ok {
				marker = m
				break
			}
		}
	}
	mw := runewidth.StringWidth(marker)
	if mw >= width {
		return Fit(marker, width, false)
	}
	return marker + p.base.Paint(cell, width-mw)
}

// FindTreeImagePainter searches p and the painters it wraps or decorates
// for a TreeImagePainter.
func FindTreeImagePainter(p Painter) *TreeImagePainter {
	switch v := p.(type) {
	case nil:
		return nil
	case *TreeImagePainter:
		return v
	case Wrapper:
		return FindTreeImagePainter(v.Wrapped())
	case Decorator:
		if tp := FindTreeImagePainter(v.Base()); tp != nil {
			return tp
		}
		return FindTreeImagePainter(v.Decoration())
	}
	return nil
}

// Fit truncates s with an ellipsis or pads it with spaces to exactly width
// display cells.
func Fit(s string, width int, alignRight bool) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		if width == 1 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "…")
		}
	}
	if alignRight {
		return runewidth.FillLeft(s, width)
	}
	return runewidth.FillRight(s, width)
}

func render(style *lipgloss.Style, s string) string {
	if style == nil {
		return s
	}
	return style.Render(s)
}
