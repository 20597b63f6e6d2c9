package hierarchical

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/artpar/hiergrid/internal/layer"
	"github.com/artpar/hiergrid/internal/painter"
)

// DefaultTreeMarkers are drawn in front of tree column values.
var DefaultTreeMarkers = map[string]string{
	TreeExpanded:  "▾ ",
	TreeCollapsed: "▸ ",
	TreeLeaf:      "  ",
}

// ConfigurePainters registers the painters a tree layer needs: text for
// data cells, the tree structure painter for tree columns, a bar for level
// headers and blanks for cells of collapsed children. With styled set,
// selected cells and level headers get lipgloss styles.
func ConfigurePainters(reg *painter.Registry, styled bool) {
	text := painter.NewTextPainter()
	header := &painter.FillPainter{Fill: "│"}
	selectedHeader := &painter.FillPainter{Fill: "┃"}
	var selected painter.Painter = text

	if styled {
		headerStyle := lipgloss.NewStyle().Faint(true)
		header.Style = &headerStyle
		selectedStyle := lipgloss.NewStyle().Bold(true)
		selectedHeader.Style = &selectedStyle
		selected = painter.NewStylePainter(text, lipgloss.NewStyle().Reverse(true))
	}

	reg.Register(painter.AttrCellPainter, layer.DisplayNormal, "", text)
	reg.Register(painter.AttrCellPainter, layer.DisplaySelect, "", selected)
	reg.Register(painter.AttrCellPainter, layer.DisplayNormal, LevelHeaderCell, header)
	reg.Register(painter.AttrCellPainter, layer.DisplaySelect, LevelHeaderCell, selectedHeader)
	reg.Register(painter.AttrCellPainter, layer.DisplayNormal, CollapsedChild, &painter.FillPainter{})
	reg.Register(painter.AttrTreeStructurePainter, layer.DisplayNormal, TreeColumnCell,
		painter.NewTreeImagePainter(DefaultTreeMarkers))
}
