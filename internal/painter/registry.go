package painter

import "github.com/artpar/hiergrid/internal/layer"

// Attribute names.
const (
	AttrCellPainter          = "cellPainter"
	AttrTreeStructurePainter = "treeStructurePainter"
)

type registryKey struct {
	attr  string
	mode  layer.DisplayMode
	label string
}

// Registry maps (attribute, display mode, label) to painters. An empty
// label registers the default for a display mode.
type Registry struct {
	entries map[registryKey]Painter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[registryKey]Painter)}
}

// Register stores a painter.
func (r *Registry) Register(attr string, mode layer.DisplayMode, label string, p Painter) {
	r.entries[registryKey{attr: attr, mode: mode, label: label}] = p
}

// Painter looks up a painter. The labels are tried top first for the
// requested display mode, then for DisplayNormal, then the defaults of both
// modes. It returns nil if nothing matches.
func (r *Registry) Painter(attr string, mode layer.DisplayMode, labels []string) Painter {
	modes := []layer.DisplayMode{mode}
	if mode != layer.DisplayNormal {
		modes = append(modes, layer.DisplayNormal)
	}
	for _, m := range modes {
		for _, l := range labels {
			if p, ok := r.entries[registryKey{attr: attr, mode: m, label: l}]; ok {
				return p
			}
		}
	}
	for _, m := range modes {
		if p, ok := r.entries[registryKey{attr: attr, mode: m}]; ok {
			return p
		}
	}
	return nil
}
