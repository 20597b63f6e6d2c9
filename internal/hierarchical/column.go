package hierarchical

import (
	"fmt"
	"strings"
)

// PathSeparator separates the segments of a property path.
const PathSeparator = "."

// FieldGetter is implemented by level objects that expose named fields.
type FieldGetter interface {
	Field(name string) any
}

// Column binds a column index to the level it belongs to and to the function
// reading its value from a row.
type Column struct {
	Name  string
	Depth int
	Value func(row *Row) any
}

// PathColumn creates a column from a property path such as "order.item.sku".
// The depth is the number of separators; the value is the field named by the
// last segment of the level object at that depth.
func PathColumn(path string) (Column, error) {
	segments := strings.Split(path, PathSeparator)
	for _, s := range segments {
		if s == "" {
			return Column{}, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	depth := len(segments) - 1
	field := segments[depth]
	return Column{
		Name:  path,
		Depth: depth,
		Value: func(row *Row) any {
			return fieldOf(row.Object(depth), field)
		},
	}, nil
}

// PathColumns creates one column per property path.
func PathColumns(paths ...string) ([]Column, error) {
	columns := make([]Column, 0, len(paths))
	for _, p := range paths {
		c, err := PathColumn(p)
		if err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}
	return columns, nil
}

func fieldOf(obj any, name string) any {
	switch o := obj.(type) {
	case nil:
		return nil
	case FieldGetter:
		return o.Field(name)
	default:
		return nil
	}
}

// Depths returns the depth of every column.
func Depths(columns []Column) []int {
	depths := make([]int, len(columns))
	for i, c := range columns {
		depths[i] = c.Depth
	}
	return depths
}
