package hierarchical

import (
	"fmt"
	"weak"
)

// NodeKey identifies a tree node by column and row index.
type NodeKey struct {
	ColumnIndex int
	RowIndex    int
}

func (k NodeKey) String() string {
	return fmt.Sprintf("[%d,%d]", k.ColumnIndex, k.RowIndex)
}

// TreeNode is a collapsed node. It keeps a weak reference to its row so the
// row's new index can be found after the row list changed. Equality is
// defined by the key only.
type TreeNode struct {
	ColumnIndex int
	RowIndex    int
	row         weak.Pointer[Row]
}

// NewTreeNode creates a node referencing row.
func NewTreeNode(columnIndex, rowIndex int, row *Row) TreeNode {
	return TreeNode{ColumnIndex: columnIndex, RowIndex: rowIndex, row: weak.Make(row)}
}

// Key returns the identity of the node.
func (n TreeNode) Key() NodeKey {
	return NodeKey{ColumnIndex: n.ColumnIndex, RowIndex: n.RowIndex}
}

// Row returns the referenced row, or nil if there is none or it was
// garbage collected.
func (n TreeNode) Row() *Row {
	return n.row.Value()
}

// References reports whether the node was created for row. It stays
// accurate after the row has been collected.
func (n TreeNode) References(row *Row) bool {
	return row != nil && n.row == weak.Make(row)
}

// Retained reports whether the node lost its row and is kept under a
// placeholder index.
func (n TreeNode) Retained() bool {
	return n.RowIndex < 0
}

func (n TreeNode) String() string {
	return n.Key().String()
}
