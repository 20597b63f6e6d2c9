package hierarchical

// Labels attached to cells of a tree layer.
const (
	LevelHeaderCell = "LEVEL_HEADER_CELL"
	CollapsedChild  = "COLLAPSED_CHILD"
	TreeColumnCell  = "TREE_COLUMN_CELL"
	TreeDepthPrefix = "TREE_DEPTH_"
	TreeExpanded    = "TREE_EXPANDED"
	TreeCollapsed   = "TREE_COLLAPSED"
	TreeLeaf        = "TREE_LEAF"
)

// TreeDepth0 is the only depth label used, since every level has its own
// column and needs no indentation.
const TreeDepth0 = TreeDepthPrefix + "0"

var treeLabels = []string{TreeColumnCell, TreeDepth0, TreeExpanded, TreeCollapsed, TreeLeaf}
