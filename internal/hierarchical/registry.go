package hierarchical

import (
	"cmp"
	"maps"
	"slices"
)

// CollapsedNodeRegistry holds one entry per collapsed node.
type CollapsedNodeRegistry struct {
	nodes map[NodeKey]TreeNode
}

// NewCollapsedNodeRegistry creates an empty registry.
func NewCollapsedNodeRegistry() *CollapsedNodeRegistry {
	return &CollapsedNodeRegistry{nodes: make(map[NodeKey]TreeNode)}
}

// Add registers a node, replacing an entry with the same key.
func (r *CollapsedNodeRegistry) Add(node TreeNode) {
	r.nodes[node.Key()] = node
}

// Remove deletes the node with the given key and reports whether it existed.
func (r *CollapsedNodeRegistry) Remove(key NodeKey) bool {
	if _, ok := r.nodes[key]; !ok {
		return false
	}
	delete(r.nodes, key)
	return true
}

// Contains reports whether a node with the key is registered.
func (r *CollapsedNodeRegistry) Contains(key NodeKey) bool {
	_, ok := r.nodes[key]
	return ok
}

// Get returns the node with the key.
func (r *CollapsedNodeRegistry) Get(key NodeKey) (TreeNode, bool) {
	n, ok := r.nodes[key]
	return n, ok
}

// Len returns the number of registered nodes.
func (r *CollapsedNodeRegistry) Len() int {
	return len(r.nodes)
}

// Nodes returns a snapshot of the nodes ordered by column then row index.
func (r *CollapsedNodeRegistry) Nodes() []TreeNode {
	nodes := slices.Collect(maps.Values(r.nodes))
	slices.SortFunc(nodes, compareNodes)
	return nodes
}

// RemoveFunc removes every node for which remove returns true and returns
// the removed nodes. Candidates are collected before anything is removed.
func (r *CollapsedNodeRegistry) RemoveFunc(remove func(TreeNode) bool) []TreeNode {
	var removed []TreeNode
	for _, n := range r.Nodes() {
		if remove(n) {
			removed = append(removed, n)
		}
	}
	for _, n := range removed {
		delete(r.nodes, n.Key())
	}
	return removed
}

// Replace swaps the registry content for nodes.
func (r *CollapsedNodeRegistry) Replace(nodes []TreeNode) {
	clear(r.nodes)
	for _, n := range nodes {
		r.Add(n)
	}
}

// Clear removes every node.
func (r *CollapsedNodeRegistry) Clear() {
	clear(r.nodes)
}

func compareNodes(a, b TreeNode) int {
	if c := cmp.Compare(a.ColumnIndex, b.ColumnIndex); c != 0 {
		return c
	}
	return cmp.Compare(a.RowIndex, b.RowIndex)
}
