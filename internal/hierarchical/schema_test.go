package hierarchical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depthsOf(t *testing.T, paths ...string) []int {
	t.Helper()
	columns, err := PathColumns(paths...)
	require.NoError(t, err)
	return Depths(columns)
}

func TestLevelSchema(t *testing.T) {
	tests := []struct {
		name         string
		paths        []string
		nodeColumns  []int
		levelColumns [][]int
		leaf         int
	}{
		{
			name:         "level boundary with trailing shallow column",
			paths:        []string{"a", "a.x", "a.y", "b"},
			nodeColumns:  []int{0, 1},
			levelColumns: [][]int{{0}, {1, 2}},
			leaf:         1,
		},
		{
			name:         "three levels",
			paths:        []string{"a", "a.b", "a.b.c", "a.b.d"},
			nodeColumns:  []int{0, 1, 2},
			levelColumns: [][]int{{0}, {1}, {2, 3}},
			leaf:         2,
		},
		{
			name:         "several columns on the first level",
			paths:        []string{"a", "b", "a.x"},
			nodeColumns:  []int{0, 2},
			levelColumns: [][]int{{0, 1}, {2}},
			leaf:         2,
		},
		{
			name:         "deeper jump opens one level",
			paths:        []string{"a", "a.b.c"},
			nodeColumns:  []int{0, 1},
			levelColumns: [][]int{{0}, {1}},
			leaf:         1,
		},
		{
			name:         "single column",
			paths:        []string{"a"},
			nodeColumns:  []int{0},
			levelColumns: [][]int{{0}},
			leaf:         0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewLevelSchema(depthsOf(t, tt.paths...))

			assert.Equal(t, tt.nodeColumns, s.NodeColumns())
			assert.Equal(t, len(tt.nodeColumns), s.Levels())
			for level, cols := range tt.levelColumns {
				assert.Equal(t, cols, s.ColumnsOfLevel(level))
				assert.Equal(t, tt.nodeColumns[level], s.NodeColumnOf(level))
			}
			assert.Equal(t, tt.leaf, s.LeafColumn())
			assert.False(t, s.IsTreeColumn(tt.leaf))
		})
	}

	t.Run("scenario values", func(t *testing.T) {
		s := NewLevelSchema(depthsOf(t, "a", "a.x", "a.y", "b"))

		assert.Equal(t, 0, s.LevelOf(3))
		assert.Equal(t, 1, s.LevelOf(2))
		assert.Equal(t, -1, s.LevelOf(4))
		assert.True(t, s.IsTreeColumn(0))
		assert.False(t, s.IsTreeColumn(2))
		assert.Equal(t, []int{0, 2}, s.HeaderPositions(func(int) bool { return false }))
		assert.Equal(t, []int{0, 1}, s.HeaderPositions(func(i int) bool { return i == 0 }))
	})

	t.Run("empty", func(t *testing.T) {
		s := NewLevelSchema(nil)

		assert.Zero(t, s.Levels())
		assert.Equal(t, -1, s.NodeColumnOf(0))
		assert.Nil(t, s.ColumnsOfLevel(0))
		assert.Empty(t, s.HeaderPositions(func(int) bool { return false }))
	})
}

func TestPathColumn(t *testing.T) {
	t.Run("reads the last segment from the level object", func(t *testing.T) {
		c, err := PathColumn("order.item.sku")
		require.NoError(t, err)

		row := NewRow(&node{name: "o1"}, &node{name: "i1"}, &node{name: "s1", fields: map[string]any{"sku": "X-1"}})
		assert.Equal(t, 2, c.Depth)
		assert.Equal(t, "X-1", c.Value(row))
		assert.Equal(t, "order.item.sku", c.Name)
	})

	t.Run("missing level object", func(t *testing.T) {
		c, err := PathColumn("a.b")
		require.NoError(t, err)
		assert.Nil(t, c.Value(NewRow(&node{name: "a"})))
	})

	t.Run("empty segment", func(t *testing.T) {
		_, err := PathColumn("a..b")
		assert.ErrorIs(t, err, ErrInvalidPath)

		_, err = PathColumns("a", "")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})
}

func TestHiddenRowSet(t *testing.T) {
	s := NewHiddenRowSet(5, 1, 3, 1)
	assert.Equal(t, []int{1, 3, 5}, s.Indexes())

	assert.Equal(t, []int{2}, s.Add(3, 2))
	assert.Equal(t, []int{1, 5}, s.Remove(1, 5, 7))
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(5))
	assert.Equal(t, 2, s.Len())

	s.Reset([]int{9, 4, 4})
	assert.Equal(t, []int{4, 9}, s.Indexes())
	s.Clear()
	assert.Zero(t, s.Len())
}

func TestCollapsedNodeRegistry(t *testing.T) {
	row := NewRow(&node{name: "r"})
	r := NewCollapsedNodeRegistry()
	r.Add(NewTreeNode(1, 4, nil))
	r.Add(NewTreeNode(0, 7, row))
	r.Add(NewTreeNode(0, 2, nil))

	t.Run("equality by key", func(t *testing.T) {
		assert.True(t, r.Contains(NodeKey{ColumnIndex: 0, RowIndex: 7}))
		r.Add(NewTreeNode(0, 7, nil))
		assert.Equal(t, 3, r.Len())
	})

	t.Run("snapshot is ordered", func(t *testing.T) {
		var keys []NodeKey
		for _, n := range r.Nodes() {
			keys = append(keys, n.Key())
		}
		assert.Equal(t, []NodeKey{{0, 2}, {0, 7}, {1, 4}}, keys)
	})

	t.Run("remove func", func(t *testing.T) {
		removed := r.RemoveFunc(func(n TreeNode) bool { return n.ColumnIndex == 0 })
		assert.Len(t, removed, 2)
		assert.Equal(t, 1, r.Len())
		assert.True(t, r.Remove(NodeKey{ColumnIndex: 1, RowIndex: 4}))
		assert.False(t, r.Remove(NodeKey{ColumnIndex: 1, RowIndex: 4}))
	})

	t.Run("weak row reference", func(t *testing.T) {
		n := NewTreeNode(0, 0, row)
		assert.Same(t, row, n.Row())
		assert.True(t, n.References(row))
		assert.False(t, n.References(NewRow()))
		assert.Nil(t, NewTreeNode(0, 0, nil).Row())
	})
}
