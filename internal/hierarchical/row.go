package hierarchical

import "slices"

// Row is one de-normalised row of a hierarchical object model. It holds one
// object per level, outermost first; the last object is the leaf. Rows that
// belong to the same parent share the identical parent object.
type Row struct {
	objects []any
}

// NewRow creates a row from its level objects.
func NewRow(objects ...any) *Row {
	return &Row{objects: objects}
}

// Object returns the object at a level or nil.
func (r *Row) Object(level int) any {
	if r == nil || level < 0 || level >= len(r.objects) {
		return nil
	}
	return r.objects[level]
}

// Objects returns a copy of the level objects.
func (r *Row) Objects() []any {
	return slices.Clone(r.objects)
}

// Depth returns the number of level objects.
func (r *Row) Depth() int {
	return len(r.objects)
}

// SetObjects replaces the level objects in place, keeping the row identity.
func (r *Row) SetObjects(objects ...any) {
	r.objects = objects
}

// RowList is the externally owned list of rows a tree layer is built over.
type RowList interface {
	Len() int
	At(index int) *Row
	IndexOf(row *Row) int
}

// SliceList is a RowList backed by a slice.
type SliceList struct {
	rows []*Row
}

// NewSliceList creates a list holding rows.
func NewSliceList(rows ...*Row) *SliceList {
	return &SliceList{rows: rows}
}

func (l *SliceList) Len() int {
	return len(l.rows)
}

// At returns the row at index or nil.
func (l *SliceList) At(index int) *Row {
	if index < 0 || index >= len(l.rows) {
		return nil
	}
	return l.rows[index]
}

// IndexOf returns the index of the identical row or -1.
func (l *SliceList) IndexOf(row *Row) int {
	if row == nil {
		return -1
	}
	return slices.Index(l.rows, row)
}

// Rows returns a copy of the rows.
func (l *SliceList) Rows() []*Row {
	return slices.Clone(l.rows)
}

// Set replaces the content of the list.
func (l *SliceList) Set(rows []*Row) {
	l.rows = slices.Clone(rows)
}

// Insert inserts rows at index.
func (l *SliceList) Insert(index int, rows ...*Row) {
	l.rows = slices.Insert(l.rows, index, rows...)
}

// Remove deletes the rows in [from, to).
func (l *SliceList) Remove(from, to int) {
	l.rows = slices.Delete(l.rows, from, to)
}
