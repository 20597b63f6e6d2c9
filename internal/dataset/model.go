package dataset

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/artpar/hiergrid/internal/hierarchical"
)

// ErrColumnsChanged is returned when a reload changes the column paths.
var ErrColumnsChanged = errors.New("dataset columns changed")

// Denormalize flattens records into one row per path from a top level record
// down to a record without children, or down to the last of levels.
func Denormalize(records []*Record, levels int) []*hierarchical.Row {
	var rows []*hierarchical.Row
	var walk func(path []any, records []*Record)
	walk = func(path []any, records []*Record) {
		for _, r := range records {
			p := append(slices.Clone(path), r)
			if len(r.Children) == 0 || len(p) >= levels {
				rows = append(rows, hierarchical.NewRow(p...))
				continue
			}
			walk(p, r.Children)
		}
	}
	walk(nil, records)
	return rows
}

// Model keeps a dataset and the row list shown for it. Reloading reuses
// records and rows by id so that the identity of unchanged objects survives
// edits of the file.
type Model struct {
	dataset *Dataset
	columns []hierarchical.Column
	list    *hierarchical.SliceList
	// id path -> row
	rows map[string]*hierarchical.Row
}

// NewModel binds the columns of ds and builds its rows.
func NewModel(ds *Dataset) (*Model, error) {
	columns, err := hierarchical.PathColumns(ds.Columns...)
	if err != nil {
		return nil, fmt.Errorf("failed to bind columns: %w", err)
	}
	m := &Model{
		dataset: ds,
		columns: columns,
		list:    hierarchical.NewSliceList(),
	}
	m.rebuild()
	return m, nil
}

// Dataset returns the current dataset.
func (m *Model) Dataset() *Dataset {
	return m.dataset
}

// Columns returns the column binding.
func (m *Model) Columns() []hierarchical.Column {
	return m.columns
}

// Rows returns the row list. Its content changes on Reload.
func (m *Model) Rows() *hierarchical.SliceList {
	return m.list
}

// Reload merges next into the current dataset and rebuilds the rows.
func (m *Model) Reload(next *Dataset) error {
	if !slices.Equal(m.dataset.Columns, next.Columns) {
		return fmt.Errorf("%w: %v -> %v", ErrColumnsChanged, m.dataset.Columns, next.Columns)
	}
	m.dataset.Name = next.Name
	m.dataset.Records = mergeRecords(m.dataset.Records, next.Records)
	m.rebuild()
	return nil
}

// mergeRecords returns next with every record replaced by the old record of
// the same id, updated in place.
func mergeRecords(old, next []*Record) []*Record {
	byID := make(map[string]*Record, len(old))
	for _, r := range old {
		if r.ID != "" {
			byID[r.ID] = r
		}
	}
	out := make([]*Record, 0, len(next))
	for _, n := range next {
		o, ok := byID[n.ID]
		if !ok || n.ID == "" {
			out = append(out, n)
			continue
		}
		o.Fields = n.Fields
		o.Children = mergeRecords(o.Children, n.Children)
		out = append(out, o)
	}
	return out
}

func (m *Model) rebuild() {
	fresh := Denormalize(m.dataset.Records, m.dataset.Levels())
	rows := make(map[string]*hierarchical.Row, len(fresh))
	for i, r := range fresh {
		key, ok := rowKey(r)
		if !ok {
			continue
		}
		if old, found := m.rows[key]; found {
			old.SetObjects(r.Objects()...)
			fresh[i] = old
		}
		rows[key] = fresh[i]
	}
	m.rows = rows
	m.list.Set(fresh)
}

// rowKey joins the ids along a row. Rows with an anonymous record have no
// key.
func rowKey(r *hierarchical.Row) (string, bool) {
	ids := make([]string, 0, r.Depth())
	for _, obj := range r.Objects() {
		rec, ok := obj.(*Record)
		if !ok || rec.ID == "" {
			return "", false
		}
		ids = append(ids, rec.ID)
	}
	return strings.Join(ids, "/"), true
}
