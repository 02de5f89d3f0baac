// Package dataset holds the in-memory train/test tables the harness passes to
// the AutoML engine. Cells are kept as raw strings; typing is the engine's job.
package dataset

import (
	"fmt"
	"slices"
)

type Table struct {
	Header []string
	Rows   [][]string
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of name in the header, or -1.
func (t *Table) ColumnIndex(name string) int {
	return slices.Index(t.Header, name)
}

func (t *Table) Column(name string) ([]string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}
	col := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		col[i] = row[idx]
	}
	return col, nil
}

// Drop returns a copy of the table without the named column.
func (t *Table) Drop(name string) (*Table, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}

	out := &Table{
		Header: slices.Delete(slices.Clone(t.Header), idx, idx+1),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = slices.Delete(slices.Clone(row), idx, idx+1)
	}
	return out, nil
}

// SplitLabel separates the label column from the feature columns.
func (t *Table) SplitLabel(label string) (*Table, []string, error) {
	y, err := t.Column(label)
	if err != nil {
		return nil, nil, err
	}
	x, err := t.Drop(label)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// Head returns the first n rows. The prefix is deterministic, not a sample.
func (t *Table) Head(n int) *Table {
	n = max(0, min(n, len(t.Rows)))
	return &Table{
		Header: t.Header,
		Rows:   t.Rows[:n],
	}
}
