package model

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Table is a rectangular rows x cols matrix of curve values. Slots a break
// cannot use hold zero. A table with no rows or no columns has no backing
// matrix but still reports its dimensions.
type Table struct {
	rows, cols int
	dense      *mat.Dense
}

// NewTable returns a zero-filled table.
func NewTable(rows, cols int) Table {
	t := Table{rows: rows, cols: cols}
	if rows > 0 && cols > 0 {
		t.dense = mat.NewDense(rows, cols, nil)
	}
	return t
}

// TableFromRows builds a table from row slices. All rows must share a length.
func TableFromRows(rows [][]float64) (Table, error) {
	if len(rows) == 0 {
		return NewTable(0, 0), nil
	}
	cols := len(rows[0])
	t := NewTable(len(rows), cols)
	for i, r := range rows {
		if len(r) != cols {
			return Table{}, fmt.Errorf("row %d has %d columns, want %d", i, len(r), cols)
		}
		if t.dense != nil {
			t.dense.SetRow(i, r)
		}
	}
	return t, nil
}

// Dims returns the table dimensions.
func (t Table) Dims() (int, int) { return t.rows, t.cols }

// At returns the value at row i, column j.
func (t Table) At(i, j int) float64 { return t.dense.At(i, j) }

// Set stores v at row i, column j.
func (t Table) Set(i, j int, v float64) { t.dense.Set(i, j, v) }

// Row returns a copy of row i.
func (t Table) Row(i int) []float64 {
	if t.dense == nil {
		return []float64{}
	}
	return mat.Row(nil, i, t.dense)
}

// Rows returns a copy of every row.
func (t Table) Rows() [][]float64 {
	out := make([][]float64, t.rows)
	for i := range out {
		out[i] = t.Row(i)
	}
	return out
}

// Positive returns all strictly positive entries in row-major order.
func (t Table) Positive() []float64 {
	var out []float64
	for i := 0; i < t.rows && t.dense != nil; i++ {
		for j := 0; j < t.cols; j++ {
			if v := t.dense.At(i, j); v > 0 {
				out = append(out, v)
			}
		}
	}
	return out
}

// Divided returns a new table with every entry divided by d.
func (t Table) Divided(d float64) Table {
	s := NewTable(t.rows, t.cols)
	if t.dense != nil {
		s.dense.Apply(func(_, _ int, v float64) float64 { return v / d }, t.dense)
	}
	return s
}

func (t Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Rows())
}

func (t *Table) UnmarshalJSON(b []byte) error {
	var rows [][]float64
	if err := json.Unmarshal(b, &rows); err != nil {
		return err
	}
	tbl, err := TableFromRows(rows)
	if err != nil {
		return err
	}
	*t = tbl
	return nil
}
