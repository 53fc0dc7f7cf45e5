package model

import (
	"encoding/json"
	"testing"
)

func TestTableZeroFilled(t *testing.T) {
	tbl := NewTable(2, 3)
	r, c := tbl.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("dims %dx%d", r, c)
	}
	for _, row := range tbl.Rows() {
		for _, v := range row {
			if v != 0 {
				t.Fatalf("expected zero fill, got %v", v)
			}
		}
	}
}

func TestTableWithoutColumns(t *testing.T) {
	tbl := NewTable(3, 0)
	if len(tbl.Rows()) != 3 {
		t.Fatalf("expected 3 empty rows")
	}
	if len(tbl.Positive()) != 0 {
		t.Fatalf("expected no positive entries")
	}
	b, err := json.Marshal(tbl)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "[[],[],[]]" {
		t.Fatalf("unexpected json %s", b)
	}
}

func TestTableFromRowsRejectsRagged(t *testing.T) {
	if _, err := TableFromRows([][]float64{{1, 2}, {3}}); err == nil {
		t.Fatalf("expected error for ragged rows")
	}
}

func TestTablePositiveAndDivided(t *testing.T) {
	tbl, err := TableFromRows([][]float64{{10, 0, 20}, {0, 30, -1}})
	if err != nil {
		t.Fatalf("from rows: %v", err)
	}
	pos := tbl.Positive()
	if len(pos) != 3 || pos[0] != 10 || pos[1] != 20 || pos[2] != 30 {
		t.Fatalf("unexpected positives %v", pos)
	}
	s := tbl.Divided(10)
	if s.At(0, 2) != 2 || s.At(1, 1) != 3 {
		t.Fatalf("unexpected divided rows %v", s.Rows())
	}
	if tbl.At(0, 2) != 20 {
		t.Fatalf("division mutated source table")
	}
}

func TestTableJSONRoundTrip(t *testing.T) {
	src, _ := TableFromRows([][]float64{{5, 4, 5}, {7, 0, 0}})
	b, err := json.Marshal(src)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var dst Table
	if err := json.Unmarshal(b, &dst); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	r, c := dst.Dims()
	if r != 2 || c != 3 || dst.At(1, 0) != 7 {
		t.Fatalf("unexpected table %v", dst.Rows())
	}
}
