// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package workbook

import (
	"fmt"
	"strconv"
	"strings"
)

// Sheet is a grid of cells stored row-major in a flat arena.
type Sheet struct {
	Name   string
	rows   int
	cols   int
	cells  []Cell
	widths []float64
}

// NewSheet allocates an empty rows x cols sheet.
func NewSheet(name string, rows, cols int) *Sheet {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Sheet{
		Name:   name,
		rows:   rows,
		cols:   cols,
		cells:  make([]Cell, rows*cols),
		widths: make([]float64, cols),
	}
}

// RowCount is the number of addressable rows.
func (s *Sheet) RowCount() int { return s.rows }

// ColumnCount is the number of addressable columns.
func (s *Sheet) ColumnCount() int { return s.cols }

// Cell returns the cell at the 1-based coordinates. Anything outside the
// populated grid is Empty.
func (s *Sheet) Cell(row, col int) Cell {
	if row < 1 || col < 1 || row > s.rows || col > s.cols {
		return Empty
	}
	return s.cells[(row-1)*s.cols+col-1]
}

// Set stores c at the 1-based coordinates, growing the grid when needed.
// Loaders call it before the sheet is published.
func (s *Sheet) Set(row, col int, c Cell) {
	if row < 1 || col < 1 {
		panic(fmt.Sprintf("workbook: invalid coordinates (%d,%d)", row, col))
	}
	if row > s.rows || col > s.cols {
		s.grow(max(row, s.rows), max(col, s.cols))
	}
	s.cells[(row-1)*s.cols+col-1] = c
}

// ColumnWidth returns the width recorded for the 1-based column, 0 if unknown.
func (s *Sheet) ColumnWidth(col int) float64 {
	if col < 1 || col > len(s.widths) {
		return 0
	}
	return s.widths[col-1]
}

// SetColumnWidth records the display width of the 1-based column.
func (s *Sheet) SetColumnWidth(col int, w float64) {
	if col < 1 {
		return
	}
	if col > s.cols {
		s.grow(s.rows, col)
	}
	s.widths[col-1] = w
}

// CellCount is the number of addressable cells.
func (s *Sheet) CellCount() int { return s.rows * s.cols }

func (s *Sheet) grow(rows, cols int) {
	cells := make([]Cell, rows*cols)
	for r := 0; r < s.rows; r++ {
		copy(cells[r*cols:r*cols+s.cols], s.cells[r*s.cols:(r+1)*s.cols])
	}
	widths := make([]float64, cols)
	copy(widths, s.widths)
	s.rows, s.cols, s.cells, s.widths = rows, cols, cells, widths
}

// FromRows builds a sheet from display strings. Values that parse as numbers
// become number cells, "TRUE"/"FALSE" booleans, values starting with "="
// formulas without a cached result, and everything else text.
func FromRows(name string, rows [][]string) *Sheet {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	s := NewSheet(name, len(rows), cols)
	for i, r := range rows {
		for j, v := range r {
			s.cells[i*cols+j] = inferCell(v)
		}
	}
	return s
}

func inferCell(v string) Cell {
	switch {
	case v == "":
		return Empty
	case strings.HasPrefix(v, "="):
		return Formula(v, "", KindEmpty)
	case v == "TRUE" || v == "FALSE":
		return Bool(v == "TRUE")
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return Number(v)
	}
	return Text(v)
}
