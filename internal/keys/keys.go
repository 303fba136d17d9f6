// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package keys

import (
	"slices"
	"strconv"
	"strings"

	"github.com/tfctl/xlsxdiff/internal/indexspec"
	"github.com/tfctl/xlsxdiff/internal/workbook"
)

// Key is an ordered tuple of cell contents. Empty cells contribute "".
type Key []string

// Equal reports element-wise equality.
func (k Key) Equal(o Key) bool {
	return slices.Equal(k, o)
}

// Encode returns a string that is equal for two keys iff the keys are Equal.
// Each part is length-prefixed so ("a,b") and ("a","b") never collide.
func (k Key) Encode() string {
	var sb strings.Builder
	for _, part := range k {
		sb.WriteString(strconv.Itoa(len(part)))
		sb.WriteByte(':')
		sb.WriteString(part)
	}
	return sb.String()
}

func (k Key) String() string {
	return "(" + strings.Join(k, ", ") + ")"
}

// Keyed is one row or column with its 0-based position along the axis.
type Keyed struct {
	Pos int
	Key Key
}

// Extract reads a key for every row (axis Rows, coords are key columns) or
// every column (axis Columns, coords are key rows) of sheet. Coordinates are
// expected to have been checked with indexspec.Set.Validate; out-of-range
// ones read as empty.
func Extract(sheet *workbook.Sheet, axis indexspec.Axis, coords []int, mode workbook.Mode) []Keyed {
	n := sheet.RowCount()
	if axis == indexspec.Columns {
		n = sheet.ColumnCount()
	}

	out := make([]Keyed, n)
	for pos := range n {
		key := make(Key, len(coords))
		for i, c := range coords {
			var cell workbook.Cell
			if axis == indexspec.Rows {
				cell = sheet.Cell(pos+1, c)
			} else {
				cell = sheet.Cell(c, pos+1)
			}
			key[i] = cell.Content(mode)
		}
		out[pos] = Keyed{Pos: pos, Key: key}
	}
	return out
}
