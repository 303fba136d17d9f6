// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tfctl/xlsxdiff/internal/indexspec"
	"github.com/tfctl/xlsxdiff/internal/workbook"
)

func TestEncode(t *testing.T) {
	assert.NotEqual(t, Key{"a,b"}.Encode(), Key{"a", "b"}.Encode())
	assert.NotEqual(t, Key{"1:a"}.Encode(), Key{"1", "a"}.Encode())
	assert.Equal(t, Key{"x", ""}.Encode(), Key{"x", ""}.Encode())
	assert.NotEqual(t, Key{}.Encode(), Key{""}.Encode())
	assert.True(t, Key{"a", "b"}.Equal(Key{"a", "b"}))
	assert.False(t, Key{"a"}.Equal(Key{"a", ""}))
}

func TestExtract(t *testing.T) {
	sheet := workbook.FromRows("staff", [][]string{
		{"id", "name", "=A1"},
		{"1", "ann"},
		{"2", "", "x"},
	})

	rows := Extract(sheet, indexspec.Rows, []int{2, 1}, workbook.ModeValue)
	assert.Equal(t, []Keyed{
		{Pos: 0, Key: Key{"name", "id"}},
		{Pos: 1, Key: Key{"ann", "1"}},
		{Pos: 2, Key: Key{"", "2"}},
	}, rows)

	cols := Extract(sheet, indexspec.Columns, []int{1}, workbook.ModeFormula)
	assert.Equal(t, []Keyed{
		{Pos: 0, Key: Key{"id"}},
		{Pos: 1, Key: Key{"name"}},
		{Pos: 2, Key: Key{"=A1"}},
	}, cols)

	cols = Extract(sheet, indexspec.Columns, []int{1}, workbook.ModeValue)
	assert.Equal(t, Key{""}, cols[2].Key)
}
