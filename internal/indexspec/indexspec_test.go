// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package indexspec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/xlsxdiff/internal/workbook"
)

func TestParseColumns(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		sheet   string
		cols    []int
		wantErr bool
	}{
		{"single", "staff!B", "staff", []int{2}, false},
		{"multi", "staff!B,c, AA", "staff", []int{2, 3, 27}, false},
		{"quoted", "'Q1 plan'!A", "Q1 plan", []int{1}, false},
		{"bang in name", "a!b!C", "a!b", []int{3}, false},
		{"no sheet", "B", "", nil, true},
		{"empty list", "staff!", "", nil, true},
		{"bad column", "staff!1", "", nil, true},
		{"range", "staff!B:D", "staff", []int{2, 3, 4}, false},
		{"range and single", "staff!a, Y:AB", "staff", []int{1, 25, 26, 27, 28}, false},
		{"one wide range", "staff!C:C", "staff", []int{3}, false},
		{"backwards range", "staff!D:B", "", nil, true},
		{"open range", "staff!B:", "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, cols, err := ParseColumns(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidIndexSpec))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.sheet, sheet)
			assert.Equal(t, tt.cols, cols)
		})
	}
}

func TestParseRows(t *testing.T) {
	sheet, rows, err := ParseRows("staff!1,3")
	require.NoError(t, err)
	assert.Equal(t, "staff", sheet)
	assert.Equal(t, []int{1, 3}, rows)

	_, rows, err = ParseRows("staff!2:4,7")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4, 7}, rows)

	_, _, err = ParseRows("staff!3:1")
	assert.ErrorIs(t, err, ErrInvalidIndexSpec)

	_, _, err = ParseRows("staff!0")
	var ise *InvalidIndexSpecError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, "staff", ise.Sheet)
}

func TestBuild(t *testing.T) {
	// "staff!B,C" arrives split as "staff!B" and "C".
	set, err := Build([]string{"staff!B", "C", "other!A"}, []string{"staff!1"})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, set["staff"].KeyColumns)
	assert.Equal(t, []int{1}, set["staff"].KeyRows)
	assert.Equal(t, []int{1}, set["other"].KeyColumns)
	assert.Nil(t, set["other"].KeyRows)
	assert.Equal(t, []string{"other", "staff"}, set.Sheets())
	assert.Equal(t, []int{2, 3}, set["staff"].For(Rows))
	assert.Equal(t, []int{1}, set["staff"].For(Columns))

	_, err = Build([]string{"C"}, nil)
	assert.ErrorIs(t, err, ErrInvalidIndexSpec)

	_, err = Build(nil, []string{"1"})
	assert.ErrorIs(t, err, ErrInvalidIndexSpec)
}

func TestBuildRowsContinueColumnSheet(t *testing.T) {
	set, err := Build([]string{"Staff!A", "'Q1 Budget'!A,B"}, []string{"1", "Staff!2"})
	require.NoError(t, err)
	assert.Equal(t, Spec{KeyColumns: []int{1, 2}, KeyRows: []int{1}}, set["Q1 Budget"])
	assert.Equal(t, Spec{KeyColumns: []int{1}, KeyRows: []int{2}}, set["Staff"])
}

func book(t *testing.T, path string, sheets ...*workbook.Sheet) *workbook.Workbook {
	t.Helper()
	wb := workbook.New(path)
	for _, s := range sheets {
		require.NoError(t, wb.Add(s))
	}
	return wb
}

func TestValidate(t *testing.T) {
	old := book(t, "old.xlsx", workbook.FromRows("staff", [][]string{{"id", "name"}, {"1", "a"}}))
	new := book(t, "new.xlsx",
		workbook.FromRows("staff", [][]string{{"id", "name", "dept"}, {"1", "a", "x"}}),
		workbook.FromRows("extra", [][]string{{"x"}}))

	tests := []struct {
		name    string
		set     Set
		wantErr string
	}{
		{"ok", Set{"staff": {KeyColumns: []int{1, 2}, KeyRows: []int{1}}}, ""},
		{"column beyond old", Set{"staff": {KeyColumns: []int{3}}}, "column C is outside A:B in old.xlsx"},
		{"row beyond", Set{"staff": {KeyRows: []int{3}}}, "row 3 is outside 1:2 in old.xlsx"},
		{"sheet missing in old", Set{"extra": {KeyColumns: []int{1}}}, "sheet not found in old.xlsx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate(old, new)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidIndexSpec)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
