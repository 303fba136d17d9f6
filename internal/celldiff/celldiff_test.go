// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package celldiff

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/xlsxdiff/internal/textdiff"
	"github.com/tfctl/xlsxdiff/internal/workbook"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name       string
		old, new   workbook.Cell
		opts       Options
		changed    bool
		wantScript bool
	}{
		{"same text", workbook.Text("a"), workbook.Text("a"), Options{}, false, false},
		{"text change", workbook.Text("Hello world"), workbook.Text("Hello there world"), Options{}, true, true},
		{"number change", workbook.Number("10"), workbook.Number("20"), Options{}, true, false},
		{"number to text", workbook.Number("10"), workbook.Text("ten"), Options{}, true, false},
		{"empty to text", workbook.Empty, workbook.Text("new"), Options{}, true, true},
		{"bool change", workbook.Bool(true), workbook.Bool(false), Options{}, true, false},
		{"date change", workbook.Date("2024-01-01"), workbook.Date("2024-01-02"), Options{}, true, false},
		{
			"formula mode ignores value",
			workbook.Formula("=A1+B1", "10", workbook.KindNumber),
			workbook.Formula("=A1+B1", "20", workbook.KindNumber),
			Options{Mode: workbook.ModeFormula}, false, false,
		},
		{
			"value mode sees value",
			workbook.Formula("=A1+B1", "10", workbook.KindNumber),
			workbook.Formula("=A1+B1", "20", workbook.KindNumber),
			Options{}, true, false,
		},
		{
			"formula text is textual",
			workbook.Formula("=A1+B1", "10", workbook.KindNumber),
			workbook.Formula("=A1+B2", "10", workbook.KindNumber),
			Options{Mode: workbook.ModeFormula}, true, true,
		},
		{
			"formula mode falls back to value",
			workbook.Text("plain"),
			workbook.Text("plain"),
			Options{Mode: workbook.ModeFormula}, false, false,
		},
		{
			"formula with text result",
			workbook.Formula("=UPPER(A1)", "ABC", workbook.KindText),
			workbook.Formula("=UPPER(A1)", "ABD", workbook.KindText),
			Options{}, true, true,
		},
		{"ignore case", workbook.Text("Abc"), workbook.Text("aBC"), Options{IgnoreCase: true}, false, false},
		{"trim space", workbook.Text(" x "), workbook.Text("x"), Options{TrimSpace: true}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Compare(tt.old, tt.new, tt.opts)
			assert.Equal(t, tt.changed, d.Changed)
			assert.Equal(t, tt.wantScript, d.Script != nil)
		})
	}
}

func TestCompareScript(t *testing.T) {
	d := Compare(workbook.Text("Hello world"), workbook.Text("Hello there world"), Options{})
	require.NotNil(t, d.Script)
	assert.Equal(t, "Hello world", d.Old)
	assert.Equal(t, "Hello there world", d.New)
	assert.Equal(t, []textdiff.Segment{
		{Op: textdiff.Equal, Text: "Hello "},
		{Op: textdiff.Inserted, Text: "there "},
		{Op: textdiff.Equal, Text: "world"},
	}, slices.Collect(d.Script.Segments()))
}
