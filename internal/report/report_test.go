// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/tfctl/xlsxdiff/internal/align"
	"github.com/tfctl/xlsxdiff/internal/celldiff"
	"github.com/tfctl/xlsxdiff/internal/workbook"
)

func sample() *Report {
	change := celldiff.Compare(workbook.Text("Hello world"), workbook.Text("Hello there world"), celldiff.Options{})
	staff := NewCompared("staff",
		align.Alignment{{Op: align.Matched, Old: 0, New: 0}, {Op: align.Deleted, Old: 1, New: -1}, {Op: align.Matched, Old: 2, New: 1}, {Op: align.Inserted, Old: -1, New: 2}},
		align.Positional(2, 2), true, false,
		[]CellChange{{OldRow: 2, OldCol: 1, NewRow: 1, NewCol: 1, Diff: change}}, 4)
	same := NewCompared("same", align.Positional(1, 1), align.Positional(1, 1), false, false, nil, 1)
	return &Report{Old: "old.xlsx", New: "new.xlsx", Tabs: []*Tab{staff, same, NewRemoved("gone"), NewAdded("extra")}}
}

func TestTabStatus(t *testing.T) {
	r := sample()

	staff, ok := r.Tab("staff")
	require.True(t, ok)
	assert.Equal(t, Changed, staff.Status)
	assert.Equal(t, Stats{RowsMatched: 2, RowsInserted: 1, RowsDeleted: 1, ColsMatched: 2, CellsCompared: 4, CellsChanged: 1}, staff.Stats)
	assert.True(t, staff.Cell(2, 1).Changed)
	assert.False(t, staff.Cell(0, 0).Changed)

	same, _ := r.Tab("same")
	assert.Equal(t, Unchanged, same.Status)

	// Structure alone makes a tab changed.
	moved := NewCompared("moved", align.Positional(1, 2), align.Positional(1, 1), false, false, nil, 1)
	assert.Equal(t, Changed, moved.Status)

	_, ok = r.Tab("missing")
	assert.False(t, ok)
	assert.True(t, r.Changed())
	assert.False(t, (&Report{Tabs: []*Tab{same}}).Changed())
}

func TestSummaryRows(t *testing.T) {
	rows := sample().SummaryRows()
	require.Len(t, rows, 4)
	assert.Equal(t, SummaryRow{Sheet: "staff", Status: Changed, RowsInserted: 1, RowsDeleted: 1, CellsChanged: 1, CellsCompared: 4}, rows[0])
	assert.Equal(t, []Status{Changed, Unchanged, Removed, Added},
		[]Status{rows[0].Status, rows[1].Status, rows[2].Status, rows[3].Status})
}

func TestMarshalJSON(t *testing.T) {
	js, err := json.Marshal(sample())
	require.NoError(t, err)
	doc := string(js)

	assert.Equal(t, "value", gjson.Get(doc, "mode").String())
	assert.Equal(t, "staff", gjson.Get(doc, "tabs.0.sheet").String())
	assert.Equal(t, "deleted", gjson.Get(doc, "tabs.0.rows.1.op").String())
	assert.Equal(t, int64(-1), gjson.Get(doc, "tabs.0.rows.1.new").Int())
	assert.Equal(t, "B3", gjson.Get(doc, "tabs.0.cells.0.old_cell").String())
	assert.Equal(t, "B2", gjson.Get(doc, "tabs.0.cells.0.new_cell").String())
	assert.Equal(t, "there ", gjson.Get(doc, "tabs.0.cells.0.segments.1.text").String())
	assert.False(t, gjson.Get(doc, "tabs.2.stats").Exists())
	assert.Equal(t, "added", gjson.Get(doc, "tabs.3.status").String())
}
