// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"

	"github.com/xuri/excelize/v2"

	"github.com/tfctl/xlsxdiff/internal/align"
	"github.com/tfctl/xlsxdiff/internal/celldiff"
	"github.com/tfctl/xlsxdiff/internal/textdiff"
	"github.com/tfctl/xlsxdiff/internal/workbook"
)

// Status classifies a tab.
type Status string

const (
	Unchanged Status = "unchanged"
	Changed   Status = "changed"
	Added     Status = "added"
	Removed   Status = "removed"
)

// CellChange is a changed cell at matched coordinates. All coordinates are
// 0-based.
type CellChange struct {
	OldRow, OldCol int
	NewRow, NewCol int
	Diff           celldiff.Diff
}

// Stats are per-tab counters.
type Stats struct {
	RowsMatched   int `json:"rows_matched"`
	RowsInserted  int `json:"rows_inserted"`
	RowsDeleted   int `json:"rows_deleted"`
	ColsMatched   int `json:"cols_matched"`
	ColsInserted  int `json:"cols_inserted"`
	ColsDeleted   int `json:"cols_deleted"`
	CellsCompared int `json:"cells_compared"`
	CellsChanged  int `json:"cells_changed"`
}

// Tab is the diff of one sheet. Added and Removed tabs carry no alignments.
type Tab struct {
	Name         string
	Status       Status
	Rows         align.Alignment
	Columns      align.Alignment
	RowsKeyed    bool
	ColumnsKeyed bool
	Changes      []CellChange
	Stats        Stats

	index map[[2]int]int
}

// NewAdded returns a tab present only in the new workbook.
func NewAdded(name string) *Tab {
	return &Tab{Name: name, Status: Added}
}

// NewRemoved returns a tab present only in the old workbook.
func NewRemoved(name string) *Tab {
	return &Tab{Name: name, Status: Removed}
}

// NewCompared assembles a tab from both alignments and the changed cells.
// compared is the number of matched cell pairs examined.
func NewCompared(name string, rows, cols align.Alignment, rowsKeyed, colsKeyed bool, changes []CellChange, compared int) *Tab {
	t := &Tab{
		Name:         name,
		Status:       Unchanged,
		Rows:         rows,
		Columns:      cols,
		RowsKeyed:    rowsKeyed,
		ColumnsKeyed: colsKeyed,
		Changes:      changes,
		index:        make(map[[2]int]int, len(changes)),
	}
	for i, c := range changes {
		t.index[[2]int{c.OldRow, c.OldCol}] = i
	}

	t.Stats.RowsMatched, t.Stats.RowsInserted, t.Stats.RowsDeleted = rows.Counts()
	t.Stats.ColsMatched, t.Stats.ColsInserted, t.Stats.ColsDeleted = cols.Counts()
	t.Stats.CellsCompared = compared
	t.Stats.CellsChanged = len(changes)

	if !rows.AllMatched() || !cols.AllMatched() || len(changes) > 0 {
		t.Status = Changed
	}
	return t
}

// Cell returns the diff for the matched pair at old coordinates. Pairs that
// were compared and found equal, or never compared, report Unchanged.
func (t *Tab) Cell(oldRow, oldCol int) celldiff.Diff {
	if i, ok := t.index[[2]int{oldRow, oldCol}]; ok {
		return t.Changes[i].Diff
	}
	return celldiff.Diff{}
}

// Report is the complete result of one run.
type Report struct {
	Old  string
	New  string
	Mode workbook.Mode
	Tabs []*Tab
}

// Tab returns the tab named name.
func (r *Report) Tab(name string) (*Tab, bool) {
	for _, t := range r.Tabs {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Changed reports whether any tab differs.
func (r *Report) Changed() bool {
	for _, t := range r.Tabs {
		if t.Status != Unchanged {
			return true
		}
	}
	return false
}

// SummaryRow is the per-tab line shown by the summary output.
type SummaryRow struct {
	Sheet         string `json:"sheet" yaml:"sheet"`
	Status        Status `json:"status" yaml:"status"`
	RowsInserted  int    `json:"rows_inserted" yaml:"rows_inserted"`
	RowsDeleted   int    `json:"rows_deleted" yaml:"rows_deleted"`
	ColsInserted  int    `json:"cols_inserted" yaml:"cols_inserted"`
	ColsDeleted   int    `json:"cols_deleted" yaml:"cols_deleted"`
	CellsChanged  int    `json:"cells_changed" yaml:"cells_changed"`
	CellsCompared int    `json:"cells_compared" yaml:"cells_compared"`
}

// SummaryRows returns one row per tab in report order.
func (r *Report) SummaryRows() []SummaryRow {
	out := make([]SummaryRow, 0, len(r.Tabs))
	for _, t := range r.Tabs {
		out = append(out, SummaryRow{
			Sheet:         t.Name,
			Status:        t.Status,
			RowsInserted:  t.Stats.RowsInserted,
			RowsDeleted:   t.Stats.RowsDeleted,
			ColsInserted:  t.Stats.ColsInserted,
			ColsDeleted:   t.Stats.ColsDeleted,
			CellsChanged:  t.Stats.CellsChanged,
			CellsCompared: t.Stats.CellsCompared,
		})
	}
	return out
}

type cellDoc struct {
	OldCell string           `json:"old_cell"`
	NewCell string           `json:"new_cell"`
	Old     string           `json:"old"`
	New     string           `json:"new"`
	Script  *textdiff.Script `json:"segments,omitempty"`
}

type tabDoc struct {
	Sheet        string          `json:"sheet"`
	Status       Status          `json:"status"`
	RowsKeyed    bool            `json:"rows_keyed"`
	ColumnsKeyed bool            `json:"columns_keyed"`
	Stats        *Stats          `json:"stats,omitempty"`
	Rows         align.Alignment `json:"rows,omitempty"`
	Columns      align.Alignment `json:"columns,omitempty"`
	Cells        []cellDoc       `json:"cells,omitempty"`
}

// MarshalJSON writes the full report including alignments and segments.
func (r *Report) MarshalJSON() ([]byte, error) {
	doc := struct {
		Old  string   `json:"old"`
		New  string   `json:"new"`
		Mode string   `json:"mode"`
		Tabs []tabDoc `json:"tabs"`
	}{Old: r.Old, New: r.New, Mode: r.Mode.String(), Tabs: make([]tabDoc, 0, len(r.Tabs))}

	for _, t := range r.Tabs {
		td := tabDoc{
			Sheet:        t.Name,
			Status:       t.Status,
			RowsKeyed:    t.RowsKeyed,
			ColumnsKeyed: t.ColumnsKeyed,
			Rows:         t.Rows,
			Columns:      t.Columns,
		}
		if t.Status == Changed || t.Status == Unchanged {
			stats := t.Stats
			td.Stats = &stats
		}
		for _, c := range t.Changes {
			td.Cells = append(td.Cells, cellDoc{
				OldCell: cellName(c.OldCol, c.OldRow),
				NewCell: cellName(c.NewCol, c.NewRow),
				Old:     c.Diff.Old,
				New:     c.Diff.New,
				Script:  c.Diff.Script,
			})
		}
		doc.Tabs = append(doc.Tabs, td)
	}
	return json.Marshal(doc)
}

func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return ""
	}
	return name
}
