// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tfctl/xlsxdiff/internal/align"
	"github.com/tfctl/xlsxdiff/internal/celldiff"
	"github.com/tfctl/xlsxdiff/internal/log"
	"github.com/tfctl/xlsxdiff/internal/report"
	"github.com/tfctl/xlsxdiff/internal/textdiff"
	"github.com/tfctl/xlsxdiff/internal/workbook"
)

// Options mirror the -x, -a and -e flags.
type Options struct {
	// Highlight fills the first cell of every changed row and column.
	Highlight bool
	// AutoFilter adds a row 1 autofilter to changed tabs. Needs Highlight.
	AutoFilter bool
	// NoEmpty skips cells that have no content on either side.
	NoEmpty bool
}

type writer struct {
	f      *excelize.File
	styles *styles
	opts   Options
	mode   workbook.Mode
}

// Write renders rep to path. old and new must be the workbooks rep was
// built from.
func Write(rep *report.Report, old, new *workbook.Workbook, path string, opts Options) error {
	start := time.Now()
	f := excelize.NewFile()
	defer f.Close()

	w := &writer{f: f, styles: newStyles(f), opts: opts, mode: rep.Mode}
	for i, tab := range rep.Tabs {
		if err := w.addSheet(i, tab.Name); err != nil {
			return fmt.Errorf("cannot add sheet %q: %w", tab.Name, err)
		}

		var err error
		switch tab.Status {
		case report.Added:
			sheet, _ := new.Sheet(tab.Name)
			err = w.copySheet(tab.Name, sheet, fontAdded, TabAdded)
		case report.Removed:
			sheet, _ := old.Sheet(tab.Name)
			err = w.copySheet(tab.Name, sheet, fontRemoved, TabRemoved)
		case report.Changed, report.Unchanged:
			oldSh, _ := old.Sheet(tab.Name)
			newSh, _ := new.Sheet(tab.Name)
			err = w.diffSheet(tab, oldSh, newSh)
		}
		if err != nil {
			return fmt.Errorf("cannot render sheet %q: %w", tab.Name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("cannot save %s: %w", path, err)
	}
	log.Infof("saved %s (%s)", path, time.Since(start))
	return nil
}

func (w *writer) addSheet(i int, name string) error {
	if i == 0 {
		return w.f.SetSheetName(w.f.GetSheetName(0), name)
	}
	_, err := w.f.NewSheet(name)
	return err
}

func (w *writer) tabColor(sheet, rgb string) error {
	return w.f.SetSheetProps(sheet, &excelize.SheetPropsOptions{TabColorRGB: &rgb})
}

// copySheet writes a sheet that exists on one side only.
func (w *writer) copySheet(name string, sheet *workbook.Sheet, font fontKind, color string) error {
	if err := w.tabColor(name, color); err != nil {
		return err
	}
	id, err := w.styles.id(styleKey{font: font})
	if err != nil {
		return err
	}

	for c := 1; c <= sheet.ColumnCount(); c++ {
		if err := w.colWidth(name, c, sheet.ColumnWidth(c)); err != nil {
			return err
		}
	}
	for r := 1; r <= sheet.RowCount(); r++ {
		for c := 1; c <= sheet.ColumnCount(); c++ {
			text := sheet.Cell(r, c).Content(w.mode)
			if text == "" && w.opts.NoEmpty {
				continue
			}
			if err := w.put(name, r, c, text, nil, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// cellPlan is what goes into one output cell.
type cellPlan struct {
	text  string
	runs  []excelize.RichTextRun
	style styleKey
}

func (p cellPlan) empty() bool {
	return p.text == "" && len(p.runs) == 0
}

func (w *writer) diffSheet(tab *report.Tab, oldSh, newSh *workbook.Sheet) error {
	color := TabUnchanged
	if tab.Status == report.Changed {
		color = TabChanged
	}
	if err := w.tabColor(tab.Name, color); err != nil {
		return err
	}

	rowChanged := make([]bool, len(tab.Rows))
	colChanged := make([]bool, len(tab.Columns))
	if w.opts.Highlight {
		for i, re := range tab.Rows {
			for j, ce := range tab.Columns {
				if changedAt(tab, re, ce) {
					rowChanged[i], colChanged[j] = true, true
				}
			}
		}
	}

	for j, ce := range tab.Columns {
		width := 0.0
		if ce.Old >= 0 {
			width = oldSh.ColumnWidth(ce.Old + 1)
		}
		if ce.New >= 0 {
			width = max(width, newSh.ColumnWidth(ce.New+1))
		}
		if err := w.colWidth(tab.Name, j+1, max(width, minColWidth)); err != nil {
			return err
		}
	}

	for i, re := range tab.Rows {
		for j, ce := range tab.Columns {
			p := w.plan(tab, oldSh, newSh, re, ce)
			if p.empty() && w.opts.NoEmpty {
				continue
			}
			if (j == 0 && rowChanged[i]) || (i == 0 && colChanged[j]) {
				p.style.fill = FillModified
			}
			id, err := w.styles.id(p.style)
			if err != nil {
				return err
			}
			if err := w.put(tab.Name, i+1, j+1, p.text, p.runs, id); err != nil {
				return err
			}
		}
	}

	if tab.Status == report.Changed && w.opts.Highlight && w.opts.AutoFilter && len(tab.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(tab.Columns), 1)
		if err := w.f.AutoFilter(tab.Name, "A1:"+last, nil); err != nil {
			return err
		}
	}
	return nil
}

func changedAt(tab *report.Tab, re, ce align.Entry) bool {
	if re.Op != align.Matched || ce.Op != align.Matched {
		return true
	}
	return tab.Cell(re.Old, ce.Old).Changed
}

// plan decides content and style for the output cell at (re, ce). Row status
// wins over column status. Structural fills are only used on keyed axes.
func (w *writer) plan(tab *report.Tab, oldSh, newSh *workbook.Sheet, re, ce align.Entry) cellPlan {
	oldText := func() string {
		if re.Old < 0 || ce.Old < 0 {
			return ""
		}
		return oldSh.Cell(re.Old+1, ce.Old+1).Content(w.mode)
	}
	newText := func() string {
		if re.New < 0 || ce.New < 0 {
			return ""
		}
		return newSh.Cell(re.New+1, ce.New+1).Content(w.mode)
	}
	fill := func(keyed bool, color string) string {
		if keyed {
			return color
		}
		return ""
	}

	switch {
	case re.Op == align.Deleted:
		return cellPlan{text: oldText(), style: styleKey{fill: fill(tab.RowsKeyed, FillDeleted), font: fontRemoved}}
	case re.Op == align.Inserted:
		return cellPlan{text: newText(), style: styleKey{fill: fill(tab.RowsKeyed, FillInserted), font: fontAdded}}
	case ce.Op == align.Deleted:
		return cellPlan{text: oldText(), style: styleKey{fill: fill(tab.ColumnsKeyed, FillDeleted), font: fontRemoved}}
	case ce.Op == align.Inserted:
		return cellPlan{text: newText(), style: styleKey{fill: fill(tab.ColumnsKeyed, FillInserted), font: fontAdded}}
	}

	d := tab.Cell(re.Old, ce.Old)
	if !d.Changed {
		return cellPlan{text: newText(), style: styleKey{fill: FillUnchanged}}
	}
	return cellPlan{runs: richRuns(d), style: styleKey{fill: FillModified}}
}

// richRuns renders a changed cell. Without a script the whole old value is
// removed and the whole new value inserted.
func richRuns(d celldiff.Diff) []excelize.RichTextRun {
	var runs []excelize.RichTextRun
	add := func(op textdiff.Op, text string) {
		if text == "" {
			return
		}
		run := excelize.RichTextRun{Text: text}
		switch op {
		case textdiff.Inserted:
			run.Font = fontAdded.font()
		case textdiff.Removed:
			run.Font = fontRemoved.font()
		}
		runs = append(runs, run)
	}

	if d.Script == nil {
		add(textdiff.Removed, d.Old)
		add(textdiff.Inserted, d.New)
		return runs
	}
	for seg := range d.Script.Segments() {
		add(seg.Op, seg.Text)
	}
	return runs
}

func (w *writer) put(sheet string, row, col int, text string, runs []excelize.RichTextRun, style int) error {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	switch {
	case len(runs) > 0:
		err = w.f.SetCellRichText(sheet, ref, runs)
	case text != "":
		err = w.f.SetCellStr(sheet, ref, text)
	}
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(sheet, ref, ref, style)
}

func (w *writer) colWidth(sheet string, col int, width float64) error {
	if width <= 0 {
		return nil
	}
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	return w.f.SetColWidth(sheet, name, name, width)
}
