// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"runtime"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/tfctl/xlsxdiff/internal/align"
	"github.com/tfctl/xlsxdiff/internal/celldiff"
	"github.com/tfctl/xlsxdiff/internal/indexspec"
	"github.com/tfctl/xlsxdiff/internal/keys"
	"github.com/tfctl/xlsxdiff/internal/report"
	"github.com/tfctl/xlsxdiff/internal/workbook"
)

// Options configures a run.
type Options struct {
	// Specs holds the per-sheet index specs. They are validated against both
	// workbooks even when NoStructure is set.
	Specs indexspec.Set
	// NoStructure aligns every axis by position.
	NoStructure bool
	// Jobs bounds the number of sheets diffed at once. Zero means GOMAXPROCS.
	Jobs int
	Cell celldiff.Options
}

// Diff compares old against new.
func Diff(ctx context.Context, old, new *workbook.Workbook, opts Options) (*report.Report, error) {
	log.Debugf(">> differ.Diff()")

	if err := opts.Specs.Validate(old, new); err != nil {
		return nil, err
	}

	names := tabOrder(old, new)
	tabs := make([]*report.Tab, len(names))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, name := range names {
		oldSh, inOld := old.Sheet(name)
		newSh, inNew := new.Sheet(name)
		switch {
		case !inNew:
			tabs[i] = report.NewRemoved(name)
			continue
		case !inOld:
			tabs[i] = report.NewAdded(name)
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tabs[i] = diffSheet(oldSh, newSh, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &report.Report{Old: old.Path, New: new.Path, Mode: opts.Cell.Mode, Tabs: tabs}, nil
}

// tabOrder lists old sheet names followed by names only in new.
func tabOrder(old, new *workbook.Workbook) []string {
	names := old.SheetNames()
	for _, name := range new.SheetNames() {
		if _, ok := old.Sheet(name); !ok {
			names = append(names, name)
		}
	}
	return names
}

func diffSheet(oldSh, newSh *workbook.Sheet, opts Options) *report.Tab {
	start := time.Now()
	name := oldSh.Name

	var keyCols, keyRows []int
	if !opts.NoStructure {
		spec := opts.Specs[name]
		keyCols, keyRows = spec.KeyColumns, spec.KeyRows
	}

	var rows, cols align.Alignment
	var g errgroup.Group
	g.Go(func() error {
		rows = alignAxis(oldSh, newSh, indexspec.Rows, keyCols, opts.Cell)
		return nil
	})
	g.Go(func() error {
		cols = alignAxis(oldSh, newSh, indexspec.Columns, keyRows, opts.Cell)
		return nil
	})
	_ = g.Wait()

	rowPairs, colPairs := rows.Matches(), cols.Matches()
	var changes []report.CellChange
	for _, r := range rowPairs {
		for _, c := range colPairs {
			d := celldiff.Compare(oldSh.Cell(r.Old+1, c.Old+1), newSh.Cell(r.New+1, c.New+1), opts.Cell)
			if d.Changed {
				changes = append(changes, report.CellChange{
					OldRow: r.Old, OldCol: c.Old,
					NewRow: r.New, NewCol: c.New,
					Diff: d,
				})
			}
		}
	}
	compared := len(rowPairs) * len(colPairs)

	tab := report.NewCompared(name, rows, cols, len(keyCols) > 0, len(keyRows) > 0, changes, compared)
	log.Infof("sheet %q: %s, %s of %s cells changed (%s)", name, tab.Status,
		humanize.Comma(int64(len(changes))), humanize.Comma(int64(compared)), time.Since(start))
	return tab
}

func alignAxis(oldSh, newSh *workbook.Sheet, axis indexspec.Axis, coords []int, opts celldiff.Options) align.Alignment {
	if len(coords) == 0 {
		if axis == indexspec.Rows {
			return align.Positional(oldSh.RowCount(), newSh.RowCount())
		}
		return align.Positional(oldSh.ColumnCount(), newSh.ColumnCount())
	}
	return align.Keyed(
		keys.Extract(oldSh, axis, coords, opts.Mode),
		keys.Extract(newSh, axis, coords, opts.Mode),
	)
}
