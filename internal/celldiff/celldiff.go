// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package celldiff

import (
	"strings"

	"github.com/tfctl/xlsxdiff/internal/textdiff"
	"github.com/tfctl/xlsxdiff/internal/workbook"
)

// Options controls what counts as a change.
type Options struct {
	Mode       workbook.Mode
	Text       textdiff.Options
	IgnoreCase bool
	TrimSpace  bool
}

// Diff is the outcome for one cell pair. Script is nil for unchanged cells
// and for changes where either side is a number, boolean or date.
type Diff struct {
	Changed bool
	Old     string
	New     string
	Script  *textdiff.Script
}

// Compare diffs old against new. Formula mode on a cell without a formula
// compares its displayed value.
func Compare(old, new workbook.Cell, opts Options) Diff {
	oc, nc := old.Content(opts.Mode), new.Content(opts.Mode)
	if normalize(oc, opts) == normalize(nc, opts) {
		return Diff{Old: oc, New: nc}
	}

	d := Diff{Changed: true, Old: oc, New: nc}
	if old.Textual(opts.Mode) && new.Textual(opts.Mode) {
		d.Script = textdiff.Diff(oc, nc, opts.Text)
	}
	return d
}

func normalize(s string, opts Options) string {
	if opts.TrimSpace {
		s = strings.TrimSpace(s)
	}
	if opts.IgnoreCase {
		s = strings.ToLower(s)
	}
	return s
}
