// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package indexspec

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tfctl/xlsxdiff/internal/log"
	"github.com/tfctl/xlsxdiff/internal/workbook"
)

// Axis is the dimension being aligned.
type Axis uint8

const (
	// Rows aligns rows; keys are read from columns.
	Rows Axis = iota
	// Columns aligns columns; keys are read from rows.
	Columns
)

func (a Axis) String() string {
	if a == Columns {
		return "columns"
	}
	return "rows"
}

// Spec is the index specification for one sheet. KeyColumns (1-based) form
// row keys; KeyRows (1-based) form column keys. Either may be empty, meaning
// positional alignment on that axis.
type Spec struct {
	KeyColumns []int
	KeyRows    []int
}

// For returns the key coordinates used to align axis.
func (s Spec) For(axis Axis) []int {
	if axis == Columns {
		return s.KeyRows
	}
	return s.KeyColumns
}

// Set maps sheet names to their specs.
type Set map[string]Spec

// Sheets returns the sheet names in sorted order.
func (s Set) Sheets() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build parses the -c (row index) and -r (column index) arguments. An
// argument without a SHEET! prefix continues the sheet of the preceding
// argument, so "staff!B,C" survives being split on commas by a flag parser.
// The first -r argument may continue the sheet of the last -c argument.
func Build(columnArgs, rowArgs []string) (Set, error) {
	set := Set{}

	last := ""
	for _, arg := range columnArgs {
		sheet, cols, err := parseArg(arg, last, parseColumn)
		if err != nil {
			return nil, err
		}
		spec := set[sheet]
		spec.KeyColumns = append(spec.KeyColumns, cols...)
		set[sheet] = spec
		last = sheet
	}

	for _, arg := range rowArgs {
		sheet, rows, err := parseArg(arg, last, parseRow)
		if err != nil {
			return nil, err
		}
		spec := set[sheet]
		spec.KeyRows = append(spec.KeyRows, rows...)
		set[sheet] = spec
		last = sheet
	}

	log.Debugf("index specs: %v", set)
	return set, nil
}

// ParseColumns parses a SHEET!COL[,COL...] argument.
func ParseColumns(arg string) (string, []int, error) {
	return parseArg(arg, "", parseColumn)
}

// ParseRows parses a SHEET!ROW[,ROW...] argument.
func ParseRows(arg string) (string, []int, error) {
	return parseArg(arg, "", parseRow)
}

func parseArg(arg string, carry string, item func(string) (int, error)) (string, []int, error) {
	arg = strings.TrimSpace(arg)
	sheet, list := carry, arg
	if i := strings.LastIndex(arg, "!"); i >= 0 {
		sheet, list = unquote(arg[:i]), arg[i+1:]
	}
	if sheet == "" {
		return "", nil, invalid("", arg, "missing sheet name (expected SHEET!LIST)")
	}
	if strings.TrimSpace(list) == "" {
		return "", nil, invalid(sheet, arg, "empty key list")
	}

	var out []int
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		ns, err := span(tok, item)
		if err != nil {
			return "", nil, invalid(sheet, arg, "%v", err)
		}
		out = append(out, ns...)
	}
	if len(out) == 0 {
		return "", nil, invalid(sheet, arg, "empty key list")
	}
	return sheet, out, nil
}

// span parses a single item or an inclusive FROM:TO range such as B:D or 2:4.
func span(tok string, item func(string) (int, error)) ([]int, error) {
	from, to, isRange := strings.Cut(tok, ":")
	lo, err := item(strings.TrimSpace(from))
	if err != nil || !isRange {
		return []int{lo}, err
	}
	hi, err := item(strings.TrimSpace(to))
	if err != nil {
		return nil, err
	}
	if hi < lo {
		return nil, fmt.Errorf("range %q runs backwards", tok)
	}
	out := make([]int, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		out = append(out, n)
	}
	return out, nil
}

func parseColumn(tok string) (int, error) {
	return excelize.ColumnNameToNumber(strings.ToUpper(tok))
}

func parseRow(tok string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("row %q must be a positive integer", tok)
	}
	return n, nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

// Validate checks every spec against both workbooks: the sheet must exist in
// each, and every key column/row must lie inside that sheet's used range.
func (s Set) Validate(old, new *workbook.Workbook) error {
	for _, name := range s.Sheets() {
		spec := s[name]
		for _, wb := range []*workbook.Workbook{old, new} {
			sh, ok := wb.Sheet(name)
			if !ok {
				return invalid(name, describe(name, spec), "sheet not found in %s", wb.Path)
			}
			for _, c := range spec.KeyColumns {
				if c < 1 || c > sh.ColumnCount() {
					col, _ := excelize.ColumnNumberToName(c)
					return invalid(name, describe(name, spec),
						"column %s is outside A:%s in %s", col, lastColumn(sh), wb.Path)
				}
			}
			for _, r := range spec.KeyRows {
				if r < 1 || r > sh.RowCount() {
					return invalid(name, describe(name, spec),
						"row %d is outside 1:%d in %s", r, sh.RowCount(), wb.Path)
				}
			}
		}
	}
	return nil
}

func lastColumn(sh *workbook.Sheet) string {
	if sh.ColumnCount() == 0 {
		return "-"
	}
	name, _ := excelize.ColumnNumberToName(sh.ColumnCount())
	return name
}

func describe(sheet string, spec Spec) string {
	var parts []string
	for _, c := range spec.KeyColumns {
		name, _ := excelize.ColumnNumberToName(c)
		parts = append(parts, name)
	}
	for _, r := range spec.KeyRows {
		parts = append(parts, strconv.Itoa(r))
	}
	return sheet + "!" + strings.Join(parts, ",")
}
