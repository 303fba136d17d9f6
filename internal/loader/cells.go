// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tfctl/xlsxdiff/internal/workbook"
)

// readCell classifies one cell from its formula, formatted display and raw
// stored value.
func readCell(f *excelize.File, sheet, ref, formula, display, raw string, kinds *styleKinds) (workbook.Cell, error) {
	typ, err := f.GetCellType(sheet, ref)
	if err != nil {
		return workbook.Empty, err
	}

	kind := valueKind(typ, display, raw, func() bool { return kinds.isDate(sheet, ref) })
	if formula != "" {
		return workbook.Formula(formula, display, kind), nil
	}

	switch kind {
	case workbook.KindEmpty:
		return workbook.Empty, nil
	case workbook.KindNumber:
		return workbook.Number(display), nil
	case workbook.KindBool:
		return workbook.Bool(raw == "1" || strings.EqualFold(display, "TRUE")), nil
	case workbook.KindDate:
		return workbook.Date(display), nil
	case workbook.KindText, workbook.KindFormula:
		return workbook.Text(display), nil
	}
	return workbook.Text(display), nil
}

// valueKind maps excelize's stored type to a value kind. Numbers are usually
// stored untyped, so they are recognized by their raw value and dates by
// their number format.
func valueKind(typ excelize.CellType, display, raw string, isDate func() bool) workbook.Kind {
	switch typ {
	case excelize.CellTypeBool:
		return workbook.KindBool
	case excelize.CellTypeDate:
		return workbook.KindDate
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeError, excelize.CellTypeFormula:
		if display == "" && raw == "" {
			return workbook.KindEmpty
		}
		return workbook.KindText
	}

	if display == "" && raw == "" {
		return workbook.KindEmpty
	}
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		if isDate() {
			return workbook.KindDate
		}
		return workbook.KindNumber
	}
	return workbook.KindText
}

// styleKinds memoizes which style indexes carry a date number format.
type styleKinds struct {
	f     *excelize.File
	dates map[int]bool
}

func newStyleKinds(f *excelize.File) *styleKinds {
	return &styleKinds{f: f, dates: map[int]bool{}}
}

func (k *styleKinds) isDate(sheet, ref string) bool {
	idx, err := k.f.GetCellStyle(sheet, ref)
	if err != nil {
		return false
	}
	if v, ok := k.dates[idx]; ok {
		return v
	}
	v := false
	if st, err := k.f.GetStyle(idx); err == nil && st != nil {
		v = isDateFormat(st.NumFmt, st.CustomNumFmt)
	}
	k.dates[idx] = v
	return v
}

// isDateFormat reports whether a built-in format id or custom format code
// renders a date or time.
func isDateFormat(id int, custom *string) bool {
	if custom != nil && *custom != "" {
		return isDateCode(*custom)
	}
	switch {
	case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 45 && id <= 47, id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateCode looks for date/time tokens outside quoted literals, bracketed
// sections and escaped characters.
func isDateCode(code string) bool {
	var sb strings.Builder
	quoted, bracket := false, false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case quoted:
			quoted = ch != '"'
		case bracket:
			bracket = ch != ']'
		case ch == '"':
			quoted = true
		case ch == '[':
			bracket = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		default:
			sb.WriteByte(ch)
		}
	}
	s := strings.ToLower(sb.String())
	return strings.ContainsAny(s, "ydhms")
}
