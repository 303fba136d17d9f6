// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package workbook

// Kind tags the content type of a Cell. The set is closed; callers switch on it
// exhaustively.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindNumber
	KindText
	KindBool
	KindDate
	KindFormula
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindFormula:
		return "formula"
	}
	return "unknown"
}

// Mode selects which facet of a cell is compared.
type Mode uint8

const (
	// ModeValue compares the display text of the (computed) value.
	ModeValue Mode = iota
	// ModeFormula compares formula source text. Cells without a formula fall
	// back to their value.
	ModeFormula
)

func (m Mode) String() string {
	if m == ModeFormula {
		return "formula"
	}
	return "value"
}

// Cell is a single grid cell.
//
// Display is the value as the user sees it; for formula cells it is the
// cached computed value. Formula carries the source text including the
// leading "=" and Result the kind of the computed value.
type Cell struct {
	Kind    Kind
	Display string
	Formula string
	Result  Kind
}

// Empty is the zero cell.
var Empty = Cell{}

// Text returns a text cell, or Empty when s is "".
func Text(s string) Cell {
	if s == "" {
		return Empty
	}
	return Cell{Kind: KindText, Display: s}
}

// Number returns a numeric cell shown as display.
func Number(display string) Cell {
	return Cell{Kind: KindNumber, Display: display}
}

// Bool returns a boolean cell.
func Bool(v bool) Cell {
	if v {
		return Cell{Kind: KindBool, Display: "TRUE"}
	}
	return Cell{Kind: KindBool, Display: "FALSE"}
}

// Date returns a date cell shown as display.
func Date(display string) Cell {
	return Cell{Kind: KindDate, Display: display}
}

// Formula returns a formula cell. A missing "=" prefix is added.
func Formula(formula, display string, result Kind) Cell {
	if formula != "" && formula[0] != '=' {
		formula = "=" + formula
	}
	return Cell{Kind: KindFormula, Display: display, Formula: formula, Result: result}
}

// IsEmpty reports whether the cell holds nothing at all.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty || (c.Kind != KindFormula && c.Display == "")
}

// Content returns the string compared under mode.
func (c Cell) Content(mode Mode) string {
	if mode == ModeFormula && c.Kind == KindFormula && c.Formula != "" {
		return c.Formula
	}
	return c.Display
}

// Textual reports whether Content(mode) is free text that can be diffed at
// the substring level. Numbers, booleans and dates are atomic.
func (c Cell) Textual(mode Mode) bool {
	switch c.Kind {
	case KindEmpty, KindText:
		return true
	case KindNumber, KindBool, KindDate:
		return false
	case KindFormula:
		if mode == ModeFormula && c.Formula != "" {
			return true
		}
		switch c.Result {
		case KindEmpty, KindText:
			return true
		case KindNumber, KindBool, KindDate, KindFormula:
			return false
		}
	}
	return false
}
