// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package workbook

import "fmt"

// Workbook is an ordered mapping from unique sheet name to Sheet.
type Workbook struct {
	// Path is where the workbook was loaded from (file path or URI).
	Path   string
	names  []string
	sheets map[string]*Sheet
}

// New returns an empty workbook for path.
func New(path string) *Workbook {
	return &Workbook{Path: path, sheets: make(map[string]*Sheet)}
}

// Add appends s. Sheet names must be unique.
func (w *Workbook) Add(s *Sheet) error {
	if _, ok := w.sheets[s.Name]; ok {
		return fmt.Errorf("duplicate sheet name %q", s.Name)
	}
	w.names = append(w.names, s.Name)
	w.sheets[s.Name] = s
	return nil
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return append([]string(nil), w.names...)
}

// Sheet looks a sheet up by name.
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	s, ok := w.sheets[name]
	return s, ok
}

// Len is the number of sheets.
func (w *Workbook) Len() int { return len(w.names) }

// CellCount sums the addressable cells of all sheets.
func (w *Workbook) CellCount() int {
	n := 0
	for _, s := range w.sheets {
		n += s.CellCount()
	}
	return n
}
