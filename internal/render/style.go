// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"github.com/xuri/excelize/v2"
)

// Tab colors.
const (
	TabUnchanged = "808080"
	TabChanged   = "FFC000"
	TabAdded     = "0000FF"
	TabRemoved   = "FF0000"
)

// Cell fills.
const (
	FillInserted  = "DDEBF7"
	FillDeleted   = "F8CBAD"
	FillModified  = "A9D171"
	FillUnchanged = "C0C0C0"
)

const (
	colorAdded   = "0000FF"
	colorRemoved = "FF0000"
	minColWidth  = 2
)

type fontKind uint8

const (
	fontPlain fontKind = iota
	fontAdded
	fontRemoved
)

func (k fontKind) font() *excelize.Font {
	switch k {
	case fontAdded:
		return &excelize.Font{Color: colorAdded, Bold: true, Underline: "single"}
	case fontRemoved:
		return &excelize.Font{Color: colorRemoved, Bold: true, Strike: true}
	}
	return nil
}

type styleKey struct {
	fill string
	font fontKind
}

// styles creates each distinct cell style once per file.
type styles struct {
	f   *excelize.File
	ids map[styleKey]int
}

func newStyles(f *excelize.File) *styles {
	return &styles{f: f, ids: map[styleKey]int{}}
}

func (s *styles) id(k styleKey) (int, error) {
	if id, ok := s.ids[k]; ok {
		return id, nil
	}

	st := &excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Font:      k.font.font(),
	}
	if k.fill != "" {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{k.fill}}
	}

	id, err := s.f.NewStyle(st)
	if err != nil {
		return 0, err
	}
	s.ids[k] = id
	return id, nil
}
