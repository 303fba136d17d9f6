// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package textdiff

import (
	"encoding/json"
	"iter"
	"strings"
)

// Op tags a segment.
type Op int8

const (
	Removed  Op = -1
	Equal    Op = 0
	Inserted Op = 1
)

func (o Op) String() string {
	switch o {
	case Removed:
		return "removed"
	case Inserted:
		return "inserted"
	}
	return "equal"
}

// Segment is one run of an edit script.
type Segment struct {
	Op   Op
	Text string
}

// span addresses a segment by byte offsets into old (Equal, Removed) or new
// (Inserted).
type span struct {
	op       Op
	from, to int
}

// Script is an immutable edit script from Old to New.
type Script struct {
	old, new string
	spans    []span
}

// Old returns the source string.
func (s *Script) Old() string { return s.old }

// New returns the target string.
func (s *Script) New() string { return s.new }

// Len returns the number of segments.
func (s *Script) Len() int { return len(s.spans) }

// Changed reports whether the script has any non-Equal segment.
func (s *Script) Changed() bool {
	for _, sp := range s.spans {
		if sp.op != Equal {
			return true
		}
	}
	return false
}

// Segments yields the script in order. The sequence can be ranged over any
// number of times.
func (s *Script) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for _, sp := range s.spans {
			if !yield(s.segment(sp)) {
				return
			}
		}
	}
}

func (s *Script) segment(sp span) Segment {
	if sp.op == Inserted {
		return Segment{Op: Inserted, Text: s.new[sp.from:sp.to]}
	}
	return Segment{Op: sp.op, Text: s.old[sp.from:sp.to]}
}

func (s *Script) String() string {
	var sb strings.Builder
	for seg := range s.Segments() {
		switch seg.Op {
		case Removed:
			sb.WriteString("[-" + seg.Text + "-]")
		case Inserted:
			sb.WriteString("{+" + seg.Text + "+}")
		default:
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}

type segmentDoc struct {
	Op   string `json:"op" yaml:"op"`
	Text string `json:"text" yaml:"text"`
}

func (s *Script) docs() []segmentDoc {
	out := make([]segmentDoc, 0, len(s.spans))
	for seg := range s.Segments() {
		out = append(out, segmentDoc{Op: seg.Op.String(), Text: seg.Text})
	}
	return out
}

// MarshalJSON encodes the script as a list of {op, text} objects.
func (s *Script) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.docs())
}

// MarshalYAML encodes the script the same way as MarshalJSON.
func (s *Script) MarshalYAML() (interface{}, error) {
	return s.docs(), nil
}

// builder assembles spans from a walk over both strings, merging adjacent
// runs and emitting each change block as Removed followed by Inserted.
type builder struct {
	spans    []span
	oi, ni   int
	rem, ins span
	pending  bool
}

func (b *builder) equal(n int) {
	if n == 0 {
		return
	}
	b.flush()
	if k := len(b.spans) - 1; k >= 0 && b.spans[k].op == Equal && b.spans[k].to == b.oi {
		b.spans[k].to += n
	} else {
		b.spans = append(b.spans, span{op: Equal, from: b.oi, to: b.oi + n})
	}
	b.oi += n
	b.ni += n
}

func (b *builder) remove(n int) {
	if n == 0 {
		return
	}
	b.open()
	b.rem.to += n
	b.oi += n
}

func (b *builder) insert(n int) {
	if n == 0 {
		return
	}
	b.open()
	b.ins.to += n
	b.ni += n
}

func (b *builder) open() {
	if b.pending {
		return
	}
	b.pending = true
	b.rem = span{op: Removed, from: b.oi, to: b.oi}
	b.ins = span{op: Inserted, from: b.ni, to: b.ni}
}

func (b *builder) flush() {
	if !b.pending {
		return
	}
	if b.rem.to > b.rem.from {
		b.spans = append(b.spans, b.rem)
	}
	if b.ins.to > b.ins.from {
		b.spans = append(b.spans, b.ins)
	}
	b.pending = false
}

func (b *builder) script(old, new string) *Script {
	b.flush()
	return &Script{old: old, new: new, spans: b.spans}
}
