// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package align

import (
	"fmt"
	"strings"

	"github.com/tfctl/xlsxdiff/internal/keys"
)

// Op classifies an alignment entry.
type Op uint8

const (
	Matched Op = iota
	Inserted
	Deleted
)

func (o Op) String() string {
	switch o {
	case Matched:
		return "matched"
	case Inserted:
		return "inserted"
	case Deleted:
		return "deleted"
	}
	return "unknown"
}

// MarshalText renders the op by name.
func (o Op) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Entry is one step of an alignment. Old and New are 0-based; the side an
// entry does not have is -1.
type Entry struct {
	Op  Op  `json:"op"`
	Old int `json:"old"`
	New int `json:"new"`
}

func (e Entry) String() string {
	switch e.Op {
	case Matched:
		return fmt.Sprintf("M(%d,%d)", e.Old, e.New)
	case Inserted:
		return fmt.Sprintf("I(%d)", e.New)
	case Deleted:
		return fmt.Sprintf("D(%d)", e.Old)
	}
	return "?"
}

// Alignment is the full entry sequence for one axis.
type Alignment []Entry

func (a Alignment) String() string {
	parts := make([]string, len(a))
	for i, e := range a {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// Counts returns the number of matched, inserted and deleted entries.
func (a Alignment) Counts() (matched, inserted, deleted int) {
	for _, e := range a {
		switch e.Op {
		case Matched:
			matched++
		case Inserted:
			inserted++
		case Deleted:
			deleted++
		}
	}
	return
}

// AllMatched reports whether every entry is Matched.
func (a Alignment) AllMatched() bool {
	for _, e := range a {
		if e.Op != Matched {
			return false
		}
	}
	return true
}

// Matches returns only the Matched entries, in order.
func (a Alignment) Matches() []Entry {
	var out []Entry
	for _, e := range a {
		if e.Op == Matched {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks that every old index in [0,nOld) and every new index in
// [0,nNew) appears in exactly one entry.
func (a Alignment) Validate(nOld, nNew int) error {
	seenOld := make([]bool, nOld)
	seenNew := make([]bool, nNew)
	mark := func(seen []bool, i int, side string, e Entry) error {
		if i < 0 || i >= len(seen) {
			return fmt.Errorf("%s: %s index %d out of range", e, side, i)
		}
		if seen[i] {
			return fmt.Errorf("%s: %s index %d used twice", e, side, i)
		}
		seen[i] = true
		return nil
	}
	for _, e := range a {
		if e.Op != Inserted {
			if err := mark(seenOld, e.Old, "old", e); err != nil {
				return err
			}
		}
		if e.Op != Deleted {
			if err := mark(seenNew, e.New, "new", e); err != nil {
				return err
			}
		}
	}
	for i, ok := range seenOld {
		if !ok {
			return fmt.Errorf("old index %d missing", i)
		}
	}
	for i, ok := range seenNew {
		if !ok {
			return fmt.Errorf("new index %d missing", i)
		}
	}
	return nil
}

// Positional pairs item i with item i over the shared prefix; the longer
// side's tail is Inserted or Deleted.
func Positional(nOld, nNew int) Alignment {
	out := make(Alignment, 0, max(nOld, nNew))
	for i := range min(nOld, nNew) {
		out = append(out, Entry{Op: Matched, Old: i, New: i})
	}
	for i := nOld; i < nNew; i++ {
		out = append(out, Entry{Op: Inserted, Old: -1, New: i})
	}
	for i := nNew; i < nOld; i++ {
		out = append(out, Entry{Op: Deleted, Old: i, New: -1})
	}
	return out
}

// Keyed pairs items with equal keys. Within a key group the k-th old item
// pairs with the k-th new item. Entry indices are slice positions in old and
// new.
func Keyed(old, new []keys.Keyed) Alignment {
	queues := make(map[string][]int, len(old))
	for i, k := range old {
		enc := k.Key.Encode()
		queues[enc] = append(queues[enc], i)
	}

	matchedOld := make([]bool, len(old))
	body := make(Alignment, 0, len(new))
	for j, k := range new {
		enc := k.Key.Encode()
		if q := queues[enc]; len(q) > 0 {
			i := q[0]
			queues[enc] = q[1:]
			matchedOld[i] = true
			body = append(body, Entry{Op: Matched, Old: i, New: j})
			continue
		}
		body = append(body, Entry{Op: Inserted, Old: -1, New: j})
	}

	// Each unmatched old item is anchored to the next matched old item.
	anchored := make(map[int][]int)
	var pending []int
	for i := range old {
		if !matchedOld[i] {
			pending = append(pending, i)
			continue
		}
		if len(pending) > 0 {
			anchored[i] = pending
			pending = nil
		}
	}
	trailing := pending

	out := make(Alignment, 0, len(body)+len(old))
	for _, e := range body {
		if e.Op == Matched {
			for _, i := range anchored[e.Old] {
				out = append(out, Entry{Op: Deleted, Old: i, New: -1})
			}
		}
		out = append(out, e)
	}
	for _, i := range trailing {
		out = append(out, Entry{Op: Deleted, Old: i, New: -1})
	}
	return out
}
