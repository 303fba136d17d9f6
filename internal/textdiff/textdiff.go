// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package textdiff

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/tfctl/xlsxdiff/internal/log"
)

// Algorithm selects the diff implementation.
type Algorithm string

const (
	LCS      Algorithm = "lcs"
	Ratcliff Algorithm = "ratcliff"
	Semantic Algorithm = "semantic"
)

// Algorithms lists the accepted --algorithm values.
var Algorithms = []Algorithm{LCS, Ratcliff, Semantic}

// ParseAlgorithm maps a flag value to an Algorithm. "" means LCS.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return LCS, nil
	case LCS, Ratcliff, Semantic:
		return a, nil
	}
	return "", fmt.Errorf("unknown diff algorithm %q (want one of %v)", s, Algorithms)
}

// DefaultMaxCells bounds the size of the table the full LCS pass keeps in
// memory. Larger pairs are split until each piece fits.
const DefaultMaxCells = 1 << 20

// Options tunes Diff. The zero value is LCS with DefaultMaxCells.
type Options struct {
	Algorithm Algorithm
	MaxCells  int
}

// Diff returns the edit script turning old into new.
func Diff(old, new string, opts Options) *Script {
	switch opts.Algorithm {
	case Ratcliff:
		return ratcliff(old, new)
	case Semantic:
		return semantic(old, new)
	}
	limit := opts.MaxCells
	if limit <= 0 {
		limit = DefaultMaxCells
	}
	return lcs(old, new, limit)
}

func lcs(old, new string, limit int) *Script {
	var b builder
	if old == new {
		b.equal(len(old))
		return b.script(old, new)
	}

	a, c := runeUnits(old), runeUnits(new)
	if fits(len(a), len(c), limit) {
		apply(&b, a, c, editOps(a, c))
		return b.script(old, new)
	}

	// Strip the shared ends and split the middle.
	p := 0
	for p < len(a) && p < len(c) && a[p] == c[p] {
		p++
	}
	s := 0
	for s < len(a)-p && s < len(c)-p && a[len(a)-1-s] == c[len(c)-1-s] {
		s++
	}
	ma, mc := a[p:len(a)-s], c[p:len(c)-s]
	log.Debugf("textdiff: %d x %d runes over limit, splitting", len(ma), len(mc))

	b.equal(width(a[:p]))
	apply(&b, ma, mc, splitOps(ma, mc, limit, make([]Op, 0, len(ma)+len(mc))))
	b.equal(width(a[len(a)-s:]))
	return b.script(old, new)
}

// splitOps appends a minimal edit script for a and c to ops without holding
// more than limit table cells. a is halved and c is cut where the LCS of the
// two halves sums to the LCS of the whole; pieces that fit go through editOps.
func splitOps(a, c []string, limit int, ops []Op) []Op {
	n, m := len(a), len(c)
	if n <= 1 || m == 0 || fits(n, m, limit) {
		return append(ops, editOps(a, c)...)
	}

	mid := n / 2
	head := prefixLengths(a[:mid], c)
	tail := suffixLengths(a[mid:], c)
	cut, best := 0, int32(-1)
	for j := 0; j <= m; j++ {
		if v := head[j] + tail[j]; v > best {
			cut, best = j, v
		}
	}

	ops = splitOps(a[:mid], c[:cut], limit, ops)
	return splitOps(a[mid:], c[cut:], limit, ops)
}

// prefixLengths returns, for every j, the LCS length of a and c[:j].
func prefixLengths(a, c []string) []int32 {
	prev := make([]int32, len(c)+1)
	cur := make([]int32, len(c)+1)
	for i := range a {
		cur[0] = 0
		for j := range c {
			if a[i] == c[j] {
				cur[j+1] = prev[j] + 1
			} else {
				cur[j+1] = max(prev[j+1], cur[j])
			}
		}
		prev, cur = cur, prev
	}
	return prev
}

// suffixLengths returns, for every j, the LCS length of a and c[j:].
func suffixLengths(a, c []string) []int32 {
	m := len(c)
	prev := make([]int32, m+1)
	cur := make([]int32, m+1)
	for i := len(a) - 1; i >= 0; i-- {
		cur[m] = 0
		for j := m - 1; j >= 0; j-- {
			if a[i] == c[j] {
				cur[j] = prev[j+1] + 1
			} else {
				cur[j] = max(prev[j], cur[j+1])
			}
		}
		prev, cur = cur, prev
	}
	return prev
}

func fits(n, m, limit int) bool {
	return int64(n)*int64(m) <= int64(limit)
}

func width(units []string) int {
	n := 0
	for _, u := range units {
		n += len(u)
	}
	return n
}

// runeUnits splits s into one substring per rune. Invalid bytes are their own
// unit so offsets stay exact.
func runeUnits(s string) []string {
	out := make([]string, 0, len(s))
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		out = append(out, s[i:i+size])
		i += size
	}
	return out
}

func apply(b *builder, a, c []string, ops []Op) {
	i, j := 0, 0
	for _, op := range ops {
		switch op {
		case Equal:
			b.equal(len(a[i]))
			i++
			j++
		case Removed:
			b.remove(len(a[i]))
			i++
		case Inserted:
			b.insert(len(c[j]))
			j++
		}
	}
}

// editOps returns a minimal edit script over units. l holds the LCS length
// of each suffix pair; ra and rb hold the fewest Equal runs needed to reach
// it when the previous step was not, respectively was, a match. Ties prefer
// match, then removal, then insertion.
func editOps(a, c []string) []Op {
	n, m := len(a), len(c)
	w := m + 1
	size := (n + 1) * w
	l := make([]int32, size)
	ra := make([]int32, size)
	rb := make([]int32, size)

	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			k := i*w + j

			bestL, bestR := l[k+w], ra[k+w]
			if l[k+1] > bestL || (l[k+1] == bestL && ra[k+1] < bestR) {
				bestL, bestR = l[k+1], ra[k+1]
			}
			l[k], ra[k], rb[k] = bestL, bestR, bestR

			if a[i] != c[j] {
				continue
			}
			d := k + w + 1
			ml := l[d] + 1
			switch {
			case ml > bestL:
				l[k], ra[k], rb[k] = ml, rb[d]+1, rb[d]
			case ml == bestL:
				ra[k] = min(ra[k], rb[d]+1)
				rb[k] = min(rb[k], rb[d])
			}
		}
	}

	ops := make([]Op, 0, n+m)
	i, j, matched := 0, 0, false
	for i < n && j < m {
		k := i*w + j
		runs := ra[k]
		if matched {
			runs = rb[k]
		}
		d := k + w + 1
		if a[i] == c[j] && l[d]+1 == l[k] && rb[d]+boolRun(!matched) == runs {
			ops = append(ops, Equal)
			i, j, matched = i+1, j+1, true
			continue
		}
		matched = false
		if l[k+w] == l[k] && ra[k+w] == runs {
			ops = append(ops, Removed)
			i++
			continue
		}
		ops = append(ops, Inserted)
		j++
	}
	for ; i < n; i++ {
		ops = append(ops, Removed)
	}
	for ; j < m; j++ {
		ops = append(ops, Inserted)
	}
	return ops
}

func boolRun(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func ratcliff(old, new string) *Script {
	var b builder
	a, c := runeUnits(old), runeUnits(new)
	for _, op := range difflib.NewMatcher(a, c).GetOpCodes() {
		switch op.Tag {
		case 'e':
			b.equal(width(a[op.I1:op.I2]))
		case 'd':
			b.remove(width(a[op.I1:op.I2]))
		case 'i':
			b.insert(width(c[op.J1:op.J2]))
		case 'r':
			b.remove(width(a[op.I1:op.I2]))
			b.insert(width(c[op.J1:op.J2]))
		}
	}
	return b.script(old, new)
}

// semantic works on runes internally, so invalid UTF-8 goes through lcs to
// keep byte offsets exact.
func semantic(old, new string) *Script {
	if !utf8.ValidString(old) || !utf8.ValidString(new) {
		return lcs(old, new, DefaultMaxCells)
	}
	var b builder
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(old, new, false))
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.equal(len(d.Text))
		case diffmatchpatch.DiffDelete:
			b.remove(len(d.Text))
		case diffmatchpatch.DiffInsert:
			b.insert(len(d.Text))
		}
	}
	return b.script(old, new)
}
