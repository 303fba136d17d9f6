// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/tfctl/xlsxdiff/internal/attrs"
	"github.com/tfctl/xlsxdiff/internal/report"
)

// filterRegex splits an expression into key, operator and target. The
// operator is >=, <= or one of = ^ ~ < > @ /, optionally prefixed with '!'.
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?(?:>=|<=|[=^~<>@/]))?(.*)$`)

// Statuses are the values a status filter may compare against with = or ~.
var Statuses = []report.Status{report.Unchanged, report.Changed, report.Added, report.Removed}

// Filter is one parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`

	re *regexp.Regexp
}

func (f Filter) String() string {
	op := f.Operand
	if f.Negate {
		op = "!" + op
	}
	return f.Key + op + f.Value
}

// BuildFilters parses a delimited list of filter expressions. The delimiter
// is a comma unless XLSXDIFF_FILTER_DELIM says otherwise.
func BuildFilters(spec string) ([]Filter, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}

	delim := ","
	if d, ok := os.LookupEnv("XLSXDIFF_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	var filters []Filter
	for _, expr := range strings.Split(spec, delim) {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(expr)
		key := strings.TrimSpace(parts[1])
		if key == "" {
			return nil, fmt.Errorf("filter %q: missing key", expr)
		}

		if parts[2] == "" && parts[3] != "" {
			return nil, fmt.Errorf("filter %q: missing operator", expr)
		}

		f := Filter{Key: key, Operand: parts[2], Value: parts[3]}
		if strings.HasPrefix(f.Operand, "!") {
			f.Negate, f.Operand = true, f.Operand[1:]
		}

		if f.Operand == "/" {
			re, err := regexp.Compile(f.Value)
			if err != nil {
				return nil, fmt.Errorf("filter %q: %w", expr, err)
			}
			f.re = re
		}
		filters = append(filters, f)
	}

	return filters, nil
}

// Validate parses spec and checks it against the summary columns in al: every
// key must name a column (by output key), ordering operators on counts need
// numeric targets, and status comparisons must use a known status.
func Validate(spec string, al attrs.AttrList) error {
	filters, err := BuildFilters(spec)
	if err != nil {
		return err
	}

	for _, f := range filters {
		key := al.Lookup(f.Key)
		switch {
		case key == "":
			return fmt.Errorf("filter %q: unknown attribute %q (see --schema)", f, f.Key)
		case key == "sheet" || f.Operand == "":
			continue
		case key == "status":
			if f.Operand == "=" || f.Operand == "~" {
				if !slices.ContainsFunc(Statuses, func(s report.Status) bool {
					return strings.EqualFold(string(s), f.Value)
				}) {
					return fmt.Errorf("filter %q: unknown status %q (want one of %v)", f, f.Value, Statuses)
				}
			}
		default:
			if isOrdering(f.Operand) || f.Operand == "=" {
				if _, err := strconv.ParseFloat(strings.TrimSpace(f.Value), 64); err != nil {
					return fmt.Errorf("filter %q: %s is a count, %q is not a number", f, f.Key, f.Value)
				}
			}
		}
	}
	return nil
}

// FilterDataset returns the rows of candidates, a JSON array of summary rows,
// that match every filter in spec. Each row is keyed by output key and
// carries hidden columns too, so later stages can sort on them.
func FilterDataset(candidates gjson.Result, al attrs.AttrList, spec string) ([]map[string]interface{}, error) {
	filters, err := BuildFilters(spec)
	if err != nil {
		return nil, err
	}

	var rows []map[string]interface{}
	for _, candidate := range candidates.Array() {
		if !matchAll(candidate, al, filters) {
			continue
		}

		row := make(map[string]interface{}, len(al))
		for _, attr := range al {
			if attr.Key == "*" {
				continue
			}
			row[attr.OutputKey] = candidate.Get(attr.Key).Value()
		}
		rows = append(rows, row)
	}

	log.Debugf("summary filter %q kept %d of %d rows", spec, len(rows), len(candidates.Array()))
	return rows, nil
}

// matchAll reports whether candidate passes every filter. Keys that name no
// column are skipped with a warning; Validate rejects them up front.
func matchAll(candidate gjson.Result, al attrs.AttrList, filters []Filter) bool {
	for _, f := range filters {
		key := al.Lookup(f.Key)
		if key == "" {
			log.Warnf("filter key not found: %s", f.Key)
			continue
		}
		if !f.Match(candidate.Get(key)) {
			return false
		}
	}
	return true
}

// Match reports whether one summary value satisfies f. Counts compare
// numerically under = < > <= >=; every other comparison uses the value's
// text. A missing value never matches, and a bare key only asks for presence.
func (f Filter) Match(v gjson.Result) bool {
	if !v.Exists() || v.Type == gjson.Null {
		return false
	}
	if f.Operand == "" {
		return true
	}

	if v.Type == gjson.Number && (f.Operand == "=" || isOrdering(f.Operand)) {
		return f.matchCount(v.Num)
	}
	return f.matchText(v.String())
}

func isOrdering(op string) bool {
	return op == "<" || op == ">" || op == "<=" || op == ">="
}

func (f Filter) matchCount(n float64) bool {
	target, err := strconv.ParseFloat(strings.TrimSpace(f.Value), 64)
	if err != nil {
		log.Warnf("filter %s: %q is not a number", f, f.Value)
		return false
	}

	var ok bool
	switch f.Operand {
	case "=":
		ok = n == target
	case "<":
		ok = n < target
	case ">":
		ok = n > target
	case "<=":
		ok = n <= target
	case ">=":
		ok = n >= target
	}
	return ok != f.Negate
}

func (f Filter) matchText(s string) bool {
	var ok bool
	switch f.Operand {
	case "=":
		ok = s == f.Value
	case "~":
		ok = strings.EqualFold(s, f.Value)
	case "^":
		ok = strings.HasPrefix(s, f.Value)
	case "@":
		ok = strings.Contains(s, f.Value)
	case "<":
		ok = s < f.Value
	case ">":
		ok = s > f.Value
	case "<=":
		ok = s <= f.Value
	case ">=":
		ok = s >= f.Value
	case "/":
		re := f.re
		if re == nil {
			var err error
			if re, err = regexp.Compile(f.Value); err != nil {
				log.Warnf("filter %s: %v", f, err)
				return false
			}
		}
		ok = re.MatchString(s)
	}
	return ok != f.Negate
}
