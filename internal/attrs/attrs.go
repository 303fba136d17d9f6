// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/xlsxdiff/internal/log"
)

// SummaryKeys are the columns of a summary row, in display order.
var SummaryKeys = []string{
	"sheet",
	"status",
	"rows_inserted",
	"rows_deleted",
	"cols_inserted",
	"cols_deleted",
	"cells_changed",
	"cells_compared",
}

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Attr is one column of the summary output.
type Attr struct {
	// The JSON key of the summary row.
	Key string `yaml:"key" json:"Key"`
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool `yaml:"include" json:"Include"`
	// The key to use in the output. This is also the column title when
	// the summary is a text table.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// Transform applies the attribute's transform spec to a value and returns the
// transformed result. Strings honor case and length transforms, numbers the
// comma transform.
func (a *Attr) Transform(value interface{}) interface{} {
	if n, ok := value.(float64); ok {
		if strings.Contains(a.TransformSpec, "c") {
			return humanize.Comma(int64(n))
		}
		return value
	}

	result, ok := value.(string)
	if !ok {
		log.Tracef("non-string value: value=%v", value)
		return value
	}

	// The last case letter wins so that a per-attr spec overrides a global one.
	// IOW... --attrs '*::U,sheet::l' will be lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
		log.Tracef("case lower: result=%s", result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
		log.Tracef("case upper: result=%s", result)
	}

	// Is it a length-based transformation? Same rule as case, the last length
	// in the transform spec wins.
	if a.TransformSpec != "" {
		match := lengthRegex.FindAllString(a.TransformSpec, -1)
		if len(match) != 0 {
			l, _ := strconv.Atoi(match[len(match)-1])
			abs := int(math.Abs(float64(l)))
			if len(result) > abs {
				if l < 0 {
					lr := max(abs/2-1, 0)
					result = result[0:lr] + ".." + result[len(result)-lr:]
					log.Tracef("length middle: result=%s", result)
				} else {
					result = result[:l]
					log.Tracef("length trunc: result=%s", result)
				}
			}
		}
	}

	return result
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// Defaults returns every summary column, included and untransformed.
func Defaults() AttrList {
	a := make(AttrList, 0, len(SummaryKeys))
	for _, k := range SummaryKeys {
		a = append(a, Attr{Key: k, Include: true, OutputKey: k})
	}
	return a
}

// Set parses each spec from --attrs and merges it into the AttrList. A spec is
// key[:output[:transform]]; a leading ! hides the column and "*" carries a
// transform applied to every column. When the value names columns, only those
// columns are shown.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		log.Debugf("early return: value=%s", value)
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

	specs := strings.Split(value, ",")
	log.Debugf("specs split: specs=%v", specs)

	var picked []Attr
	for _, spec := range specs {
		attr := Attr{Include: true}

		fields := strings.Split(spec, ":")

		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("empty attribute in %q", value)
		}

		attr.OutputKey = attr.Key
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}
		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}
		log.Tracef("attr parsed: %+v", attr)

		if attr.Key == "*" {
			attr.Include = false
			*a = append(*a, attr)
			continue
		}

		i := a.index(attr.Key)
		if i < 0 {
			return fmt.Errorf("unknown attribute %q (want one of %s)",
				attr.Key, strings.Join(SummaryKeys, ", "))
		}
		(*a)[i].OutputKey = attr.OutputKey
		(*a)[i].TransformSpec = attr.TransformSpec
		(*a)[i].Include = attr.Include
		if attr.Include {
			picked = append(picked, (*a)[i])
		}
	}

	// Named columns come first in the order given, the rest stay available
	// for filtering and sorting but are hidden.
	if len(picked) > 0 {
		reordered := make(AttrList, 0, len(*a))
		reordered = append(reordered, picked...)
		for _, attr := range *a {
			if attr.Key == "*" || !slicesContainsKey(picked, attr.Key) {
				attr.Include = false
				reordered = append(reordered, attr)
			}
		}
		*a = reordered
	}

	return nil
}

func (a *AttrList) index(key string) int {
	for i := range *a {
		if (*a)[i].Key == key || (*a)[i].OutputKey == key {
			return i
		}
	}
	return -1
}

func slicesContainsKey(list []Attr, key string) bool {
	for _, attr := range list {
		if attr.Key == key {
			return true
		}
	}
	return false
}

// SetGlobalTransformSpec prepends the "*" transform spec to every attr.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""

	// If there is more than one, take the first.
	for attr := range *a {
		if (*a)[attr].Key == "*" {
			spec = (*a)[attr].TransformSpec
			break
		}
	}
	log.Debugf("global spec: spec=%s", spec)

	if spec == "" {
		return nil
	}

	for attr := range *a {
		(*a)[attr].TransformSpec = spec + "," + (*a)[attr].TransformSpec
	}

	return nil
}

// Lookup returns the JSON key for an output key, or "" if none matches.
func (a AttrList) Lookup(outputKey string) string {
	for _, attr := range a {
		if attr.OutputKey == outputKey || attr.Key == outputKey {
			return attr.Key
		}
	}
	return ""
}

// String returns a string representation of the AttrList. This matches the
// format of the --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

