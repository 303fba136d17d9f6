// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/tfctl/xlsxdiff/internal/attrs"
	"github.com/tfctl/xlsxdiff/internal/report"
)

const summaryRows = `[
	{"sheet": "Staff", "status": "changed", "rows_inserted": 1, "rows_deleted": 1,
	 "cols_inserted": 0, "cols_deleted": 0, "cells_changed": 3, "cells_compared": 24},
	{"sheet": "budget", "status": "unchanged", "rows_inserted": 0, "rows_deleted": 0,
	 "cols_inserted": 0, "cols_deleted": 0, "cells_changed": 0, "cells_compared": 40},
	{"sheet": "Notes", "status": "added", "rows_inserted": 0, "rows_deleted": 0,
	 "cols_inserted": 0, "cols_deleted": 0, "cells_changed": 0, "cells_compared": 0}
]`

func TestSortDataset(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{
			name:      "empty spec keeps order",
			spec:      "",
			wantOrder: []string{"zebra", "Alpha", "beta"},
		},
		{
			name:      "ascending by name",
			spec:      "name",
			wantOrder: []string{"Alpha", "beta", "zebra"},
		},
		{
			name:      "descending by name",
			spec:      "-name",
			wantOrder: []string{"zebra", "beta", "Alpha"},
		},
		{
			name:      "case sensitive",
			spec:      "!name",
			wantOrder: []string{"Alpha", "beta", "zebra"},
		},
		{
			name:      "descending by count",
			spec:      "-count",
			wantOrder: []string{"beta", "zebra", "Alpha"},
		},
		{
			name:      "tie broken by second field",
			spec:      "group,name",
			wantOrder: []string{"beta", "Alpha", "zebra"},
		},
		{
			name:      "numbers compare numerically",
			spec:      "count",
			wantOrder: []string{"Alpha", "zebra", "beta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []map[string]interface{}{
				{"name": "zebra", "count": 9.0, "group": "b"},
				{"name": "Alpha", "count": 2.0, "group": "b"},
				{"name": "beta", "count": 10.0, "group": "a"},
			}
			SortDataset(data, tt.spec)

			got := make([]string, 0, len(data))
			for _, row := range data {
				got = append(got, row["name"].(string))
			}
			assert.Equal(t, tt.wantOrder, got)
		})
	}
}

func TestParseSortSpec(t *testing.T) {
	got := parseSortSpec("-cells_changed, !sheet,,-")
	assert.Equal(t, []sortKey{
		{field: "cells_changed", descending: true},
		{field: "sheet", caseSensitive: true},
	}, got)
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		empty []string
		want  string
	}{
		{"nil default", nil, nil, ""},
		{"nil custom", nil, []string{"-"}, "-"},
		{"empty string", "", []string{"-"}, "-"},
		{"string", "Staff", nil, "Staff"},
		{"zero count", float64(0), []string{"-"}, "0"},
		{"count", float64(42), nil, "42"},
		{"int", 7, nil, "7"},
		{"bool", true, nil, "true"},
		{"slice", []interface{}{"a", "b"}, nil, `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.empty...))
		})
	}
}

func TestNewTag(t *testing.T) {
	assert.Equal(t, schemaTag{Name: "sheet", Kind: "string"}, newTag("sheet", reflect.String))
	assert.Equal(t, schemaTag{Name: "rows", Kind: "number"}, newTag("rows,omitempty", reflect.Int))
	assert.Equal(t, schemaTag{}, newTag("-", reflect.String))
	assert.Equal(t, "rows", schemaTag{Name: "rows"}.print())
}

func TestDumpSchema(t *testing.T) {
	var buf bytes.Buffer
	DumpSchema(reflect.TypeOf(report.SummaryRow{}), &buf)

	out := buf.String()
	for _, key := range attrs.SummaryKeys {
		assert.Contains(t, out, key)
	}
	assert.Less(t, strings.Index(out, "sheet"), strings.Index(out, "cells_compared"))
	assert.Contains(t, out, "number")
}

func TestSliceDiceSpit(t *testing.T) {
	t.Setenv("XLSXDIFF_CFG_FILE", t.TempDir()+"/missing.yaml")

	tests := []struct {
		name    string
		attrs   string
		opts    Options
		wantErr bool
		check   func(*testing.T, string)
	}{
		{
			name: "none",
			opts: Options{Format: "none"},
			check: func(t *testing.T, out string) {
				assert.Empty(t, out)
			},
		},
		{
			name: "raw",
			opts: Options{Format: "raw"},
			check: func(t *testing.T, out string) {
				assert.Equal(t, summaryRows, out)
			},
		},
		{
			name: "json filtered and sorted",
			opts: Options{Format: "json", Filter: "cells_compared>0", Sort: "-cells_compared"},
			check: func(t *testing.T, out string) {
				doc := gjson.Parse(out)
				require.Equal(t, int64(2), doc.Get("#").Int())
				assert.Equal(t, "budget", doc.Get("0.sheet").String())
				assert.Equal(t, "Staff", doc.Get("1.sheet").String())
			},
		},
		{
			name:  "json projects attrs",
			attrs: "sheet:tab,status",
			opts:  Options{Format: "json", Filter: "status=changed"},
			check: func(t *testing.T, out string) {
				doc := gjson.Parse(out)
				assert.Equal(t, "Staff", doc.Get("0.tab").String())
				assert.False(t, doc.Get("0.cells_changed").Exists())
			},
		},
		{
			name:  "json transforms",
			attrs: "sheet::U,status",
			opts:  Options{Format: "json", Sort: "sheet"},
			check: func(t *testing.T, out string) {
				doc := gjson.Parse(out)
				assert.Equal(t, "BUDGET", doc.Get("0.sheet").String())
			},
		},
		{
			name: "yaml keeps attr order",
			opts: Options{Format: "yaml", Filter: "sheet=Notes"},
			check: func(t *testing.T, out string) {
				assert.True(t, strings.HasPrefix(out, "- sheet: Notes\n  status: added\n"), out)
				assert.Less(t, strings.Index(out, "rows_inserted"), strings.Index(out, "cells_compared"))
			},
		},
		{
			name: "text with titles",
			opts: Options{Format: "text", Titles: true, Padding: 2, Header: "old.xlsx -> new.xlsx"},
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "old.xlsx -> new.xlsx")
				assert.Contains(t, out, "cells_changed")
				assert.Contains(t, out, "Staff")
				assert.Contains(t, out, "unchanged")
			},
		},
		{
			name: "text empty after filter",
			opts: Options{Format: "text", Filter: "sheet=nope"},
			check: func(t *testing.T, out string) {
				assert.Empty(t, out)
			},
		},
		{
			name:    "bad filter",
			opts:    Options{Format: "json", Filter: "sheet/("},
			wantErr: true,
		},
		{
			name:    "unknown format",
			opts:    Options{Format: "xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := attrs.Defaults()
			require.NoError(t, a.Set(tt.attrs))
			require.NoError(t, a.SetGlobalTransformSpec())

			var buf bytes.Buffer
			err := SliceDiceSpit(*bytes.NewBufferString(summaryRows), a, tt.opts, &buf)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, buf.String())
		})
	}
}

func TestTableWriter(t *testing.T) {
	rows := []map[string]interface{}{
		{"sheet": "Staff", "status": "changed", "secret": "x"},
	}
	a := attrs.AttrList{
		{Key: "sheet", OutputKey: "sheet", Include: true},
		{Key: "status", OutputKey: "status", Include: true},
		{Key: "secret", OutputKey: "secret", Include: false},
	}

	var buf bytes.Buffer
	TableWriter(rows, a, Options{Titles: true}, &buf)
	out := buf.String()
	assert.Contains(t, out, "Staff")
	assert.Contains(t, out, "status")
	assert.NotContains(t, out, "secret")

	buf.Reset()
	TableWriter(nil, a, Options{}, &buf)
	assert.Empty(t, buf.String())
}

func TestGetColors(t *testing.T) {
	t.Setenv("XLSXDIFF_CFG_FILE", t.TempDir()+"/missing.yaml")

	header, even, odd := getColors("colors")
	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}
