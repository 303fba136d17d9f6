// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package attrs

import (
	"embed"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/xlsxdiff/internal/report"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// testSetCase represents a single test case for TestAttrList_Set. An empty
// Initial starts from Defaults().
type testSetCase struct {
	Name      string `yaml:"name"`
	Initial   []Attr `yaml:"initial"`
	Value     string `yaml:"value"`
	WantLen   int    `yaml:"wantLen"`
	WantAttrs []Attr `yaml:"wantAttrs"`
	WantErr   bool   `yaml:"wantErr"`
}

// testTransformCase represents a single test case for TestAttr_Transform.
type testTransformCase struct {
	Name          string      `yaml:"name"`
	TransformSpec string      `yaml:"transformSpec"`
	Input         interface{} `yaml:"input"`
	Want          interface{} `yaml:"want"`
}

// testGlobalTransformCase represents a test case for SetGlobalTransformSpec.
type testGlobalTransformCase struct {
	Name      string   `yaml:"name"`
	Initial   []Attr   `yaml:"initial"`
	WantSpecs []string `yaml:"wantSpecs"`
}

// testStringCase represents a test case for AttrList_String.
type testStringCase struct {
	Name     string `yaml:"name"`
	AttrList []Attr `yaml:"attrList"`
	Want     string `yaml:"want"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v any) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestAttrList_Set(t *testing.T) {
	var tests []testSetCase
	require.NoError(t, loadTestData("set_cases.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			a := AttrList(tt.Initial)
			if len(a) == 0 {
				a = Defaults()
			}
			err := a.Set(tt.Value)

			if tt.WantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, a, tt.WantLen)

			for i, want := range tt.WantAttrs {
				assert.Equal(t, want.Key, a[i].Key, "attr[%d].Key", i)
				assert.Equal(t, want.OutputKey, a[i].OutputKey, "attr[%d].OutputKey", i)
				assert.Equal(t, want.Include, a[i].Include, "attr[%d].Include", i)
				assert.Equal(t, want.TransformSpec, a[i].TransformSpec, "attr[%d].TransformSpec", i)
			}
		})
	}
}

func TestAttrList_SetGlobalTransformSpec(t *testing.T) {
	var tests []testGlobalTransformCase
	require.NoError(t, loadTestData("global_transform_cases.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			a := AttrList(tt.Initial)
			require.NoError(t, a.SetGlobalTransformSpec())
			require.Len(t, a, len(tt.WantSpecs))

			for i, wantSpec := range tt.WantSpecs {
				assert.Equal(t, wantSpec, a[i].TransformSpec, "attr[%d].TransformSpec", i)
			}
		})
	}
}

func TestAttr_Transform(t *testing.T) {
	var tests []testTransformCase
	require.NoError(t, loadTestData("transform_cases.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			attr := Attr{TransformSpec: tt.TransformSpec}
			assert.Equal(t, tt.Want, attr.Transform(tt.Input))
		})
	}
}

// Summary numbers arrive from JSON as float64.
func TestAttr_Transform_Numbers(t *testing.T) {
	attr := Attr{TransformSpec: "c"}
	assert.Equal(t, "1,234,567", attr.Transform(float64(1234567)))

	attr = Attr{TransformSpec: "U"}
	assert.Equal(t, float64(12), attr.Transform(float64(12)))
}

func TestAttrList_String(t *testing.T) {
	var tests []testStringCase
	require.NoError(t, loadTestData("string_cases.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			a := AttrList(tt.AttrList)
			assert.Equal(t, tt.Want, a.String())
		})
	}
}

func TestAttrList_Lookup(t *testing.T) {
	a := Defaults()
	require.NoError(t, a.Set("cells_changed:changed"))

	assert.Equal(t, "cells_changed", a.Lookup("changed"))
	assert.Equal(t, "sheet", a.Lookup("sheet"))
	assert.Equal(t, "", a.Lookup("bogus"))
}

func TestSummaryKeysMatchReport(t *testing.T) {
	typ := reflect.TypeOf(report.SummaryRow{})
	var tags []string
	for i := range typ.NumField() {
		tags = append(tags, strings.Split(typ.Field(i).Tag.Get("json"), ",")[0])
	}
	assert.Equal(t, tags, SummaryKeys)
}

// row renders one summary row through an --attrs value the way the summary
// output does: only included columns, transformed, in list order.
func row(t *testing.T, value string, sr report.SummaryRow) ([]string, []interface{}) {
	t.Helper()

	a := Defaults()
	require.NoError(t, a.Set(value))
	require.NoError(t, a.SetGlobalTransformSpec())

	data, err := json.Marshal(sr)
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	var keys []string
	var values []interface{}
	for _, attr := range a {
		if !attr.Include {
			continue
		}
		keys = append(keys, attr.OutputKey)
		values = append(values, attr.Transform(fields[attr.Key]))
	}
	return keys, values
}

func TestAttrList_SummaryViews(t *testing.T) {
	staff := report.SummaryRow{
		Sheet: "Quarterly Numbers", Status: report.Changed,
		RowsInserted: 2, CellsChanged: 12345, CellsCompared: 2500000,
	}

	tests := []struct {
		name       string
		value      string
		wantKeys   []string
		wantValues []interface{}
	}{
		{
			name:       "short names and separators",
			value:      "sheet::-8,cells_changed:changed:c",
			wantKeys:   []string{"sheet", "changed"},
			wantValues: []interface{}{"Qua..ers", "12,345"},
		},
		{
			name:       "upper status",
			value:      "status::U,sheet:tab",
			wantKeys:   []string{"status", "tab"},
			wantValues: []interface{}{"CHANGED", "Quarterly Numbers"},
		},
		{
			name:       "global separators leave text alone",
			value:      "sheet,cells_compared:cells,*::c",
			wantKeys:   []string{"sheet", "cells"},
			wantValues: []interface{}{"Quarterly Numbers", "2,500,000"},
		},
		{
			name:     "hide structural counts",
			value:    "!rows_inserted,!rows_deleted,!cols_inserted,!cols_deleted",
			wantKeys: []string{"sheet", "status", "cells_changed", "cells_compared"},
			wantValues: []interface{}{
				"Quarterly Numbers", "changed", float64(12345), float64(2500000),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, values := row(t, tt.value, staff)
			assert.Equal(t, tt.wantKeys, keys)
			assert.Equal(t, tt.wantValues, values)
		})
	}
}
