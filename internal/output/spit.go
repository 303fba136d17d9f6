// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/xlsxdiff/internal/attrs"
	"github.com/tfctl/xlsxdiff/internal/config"
	"github.com/tfctl/xlsxdiff/internal/filters"
)

// Formats accepted by SliceDiceSpit.
var Formats = []string{"text", "json", "yaml", "raw", "none"}

// Options shape one emission of the summary.
type Options struct {
	// Format is one of Formats. Empty means text.
	Format string
	Filter string
	Sort   string
	Color  bool
	Titles bool
	// Padding is the number of spaces between text columns.
	Padding int
	Header  string
	Footer  string
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided for nil and "".
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	switch value := value.(type) {
	case nil:
		return emptyValue[0]
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		// Summary values are counts.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// SliceDiceSpit filters, sorts, transforms and renders a JSON array of summary
// rows according to opts and the attribute specifications.
func SliceDiceSpit(raw bytes.Buffer, attrs attrs.AttrList, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	switch opts.Format {
	case "none":
		return nil
	case "raw":
		_, err := w.Write(raw.Bytes())
		return err
	}

	// Filter first so that sorting and transforming work on fewer rows.
	dataset, err := filters.FilterDataset(gjson.Parse(raw.String()), attrs, opts.Filter)
	if err != nil {
		return fmt.Errorf("summary filter: %w", err)
	}

	// Sort before transforming so counts still compare as numbers.
	SortDataset(dataset, opts.Sort)

	for _, row := range dataset {
		for _, attr := range attrs {
			if attr.TransformSpec != "" && attr.Key != "*" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	switch opts.Format {
	case "json":
		// TODO Keep attr order in the JSON document the way yaml.MapSlice does.
		projected := make([]map[string]interface{}, 0, len(dataset))
		for _, row := range dataset {
			m := make(map[string]interface{})
			for _, attr := range attrs {
				if attr.Include {
					m[attr.OutputKey] = row[attr.OutputKey]
				}
			}
			projected = append(projected, m)
		}
		jsonOutput, err := json.Marshal(projected)
		if err != nil {
			return fmt.Errorf("summary json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		projected := make([]yaml.MapSlice, 0, len(dataset))
		for _, row := range dataset {
			var m yaml.MapSlice
			for _, attr := range attrs {
				if attr.Include {
					m = append(m, yaml.MapItem{Key: attr.OutputKey, Value: row[attr.OutputKey]})
				}
			}
			projected = append(projected, m)
		}
		yamlOutput, err := yaml.Marshal(projected)
		if err != nil {
			return fmt.Errorf("summary yaml: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	case "", "text":
		TableWriter(dataset, attrs, opts, w)
		return nil
	default:
		return fmt.Errorf("unknown summary format %q", opts.Format)
	}
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(
	resultSet []map[string]interface{},
	attrs attrs.AttrList,
	opts Options,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}

	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			if !attr.Include {
				continue
			}
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	pad := opts.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		var headers []string
		for _, attr := range attrs {
			if attr.Include {
				headers = append(headers, attr.OutputKey)
			}
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}
}

// getColors returns configured color values for table rendering. Without a
// configured color, one is picked to suit the terminal background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
