// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/xlsxdiff/internal/attrs"
	"github.com/tfctl/xlsxdiff/internal/log"
	"github.com/tfctl/xlsxdiff/internal/meta"
	"github.com/tfctl/xlsxdiff/internal/output"
	"github.com/tfctl/xlsxdiff/internal/report"
)

// ErrUsage marks errors caused by how the command was invoked.
var ErrUsage = errors.New("usage")

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// BuildAttrs constructs the summary AttrList from --attrs and applies the
// global transform spec.
func BuildAttrs(cmd *cli.Command) (attrs.AttrList, error) {
	al := attrs.Defaults()
	if err := al.Set(cmd.String("attrs")); err != nil {
		return nil, usageError("--attrs: %v", err)
	}
	if err := al.SetGlobalTransformSpec(); err != nil {
		return nil, err
	}
	log.Debugf("attrs: %s", al.String())
	return al, nil
}

// DumpSchemaIfRequested writes the schema of t to w when --schema is set,
// and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type, w io.Writer) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(t, w)
		return true
	}
	return false
}

// EmitSummary marshals the per-tab summary rows and passes them to the common
// output routine.
func EmitSummary(rep *report.Report, al attrs.AttrList, cmd *cli.Command, w io.Writer) error {
	var raw bytes.Buffer
	if err := json.NewEncoder(&raw).Encode(rep.SummaryRows()); err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	opts := output.Options{
		Format:  cmd.String("summary"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: cmd.Int("padding"),
	}
	if opts.Titles {
		opts.Header = fmt.Sprintf("%s -> %s", rep.Old, rep.New)
	}
	return output.SliceDiceSpit(raw, al, opts, w)
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}
