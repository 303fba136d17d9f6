// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/xlsxdiff/internal/config"
	"github.com/tfctl/xlsxdiff/internal/meta"
	"github.com/tfctl/xlsxdiff/internal/version"
)

const usageText = `xlsxdiff [options] OLD NEW OUTPUT

   OLD and NEW are .xlsx/.xlsm files or s3://bucket/key URIs. OUTPUT is the
   annotated workbook to write.

   Rows of a sheet are matched by the key columns given with -c, columns by
   the key rows given with -r. A value without SHEET! continues the previous
   sheet:

     xlsxdiff -c Staff!A -c "'Q1 Budget'!A,B" -r 1 old.xlsx new.xlsx diff.xlsx`

// InitApp builds the root command. Output defaults to os.Stdout and
// os.Stderr; pass writers to capture them.
func InitApp(ctx context.Context, args []string, w ...io.Writer) (*cli.Command, error) {
	sd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	// A missing config file is fine, flags fall back to built-in defaults.
	cfg, _ := config.Load()
	m := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}
	if len(w) > 0 {
		m.Stdout = w[0]
	}
	if len(w) > 1 {
		m.Stderr = w[1]
	}

	app := &cli.Command{
		Name:                      "xlsxdiff",
		Usage:                     "compare two workbooks cell by cell",
		UsageText:                 usageText,
		ArgsUsage:                 "OLD NEW OUTPUT",
		Version:                   version.String(),
		HideVersion:               true,
		Flags:                     NewDiffFlags(cfg.Source),
		Action:                    diffAction,
		Metadata:                  map[string]any{"meta": m},
		UseShortOptionHandling:    true,
		DisableSliceFlagSeparator: true,
		Writer:                    m.Out(),
		ErrWriter:                 m.Err(),
		OnUsageError: func(ctx context.Context, cmd *cli.Command, err error, isSubcommand bool) error {
			return usageError("%v", err)
		},
	}

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app, nil
}
