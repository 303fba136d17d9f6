// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/tfctl/xlsxdiff/internal/cacheutil"
	"github.com/tfctl/xlsxdiff/internal/celldiff"
	"github.com/tfctl/xlsxdiff/internal/config"
	"github.com/tfctl/xlsxdiff/internal/differ"
	"github.com/tfctl/xlsxdiff/internal/filters"
	"github.com/tfctl/xlsxdiff/internal/indexspec"
	"github.com/tfctl/xlsxdiff/internal/loader"
	"github.com/tfctl/xlsxdiff/internal/log"
	"github.com/tfctl/xlsxdiff/internal/render"
	"github.com/tfctl/xlsxdiff/internal/report"
	"github.com/tfctl/xlsxdiff/internal/textdiff"
	"github.com/tfctl/xlsxdiff/internal/workbook"
)

// diffAction compares OLD against NEW, writes the annotated workbook to
// OUTPUT and prints the summary.
func diffAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	setVerbosity(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(report.SummaryRow{}), m.Out()) {
		return nil
	}

	if cmd.NArg() != 3 {
		return usageError("expected OLD NEW OUTPUT, got %d argument(s)", cmd.NArg())
	}
	oldPath, newPath, outPath := cmd.Args().Get(0), cmd.Args().Get(1), cmd.Args().Get(2)

	al, err := BuildAttrs(cmd)
	if err != nil {
		return err
	}
	if err := filters.Validate(cmd.String("filter"), al); err != nil {
		return usageError("%v", err)
	}

	specs, err := buildSpecs(cmd)
	if err != nil {
		return err
	}

	diffOpts, err := buildDiffOptions(cmd, specs)
	if err != nil {
		return err
	}

	old, new, err := loadBoth(ctx, oldPath, newPath, buildLoadOptions(cmd))
	if err != nil {
		return err
	}

	start := time.Now()
	rep, err := differ.Diff(ctx, old, new, diffOpts)
	if err != nil {
		return err
	}
	log.Infof("diffed %d sheets in %s", len(rep.Tabs), time.Since(start))

	err = render.Write(rep, old, new, outPath, render.Options{
		Highlight:  cmd.Bool("highlight"),
		AutoFilter: cmd.Bool("autofilter"),
		NoEmpty:    cmd.Bool("noempty"),
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	if path := cmd.String("report"); path != "" {
		if err := writeReport(rep, path); err != nil {
			return err
		}
	}

	return EmitSummary(rep, al, cmd, m.Out())
}

// setVerbosity maps -v and -q onto the log level. XLSXDIFF_LOG still wins
// when it asks for more detail.
func setVerbosity(cmd *cli.Command) {
	switch {
	case os.Getenv("XLSXDIFF_LOG") != "":
	case cmd.Bool("quiet"):
		log.SetLevel("fatal")
	case cmd.Bool("verbose"):
		log.SetLevel("info")
	}
}

// buildSpecs merges the configured keys with -c and -r. Config entries come
// first so that flags extend them.
func buildSpecs(cmd *cli.Command) (indexspec.Set, error) {
	cols, err := config.GetStringSlice("keys.columns", nil)
	if err != nil {
		return nil, usageError("config keys.columns: %v", err)
	}
	rows, err := config.GetStringSlice("keys.rows", nil)
	if err != nil {
		return nil, usageError("config keys.rows: %v", err)
	}

	cols = append(cols, cmd.StringSlice("columns")...)
	rows = append(rows, cmd.StringSlice("rows")...)
	return indexspec.Build(cols, rows)
}

func buildDiffOptions(cmd *cli.Command, specs indexspec.Set) (differ.Options, error) {
	alg, err := textdiff.ParseAlgorithm(cmd.String("algorithm"))
	if err != nil {
		return differ.Options{}, usageError("%v", err)
	}

	mode := workbook.ModeValue
	if cmd.Bool("formulas") {
		mode = workbook.ModeFormula
	}

	return differ.Options{
		Specs:       specs,
		NoStructure: cmd.Bool("no-structure"),
		Jobs:        cmd.Int("jobs"),
		Cell: celldiff.Options{
			Mode: mode,
			Text: textdiff.Options{
				Algorithm: alg,
				MaxCells:  cmd.Int("max-cells"),
			},
			IgnoreCase: cmd.Bool("ignore-case"),
			TrimSpace:  cmd.Bool("trim-space"),
		},
	}, nil
}

func buildLoadOptions(cmd *cli.Command) loader.Options {
	cache := cacheutil.New()
	if hours, _ := config.GetInt("cache.clean", 0); hours > 0 && cache.Enabled() {
		if err := cache.Purge(time.Duration(hours) * time.Hour); err != nil {
			log.WithError(err).Warnf("cache purge in %s", cache.Dir())
		}
	}

	attempts, _ := config.GetInt("aws.max_attempts", 0)
	return loader.Options{
		AWSProfile:  cmd.String("profile"),
		AWSRegion:   cmd.String("region"),
		S3Endpoint:  cmd.String("s3-endpoint"),
		MaxAttempts: attempts,
		Cache:       cache,
	}
}

// loadBoth reads the two workbooks concurrently. The first failure cancels
// the other load.
func loadBoth(ctx context.Context, oldPath, newPath string, opts loader.Options) (old, new *workbook.Workbook, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		old, err = loader.Load(gctx, oldPath, opts)
		return err
	})
	g.Go(func() error {
		var err error
		new, err = loader.Load(gctx, newPath, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return old, new, nil
}

// writeReport stores the full report as indented JSON.
func writeReport(rep *report.Report, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Infof("wrote report %s (%s)", path, humanize.Bytes(uint64(len(data))))
	return nil
}
