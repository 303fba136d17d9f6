// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/xlsxdiff/internal/output"
	"github.com/tfctl/xlsxdiff/internal/textdiff"
)

// NewDiffFlags returns the flags of the diff command. cfgPath is the config
// file backing flag defaults; "" means no file.
func NewDiffFlags(cfgPath string) (flags []cli.Flag) {
	flags = []cli.Flag{
		// Comparison.
		&cli.BoolFlag{
			Name:    "formulas",
			Aliases: []string{"f"},
			Usage:   "compare formula text instead of computed values",
			Sources: sources(cfgPath, "formulas"),
		},
		&cli.StringSliceFlag{
			Name:    "columns",
			Aliases: []string{"c"},
			Usage:   "key columns for matching rows, SHEET!COL[,COL...] (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:    "rows",
			Aliases: []string{"r"},
			Usage:   "key rows for matching columns, SHEET!ROW[,ROW...] (repeatable)",
		},
		&cli.BoolFlag{
			Name:    "no-structure",
			Aliases: []string{"X"},
			Usage:   "match rows and columns by position even where keys are given",
		},
		&cli.StringFlag{
			Name:    "algorithm",
			Usage:   "text diff algorithm for changed cells",
			Value:   string(textdiff.LCS),
			Sources: sources(cfgPath, "algorithm", "XLSXDIFF_ALGORITHM"),
			Validator: func(value string) error {
				_, err := textdiff.ParseAlgorithm(value)
				return err
			},
		},
		&cli.IntFlag{
			Name:    "max-cells",
			Usage:   "largest diff table held in memory, longer cells are split",
			Value:   textdiff.DefaultMaxCells,
			Sources: sources(cfgPath, "diff.max_cells"),
			Validator: func(value int) error {
				return FlagValidators(value, PositiveValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "ignore-case",
			Usage:   "treat cells differing only in letter case as unchanged",
			Sources: sources(cfgPath, "diff.ignore_case"),
		},
		&cli.BoolFlag{
			Name:    "trim-space",
			Usage:   "ignore leading and trailing white space in cells",
			Sources: sources(cfgPath, "diff.trim_space"),
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "sheets diffed in parallel, 0 for one per CPU",
			Sources: sources(cfgPath, "jobs", "XLSXDIFF_JOBS"),
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},

		// Annotated workbook.
		&cli.BoolFlag{
			Name:    "highlight",
			Aliases: []string{"x"},
			Usage:   "highlight the first cell of changed rows and columns",
			Sources: sources(cfgPath, "highlight"),
		},
		&cli.BoolFlag{
			Name:    "autofilter",
			Aliases: []string{"a"},
			Usage:   "add an autofilter to changed sheets (with --highlight)",
			Sources: sources(cfgPath, "autofilter"),
		},
		&cli.BoolFlag{
			Name:    "noempty",
			Aliases: []string{"e"},
			Usage:   "skip cells that are empty in both workbooks",
			Sources: sources(cfgPath, "noempty"),
		},
		&cli.StringFlag{
			Name:      "report",
			Usage:     "also write the full diff as JSON to this file",
			TakesFile: true,
		},

		// Logging.
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log progress",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "log only fatal errors",
		},

		// Remote workbooks.
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS shared config profile for s3:// workbooks",
			Sources: sources(cfgPath, "aws.profile", "XLSXDIFF_AWS_PROFILE"),
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region for s3:// workbooks",
			Sources: sources(cfgPath, "aws.region", "XLSXDIFF_AWS_REGION"),
		},
		&cli.StringFlag{
			Name:    "s3-endpoint",
			Usage:   "S3 compatible endpoint URL",
			Sources: sources(cfgPath, "aws.endpoint", "XLSXDIFF_S3_ENDPOINT"),
		},
	}

	return append(flags, NewSummaryFlags(cfgPath)...)
}

// NewSummaryFlags returns the flags shaping the summary printed to stdout.
func NewSummaryFlags(cfgPath string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Usage:   "comma-separated list of summary attributes to include",
			Sources: sources(cfgPath, "attrs"),
		},
		&cli.BoolFlag{
			Name:    "color",
			Usage:   "enable colored text output",
			Value:   colorDefault(),
			Sources: sources(cfgPath, "color"),
		},
		&cli.StringFlag{
			Name:  "filter",
			Usage: "comma-separated list of filters to apply to summary rows",
		},
		&cli.IntFlag{
			Name:    "padding",
			Usage:   "spaces between text columns",
			Value:   2,
			Sources: sources(cfgPath, "padding"),
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.BoolFlag{
			Name:        "schema",
			Usage:       "list the summary attributes and exit",
			HideDefault: true,
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "comma-separated list of attributes to sort the summary by",
		},
		&cli.StringFlag{
			Name:    "summary",
			Aliases: []string{"o"},
			Usage:   "summary format: text, json, yaml, raw or none",
			Value:   "text",
			Sources: sources(cfgPath, "summary"),
			Validator: func(value string) error {
				return FlagValidators(value, OneOfValidator(output.Formats...))
			},
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: sources(cfgPath, "titles"),
		},
	}
}

// sources chains the environment variables, then the config file key.
func sources(cfgPath, key string, envs ...string) cli.ValueSourceChain {
	chain := cli.EnvVars(envs...)
	if cfgPath != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(key, altsrc.StringSourcer(cfgPath)))
	}
	return chain
}

// colorDefault enables color for terminals unless NO_COLOR is set.
func colorDefault() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
