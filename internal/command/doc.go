// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the xlsxdiff command line. It wires flags, config
// file defaults, validators and the diff action that loads both workbooks,
// diffs them, writes the annotated workbook and prints the summary.
package command
