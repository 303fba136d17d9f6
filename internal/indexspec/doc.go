// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package indexspec parses and validates the per-sheet index specifications
// that drive key-based alignment.
//
// A row-index spec names the columns whose content forms each row's key and
// is written SHEET!COL[,COL...], e.g. "staff!B" or "'Q1 plan'!A,C". A
// column-index spec names the rows whose content forms each column's key and
// is written SHEET!ROW[,ROW...], e.g. "staff!1". Either list may hold
// inclusive ranges, "staff!B:D" or "staff!1:2". Both are validated against
// the two workbooks before any diffing starts.
package indexspec
