// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects summary rows with --filter expressions.
//
// Filters are key-operator-target expressions joined by a delimiter (default
// comma, override with XLSXDIFF_FILTER_DELIM). A row is kept only when it
// matches every filter.
//
// Operators include:
//
//   - = : exact match (numeric for counts)
//   - ^ : prefix match
//   - ~ : case-insensitive match
//   - < : less than
//   - > : greater than
//   - <= : at most
//   - >= : at least
//   - @ : contains substring
//   - / : regular expression match
//
// Any operator may be negated with a leading '!'. A bare key keeps rows where
// the key is present.
//
// Examples:
//
//   - "status=changed" : tabs with at least one difference
//   - "cells_changed>10" : tabs with more than ten changed cells
//   - "sheet^Q" : tabs whose name starts with "Q"
//   - "status!=unchanged,rows_inserted>=1" : changed tabs that gained rows
//   - "status/^(added|removed)$" : tabs present in only one workbook
//
// Counts compare as numbers under = < > <= >=; everything else compares
// text. Keys are summary output keys, so a column renamed with --attrs is
// filtered by its new name. Validate checks keys, count targets and status
// names before any workbook is read.
package filters
