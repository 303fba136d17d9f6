// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ matches the sheets of two workbooks by name and diffs each
// pair. Sheets are processed concurrently; the report lists them in old
// workbook order followed by sheets that exist only in the new workbook.
package differ
