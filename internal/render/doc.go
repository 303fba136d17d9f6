// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package render writes the annotated output workbook.
//
// Every tab of the report becomes a sheet, colored by status. Changed tabs
// are laid out in alignment order, so inserted and deleted rows and columns
// appear where they belong and carry a fill across their whole length.
// Changed cells show their edit script as rich text: added text is blue,
// bold and underlined, removed text is red, bold and struck through.
package render
