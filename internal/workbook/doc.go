// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package workbook holds the in-memory model of a loaded spreadsheet: an
// ordered set of named sheets, each a dense grid of typed cells addressed by
// 1-based row and column numbers. Everything in this package is built once by
// a loader and treated as read-only afterwards.
package workbook
