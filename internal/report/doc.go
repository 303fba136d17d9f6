// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package report holds the result of diffing two workbooks. A Report owns
// its Tabs, and each Tab owns its alignments and cell changes. Nothing in it
// points back at the workbooks; cells are looked up by coordinate.
package report
