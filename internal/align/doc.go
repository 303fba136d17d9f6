// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package align computes the correspondence between the rows (or columns) of
// two versions of a sheet.
//
// Without an index spec the axis is aligned by position. With one, items are
// paired by key; items sharing a key are paired in order of occurrence, and
// any surplus on either side becomes Deleted or Inserted. The result lists
// entries in new order, with each Deleted entry placed just before the next
// matched item that followed it in the old sequence.
package align
