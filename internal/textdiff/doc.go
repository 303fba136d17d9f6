// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package textdiff computes substring-level edit scripts between two strings.
//
// The default "lcs" algorithm is a longest-common-subsequence diff over
// runes. Among all minimal scripts it picks the one with the fewest Equal
// runs, so a shared word is kept whole rather than matched letter by letter.
// Inputs whose table would exceed MaxCells keep an exact LCS: the common
// prefix and suffix are stripped and the middle is split in halves whose LCS
// lengths add up, using two table rows per split, until every piece fits. The
// fewest-runs preference then applies within each piece.
//
// Two alternatives are available for users who prefer their output:
// "ratcliff" (Ratcliff/Obershelp matching blocks via go-difflib) and
// "semantic" (Myers with semantic cleanup via diffmatchpatch). Every
// algorithm yields segments that reconstruct both inputs exactly.
package textdiff
