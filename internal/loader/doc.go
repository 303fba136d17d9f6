// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package loader reads .xlsx workbooks from disk or S3 into the in-memory
// model. Every cell is classified once here so the diff engine never touches
// excelize.
package loader
