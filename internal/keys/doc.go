// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package keys builds the composite keys used to pair rows and columns across
// two versions of a sheet.
package keys
