// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for xlsxdiff's user
// configuration. The configuration is a YAML document named by
// XLSXDIFF_CFG_FILE or located in the user's configuration directory,
// typically:
//   - Linux: $XDG_CONFIG_HOME/xlsxdiff.yaml or $HOME/.config/xlsxdiff.yaml
//   - macOS: $HOME/Library/Application Support/xlsxdiff.yaml
//   - Windows: %APPDATA%/xlsxdiff.yaml
//
// Top level keys named after command flags (highlight, formulas, algorithm,
// ...) provide flag defaults. Nested keys cover the rest:
//
//	keys:
//	  columns: ["Staff!A"]
//	  rows: ["Budget!1"]
//	diff:
//	  max_cells: 1048576
//	  ignore_case: false
//	  trim_space: true
//	cache:
//	  clean: 72
//	aws:
//	  profile: reports
//	  region: eu-west-1
//	  max_attempts: 5
//	  endpoint: http://localhost:9000
//	colors:
//	  title: "#f6be00"
package config
