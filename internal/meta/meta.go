// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"io"
	"os"

	"github.com/tfctl/xlsxdiff/internal/config"
)

// Meta contains runtime metadata shared by the command. It carries CLI
// arguments, loaded configuration, context, the starting working directory
// and the writers the command reports to.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
	Stdout      io.Writer
	Stderr      io.Writer
}

// Out returns Stdout, or os.Stdout when unset.
func (m Meta) Out() io.Writer {
	if m.Stdout == nil {
		return os.Stdout
	}
	return m.Stdout
}

// Err returns Stderr, or os.Stderr when unset.
func (m Meta) Err() io.Writer {
	if m.Stderr == nil {
		return os.Stderr
	}
	return m.Stderr
}
