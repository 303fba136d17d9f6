// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package indexspec

import (
	"errors"
	"fmt"
)

// ErrInvalidIndexSpec is the sentinel wrapped by every InvalidIndexSpecError.
var ErrInvalidIndexSpec = errors.New("invalid index spec")

// InvalidIndexSpecError reports a malformed spec or one that does not fit a
// workbook.
type InvalidIndexSpecError struct {
	Sheet  string
	Spec   string
	Reason string
}

func (e *InvalidIndexSpecError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("invalid index spec %q: %s", e.Spec, e.Reason)
	}
	return fmt.Sprintf("invalid index spec %q for sheet %q: %s", e.Spec, e.Sheet, e.Reason)
}

func (e *InvalidIndexSpecError) Unwrap() error {
	return ErrInvalidIndexSpec
}

func invalid(sheet, spec, format string, args ...any) *InvalidIndexSpecError {
	return &InvalidIndexSpecError{Sheet: sheet, Spec: spec, Reason: fmt.Sprintf(format, args...)}
}
