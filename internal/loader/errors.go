// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"errors"
	"fmt"
)

// ErrLoad is the sentinel wrapped by every LoadError.
var ErrLoad = errors.New("cannot load workbook")

// LoadError reports an input that could not be read or parsed.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot load %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("cannot load %s: %s: %v", e.Path, e.Reason, e.Err)
}

// Unwrap exposes both ErrLoad and the underlying cause.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrLoad}
	}
	return []error{ErrLoad, e.Err}
}

func loadError(path, reason string, err error) *LoadError {
	return &LoadError{Path: path, Reason: reason, Err: err}
}
