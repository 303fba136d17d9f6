// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"slices"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// OneOfValidator accepts only the listed string values.
func OneOfValidator(valid ...string) FlagValidatorType {
	return func(value any) error {
		s, ok := value.(string)
		if !ok || !slices.Contains(valid, s) {
			return fmt.Errorf("must be one of %v", valid)
		}
		return nil
	}
}

func NonNegativeValidator(value any) error {
	n, ok := value.(int)
	if !ok {
		return errors.New("must be an integer")
	}
	if n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func PositiveValidator(value any) error {
	n, ok := value.(int)
	if !ok {
		return errors.New("must be an integer")
	}
	if n < 1 {
		return errors.New("must be positive")
	}
	return nil
}
