// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	"github.com/tfctl/diffai/internal/options"
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

// OutputValidator accepts the output format names, case-insensitively.
func OutputValidator(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be one of %v", options.FormatNames)
	}
	if _, err := options.ParseFormat(s); err != nil {
		return fmt.Errorf("must be one of %v", options.FormatNames)
	}
	return nil
}
