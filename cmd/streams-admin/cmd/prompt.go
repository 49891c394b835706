// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// confirm asks before an operation that is hard to undo. The --yes flag
// answers for the user.
func confirm(label string) (bool, error) {
	if skipConfirm {
		return true, nil
	}
	prompt := promptui.Prompt{
		Label: fmt.Sprintf("%s, continue (y/n)", label),
		Validate: func(input string) error {
			switch strings.ToLower(input) {
			case "y", "n":
				return nil
			default:
				return ErrInvalidChoice
			}
		},
	}
	raw, err := prompt.Run()
	if err != nil {
		return false, err
	}
	if strings.ToLower(raw) == "n" {
		fmt.Println("exiting...")
		return false, nil
	}
	return true, nil
}
