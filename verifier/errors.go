// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package verifier

import "errors"

var (
	ErrNoAccessController  = errors.New("access controller is required for verification")
	ErrReportTooShort      = errors.New("report shorter than its 32-byte config seed")
	ErrAlreadyAtTargetSize = errors.New("account already at target size")
	ErrBadDiscriminator    = errors.New("unexpected account discriminator")
	ErrBadAccountSize      = errors.New("unexpected account size")
)
