// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package accesscontroller

import "errors"

var (
	ErrBadDiscriminator = errors.New("unexpected account discriminator")
	ErrBadAccountSize   = errors.New("unexpected account size")
	ErrStateMismatch    = errors.New("keypair does not match configured registry account")
)
