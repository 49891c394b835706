// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrNoPayer            = errors.New("no fee payer")
	ErrNoInstructions     = errors.New("no instructions")
	ErrDataTooLarge       = errors.New("instruction data too large")
	ErrTooManyAccounts    = errors.New("too many accounts")
	ErrUnknownSigner      = errors.New("signer is not a message signer account")
	ErrMissingSignature   = errors.New("missing signature for signer account")
	ErrMalformedHash      = errors.New("malformed hash")
	ErrMalformedSignature = errors.New("malformed signature")
)
