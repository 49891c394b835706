// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrMalformedReply     = errors.New("malformed reply")
	ErrNoSigners          = errors.New("no signers")
	ErrTransactionFailed  = errors.New("transaction failed on chain")
	ErrTransactionExpired = errors.New("transaction expired before confirmation")
)
