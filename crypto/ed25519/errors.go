// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import "errors"

var (
	ErrInvalidPrivateKey    = errors.New("invalid private key")
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrMalformedKeypairFile = errors.New("malformed keypair file")
)
