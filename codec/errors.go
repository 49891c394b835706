// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "errors"

var (
	ErrMalformedPublicKey    = errors.New("malformed public key")
	ErrInvalidPublicKeySize  = errors.New("invalid public key size")
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrSeedTooLong           = errors.New("seed too long")
	ErrInvalidDerivedAddress = errors.New("derived address is on the curve")
	ErrNoViableBump          = errors.New("no viable bump seed")
	ErrInsufficientLength    = errors.New("insufficient length")
	ErrLengthTooLarge        = errors.New("length exceeds uint16")
)
