// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"fmt"

	"github.com/mr-tron/base58"
)

const PublicKeyLen = 32

// PublicKey is the 32 byte address of an on-ledger account or program.
type PublicKey [PublicKeyLen]byte

var EmptyPublicKey = PublicKey{}

// ParsePublicKey returns the [PublicKey] encoded by the base58 string [s].
func ParsePublicKey(s string) (PublicKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return EmptyPublicKey, fmt.Errorf("%w: %s", ErrMalformedPublicKey, err)
	}
	if len(b) != PublicKeyLen {
		return EmptyPublicKey, fmt.Errorf("%w: %d", ErrInvalidPublicKeySize, len(b))
	}
	var pk PublicKey
	copy(pk[:], b)
	return pk, nil
}

// MustParsePublicKey parses [s] and panics on failure. It is reserved for
// well-known addresses declared as package variables.
func MustParsePublicKey(s string) PublicKey {
	pk, err := ParsePublicKey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// String implements fmt.Stringer.
func (p PublicKey) String() string {
	return base58.Encode(p[:])
}

// MarshalText returns the base58 representation of p.
func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(base58.Encode(p[:])), nil
}

// UnmarshalText parses a base58-encoded public key.
func (p *PublicKey) UnmarshalText(input []byte) error {
	pk, err := ParsePublicKey(string(input))
	if err != nil {
		return err
	}
	*p = pk
	return nil
}
