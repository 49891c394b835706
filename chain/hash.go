// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/streamproofs/solana-sdk/consts"
)

// Hash is a 32-byte ledger hash, usually a recent blockhash.
type Hash [consts.HashLen]byte

var EmptyHash = Hash{}

// ParseHash interprets [s] as a base58 encoded hash.
func ParseHash(s string) (Hash, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return EmptyHash, fmt.Errorf("%w: %s", ErrMalformedHash, err)
	}
	if len(raw) != consts.HashLen {
		return EmptyHash, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedHash, consts.HashLen, len(raw))
	}
	return Hash(raw), nil
}

func (h Hash) String() string {
	return base58.Encode(h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Signature is a 64-byte ed25519 transaction signature. The fee payer's
// signature doubles as the transaction's identifier.
type Signature [consts.SignatureLen]byte

var EmptySignature = Signature{}

// ParseSignature interprets [s] as a base58 encoded signature.
func ParseSignature(s string) (Signature, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return EmptySignature, fmt.Errorf("%w: %s", ErrMalformedSignature, err)
	}
	if len(raw) != consts.SignatureLen {
		return EmptySignature, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedSignature, consts.SignatureLen, len(raw))
	}
	return Signature(raw), nil
}

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Signature) UnmarshalText(text []byte) error {
	parsed, err := ParseSignature(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
