// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"crypto/sha256"
	"errors"

	"filippo.io/edwards25519"
)

const (
	// MaxSeeds and MaxSeedLen are the ledger's limits on derivation seeds.
	MaxSeeds   = 16
	MaxSeedLen = 32
)

var derivedAddressMarker = []byte("ProgramDerivedAddress")

// CreateProgramAddress derives the address for [seeds] under [program]. The
// derivation is rejected with [ErrInvalidDerivedAddress] when the digest
// lands on the ed25519 curve, so the resulting address can never collide
// with a signing keypair.
func CreateProgramAddress(seeds [][]byte, program PublicKey) (PublicKey, error) {
	if len(seeds) > MaxSeeds {
		return EmptyPublicKey, ErrTooManySeeds
	}
	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return EmptyPublicKey, ErrSeedTooLong
		}
		h.Write(seed)
	}
	h.Write(program[:])
	h.Write(derivedAddressMarker)
	var pk PublicKey
	copy(pk[:], h.Sum(nil))
	if onCurve(pk) {
		return EmptyPublicKey, ErrInvalidDerivedAddress
	}
	return pk, nil
}

// FindProgramAddress appends a one byte bump to [seeds], counting down from
// 255, until the derivation lands off the curve. It returns the derived
// address along with the bump that produced it.
func FindProgramAddress(seeds [][]byte, program PublicKey) (PublicKey, uint8, error) {
	derived := make([][]byte, len(seeds)+1)
	copy(derived, seeds)
	bump := []byte{255}
	derived[len(seeds)] = bump
	for bump[0] > 0 {
		pk, err := CreateProgramAddress(derived, program)
		if err == nil {
			return pk, bump[0], nil
		}
		if !errors.Is(err, ErrInvalidDerivedAddress) {
			return EmptyPublicKey, 0, err
		}
		bump[0]--
	}
	return EmptyPublicKey, 0, ErrNoViableBump
}

func onCurve(pk PublicKey) bool {
	_, err := new(edwards25519.Point).SetBytes(pk[:])
	return err == nil
}
