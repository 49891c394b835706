// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package verifier

import (
	"bytes"
	"fmt"

	"github.com/near/borsh-go"

	"github.com/streamproofs/solana-sdk/codec"
	"github.com/streamproofs/solana-sdk/consts"
)

const (
	// MaxSigners is the per-configuration capacity for report signers.
	MaxSigners = 31

	// MaxDonConfigs is the capacity of the configuration ring.
	MaxDonConfigs = 32

	// SignerAddressLen is the length of a report signer address.
	SignerAddressLen = 20

	donConfigIDLen = 24

	donConfigSize = consts.Uint32Len + donConfigIDLen + 2*consts.Uint8Len + 2 + MaxSigners*SignerAddressLen

	schemaSize = consts.Uint8Len + 7 + 3*consts.PublicKeyLen + consts.Uint64Len + MaxDonConfigs*donConfigSize

	// AccountSize is the exact byte length of a fully grown verifier
	// account: the discriminator plus the fixed schema. A fresh account
	// starts far below this and is grown in [consts.MaxPermittedDataIncrease]
	// steps.
	AccountSize = consts.DiscriminatorLen + schemaSize
)

// SignerAddress is a report signer's 20-byte address.
type SignerAddress [SignerAddressLen]byte

// DonConfig is one stored signer configuration. [F] is the maximum
// tolerated count of faulty signers; [IsActive] is a 0/1 byte.
type DonConfig struct {
	ActivationTime uint32
	DonConfigID    [donConfigIDLen]byte
	F              uint8
	IsActive       uint8
	Padding        [2]uint8
	Signers        [MaxSigners]SignerAddress
}

// DonConfigs is a fixed-capacity ordered collection. Only the first
// [Len] entries are live.
type DonConfigs struct {
	Len uint64
	Xs  [MaxDonConfigs]DonConfig
}

// VerifierAccount is the verifier program's state account. An
// [AccessController] of all zeroes means no registry is attached.
type VerifierAccount struct {
	Version          uint8
	Padding          [7]uint8
	Owner            codec.PublicKey
	ProposedOwner    codec.PublicKey
	AccessController codec.PublicKey
	DonConfigs       DonConfigs
}

// Configs returns the live configuration entries, oldest first.
func (v *VerifierAccount) Configs() []DonConfig {
	n := v.DonConfigs.Len
	if n > MaxDonConfigs {
		n = MaxDonConfigs
	}
	return v.DonConfigs.Xs[:n]
}

// decodeState decodes a raw verifier account. The buffer must be exactly
// [AccountSize] bytes, so a partially grown account fails decoding
// rather than yielding a truncated struct.
func decodeState(data []byte) (*VerifierAccount, error) {
	if len(data) != AccountSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrBadAccountSize, AccountSize, len(data))
	}
	if !bytes.Equal(data[:consts.DiscriminatorLen], codec.AccountDiscriminator("VerifierAccount")) {
		return nil, ErrBadDiscriminator
	}
	state := new(VerifierAccount)
	if err := borsh.Deserialize(state, data[consts.DiscriminatorLen:]); err != nil {
		return nil, fmt.Errorf("decoding verifier state: %w", err)
	}
	return state, nil
}
