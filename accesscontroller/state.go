// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package accesscontroller

import (
	"bytes"
	"fmt"

	"github.com/near/borsh-go"

	"github.com/streamproofs/solana-sdk/codec"
	"github.com/streamproofs/solana-sdk/consts"
)

const (
	// MaxAccessEntries is the capacity of the on-chain access list.
	MaxAccessEntries = 64

	schemaSize = 2*consts.PublicKeyLen + MaxAccessEntries*consts.PublicKeyLen + consts.Uint64Len

	// AccountSize is the exact byte length of an initialized registry
	// account: the discriminator plus the fixed schema.
	AccountSize = consts.DiscriminatorLen + schemaSize
)

// AccessList is a fixed-capacity set of addresses. Only the first [Len]
// entries are live.
type AccessList struct {
	Xs  [MaxAccessEntries]codec.PublicKey
	Len uint64
}

// AccessController is the registry program's state account.
type AccessController struct {
	Owner         codec.PublicKey
	ProposedOwner codec.PublicKey
	AccessList    AccessList
}

// HasAccess reports whether [address] is on the access list.
func (a *AccessController) HasAccess(address codec.PublicKey) bool {
	n := a.AccessList.Len
	if n > MaxAccessEntries {
		n = MaxAccessEntries
	}
	for i := uint64(0); i < n; i++ {
		if a.AccessList.Xs[i] == address {
			return true
		}
	}
	return false
}

// Addresses returns the live access list entries.
func (a *AccessController) Addresses() []codec.PublicKey {
	n := a.AccessList.Len
	if n > MaxAccessEntries {
		n = MaxAccessEntries
	}
	return a.AccessList.Xs[:n]
}

// decodeState decodes a raw registry account. The buffer must be exactly
// [AccountSize] bytes and open with the account discriminator.
func decodeState(data []byte) (*AccessController, error) {
	if len(data) != AccountSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrBadAccountSize, AccountSize, len(data))
	}
	if !bytes.Equal(data[:consts.DiscriminatorLen], codec.AccountDiscriminator("AccessController")) {
		return nil, ErrBadDiscriminator
	}
	state := new(AccessController)
	if err := borsh.Deserialize(state, data[consts.DiscriminatorLen:]); err != nil {
		return nil, fmt.Errorf("decoding registry state: %w", err)
	}
	return state, nil
}
