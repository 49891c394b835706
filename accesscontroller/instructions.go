// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package accesscontroller

import (
	"fmt"

	"github.com/near/borsh-go"

	"github.com/streamproofs/solana-sdk/chain"
	"github.com/streamproofs/solana-sdk/codec"
)

// InitializeInstruction initializes [state] as an empty registry owned by
// [owner]. The account must already exist with [AccountSize] bytes.
func InitializeInstruction(program, state, owner codec.PublicKey) chain.Instruction {
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.Writable(state),
			chain.Signer(owner),
		},
		Data: codec.MethodDiscriminator("initialize"),
	}
}

// AddAccessInstruction grants [address] access. The address travels as a
// readonly account meta, not as instruction data.
func AddAccessInstruction(program, state, owner, address codec.PublicKey) chain.Instruction {
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.Writable(state),
			chain.Signer(owner),
			chain.ReadOnly(address),
		},
		Data: codec.MethodDiscriminator("add_access"),
	}
}

// RemoveAccessInstruction revokes [address]'s access.
func RemoveAccessInstruction(program, state, owner, address codec.PublicKey) chain.Instruction {
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.Writable(state),
			chain.Signer(owner),
			chain.ReadOnly(address),
		},
		Data: codec.MethodDiscriminator("remove_access"),
	}
}

type transferOwnershipArgs struct {
	ProposedOwner codec.PublicKey
}

// TransferOwnershipInstruction proposes [proposed] as the next owner. The
// transfer completes only when the proposed owner accepts.
func TransferOwnershipInstruction(program, state, authority, proposed codec.PublicKey) (chain.Instruction, error) {
	args, err := borsh.Serialize(transferOwnershipArgs{ProposedOwner: proposed})
	if err != nil {
		return chain.Instruction{}, fmt.Errorf("serializing transfer args: %w", err)
	}
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.Writable(state),
			chain.Signer(authority),
		},
		Data: append(codec.MethodDiscriminator("transfer_ownership"), args...),
	}, nil
}

// AcceptOwnershipInstruction completes a pending transfer. [authority]
// must be the proposed owner.
func AcceptOwnershipInstruction(program, state, authority codec.PublicKey) chain.Instruction {
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.Writable(state),
			chain.Signer(authority),
		},
		Data: codec.MethodDiscriminator("accept_ownership"),
	}
}
