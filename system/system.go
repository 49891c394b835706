// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package system builds instructions for the native system program.
package system

import (
	"fmt"

	"github.com/near/borsh-go"

	"github.com/streamproofs/solana-sdk/chain"
	"github.com/streamproofs/solana-sdk/codec"
)

// createAccountIndex is the system program's instruction enum tag for
// CreateAccount, serialized as a little-endian u32.
const createAccountIndex uint32 = 0

type createAccountArgs struct {
	Instruction uint32
	Lamports    uint64
	Space       uint64
	Owner       codec.PublicKey
}

// CreateAccount funds a brand-new account of [space] bytes owned by
// [owner]. Both [funder] and [newAccount] sign: the funder pays, the new
// account proves possession of its key.
func CreateAccount(funder, newAccount, owner codec.PublicKey, lamports, space uint64) (chain.Instruction, error) {
	data, err := borsh.Serialize(createAccountArgs{
		Instruction: createAccountIndex,
		Lamports:    lamports,
		Space:       space,
		Owner:       owner,
	})
	if err != nil {
		return chain.Instruction{}, fmt.Errorf("serializing create account args: %w", err)
	}
	return chain.Instruction{
		Program: chain.SystemProgramID,
		Accounts: []chain.AccountMeta{
			chain.WritableSigner(funder),
			chain.WritableSigner(newAccount),
		},
		Data: data,
	}, nil
}
