// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "github.com/streamproofs/solana-sdk/codec"

// AccountMeta names an account an instruction touches and the
// permissions the program needs on it.
type AccountMeta struct {
	PublicKey  codec.PublicKey
	IsSigner   bool
	IsWritable bool
}

func ReadOnly(key codec.PublicKey) AccountMeta {
	return AccountMeta{PublicKey: key}
}

func Writable(key codec.PublicKey) AccountMeta {
	return AccountMeta{PublicKey: key, IsWritable: true}
}

func Signer(key codec.PublicKey) AccountMeta {
	return AccountMeta{PublicKey: key, IsSigner: true}
}

func WritableSigner(key codec.PublicKey) AccountMeta {
	return AccountMeta{PublicKey: key, IsSigner: true, IsWritable: true}
}

// Instruction is a single program invocation: the program to run, the
// accounts it may read or write, and its input data.
type Instruction struct {
	Program  codec.PublicKey
	Accounts []AccountMeta
	Data     []byte
}
