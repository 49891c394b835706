// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package verifier

import (
	"context"

	"github.com/streamproofs/solana-sdk/chain"
	"github.com/streamproofs/solana-sdk/codec"
	"github.com/streamproofs/solana-sdk/crypto/ed25519"
	"github.com/streamproofs/solana-sdk/rpc"
)

// Transport is the slice of [rpc.Client] the verifier client consumes.
type Transport interface {
	GetAccountInfo(ctx context.Context, account codec.PublicKey) (*rpc.Account, error)
	SignAndSubmit(ctx context.Context, instructions []chain.Instruction, signers []ed25519.PrivateKey, mode rpc.SubmitMode) (chain.Signature, error)
}
