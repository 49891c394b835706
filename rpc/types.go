// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"encoding/json"

	"github.com/streamproofs/solana-sdk/codec"
)

// Commitment names how settled a ledger state must be before the node
// answers from it.
type Commitment string

const (
	CommitmentProcessed Commitment = "processed"
	CommitmentConfirmed Commitment = "confirmed"
	CommitmentFinalized Commitment = "finalized"
)

// rank orders commitments by settlement depth.
func (c Commitment) rank() int {
	switch c {
	case CommitmentProcessed:
		return 1
	case CommitmentConfirmed:
		return 2
	case CommitmentFinalized:
		return 3
	default:
		return 0
	}
}

// atLeast reports whether c is as settled as [other].
func (c Commitment) atLeast(other Commitment) bool {
	return c.rank() >= other.rank()
}

// Account is an account's content at the queried commitment.
type Account struct {
	Lamports   uint64
	Owner      codec.PublicKey
	Data       []byte
	Executable bool
	RentEpoch  uint64
}

// SignatureStatus reports how far a submitted transaction has settled.
// [Err] carries the cluster's error value verbatim when the transaction
// landed but failed.
type SignatureStatus struct {
	Slot               uint64          `json:"slot"`
	Confirmations      *uint64         `json:"confirmations"`
	Err                json.RawMessage `json:"err"`
	ConfirmationStatus Commitment      `json:"confirmationStatus"`
}

// Failed reports whether the transaction landed with an error.
func (s *SignatureStatus) Failed() bool {
	return len(s.Err) > 0 && string(s.Err) != "null"
}

// Version identifies the node software answering the endpoint.
type Version struct {
	SolanaCore string `json:"solana-core"`
	FeatureSet uint32 `json:"feature-set"`
}

// Wire envelopes. Most results arrive wrapped in a context carrying the
// slot the node answered at.

type contextEnvelope[T any] struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value T `json:"value"`
}

type wireAccount struct {
	Lamports   uint64    `json:"lamports"`
	Owner      string    `json:"owner"`
	Data       [2]string `json:"data"`
	Executable bool      `json:"executable"`
	RentEpoch  uint64    `json:"rentEpoch"`
}

type wireBlockhash struct {
	Blockhash            string `json:"blockhash"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
}
