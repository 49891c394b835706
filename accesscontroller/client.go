// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package accesscontroller operates the on-ledger access registry: an
// owner-gated list of addresses allowed to consume verified reports.
package accesscontroller

import (
	"context"

	"go.uber.org/zap"

	"github.com/streamproofs/solana-sdk/chain"
	"github.com/streamproofs/solana-sdk/codec"
	"github.com/streamproofs/solana-sdk/crypto/ed25519"
	"github.com/streamproofs/solana-sdk/rpc"
	"github.com/streamproofs/solana-sdk/system"
)

// Client issues registry transactions. Every mutating call submits in
// [rpc.SubmitModePreflight]: the node simulates first and the call
// returns once the transaction is accepted. Ownership and authorization
// are enforced on chain; the client submits whatever authority it holds
// and surfaces rejections verbatim.
//
// A Client is stateless between calls and safe to recreate freely.
// Callers serialize conflicting operations themselves.
type Client struct {
	transport Transport
	log       *zap.Logger

	program   codec.PublicKey
	state     codec.PublicKey
	authority ed25519.PrivateKey
}

type Option func(*Client)

// WithLogger attaches a logger; operations are logged at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New returns a client for the registry [state] account of [program].
// [authority] signs every operation and pays the fees.
func New(transport Transport, program, state codec.PublicKey, authority ed25519.PrivateKey, opts ...Option) *Client {
	c := &Client{
		transport: transport,
		log:       zap.NewNop(),
		program:   program,
		state:     state,
		authority: authority,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Account returns the registry state account the client operates on.
func (c *Client) Account() codec.PublicKey {
	return c.state
}

func (c *Client) authorityKey() codec.PublicKey {
	return codec.PublicKey(c.authority.PublicKey())
}

func (c *Client) submit(ctx context.Context, op string, instructions []chain.Instruction, signers []ed25519.PrivateKey) (chain.Signature, error) {
	sig, err := c.transport.SignAndSubmit(ctx, instructions, signers, rpc.SubmitModePreflight)
	c.log.Debug("registry operation submitted",
		zap.String("op", op),
		zap.Stringer("state", c.state),
		zap.Stringer("signature", sig),
		zap.Error(err),
	)
	return sig, err
}

// Initialize turns the pre-created [state] account into an empty registry
// owned by the client's authority. Initializing an account twice is
// rejected on chain.
func (c *Client) Initialize(ctx context.Context) (chain.Signature, error) {
	ix := InitializeInstruction(c.program, c.state, c.authorityKey())
	return c.submit(ctx, "initialize", []chain.Instruction{ix}, []ed25519.PrivateKey{c.authority})
}

// CreateAndInitialize creates the registry account and initializes it in
// one transaction. [state] must be the keypair for the client's
// configured account; [lamports] funds rent exemption for [AccountSize]
// bytes (see [rpc.Client.GetMinimumBalanceForRentExemption]).
func (c *Client) CreateAndInitialize(ctx context.Context, state ed25519.PrivateKey, lamports uint64) (chain.Signature, error) {
	statePub := codec.PublicKey(state.PublicKey())
	if statePub != c.state {
		return chain.EmptySignature, ErrStateMismatch
	}
	create, err := system.CreateAccount(c.authorityKey(), statePub, c.program, lamports, AccountSize)
	if err != nil {
		return chain.EmptySignature, err
	}
	init := InitializeInstruction(c.program, c.state, c.authorityKey())
	return c.submit(ctx, "create_and_initialize",
		[]chain.Instruction{create, init},
		[]ed25519.PrivateKey{c.authority, state},
	)
}

// AddAccess grants [address] access. Adding an address twice is rejected
// on chain.
func (c *Client) AddAccess(ctx context.Context, address codec.PublicKey) (chain.Signature, error) {
	ix := AddAccessInstruction(c.program, c.state, c.authorityKey(), address)
	return c.submit(ctx, "add_access", []chain.Instruction{ix}, []ed25519.PrivateKey{c.authority})
}

// RemoveAccess revokes [address]'s access. Removing an address that is
// not listed is rejected on chain.
func (c *Client) RemoveAccess(ctx context.Context, address codec.PublicKey) (chain.Signature, error) {
	ix := RemoveAccessInstruction(c.program, c.state, c.authorityKey(), address)
	return c.submit(ctx, "remove_access", []chain.Instruction{ix}, []ed25519.PrivateKey{c.authority})
}

// TransferOwnership proposes [proposed] as the registry's next owner. The
// current owner must sign; the transfer takes effect when the proposed
// owner calls [Client.AcceptOwnership].
func (c *Client) TransferOwnership(ctx context.Context, proposed codec.PublicKey) (chain.Signature, error) {
	ix, err := TransferOwnershipInstruction(c.program, c.state, c.authorityKey(), proposed)
	if err != nil {
		return chain.EmptySignature, err
	}
	return c.submit(ctx, "transfer_ownership", []chain.Instruction{ix}, []ed25519.PrivateKey{c.authority})
}

// AcceptOwnership completes a pending ownership transfer. The client's
// authority must be the proposed owner.
func (c *Client) AcceptOwnership(ctx context.Context) (chain.Signature, error) {
	ix := AcceptOwnershipInstruction(c.program, c.state, c.authorityKey())
	return c.submit(ctx, "accept_ownership", []chain.Instruction{ix}, []ed25519.PrivateKey{c.authority})
}

// ReadState fetches and decodes the registry account.
func (c *Client) ReadState(ctx context.Context) (*AccessController, error) {
	account, err := c.transport.GetAccountInfo(ctx, c.state)
	if err != nil {
		return nil, err
	}
	return decodeState(account.Data)
}
