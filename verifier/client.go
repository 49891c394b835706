// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package verifier operates the on-ledger report verifier: account
// lifecycle (create, grow, initialize), signer configuration, and
// submission of compressed reports for verification.
package verifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/streamproofs/solana-sdk/chain"
	"github.com/streamproofs/solana-sdk/codec"
	"github.com/streamproofs/solana-sdk/consts"
	"github.com/streamproofs/solana-sdk/crypto/ed25519"
	"github.com/streamproofs/solana-sdk/rpc"
)

// verifierSeed derives the singleton verifier account under the program.
var verifierSeed = []byte("verifier")

// Client issues verifier transactions. Every mutating call submits in
// [rpc.SubmitModeConfirm] and blocks until the transaction reaches the
// transport's commitment; the realloc loop depends on each step being
// settled before the next is attempted. Ownership and authorization are
// enforced on chain.
//
// All references, the attached registry included, are fixed at
// construction. To verify against a different registry, construct a new
// client.
type Client struct {
	transport Transport
	log       *zap.Logger

	program          codec.PublicKey
	verifierAccount  codec.PublicKey
	programData      codec.PublicKey
	accessController *codec.PublicKey
	payer            ed25519.PrivateKey
}

type Option func(*Client)

// WithLogger attaches a logger. Realloc progress is logged at info
// level, individual submissions at debug.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithAccessController attaches the registry account reference
// [Client.Verify] passes along with reports.
func WithAccessController(account codec.PublicKey) Option {
	return func(c *Client) {
		c.accessController = &account
	}
}

// New returns a client for [program]'s verifier account, derived from
// the fixed seed under the program. [payer] signs every operation and
// pays the fees; mutating operations additionally require it to be the
// account owner (or, for Verify, an address the registry lists).
func New(transport Transport, program codec.PublicKey, payer ed25519.PrivateKey, opts ...Option) (*Client, error) {
	verifierAccount, _, err := codec.FindProgramAddress([][]byte{verifierSeed}, program)
	if err != nil {
		return nil, fmt.Errorf("deriving verifier account: %w", err)
	}
	programData, err := chain.ProgramDataAddress(program)
	if err != nil {
		return nil, fmt.Errorf("deriving program data account: %w", err)
	}

	c := &Client{
		transport:       transport,
		log:             zap.NewNop(),
		program:         program,
		verifierAccount: verifierAccount,
		programData:     programData,
		payer:           payer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Account returns the derived verifier state account.
func (c *Client) Account() codec.PublicKey {
	return c.verifierAccount
}

// AccessController returns the registry reference the client was
// constructed with, or nil.
func (c *Client) AccessController() *codec.PublicKey {
	if c.accessController == nil {
		return nil
	}
	account := *c.accessController
	return &account
}

func (c *Client) payerKey() codec.PublicKey {
	return codec.PublicKey(c.payer.PublicKey())
}

func (c *Client) submit(ctx context.Context, op string, ix chain.Instruction) (chain.Signature, error) {
	sig, err := c.transport.SignAndSubmit(ctx, []chain.Instruction{ix}, []ed25519.PrivateKey{c.payer}, rpc.SubmitModeConfirm)
	c.log.Debug("verifier operation submitted",
		zap.String("op", op),
		zap.Stringer("verifier", c.verifierAccount),
		zap.Stringer("signature", sig),
		zap.Error(err),
	)
	return sig, err
}

// Initialize creates the verifier account at its derived address, at
// minimal size. Grow it with [Client.ReallocFullSize] and then write the
// schema with [Client.InitializeAccountData].
func (c *Client) Initialize(ctx context.Context) (chain.Signature, error) {
	ix := InitializeInstruction(c.program, c.verifierAccount, c.payerKey(), c.programData)
	return c.submit(ctx, "initialize", ix)
}

// Realloc grows the verifier account to exactly [size] bytes in one
// transaction. Steps past the ledger's per-transaction increase are
// rejected on chain; most callers want [Client.ReallocFullSize].
func (c *Client) Realloc(ctx context.Context, size uint32) (chain.Signature, error) {
	ix, err := ReallocInstruction(c.program, c.verifierAccount, c.payerKey(), c.programData, size)
	if err != nil {
		return chain.EmptySignature, err
	}
	return c.submit(ctx, "realloc_account", ix)
}

// GrowthSteps lists the sizes a growth from [current] to [target]
// requests, one transaction per entry. Every step is capped at
// [consts.MaxPermittedDataIncrease] past the previous one and the final
// entry is exactly [target].
func GrowthSteps(current, target int) []int {
	var steps []int
	for current < target {
		current = min(current+consts.MaxPermittedDataIncrease, target)
		steps = append(steps, current)
	}
	return steps
}

// ReallocFullSize grows the verifier account to [AccountSize], one
// confirmed transaction per step, and returns the final step's
// signature. The current size is read once up front: each step assumes
// the previous one settled, which SubmitModeConfirm guarantees. If the
// sequence fails partway the account keeps its partial size and calling
// ReallocFullSize again resumes from there. An account already at or
// beyond the target returns [ErrAlreadyAtTargetSize].
func (c *Client) ReallocFullSize(ctx context.Context) (chain.Signature, error) {
	account, err := c.transport.GetAccountInfo(ctx, c.verifierAccount)
	if err != nil {
		return chain.EmptySignature, err
	}
	current := len(account.Data)
	if current >= AccountSize {
		return chain.EmptySignature, fmt.Errorf("%w: %d bytes", ErrAlreadyAtTargetSize, current)
	}

	var sig chain.Signature
	for _, size := range GrowthSteps(current, AccountSize) {
		c.log.Info("growing verifier account",
			zap.Int("size", size),
			zap.Int("target", AccountSize),
		)
		sig, err = c.Realloc(ctx, uint32(size))
		if err != nil {
			return chain.EmptySignature, err
		}
	}
	return sig, nil
}

// InitializeAccountData writes the initial schema into the fully grown
// account, attaching the client's registry reference if it has one.
func (c *Client) InitializeAccountData(ctx context.Context) (chain.Signature, error) {
	ix := InitializeAccountDataInstruction(c.program, c.verifierAccount, c.payerKey(), c.programData, c.accessController)
	return c.submit(ctx, "initialize_account_data", ix)
}

// SetAccessController points the stored registry reference at
// [accessController]; nil clears it. Owner gated on chain. The client's
// own reference is not changed.
func (c *Client) SetAccessController(ctx context.Context, accessController *codec.PublicKey) (chain.Signature, error) {
	ix := SetAccessControllerInstruction(c.program, c.verifierAccount, c.payerKey(), accessController)
	return c.submit(ctx, "set_access_controller", ix)
}

// Verify compresses [signedReport] and submits it for verification. The
// per-feed config account is derived from the report's first 32 bytes.
// Fails before any network call when no registry reference is configured
// or the report cannot carry a config seed.
func (c *Client) Verify(ctx context.Context, signedReport []byte) (chain.Signature, error) {
	if c.accessController == nil {
		return chain.EmptySignature, ErrNoAccessController
	}
	if len(signedReport) < consts.PublicKeyLen {
		return chain.EmptySignature, fmt.Errorf("%w: %d bytes", ErrReportTooShort, len(signedReport))
	}

	config, _, err := codec.FindProgramAddress([][]byte{signedReport[:consts.PublicKeyLen]}, c.program)
	if err != nil {
		return chain.EmptySignature, fmt.Errorf("deriving config account: %w", err)
	}
	compressed, err := Compress(signedReport)
	if err != nil {
		return chain.EmptySignature, fmt.Errorf("compressing report: %w", err)
	}

	ix, err := VerifyInstruction(c.program, c.verifierAccount, *c.accessController, c.payerKey(), config, compressed)
	if err != nil {
		return chain.EmptySignature, err
	}
	return c.submit(ctx, "verify", ix)
}

// SetConfig stores a new signer configuration activating immediately.
// The program enforces len(signers) > 3f; the client does not.
func (c *Client) SetConfig(ctx context.Context, signers []SignerAddress, f uint8) (chain.Signature, error) {
	ix, err := SetConfigInstruction(c.program, c.verifierAccount, c.payerKey(), signers, f)
	if err != nil {
		return chain.EmptySignature, err
	}
	return c.submit(ctx, "set_config", ix)
}

// SetConfigWithActivationTime stores a new signer configuration that
// activates at [activationTime] (unix seconds).
func (c *Client) SetConfigWithActivationTime(ctx context.Context, signers []SignerAddress, f uint8, activationTime uint32) (chain.Signature, error) {
	ix, err := SetConfigWithActivationTimeInstruction(c.program, c.verifierAccount, c.payerKey(), signers, f, activationTime)
	if err != nil {
		return chain.EmptySignature, err
	}
	return c.submit(ctx, "set_config_with_activation_time", ix)
}

// SetConfigActive toggles the active flag of the configuration at
// [index].
func (c *Client) SetConfigActive(ctx context.Context, index uint64, active bool) (chain.Signature, error) {
	ix, err := SetConfigActiveInstruction(c.program, c.verifierAccount, c.payerKey(), index, active)
	if err != nil {
		return chain.EmptySignature, err
	}
	return c.submit(ctx, "set_config_active", ix)
}

// RemoveLatestConfig drops the most recently stored configuration.
func (c *Client) RemoveLatestConfig(ctx context.Context) (chain.Signature, error) {
	ix := RemoveLatestConfigInstruction(c.program, c.verifierAccount, c.payerKey())
	return c.submit(ctx, "remove_latest_config", ix)
}

// TransferOwnership proposes [proposed] as the verifier's next owner.
func (c *Client) TransferOwnership(ctx context.Context, proposed codec.PublicKey) (chain.Signature, error) {
	ix, err := TransferOwnershipInstruction(c.program, c.verifierAccount, c.payerKey(), proposed)
	if err != nil {
		return chain.EmptySignature, err
	}
	return c.submit(ctx, "transfer_ownership", ix)
}

// AcceptOwnership completes a pending ownership transfer. The client's
// payer must be the proposed owner.
func (c *Client) AcceptOwnership(ctx context.Context) (chain.Signature, error) {
	ix := AcceptOwnershipInstruction(c.program, c.verifierAccount, c.payerKey())
	return c.submit(ctx, "accept_ownership", ix)
}

// ReadState fetches and decodes the verifier account. A partially grown
// account fails with [ErrBadAccountSize].
func (c *Client) ReadState(ctx context.Context) (*VerifierAccount, error) {
	account, err := c.transport.GetAccountInfo(ctx, c.verifierAccount)
	if err != nil {
		return nil, err
	}
	return decodeState(account.Data)
}
