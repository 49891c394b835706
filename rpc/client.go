// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/streamproofs/solana-sdk/chain"
	"github.com/streamproofs/solana-sdk/codec"
	"github.com/streamproofs/solana-sdk/crypto/ed25519"
	"github.com/streamproofs/solana-sdk/requester"
)

const (
	defaultPollInterval = 500 * time.Millisecond

	// maxSendRetries bounds how often the node re-forwards a transaction
	// submitted in [SubmitModePreflight].
	maxSendRetries = 3
)

// SubmitMode selects how much assurance a submission waits for.
type SubmitMode uint8

const (
	// SubmitModePreflight simulates the transaction at processed
	// commitment before accepting it and lets the node retry forwarding
	// up to [maxSendRetries] times. The call returns as soon as the node
	// accepts the transaction.
	SubmitModePreflight SubmitMode = iota

	// SubmitModeConfirm submits, then polls the signature until it
	// reaches the client's commitment, fails on chain, or its blockhash
	// expires.
	SubmitModeConfirm
)

// Client speaks the node's JSON-RPC API.
type Client struct {
	requester *requester.EndpointRequester
	log       *zap.Logger

	commitment   Commitment
	pollInterval time.Duration

	httpClient *http.Client
	registerer prometheus.Registerer

	metrics *clientMetrics
}

// NewClient returns a client for the node at [uri].
func NewClient(uri string, opts ...Option) (*Client, error) {
	cli := &Client{
		log:          zap.NewNop(),
		commitment:   CommitmentConfirmed,
		pollInterval: defaultPollInterval,
		metrics:      newMetrics(),
	}
	for _, opt := range opts {
		opt(cli)
	}

	reqOpts := []requester.Option{}
	if cli.httpClient != nil {
		reqOpts = append(reqOpts, requester.WithHTTPClient(cli.httpClient))
	}
	cli.requester = requester.New(strings.TrimSuffix(uri, "/"), reqOpts...)

	if cli.registerer != nil {
		if err := cli.metrics.register(cli.registerer); err != nil {
			return nil, err
		}
	}
	return cli, nil
}

func (cli *Client) call(ctx context.Context, method string, params []any, result any) error {
	cli.metrics.requests.Inc()
	start := time.Now()
	err := cli.requester.SendRequest(ctx, method, params, result)
	if err != nil {
		cli.metrics.requestFailures.Inc()
	}
	cli.log.Debug("rpc request",
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)
	return err
}

// GetAccountInfo fetches [account]'s content at the client's commitment.
// A missing account is reported as [ErrAccountNotFound].
func (cli *Client) GetAccountInfo(ctx context.Context, account codec.PublicKey) (*Account, error) {
	resp := new(contextEnvelope[*wireAccount])
	err := cli.call(ctx, "getAccountInfo", []any{
		account.String(),
		map[string]any{"encoding": "base64", "commitment": cli.commitment},
	}, resp)
	if err != nil {
		return nil, err
	}
	if resp.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	if resp.Value.Data[1] != "base64" {
		return nil, fmt.Errorf("%w: account data encoded as %q", ErrMalformedReply, resp.Value.Data[1])
	}
	data, err := base64.StdEncoding.DecodeString(resp.Value.Data[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedReply, err)
	}
	owner, err := codec.ParsePublicKey(resp.Value.Owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedReply, err)
	}
	return &Account{
		Lamports:   resp.Value.Lamports,
		Owner:      owner,
		Data:       data,
		Executable: resp.Value.Executable,
		RentEpoch:  resp.Value.RentEpoch,
	}, nil
}

// GetBalance returns [account]'s lamports at the client's commitment.
func (cli *Client) GetBalance(ctx context.Context, account codec.PublicKey) (uint64, error) {
	resp := new(contextEnvelope[uint64])
	err := cli.call(ctx, "getBalance", []any{
		account.String(),
		map[string]any{"commitment": cli.commitment},
	}, resp)
	return resp.Value, err
}

// GetLatestBlockhash returns a recent blockhash along with the last block
// height at which it remains valid.
func (cli *Client) GetLatestBlockhash(ctx context.Context) (chain.Hash, uint64, error) {
	resp := new(contextEnvelope[wireBlockhash])
	err := cli.call(ctx, "getLatestBlockhash", []any{
		map[string]any{"commitment": cli.commitment},
	}, resp)
	if err != nil {
		return chain.EmptyHash, 0, err
	}
	blockhash, err := chain.ParseHash(resp.Value.Blockhash)
	if err != nil {
		return chain.EmptyHash, 0, fmt.Errorf("%w: %s", ErrMalformedReply, err)
	}
	return blockhash, resp.Value.LastValidBlockHeight, nil
}

// IsBlockhashValid reports whether [blockhash] is still usable for new
// transactions.
func (cli *Client) IsBlockhashValid(ctx context.Context, blockhash chain.Hash) (bool, error) {
	resp := new(contextEnvelope[bool])
	err := cli.call(ctx, "isBlockhashValid", []any{
		blockhash.String(),
		map[string]any{"commitment": cli.commitment},
	}, resp)
	return resp.Value, err
}

// GetSignatureStatuses looks up the settlement status of [signatures]
// from the node's recent status cache. Unknown signatures yield nil
// entries.
func (cli *Client) GetSignatureStatuses(ctx context.Context, signatures ...chain.Signature) ([]*SignatureStatus, error) {
	sigs := make([]string, len(signatures))
	for i, sig := range signatures {
		sigs[i] = sig.String()
	}
	resp := new(contextEnvelope[[]*SignatureStatus])
	err := cli.call(ctx, "getSignatureStatuses", []any{
		sigs,
		map[string]any{"searchTransactionHistory": false},
	}, resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Value) != len(signatures) {
		return nil, fmt.Errorf("%w: %d statuses for %d signatures", ErrMalformedReply, len(resp.Value), len(signatures))
	}
	return resp.Value, nil
}

// GetMinimumBalanceForRentExemption returns the lamports an account of
// [size] bytes must hold to be rent exempt.
func (cli *Client) GetMinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error) {
	var lamports uint64
	err := cli.call(ctx, "getMinimumBalanceForRentExemption", []any{size}, &lamports)
	return lamports, err
}

// GetVersion returns the node's software version.
func (cli *Client) GetVersion(ctx context.Context) (Version, error) {
	var version Version
	err := cli.call(ctx, "getVersion", nil, &version)
	return version, err
}

// RequestAirdrop asks the cluster faucet to fund [account]. Test clusters
// only.
func (cli *Client) RequestAirdrop(ctx context.Context, account codec.PublicKey, lamports uint64) (chain.Signature, error) {
	var sigStr string
	err := cli.call(ctx, "requestAirdrop", []any{account.String(), lamports}, &sigStr)
	if err != nil {
		return chain.EmptySignature, err
	}
	sig, err := chain.ParseSignature(sigStr)
	if err != nil {
		return chain.EmptySignature, fmt.Errorf("%w: %s", ErrMalformedReply, err)
	}
	return sig, nil
}

// Submit sends [tx] in [mode]. In [SubmitModeConfirm] the returned
// signature is valid even when confirmation fails, so callers can look
// the transaction up.
func (cli *Client) Submit(ctx context.Context, tx *chain.Transaction, mode SubmitMode) (chain.Signature, error) {
	cfg := map[string]any{
		"encoding":      "base64",
		"skipPreflight": false,
	}
	switch mode {
	case SubmitModePreflight:
		cfg["preflightCommitment"] = CommitmentProcessed
		cfg["maxRetries"] = maxSendRetries
	case SubmitModeConfirm:
		cfg["preflightCommitment"] = cli.commitment
	}

	raw := base64.StdEncoding.EncodeToString(tx.Serialize())
	var sigStr string
	if err := cli.call(ctx, "sendTransaction", []any{raw, cfg}, &sigStr); err != nil {
		return chain.EmptySignature, err
	}
	sig, err := chain.ParseSignature(sigStr)
	if err != nil {
		return chain.EmptySignature, fmt.Errorf("%w: %s", ErrMalformedReply, err)
	}
	cli.metrics.txsSubmitted.Inc()

	if mode == SubmitModeConfirm {
		if err := cli.waitForConfirmation(ctx, sig, tx.Message.RecentBlockhash); err != nil {
			cli.metrics.txsFailed.Inc()
			return sig, err
		}
		cli.metrics.txsConfirmed.Inc()
	}
	return sig, nil
}

// SignAndSubmit compiles [instructions] into a transaction paid for and
// signed by [signers[0]], signs it with every signer, and submits it in
// [mode].
func (cli *Client) SignAndSubmit(ctx context.Context, instructions []chain.Instruction, signers []ed25519.PrivateKey, mode SubmitMode) (chain.Signature, error) {
	if len(signers) == 0 {
		return chain.EmptySignature, ErrNoSigners
	}
	blockhash, _, err := cli.GetLatestBlockhash(ctx)
	if err != nil {
		return chain.EmptySignature, err
	}
	msg, err := chain.NewMessage(codec.PublicKey(signers[0].PublicKey()), instructions, blockhash)
	if err != nil {
		return chain.EmptySignature, err
	}
	tx := chain.NewTransaction(msg)
	if err := tx.Sign(signers...); err != nil {
		return chain.EmptySignature, err
	}
	return cli.Submit(ctx, tx, mode)
}

// waitForConfirmation polls [sig]'s status until it reaches the client's
// commitment. While the node does not know the signature yet, the loop
// keeps going only as long as [blockhash] remains valid.
func (cli *Client) waitForConfirmation(ctx context.Context, sig chain.Signature, blockhash chain.Hash) error {
	return Wait(ctx, cli.pollInterval, func(ctx context.Context) (bool, error) {
		statuses, err := cli.GetSignatureStatuses(ctx, sig)
		if err != nil {
			return false, err
		}
		status := statuses[0]
		if status == nil {
			valid, err := cli.IsBlockhashValid(ctx, blockhash)
			if err != nil {
				return false, err
			}
			if !valid {
				return false, fmt.Errorf("%w: %s", ErrTransactionExpired, sig)
			}
			return false, nil
		}
		if status.Failed() {
			return false, fmt.Errorf("%w: %s", ErrTransactionFailed, status.Err)
		}
		if status.Confirmations == nil || status.ConfirmationStatus.atLeast(cli.commitment) {
			return true, nil
		}
		return false, nil
	})
}

// Wait calls [check] every [interval] until it reports done or errors.
func Wait(ctx context.Context, interval time.Duration, check func(ctx context.Context) (bool, error)) error {
	for ctx.Err() == nil {
		exit, err := check(ctx)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
		time.Sleep(interval)
	}
	return ctx.Err()
}
