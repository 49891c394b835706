// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package verifier

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamproofs/solana-sdk/chain"
	"github.com/streamproofs/solana-sdk/codec"
	"github.com/streamproofs/solana-sdk/crypto/ed25519"
	"github.com/streamproofs/solana-sdk/rpc"
)

type fakeTransport struct {
	account      *rpc.Account
	accountErr   error
	accountCalls int

	sig       chain.Signature
	failAt    int
	submitErr error

	submissions []chain.Instruction
	signers     []ed25519.PrivateKey
	mode        rpc.SubmitMode
}

func (f *fakeTransport) GetAccountInfo(context.Context, codec.PublicKey) (*rpc.Account, error) {
	f.accountCalls++
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	return f.account, nil
}

func (f *fakeTransport) SignAndSubmit(_ context.Context, instructions []chain.Instruction, signers []ed25519.PrivateKey, mode rpc.SubmitMode) (chain.Signature, error) {
	f.submissions = append(f.submissions, instructions...)
	f.signers = signers
	f.mode = mode
	if f.failAt > 0 && len(f.submissions) >= f.failAt {
		return chain.EmptySignature, f.submitErr
	}
	return f.sig, nil
}

func pk(b byte) codec.PublicKey {
	var key codec.PublicKey
	for i := range key {
		key[i] = b
	}
	return key
}

func sa(b byte) SignerAddress {
	var s SignerAddress
	for i := range s {
		s[i] = b
	}
	return s
}

func le32(n uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, n)
	return b
}

func le64(n uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, n)
	return b
}

func TestOperations(t *testing.T) {
	req := require.New(t)

	payer, err := ed25519.GeneratePrivateKey()
	req.NoError(err)
	owner := codec.PublicKey(payer.PublicKey())
	program := pk(0xaa)
	registry := pk(0xcc)
	proposed := pk(0xdd)

	verifierAccount, _, err := codec.FindProgramAddress([][]byte{[]byte("verifier")}, program)
	req.NoError(err)
	programData, err := chain.ProgramDataAddress(program)
	req.NoError(err)

	// Lifecycle ops prove upgrade authority through the program and its
	// program data account; config ops only touch the state and owner.
	lifecycleMetas := []chain.AccountMeta{
		chain.Writable(verifierAccount),
		chain.WritableSigner(owner),
		chain.ReadOnly(program),
		chain.ReadOnly(programData),
		chain.ReadOnly(chain.SystemProgramID),
	}
	updateMetas := []chain.AccountMeta{
		chain.Writable(verifierAccount),
		chain.Signer(owner),
	}
	initDataMetas := func(third codec.PublicKey) []chain.AccountMeta {
		return []chain.AccountMeta{
			chain.Writable(verifierAccount),
			chain.Signer(owner),
			chain.ReadOnly(third),
			chain.ReadOnly(program),
			chain.ReadOnly(programData),
			chain.ReadOnly(chain.SystemProgramID),
		}
	}

	signers := make([]SignerAddress, 10)
	for i := range signers {
		signers[i] = sa(byte(i + 1))
	}
	signerBytes := []byte{}
	for _, s := range signers {
		signerBytes = append(signerBytes, s[:]...)
	}

	concat := func(parts ...[]byte) []byte {
		var out []byte
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}

	tests := []struct {
		name      string
		opts      []Option
		invoke    func(ctx context.Context, c *Client) (chain.Signature, error)
		wantData  []byte
		wantMetas []chain.AccountMeta
	}{
		{
			name: "initialize",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.Initialize(ctx)
			},
			wantData:  codec.MethodDiscriminator("initialize"),
			wantMetas: lifecycleMetas,
		},
		{
			name: "realloc",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.Realloc(ctx, 10248)
			},
			wantData:  concat(codec.MethodDiscriminator("realloc_account"), le32(10248)),
			wantMetas: lifecycleMetas,
		},
		{
			name: "initialize_account_data with registry",
			opts: []Option{WithAccessController(registry)},
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.InitializeAccountData(ctx)
			},
			wantData:  codec.MethodDiscriminator("initialize_account_data"),
			wantMetas: initDataMetas(registry),
		},
		{
			// An absent optional account travels as the program's own ID.
			name: "initialize_account_data without registry",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.InitializeAccountData(ctx)
			},
			wantData:  codec.MethodDiscriminator("initialize_account_data"),
			wantMetas: initDataMetas(program),
		},
		{
			name: "set_access_controller attach",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.SetAccessController(ctx, &registry)
			},
			wantData:  codec.MethodDiscriminator("set_access_controller"),
			wantMetas: append(append([]chain.AccountMeta{}, updateMetas...), chain.ReadOnly(registry)),
		},
		{
			name: "set_access_controller clear",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.SetAccessController(ctx, nil)
			},
			wantData:  codec.MethodDiscriminator("set_access_controller"),
			wantMetas: append(append([]chain.AccountMeta{}, updateMetas...), chain.ReadOnly(program)),
		},
		{
			name: "set_config",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.SetConfig(ctx, signers, 3)
			},
			wantData:  concat(codec.MethodDiscriminator("set_config"), le32(10), signerBytes, []byte{3}),
			wantMetas: updateMetas,
		},
		{
			name: "set_config_with_activation_time",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.SetConfigWithActivationTime(ctx, signers, 3, 1_700_000_000)
			},
			wantData: concat(
				codec.MethodDiscriminator("set_config_with_activation_time"),
				le32(10), signerBytes, []byte{3}, le32(1_700_000_000),
			),
			wantMetas: updateMetas,
		},
		{
			name: "set_config_active on",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.SetConfigActive(ctx, 2, true)
			},
			wantData:  concat(codec.MethodDiscriminator("set_config_active"), le64(2), []byte{1}),
			wantMetas: updateMetas,
		},
		{
			// The flag is a single byte, 0 for false.
			name: "set_config_active off",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.SetConfigActive(ctx, 0, false)
			},
			wantData:  concat(codec.MethodDiscriminator("set_config_active"), le64(0), []byte{0}),
			wantMetas: updateMetas,
		},
		{
			name: "remove_latest_config",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.RemoveLatestConfig(ctx)
			},
			wantData:  codec.MethodDiscriminator("remove_latest_config"),
			wantMetas: updateMetas,
		},
		{
			name: "transfer_ownership",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.TransferOwnership(ctx, proposed)
			},
			wantData:  concat(codec.MethodDiscriminator("transfer_ownership"), proposed[:]),
			wantMetas: updateMetas,
		},
		{
			name: "accept_ownership",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.AcceptOwnership(ctx)
			},
			wantData:  codec.MethodDiscriminator("accept_ownership"),
			wantMetas: updateMetas,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			transport := &fakeTransport{sig: chain.Signature{0x01}}
			cli, err := New(transport, program, payer, tt.opts...)
			require.NoError(err)
			require.Equal(verifierAccount, cli.Account())

			sig, err := tt.invoke(context.Background(), cli)
			require.NoError(err)
			require.Equal(transport.sig, sig)
			require.Equal(rpc.SubmitModeConfirm, transport.mode)
			require.Equal([]ed25519.PrivateKey{payer}, transport.signers)

			require.Len(transport.submissions, 1)
			ix := transport.submissions[0]
			require.Equal(program, ix.Program)
			require.Equal(tt.wantData, ix.Data)
			require.Equal(tt.wantMetas, ix.Accounts)
		})
	}
}

func newTestClient(t *testing.T, opts ...Option) (*Client, *fakeTransport) {
	t.Helper()
	require := require.New(t)

	payer, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	transport := &fakeTransport{sig: chain.Signature{0x01}}
	cli, err := New(transport, pk(0xaa), payer, opts...)
	require.NoError(err)
	return cli, transport
}

func TestVerifyPreconditions(t *testing.T) {
	require := require.New(t)

	// No registry reference: fail before any network call.
	cli, transport := newTestClient(t)
	_, err := cli.Verify(context.Background(), make([]byte, 64))
	require.ErrorIs(err, ErrNoAccessController)
	require.Zero(transport.accountCalls)
	require.Empty(transport.submissions)

	// Too short to carry a config seed.
	cli, transport = newTestClient(t, WithAccessController(pk(0xcc)))
	_, err = cli.Verify(context.Background(), make([]byte, 31))
	require.ErrorIs(err, ErrReportTooShort)
	require.Empty(transport.submissions)
}

func TestVerify(t *testing.T) {
	require := require.New(t)

	registry := pk(0xcc)
	cli, transport := newTestClient(t, WithAccessController(registry))

	report := make([]byte, 96)
	for i := range report {
		report[i] = byte(i)
	}
	sig, err := cli.Verify(context.Background(), report)
	require.NoError(err)
	require.Equal(transport.sig, sig)
	require.Equal(rpc.SubmitModeConfirm, transport.mode)

	require.Len(transport.submissions, 1)
	ix := transport.submissions[0]

	config, _, err := codec.FindProgramAddress([][]byte{report[:32]}, pk(0xaa))
	require.NoError(err)
	user := codec.PublicKey(transport.signers[0].PublicKey())
	require.Equal([]chain.AccountMeta{
		chain.ReadOnly(cli.Account()),
		chain.ReadOnly(registry),
		chain.Signer(user),
		chain.ReadOnly(config),
	}, ix.Accounts)

	// Data carries the discriminator, then the compressed report framed
	// with its u32 length. Inflating the payload restores the original.
	require.Equal(codec.MethodDiscriminator("verify"), ix.Data[:8])
	payloadLen := binary.LittleEndian.Uint32(ix.Data[8:12])
	payload := ix.Data[12:]
	require.Len(payload, int(payloadLen))
	require.Equal(report, decompress(t, payload))
}

func TestReallocFullSize(t *testing.T) {
	require := require.New(t)

	// A fresh account holds only the 8-byte discriminator.
	cli, transport := newTestClient(t)
	transport.account = &rpc.Account{Data: make([]byte, 8)}

	sig, err := cli.ReallocFullSize(context.Background())
	require.NoError(err)
	require.Equal(transport.sig, sig)

	// The size is read once, then grown in ledger-capped steps landing
	// exactly on the target.
	require.Equal(1, transport.accountCalls)
	require.Equal([]uint32{10248, 20488, 20984}, reallocSizes(t, transport.submissions))
}

func TestReallocFullSizeResumes(t *testing.T) {
	require := require.New(t)

	cli, transport := newTestClient(t)
	transport.account = &rpc.Account{Data: make([]byte, 10248)}

	_, err := cli.ReallocFullSize(context.Background())
	require.NoError(err)
	require.Equal([]uint32{20488, 20984}, reallocSizes(t, transport.submissions))
}

func TestReallocFullSizeAlreadyFull(t *testing.T) {
	require := require.New(t)

	cli, transport := newTestClient(t)
	transport.account = &rpc.Account{Data: make([]byte, AccountSize)}

	_, err := cli.ReallocFullSize(context.Background())
	require.ErrorIs(err, ErrAlreadyAtTargetSize)
	require.Empty(transport.submissions)
}

func TestReallocFullSizeStepFailure(t *testing.T) {
	require := require.New(t)

	cli, transport := newTestClient(t)
	transport.account = &rpc.Account{Data: make([]byte, 8)}
	transport.failAt = 2
	transport.submitErr = rpc.ErrTransactionExpired

	sig, err := cli.ReallocFullSize(context.Background())
	require.ErrorIs(err, rpc.ErrTransactionExpired)
	require.Equal(chain.EmptySignature, sig)
	// The sequence stops at the failed step; the account keeps its
	// partial size and a later call resumes from it.
	require.Len(transport.submissions, 2)
}

func TestReallocFullSizeAccountFetchError(t *testing.T) {
	require := require.New(t)

	cli, transport := newTestClient(t)
	transport.accountErr = rpc.ErrAccountNotFound

	_, err := cli.ReallocFullSize(context.Background())
	require.ErrorIs(err, rpc.ErrAccountNotFound)
	require.Empty(transport.submissions)
}

func TestGrowthSteps(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		target   int
		expected []int
	}{
		{"from zero to uneven target", 0, 25_000, []int{10_240, 20_480, 25_000}},
		{"fresh account to full size", 8, AccountSize, []int{10_248, 20_488, 20_984}},
		{"resume after one step", 10_248, AccountSize, []int{20_488, 20_984}},
		{"already at target", AccountSize, AccountSize, nil},
		{"single step", 0, 10_240, []int{10_240}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			steps := GrowthSteps(tt.current, tt.target)
			require.Equal(tt.expected, steps)
			for _, size := range steps {
				require.LessOrEqual(size, tt.target)
			}
			if len(steps) > 0 {
				require.Equal(tt.target, steps[len(steps)-1])
			}
		})
	}
}

func reallocSizes(t *testing.T, submissions []chain.Instruction) []uint32 {
	t.Helper()
	require := require.New(t)

	sizes := make([]uint32, len(submissions))
	for i, ix := range submissions {
		require.Equal(codec.MethodDiscriminator("realloc_account"), ix.Data[:8])
		sizes[i] = binary.LittleEndian.Uint32(ix.Data[8:12])
	}
	return sizes
}

func TestAccessControllerCopies(t *testing.T) {
	require := require.New(t)

	registry := pk(0xcc)
	cli, _ := newTestClient(t, WithAccessController(registry))

	ref := cli.AccessController()
	require.NotNil(ref)
	require.Equal(registry, *ref)

	// Mutating the returned pointer must not affect the client.
	ref[0] = 0xff
	require.Equal(registry, *cli.AccessController())

	cli, _ = newTestClient(t)
	require.Nil(cli.AccessController())
}
