// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package accesscontroller

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/near/borsh-go"
	"github.com/stretchr/testify/require"

	"github.com/streamproofs/solana-sdk/chain"
	"github.com/streamproofs/solana-sdk/codec"
	"github.com/streamproofs/solana-sdk/consts"
	"github.com/streamproofs/solana-sdk/crypto/ed25519"
	"github.com/streamproofs/solana-sdk/rpc"
)

type fakeTransport struct {
	account    *rpc.Account
	accountErr error

	sig       chain.Signature
	submitErr error

	submissions  int
	instructions []chain.Instruction
	signers      []ed25519.PrivateKey
	mode         rpc.SubmitMode
}

func (f *fakeTransport) GetAccountInfo(context.Context, codec.PublicKey) (*rpc.Account, error) {
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	return f.account, nil
}

func (f *fakeTransport) SignAndSubmit(_ context.Context, instructions []chain.Instruction, signers []ed25519.PrivateKey, mode rpc.SubmitMode) (chain.Signature, error) {
	f.submissions++
	f.instructions = instructions
	f.signers = signers
	f.mode = mode
	return f.sig, f.submitErr
}

func pk(b byte) codec.PublicKey {
	var key codec.PublicKey
	for i := range key {
		key[i] = b
	}
	return key
}

func newTestClient(t *testing.T) (*Client, *fakeTransport, ed25519.PrivateKey) {
	t.Helper()
	require := require.New(t)

	authority, err := ed25519.GeneratePrivateKey()
	require.NoError(err)

	transport := &fakeTransport{sig: chain.Signature{0x01}}
	cli := New(transport, pk(0xaa), pk(0xbb), authority)
	return cli, transport, authority
}

func TestOperations(t *testing.T) {
	program := pk(0xaa)
	state := pk(0xbb)
	address := pk(0xcc)
	proposed := pk(0xdd)

	tests := []struct {
		name     string
		invoke   func(ctx context.Context, c *Client) (chain.Signature, error)
		wantData []byte
		wantLast *chain.AccountMeta
	}{
		{
			name: "initialize",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.Initialize(ctx)
			},
			wantData: codec.MethodDiscriminator("initialize"),
		},
		{
			name: "add_access",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.AddAccess(ctx, address)
			},
			wantData: codec.MethodDiscriminator("add_access"),
			wantLast: &chain.AccountMeta{PublicKey: address},
		},
		{
			name: "remove_access",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.RemoveAccess(ctx, address)
			},
			wantData: codec.MethodDiscriminator("remove_access"),
			wantLast: &chain.AccountMeta{PublicKey: address},
		},
		{
			name: "transfer_ownership",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.TransferOwnership(ctx, proposed)
			},
			wantData: append(codec.MethodDiscriminator("transfer_ownership"), proposed[:]...),
		},
		{
			name: "accept_ownership",
			invoke: func(ctx context.Context, c *Client) (chain.Signature, error) {
				return c.AcceptOwnership(ctx)
			},
			wantData: codec.MethodDiscriminator("accept_ownership"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			cli, transport, authority := newTestClient(t)

			sig, err := tt.invoke(context.Background(), cli)
			require.NoError(err)
			require.Equal(transport.sig, sig)
			require.Equal(rpc.SubmitModePreflight, transport.mode)
			require.Equal([]ed25519.PrivateKey{authority}, transport.signers)

			require.Len(transport.instructions, 1)
			ix := transport.instructions[0]
			require.Equal(program, ix.Program)
			require.Equal(tt.wantData, ix.Data)

			// Metas lead with the writable state account and the signing
			// authority.
			require.Equal(chain.Writable(state), ix.Accounts[0])
			require.Equal(chain.Signer(codec.PublicKey(authority.PublicKey())), ix.Accounts[1])
			if tt.wantLast == nil {
				require.Len(ix.Accounts, 2)
			} else {
				require.Len(ix.Accounts, 3)
				require.Equal(*tt.wantLast, ix.Accounts[2])
			}
		})
	}
}

func TestCreateAndInitialize(t *testing.T) {
	require := require.New(t)

	authority, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	stateKey, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	statePub := codec.PublicKey(stateKey.PublicKey())

	transport := &fakeTransport{sig: chain.Signature{0x02}}
	cli := New(transport, pk(0xaa), statePub, authority)

	sig, err := cli.CreateAndInitialize(context.Background(), stateKey, 15_706_320)
	require.NoError(err)
	require.Equal(transport.sig, sig)
	require.Equal([]ed25519.PrivateKey{authority, stateKey}, transport.signers)

	require.Len(transport.instructions, 2)
	create, init := transport.instructions[0], transport.instructions[1]

	require.Equal(chain.SystemProgramID, create.Program)
	require.Equal([]chain.AccountMeta{
		chain.WritableSigner(codec.PublicKey(authority.PublicKey())),
		chain.WritableSigner(statePub),
	}, create.Accounts)
	// The new account is sized for the full registry schema and owned by
	// the registry program.
	require.Equal(uint64(AccountSize), binary.LittleEndian.Uint64(create.Data[12:20]))
	require.Equal(pk(0xaa).String(), codec.PublicKey(create.Data[20:52]).String())

	require.Equal(codec.MethodDiscriminator("initialize"), init.Data)
	require.Equal(chain.Writable(statePub), init.Accounts[0])
}

func TestCreateAndInitializeWrongKeypair(t *testing.T) {
	require := require.New(t)

	cli, transport, _ := newTestClient(t)
	stranger, err := ed25519.GeneratePrivateKey()
	require.NoError(err)

	_, err = cli.CreateAndInitialize(context.Background(), stranger, 1)
	require.ErrorIs(err, ErrStateMismatch)
	require.Zero(transport.submissions)
}

func encodeState(t *testing.T, state *AccessController) []byte {
	t.Helper()
	raw, err := borsh.Serialize(*state)
	require.NoError(t, err)
	return append(codec.AccountDiscriminator("AccessController"), raw...)
}

func TestReadState(t *testing.T) {
	require := require.New(t)

	state := &AccessController{
		Owner:         pk(0x01),
		ProposedOwner: pk(0x02),
	}
	state.AccessList.Xs[0] = pk(0x11)
	state.AccessList.Xs[1] = pk(0x12)
	// Stale entry beyond Len must be ignored.
	state.AccessList.Xs[2] = pk(0x13)
	state.AccessList.Len = 2

	raw := encodeState(t, state)
	require.Len(raw, AccountSize)

	cli, transport, _ := newTestClient(t)
	transport.account = &rpc.Account{Data: raw}

	decoded, err := cli.ReadState(context.Background())
	require.NoError(err)
	require.Equal(pk(0x01), decoded.Owner)
	require.Equal(pk(0x02), decoded.ProposedOwner)
	require.Equal(uint64(2), decoded.AccessList.Len)

	require.True(decoded.HasAccess(pk(0x11)))
	require.True(decoded.HasAccess(pk(0x12)))
	require.False(decoded.HasAccess(pk(0x13)))
	require.Equal([]codec.PublicKey{pk(0x11), pk(0x12)}, decoded.Addresses())
}

func TestReadStateErrors(t *testing.T) {
	require := require.New(t)

	cli, transport, _ := newTestClient(t)

	transport.accountErr = rpc.ErrAccountNotFound
	_, err := cli.ReadState(context.Background())
	require.ErrorIs(err, rpc.ErrAccountNotFound)
	transport.accountErr = nil

	transport.account = &rpc.Account{Data: make([]byte, AccountSize-1)}
	_, err = cli.ReadState(context.Background())
	require.ErrorIs(err, ErrBadAccountSize)

	transport.account = &rpc.Account{Data: make([]byte, AccountSize)}
	_, err = cli.ReadState(context.Background())
	require.ErrorIs(err, ErrBadDiscriminator)
}

func TestSchemaConstants(t *testing.T) {
	require := require.New(t)
	require.Equal(2128, AccountSize)
	require.Equal(2120, schemaSize)
	require.Equal(8, consts.DiscriminatorLen)
}
