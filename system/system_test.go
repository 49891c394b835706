// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package system

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamproofs/solana-sdk/chain"
	"github.com/streamproofs/solana-sdk/codec"
)

func TestCreateAccount(t *testing.T) {
	require := require.New(t)

	var funder, newAccount, owner codec.PublicKey
	for i := range funder {
		funder[i] = 0x01
		newAccount[i] = 0x02
		owner[i] = 0x03
	}

	ix, err := CreateAccount(funder, newAccount, owner, 15_706_320, 2128)
	require.NoError(err)

	require.Equal(chain.SystemProgramID, ix.Program)
	require.Equal([]chain.AccountMeta{
		chain.WritableSigner(funder),
		chain.WritableSigner(newAccount),
	}, ix.Accounts)

	// u32 tag, u64 lamports, u64 space, 32-byte owner, all little endian.
	require.Len(ix.Data, 4+8+8+32)
	require.Equal(uint32(0), binary.LittleEndian.Uint32(ix.Data[0:4]))
	require.Equal(uint64(15_706_320), binary.LittleEndian.Uint64(ix.Data[4:12]))
	require.Equal(uint64(2128), binary.LittleEndian.Uint64(ix.Data[12:20]))
	require.Equal(owner[:], ix.Data[20:52])
}
