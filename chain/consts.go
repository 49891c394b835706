// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "github.com/streamproofs/solana-sdk/codec"

var (
	// SystemProgramID is the native program that creates accounts and
	// moves lamports.
	SystemProgramID = codec.MustParsePublicKey("11111111111111111111111111111111")

	// BPFLoaderUpgradeableID is the loader that owns upgradeable
	// programs. A deployed program's executable bytes live in a separate
	// program data account derived from this loader.
	BPFLoaderUpgradeableID = codec.MustParsePublicKey("BPFLoaderUpgradeab1e11111111111111111111111")
)

// ProgramDataAddress returns the program data account the upgradeable
// loader assigns to [program].
func ProgramDataAddress(program codec.PublicKey) (codec.PublicKey, error) {
	addr, _, err := codec.FindProgramAddress([][]byte{program[:]}, BPFLoaderUpgradeableID)
	return addr, err
}
