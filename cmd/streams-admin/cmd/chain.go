// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streamproofs/solana-sdk/codec"
)

const lamportsPerSol = 1_000_000_000

// accountFromArgs resolves the optional address argument, defaulting to
// the payer keypair's address.
func accountFromArgs(args []string) (codec.PublicKey, error) {
	if len(args) == 1 {
		return codec.ParsePublicKey(args[0])
	}
	return handler.Address()
}

func maxOneArg(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return ErrInvalidArgs
	}
	return nil
}

var balanceCmd = &cobra.Command{
	Use:     "balance [address]",
	PreRunE: maxOneArg,
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		account, err := accountFromArgs(args)
		if err != nil {
			return err
		}
		transport, err := handler.Transport()
		if err != nil {
			return err
		}
		balance, err := transport.GetBalance(ctx, account)
		if err != nil {
			return err
		}
		fmt.Printf("balance: %d lamports (%.9f SOL)\n", balance, float64(balance)/lamportsPerSol)
		return nil
	},
}

var airdropCmd = &cobra.Command{
	Use:     "airdrop [address]",
	PreRunE: maxOneArg,
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		account, err := accountFromArgs(args)
		if err != nil {
			return err
		}
		transport, err := handler.Transport()
		if err != nil {
			return err
		}
		sig, err := transport.RequestAirdrop(ctx, account, airdropLamports)
		if err != nil {
			return err
		}
		fmt.Printf("requested %d lamports for %s\n", airdropLamports, account)
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use: "version",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		transport, err := handler.Transport()
		if err != nil {
			return err
		}
		version, err := transport.GetVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("solana-core: %s\n", version.SolanaCore)
		fmt.Printf("feature-set: %d\n", version.FeatureSet)
		return nil
	},
}
