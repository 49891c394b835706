// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/streamproofs/solana-sdk/codec"
	"github.com/streamproofs/solana-sdk/crypto/ed25519"
)

var keyCmd = &cobra.Command{
	Use: "key",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var genKeyCmd = &cobra.Command{
	Use: "generate [path]",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		path := handler.cfg.Keypair
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return ErrNoKeypair
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrKeypairExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		key, err := ed25519.GeneratePrivateKey()
		if err != nil {
			return err
		}
		if err := ed25519.SaveKeypairFile(path, key); err != nil {
			return err
		}
		fmt.Printf("created keypair: %s\n", path)
		fmt.Printf("address: %s\n", codec.PublicKey(key.PublicKey()))
		return nil
	},
}

var addressKeyCmd = &cobra.Command{
	Use: "address",
	RunE: func(*cobra.Command, []string) error {
		address, err := handler.Address()
		if err != nil {
			return err
		}
		fmt.Printf("address: %s\n", address)
		return nil
	},
}
