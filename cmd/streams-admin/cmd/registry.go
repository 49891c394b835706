// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streamproofs/solana-sdk/accesscontroller"
	"github.com/streamproofs/solana-sdk/codec"
	"github.com/streamproofs/solana-sdk/crypto/ed25519"
)

var registryCmd = &cobra.Command{
	Use: "registry",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

// configuredRegistry builds a client on the registry account named by the
// config, which is what every subcommand except create wants.
func configuredRegistry() (*accesscontroller.Client, error) {
	account, err := handler.RegistryAccount()
	if err != nil {
		return nil, err
	}
	return handler.Registry(account)
}

var createRegistryCmd = &cobra.Command{
	Use: "create [state-keypair]",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		state, err := ed25519.LoadKeypairFile(args[0])
		if err != nil {
			return err
		}
		statePub := codec.PublicKey(state.PublicKey())
		registry, err := handler.Registry(statePub)
		if err != nil {
			return err
		}
		transport, err := handler.Transport()
		if err != nil {
			return err
		}
		rent, err := transport.GetMinimumBalanceForRentExemption(ctx, accesscontroller.AccountSize)
		if err != nil {
			return err
		}
		sig, err := registry.CreateAndInitialize(ctx, state, rent)
		if err != nil {
			return err
		}
		fmt.Printf("registry: %s\n", statePub)
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

var initRegistryCmd = &cobra.Command{
	Use: "init",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		registry, err := configuredRegistry()
		if err != nil {
			return err
		}
		sig, err := registry.Initialize(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

var addAccessCmd = &cobra.Command{
	Use: "add [address]",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		address, err := codec.ParsePublicKey(args[0])
		if err != nil {
			return err
		}
		registry, err := configuredRegistry()
		if err != nil {
			return err
		}
		sig, err := registry.AddAccess(ctx, address)
		if err != nil {
			return err
		}
		fmt.Printf("granted access: %s\n", address)
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

var removeAccessCmd = &cobra.Command{
	Use: "remove [address]",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		address, err := codec.ParsePublicKey(args[0])
		if err != nil {
			return err
		}
		registry, err := configuredRegistry()
		if err != nil {
			return err
		}
		sig, err := registry.RemoveAccess(ctx, address)
		if err != nil {
			return err
		}
		fmt.Printf("revoked access: %s\n", address)
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

var showRegistryCmd = &cobra.Command{
	Use: "show",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		registry, err := configuredRegistry()
		if err != nil {
			return err
		}
		state, err := registry.ReadState(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("registry: %s\n", registry.Account())
		fmt.Printf("owner: %s\n", state.Owner)
		if state.ProposedOwner != codec.EmptyPublicKey {
			fmt.Printf("proposed owner: %s\n", state.ProposedOwner)
		}
		addresses := state.Addresses()
		fmt.Printf("access list (%d):\n", len(addresses))
		for _, address := range addresses {
			fmt.Printf("  %s\n", address)
		}
		return nil
	},
}

var transferRegistryOwnerCmd = &cobra.Command{
	Use: "transfer-owner [address]",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		proposed, err := codec.ParsePublicKey(args[0])
		if err != nil {
			return err
		}
		cont, err := confirm(fmt.Sprintf("transfer registry ownership to %s", proposed))
		if !cont || err != nil {
			return err
		}
		registry, err := configuredRegistry()
		if err != nil {
			return err
		}
		sig, err := registry.TransferOwnership(ctx, proposed)
		if err != nil {
			return err
		}
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

var acceptRegistryOwnerCmd = &cobra.Command{
	Use: "accept-owner",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		registry, err := configuredRegistry()
		if err != nil {
			return err
		}
		sig, err := registry.AcceptOwnership(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}
