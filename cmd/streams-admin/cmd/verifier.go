// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/streamproofs/solana-sdk/chain"
	"github.com/streamproofs/solana-sdk/codec"
	"github.com/streamproofs/solana-sdk/verifier"
)

var verifierCmd = &cobra.Command{
	Use: "verifier",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var initVerifierCmd = &cobra.Command{
	Use: "init",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		v, err := handler.Verifier()
		if err != nil {
			return err
		}
		sig, err := v.Initialize(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("verifier: %s\n", v.Account())
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

var reallocVerifierCmd = &cobra.Command{
	Use: "realloc",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := context.Background()
		v, err := handler.Verifier()
		if err != nil {
			return err
		}
		var sig chain.Signature
		if cmd.Flags().Changed("size") {
			sig, err = v.Realloc(ctx, reallocSize)
		} else {
			sig, err = v.ReallocFullSize(ctx)
		}
		if err != nil {
			return err
		}
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

var initDataVerifierCmd = &cobra.Command{
	Use: "init-data",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		v, err := handler.Verifier()
		if err != nil {
			return err
		}
		sig, err := v.InitializeAccountData(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

// setAccessControllerCmd points the verifier at a registry account, or
// clears the reference when called without an argument.
var setAccessControllerCmd = &cobra.Command{
	Use: "set-access-controller [account]",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		v, err := handler.Verifier()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			cont, err := confirm("clear the access registry, opening verify to everyone")
			if !cont || err != nil {
				return err
			}
			sig, err := v.SetAccessController(ctx, nil)
			if err != nil {
				return err
			}
			fmt.Printf("signature: %s\n", sig)
			return nil
		}
		account, err := codec.ParsePublicKey(args[0])
		if err != nil {
			return err
		}
		sig, err := v.SetAccessController(ctx, &account)
		if err != nil {
			return err
		}
		fmt.Printf("access registry: %s\n", account)
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

var setConfigCmd = &cobra.Command{
	Use: "set-config [signers-file]",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		signers, err := readSignerFile(args[0])
		if err != nil {
			return err
		}
		v, err := handler.Verifier()
		if err != nil {
			return err
		}
		var sig chain.Signature
		if cmd.Flags().Changed("activation-time") {
			sig, err = v.SetConfigWithActivationTime(ctx, signers, configF, configActivation)
		} else {
			sig, err = v.SetConfig(ctx, signers, configF)
		}
		if err != nil {
			return err
		}
		fmt.Printf("signers: %d, f: %d\n", len(signers), configF)
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

var setConfigActiveCmd = &cobra.Command{
	Use: "set-config-active [index] [true|false]",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 2 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		index, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidArgs, args[0])
		}
		active, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidArgs, args[1])
		}
		v, err := handler.Verifier()
		if err != nil {
			return err
		}
		sig, err := v.SetConfigActive(ctx, index, active)
		if err != nil {
			return err
		}
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

var removeLatestConfigCmd = &cobra.Command{
	Use: "remove-latest-config",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		v, err := handler.Verifier()
		if err != nil {
			return err
		}
		sig, err := v.RemoveLatestConfig(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use: "verify [report-file-or-hex]",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		report, err := readReport(args[0])
		if err != nil {
			return err
		}
		v, err := handler.Verifier()
		if err != nil {
			return err
		}
		sig, err := v.Verify(ctx, report)
		if err != nil {
			return err
		}
		fmt.Printf("report: %d bytes\n", len(report))
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

var showVerifierCmd = &cobra.Command{
	Use: "show",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		v, err := handler.Verifier()
		if err != nil {
			return err
		}
		state, err := v.ReadState(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("verifier: %s\n", v.Account())
		fmt.Printf("version: %d\n", state.Version)
		fmt.Printf("owner: %s\n", state.Owner)
		if state.ProposedOwner != codec.EmptyPublicKey {
			fmt.Printf("proposed owner: %s\n", state.ProposedOwner)
		}
		if state.AccessController != codec.EmptyPublicKey {
			fmt.Printf("access registry: %s\n", state.AccessController)
		} else {
			fmt.Println("access registry: none")
		}
		configs := state.Configs()
		fmt.Printf("configs (%d):\n", len(configs))
		for i, config := range configs {
			status := "inactive"
			if config.IsActive == 1 {
				status = "active"
			}
			fmt.Printf("  %d: id %x, f %d, activation %d, signers %d, %s\n",
				i, config.DonConfigID, config.F, config.ActivationTime,
				liveSigners(config), status)
		}
		return nil
	},
}

var transferVerifierOwnerCmd = &cobra.Command{
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
		cont, err := confirm(fmt.Sprintf("transfer verifier ownership to %s", proposed))
		if !cont || err != nil {
			return err
		}
		v, err := handler.Verifier()
		if err != nil {
			return err
		}
		sig, err := v.TransferOwnership(ctx, proposed)
		if err != nil {
			return err
		}
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

var acceptVerifierOwnerCmd = &cobra.Command{
	Use: "accept-owner",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		v, err := handler.Verifier()
		if err != nil {
			return err
		}
		sig, err := v.AcceptOwnership(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("signature: %s\n", sig)
		return nil
	},
}

// readSignerFile parses one 20-byte hex signer address per line. Blank
// lines and lines starting with # are skipped.
func readSignerFile(path string) ([]verifier.SignerAddress, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var signers []verifier.SignerAddress
	for i, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		b, err := hex.DecodeString(strings.TrimPrefix(line, "0x"))
		if err != nil || len(b) != verifier.SignerAddressLen {
			return nil, fmt.Errorf("%w: line %d", ErrInvalidSignerLine, i+1)
		}
		signers = append(signers, verifier.SignerAddress(b))
	}
	if len(signers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySignerFile, path)
	}
	return signers, nil
}

// readReport loads the signed report from a file, or failing that decodes
// the argument itself as hex.
func readReport(arg string) ([]byte, error) {
	if raw, err := os.ReadFile(arg); err == nil {
		return raw, nil
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(arg, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidReportInput, arg)
	}
	return raw, nil
}

func liveSigners(config verifier.DonConfig) int {
	n := 0
	for _, signer := range config.Signers {
		if signer != (verifier.SignerAddress{}) {
			n++
		}
	}
	return n
}
