// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	handler *Handler

	configPath      string
	rpcEndpoint     string
	keypairPath     string
	verifierProgram string
	registryProgram string
	registryAccount string
	logLevel        string
	logFile         string
	skipConfirm     bool

	configF          uint8
	configActivation uint32
	reallocSize      uint32
	airdropLamports  uint64

	rootCmd = &cobra.Command{
		Use:        "streams-admin",
		Short:      "Data streams verifier administration CLI",
		SuggestFor: []string{"streams-admin", "streamsadmin"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		keyCmd,
		registryCmd,
		verifierCmd,
		balanceCmd,
		airdropCmd,
		versionCmd,
	)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&rpcEndpoint, "rpc", "", "node RPC endpoint")
	pf.StringVar(&keypairPath, "keypair", "", "path to the payer keypair file")
	pf.StringVar(&verifierProgram, "verifier-program", "", "verifier program id")
	pf.StringVar(&registryProgram, "registry-program", "", "access registry program id")
	pf.StringVar(&registryAccount, "registry-account", "", "access registry state account")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	pf.BoolVar(&skipConfirm, "yes", false, "answer yes to all confirmation prompts")

	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		// Flags outrank both the config file and the environment, but
		// only when actually set on the command line.
		if pf.Changed("rpc") {
			cfg.RPC = rpcEndpoint
		}
		if pf.Changed("keypair") {
			cfg.Keypair = keypairPath
		}
		if pf.Changed("verifier-program") {
			cfg.VerifierProgram = verifierProgram
		}
		if pf.Changed("registry-program") {
			cfg.RegistryProgram = registryProgram
		}
		if pf.Changed("registry-account") {
			cfg.RegistryAccount = registryAccount
		}
		if pf.Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if pf.Changed("log-file") {
			cfg.LogFile = logFile
		}
		handler, err = newHandler(cfg)
		return err
	}
	rootCmd.PersistentPostRun = func(*cobra.Command, []string) {
		if handler != nil {
			handler.Close()
		}
	}
	rootCmd.SilenceErrors = true

	// key
	keyCmd.AddCommand(
		genKeyCmd,
		addressKeyCmd,
	)

	// registry
	registryCmd.AddCommand(
		createRegistryCmd,
		initRegistryCmd,
		addAccessCmd,
		removeAccessCmd,
		showRegistryCmd,
		transferRegistryOwnerCmd,
		acceptRegistryOwnerCmd,
	)

	// verifier
	reallocVerifierCmd.PersistentFlags().Uint32Var(
		&reallocSize,
		"size",
		0,
		"grow to this many bytes instead of the full account size",
	)
	setConfigCmd.PersistentFlags().Uint8Var(
		&configF,
		"f",
		1,
		"maximum tolerated count of faulty signers",
	)
	setConfigCmd.PersistentFlags().Uint32Var(
		&configActivation,
		"activation-time",
		0,
		"unix time the configuration activates (defaults to the ledger clock)",
	)
	verifierCmd.AddCommand(
		initVerifierCmd,
		reallocVerifierCmd,
		initDataVerifierCmd,
		setAccessControllerCmd,
		setConfigCmd,
		setConfigActiveCmd,
		removeLatestConfigCmd,
		verifyCmd,
		showVerifierCmd,
		transferVerifierOwnerCmd,
		acceptVerifierOwnerCmd,
	)

	// airdrop
	airdropCmd.PersistentFlags().Uint64Var(
		&airdropLamports,
		"lamports",
		lamportsPerSol,
		"lamports to request",
	)
}

func Execute() error {
	return rootCmd.Execute()
}
