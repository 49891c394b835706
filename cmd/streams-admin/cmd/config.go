// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

const (
	defaultRPC      = "http://127.0.0.1:8899"
	defaultLogLevel = "info"
)

// Config collects everything the CLI needs to reach the cluster and the
// two programs. Values layer in increasing precedence: defaults, the
// YAML config file, STREAMS_* environment variables, command line flags.
type Config struct {
	RPC             string `yaml:"rpc" env:"STREAMS_RPC"`
	Keypair         string `yaml:"keypair" env:"STREAMS_KEYPAIR"`
	VerifierProgram string `yaml:"verifier_program" env:"STREAMS_VERIFIER_PROGRAM"`
	RegistryProgram string `yaml:"registry_program" env:"STREAMS_REGISTRY_PROGRAM"`
	RegistryAccount string `yaml:"registry_account" env:"STREAMS_REGISTRY_ACCOUNT"`
	LogLevel        string `yaml:"log_level" env:"STREAMS_LOG_LEVEL"`
	LogFile         string `yaml:"log_file" env:"STREAMS_LOG_FILE"`
}

func defaultConfig() Config {
	return Config{
		RPC:      defaultRPC,
		Keypair:  defaultKeypairPath(),
		LogLevel: defaultLogLevel,
	}
}

// defaultKeypairPath mirrors the ledger CLI's id.json location so a
// machine already set up for it works without flags.
func defaultKeypairPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "solana", "id.json")
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
