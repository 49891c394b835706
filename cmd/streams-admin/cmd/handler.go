// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/streamproofs/solana-sdk/accesscontroller"
	"github.com/streamproofs/solana-sdk/codec"
	"github.com/streamproofs/solana-sdk/crypto/ed25519"
	"github.com/streamproofs/solana-sdk/rpc"
	"github.com/streamproofs/solana-sdk/verifier"
)

// Handler holds the resolved [Config] and builds clients on demand, so
// commands that never touch the cluster (key generate, say) work without
// an endpoint configured.
type Handler struct {
	cfg Config
	log *zap.Logger

	keypair   ed25519.PrivateKey
	transport *rpc.Client
}

func newHandler(cfg Config) (*Handler, error) {
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	return &Handler{cfg: cfg, log: log}, nil
}

func newLogger(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.LogLevel)
	}
	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stderr),
			level,
		),
	}
	if cfg.LogFile != "" {
		fileSink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    100, // megabytes
			MaxBackups: 10,
			MaxAge:     30, // days
		})
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			fileSink,
			level,
		))
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}

func (h *Handler) Close() {
	_ = h.log.Sync()
}

// Keypair loads and caches the payer keypair.
func (h *Handler) Keypair() (ed25519.PrivateKey, error) {
	if h.keypair != ed25519.EmptyPrivateKey {
		return h.keypair, nil
	}
	if h.cfg.Keypair == "" {
		return ed25519.EmptyPrivateKey, ErrNoKeypair
	}
	key, err := ed25519.LoadKeypairFile(h.cfg.Keypair)
	if err != nil {
		return ed25519.EmptyPrivateKey, fmt.Errorf("loading keypair %s: %w", h.cfg.Keypair, err)
	}
	h.keypair = key
	return key, nil
}

// Address is the payer keypair's public key.
func (h *Handler) Address() (codec.PublicKey, error) {
	key, err := h.Keypair()
	if err != nil {
		return codec.EmptyPublicKey, err
	}
	return codec.PublicKey(key.PublicKey()), nil
}

func (h *Handler) Transport() (*rpc.Client, error) {
	if h.transport != nil {
		return h.transport, nil
	}
	cli, err := rpc.NewClient(h.cfg.RPC, rpc.WithLogger(h.log))
	if err != nil {
		return nil, err
	}
	h.transport = cli
	return cli, nil
}

// RegistryAccount is the configured access registry state account.
func (h *Handler) RegistryAccount() (codec.PublicKey, error) {
	return parseAccount("registry-account", h.cfg.RegistryAccount, ErrNoRegistryAccount)
}

// Registry builds an access registry client operating on [state]. Most
// commands pass the configured [Handler.RegistryAccount]; registry create
// passes the fresh account's key instead.
func (h *Handler) Registry(state codec.PublicKey) (*accesscontroller.Client, error) {
	program, err := parseAccount("registry-program", h.cfg.RegistryProgram, ErrNoRegistryProgram)
	if err != nil {
		return nil, err
	}
	transport, err := h.Transport()
	if err != nil {
		return nil, err
	}
	key, err := h.Keypair()
	if err != nil {
		return nil, err
	}
	return accesscontroller.New(transport, program, state, key, accesscontroller.WithLogger(h.log)), nil
}

// Verifier builds a verifier client. The configured registry account, if
// any, rides along as the registry reference for verify.
func (h *Handler) Verifier() (*verifier.Client, error) {
	program, err := parseAccount("verifier-program", h.cfg.VerifierProgram, ErrNoVerifierProgram)
	if err != nil {
		return nil, err
	}
	transport, err := h.Transport()
	if err != nil {
		return nil, err
	}
	key, err := h.Keypair()
	if err != nil {
		return nil, err
	}
	opts := []verifier.Option{verifier.WithLogger(h.log)}
	if h.cfg.RegistryAccount != "" {
		registry, err := h.RegistryAccount()
		if err != nil {
			return nil, err
		}
		opts = append(opts, verifier.WithAccessController(registry))
	}
	return verifier.New(transport, program, key, opts...)
}

func parseAccount(name, value string, missing error) (codec.PublicKey, error) {
	if value == "" {
		return codec.EmptyPublicKey, missing
	}
	pk, err := codec.ParsePublicKey(value)
	if err != nil {
		return codec.EmptyPublicKey, fmt.Errorf("parsing %s: %w", name, err)
	}
	return pk, nil
}
