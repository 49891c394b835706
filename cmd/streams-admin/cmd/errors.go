package cmd

import "errors"

var (
	ErrInvalidArgs        = errors.New("invalid args")
	ErrInvalidChoice      = errors.New("invalid choice")
	ErrMissingSubcommand  = errors.New("must specify a subcommand")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrNoKeypair          = errors.New("no keypair configured")
	ErrNoVerifierProgram  = errors.New("no verifier program configured")
	ErrNoRegistryProgram  = errors.New("no registry program configured")
	ErrNoRegistryAccount  = errors.New("no registry account configured")
	ErrKeypairExists      = errors.New("keypair file already exists")
	ErrEmptySignerFile    = errors.New("signer file holds no addresses")
	ErrInvalidSignerLine  = errors.New("invalid signer address")
	ErrInvalidReportInput = errors.New("report is neither a file nor hex")
)
