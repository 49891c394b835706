// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package verifier

import (
	"fmt"

	"github.com/near/borsh-go"

	"github.com/streamproofs/solana-sdk/chain"
	"github.com/streamproofs/solana-sdk/codec"
)

// optionalMeta encodes an optional account the way the program expects:
// absent accounts are passed as the program's own ID.
func optionalMeta(account *codec.PublicKey, program codec.PublicKey) chain.AccountMeta {
	if account == nil {
		return chain.ReadOnly(program)
	}
	return chain.ReadOnly(*account)
}

// InitializeInstruction creates the minimal-size verifier account at its
// derived address. [owner] pays and becomes the account's owner; the
// program and its program data account prove [owner] holds the upgrade
// authority.
func InitializeInstruction(program, verifier, owner, programData codec.PublicKey) chain.Instruction {
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.Writable(verifier),
			chain.WritableSigner(owner),
			chain.ReadOnly(program),
			chain.ReadOnly(programData),
			chain.ReadOnly(chain.SystemProgramID),
		},
		Data: codec.MethodDiscriminator("initialize"),
	}
}

type reallocArgs struct {
	Len uint32
}

// ReallocInstruction grows the verifier account to exactly [size] bytes.
// The ledger rejects steps larger than [consts.MaxPermittedDataIncrease]
// past the account's current size; shrinking is not exposed.
func ReallocInstruction(program, verifier, owner, programData codec.PublicKey, size uint32) (chain.Instruction, error) {
	args, err := borsh.Serialize(reallocArgs{Len: size})
	if err != nil {
		return chain.Instruction{}, fmt.Errorf("serializing realloc args: %w", err)
	}
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.Writable(verifier),
			chain.WritableSigner(owner),
			chain.ReadOnly(program),
			chain.ReadOnly(programData),
			chain.ReadOnly(chain.SystemProgramID),
		},
		Data: append(codec.MethodDiscriminator("realloc_account"), args...),
	}, nil
}

// InitializeAccountDataInstruction writes the initial schema into a
// fully grown verifier account. [accessController] may be nil.
func InitializeAccountDataInstruction(program, verifier, owner, programData codec.PublicKey, accessController *codec.PublicKey) chain.Instruction {
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.Writable(verifier),
			chain.Signer(owner),
			optionalMeta(accessController, program),
			chain.ReadOnly(program),
			chain.ReadOnly(programData),
			chain.ReadOnly(chain.SystemProgramID),
		},
		Data: codec.MethodDiscriminator("initialize_account_data"),
	}
}

// SetAccessControllerInstruction points the verifier at [accessController];
// nil clears the stored reference.
func SetAccessControllerInstruction(program, verifier, owner codec.PublicKey, accessController *codec.PublicKey) chain.Instruction {
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.Writable(verifier),
			chain.Signer(owner),
			optionalMeta(accessController, program),
		},
		Data: codec.MethodDiscriminator("set_access_controller"),
	}
}

type verifyArgs struct {
	SignedReport []byte
}

// VerifyInstruction submits [compressedReport] for verification against
// the config account derived from the report's leading 32 bytes. All
// four accounts are readonly; [user] signs and must pass the registry's
// access check.
func VerifyInstruction(program, verifier, accessController, user, config codec.PublicKey, compressedReport []byte) (chain.Instruction, error) {
	args, err := borsh.Serialize(verifyArgs{SignedReport: compressedReport})
	if err != nil {
		return chain.Instruction{}, fmt.Errorf("serializing verify args: %w", err)
	}
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.ReadOnly(verifier),
			chain.ReadOnly(accessController),
			chain.Signer(user),
			chain.ReadOnly(config),
		},
		Data: append(codec.MethodDiscriminator("verify"), args...),
	}, nil
}

type setConfigArgs struct {
	Signers []SignerAddress
	F       uint8
}

// SetConfigInstruction stores a new signer configuration activating now.
func SetConfigInstruction(program, verifier, owner codec.PublicKey, signers []SignerAddress, f uint8) (chain.Instruction, error) {
	args, err := borsh.Serialize(setConfigArgs{Signers: signers, F: f})
	if err != nil {
		return chain.Instruction{}, fmt.Errorf("serializing set config args: %w", err)
	}
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.Writable(verifier),
			chain.Signer(owner),
		},
		Data: append(codec.MethodDiscriminator("set_config"), args...),
	}, nil
}

type setConfigWithActivationTimeArgs struct {
	Signers        []SignerAddress
	F              uint8
	ActivationTime uint32
}

// SetConfigWithActivationTimeInstruction stores a new signer
// configuration that activates at [activationTime] (unix seconds).
func SetConfigWithActivationTimeInstruction(program, verifier, owner codec.PublicKey, signers []SignerAddress, f uint8, activationTime uint32) (chain.Instruction, error) {
	args, err := borsh.Serialize(setConfigWithActivationTimeArgs{
		Signers:        signers,
		F:              f,
		ActivationTime: activationTime,
	})
	if err != nil {
		return chain.Instruction{}, fmt.Errorf("serializing set config args: %w", err)
	}
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.Writable(verifier),
			chain.Signer(owner),
		},
		Data: append(codec.MethodDiscriminator("set_config_with_activation_time"), args...),
	}, nil
}

type setConfigActiveArgs struct {
	DonConfigIndex uint64
	IsActive       uint8
}

// SetConfigActiveInstruction toggles the active flag of the
// configuration at [index]. The flag crosses the wire as a single 0/1
// byte.
func SetConfigActiveInstruction(program, verifier, owner codec.PublicKey, index uint64, active bool) (chain.Instruction, error) {
	args := setConfigActiveArgs{DonConfigIndex: index}
	if active {
		args.IsActive = 1
	}
	raw, err := borsh.Serialize(args)
	if err != nil {
		return chain.Instruction{}, fmt.Errorf("serializing set config active args: %w", err)
	}
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.Writable(verifier),
			chain.Signer(owner),
		},
		Data: append(codec.MethodDiscriminator("set_config_active"), raw...),
	}, nil
}

// RemoveLatestConfigInstruction drops the most recently stored
// configuration.
func RemoveLatestConfigInstruction(program, verifier, owner codec.PublicKey) chain.Instruction {
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.Writable(verifier),
			chain.Signer(owner),
		},
		Data: codec.MethodDiscriminator("remove_latest_config"),
	}
}

type transferOwnershipArgs struct {
	ProposedOwner codec.PublicKey
}

// TransferOwnershipInstruction proposes [proposed] as the verifier's
// next owner; the transfer completes when the proposed owner accepts.
func TransferOwnershipInstruction(program, verifier, owner, proposed codec.PublicKey) (chain.Instruction, error) {
	args, err := borsh.Serialize(transferOwnershipArgs{ProposedOwner: proposed})
	if err != nil {
		return chain.Instruction{}, fmt.Errorf("serializing transfer args: %w", err)
	}
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.Writable(verifier),
			chain.Signer(owner),
		},
		Data: append(codec.MethodDiscriminator("transfer_ownership"), args...),
	}, nil
}

// AcceptOwnershipInstruction completes a pending transfer. [owner] must
// be the proposed owner.
func AcceptOwnershipInstruction(program, verifier, owner codec.PublicKey) chain.Instruction {
	return chain.Instruction{
		Program: program,
		Accounts: []chain.AccountMeta{
			chain.Writable(verifier),
			chain.Signer(owner),
		},
		Data: codec.MethodDiscriminator("accept_ownership"),
	}
}
