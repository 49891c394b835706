// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/streamproofs/solana-sdk/codec"
	"github.com/streamproofs/solana-sdk/consts"
	"github.com/streamproofs/solana-sdk/crypto/ed25519"
)

// MessageHeader counts the signature slots and readonly accounts of a
// compiled message.
type MessageHeader struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

// CompiledInstruction references its program and accounts by index into
// the message's account table.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	AccountIndexes []uint8
	Data           []byte
}

// Message is the signed portion of a transaction in the legacy wire
// format: header, deduplicated account table, recent blockhash, and the
// compiled instructions.
type Message struct {
	Header          MessageHeader
	AccountKeys     []codec.PublicKey
	RecentBlockhash Hash
	Instructions    []CompiledInstruction
}

// Account indexes are single bytes.
const maxAccountKeys = 256

type accountClass struct {
	isSigner   bool
	isWritable bool
}

// rank orders account classes the way the runtime expects them laid out:
// writable signers, readonly signers, writable non-signers, readonly
// non-signers.
func (c *accountClass) rank() int {
	switch {
	case c.isSigner && c.isWritable:
		return 0
	case c.isSigner:
		return 1
	case c.isWritable:
		return 2
	default:
		return 3
	}
}

// NewMessage compiles [instructions] into a message paid for by [payer].
// Accounts referenced more than once are deduplicated with their
// permissions merged. The table leads with [payer], then lists each
// permission class sorted by key bytes.
func NewMessage(payer codec.PublicKey, instructions []Instruction, recentBlockhash Hash) (*Message, error) {
	if payer == codec.EmptyPublicKey {
		return nil, ErrNoPayer
	}
	if len(instructions) == 0 {
		return nil, ErrNoInstructions
	}

	classes := map[codec.PublicKey]*accountClass{
		payer: {isSigner: true, isWritable: true},
	}
	for _, ix := range instructions {
		if len(ix.Data) > 0xffff {
			return nil, ErrDataTooLarge
		}
		if _, ok := classes[ix.Program]; !ok {
			classes[ix.Program] = &accountClass{}
		}
		for _, meta := range ix.Accounts {
			class, ok := classes[meta.PublicKey]
			if !ok {
				class = &accountClass{}
				classes[meta.PublicKey] = class
			}
			class.isSigner = class.isSigner || meta.IsSigner
			class.isWritable = class.isWritable || meta.IsWritable
		}
	}
	if len(classes) > maxAccountKeys {
		return nil, ErrTooManyAccounts
	}

	rest := make([]codec.PublicKey, 0, len(classes)-1)
	for key := range classes {
		if key != payer {
			rest = append(rest, key)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		ri, rj := classes[rest[i]].rank(), classes[rest[j]].rank()
		if ri != rj {
			return ri < rj
		}
		return bytes.Compare(rest[i][:], rest[j][:]) < 0
	})
	ordered := append([]codec.PublicKey{payer}, rest...)

	var header MessageHeader
	for _, key := range ordered {
		class := classes[key]
		switch {
		case class.isSigner:
			header.NumRequiredSignatures++
			if !class.isWritable {
				header.NumReadonlySignedAccounts++
			}
		case !class.isWritable:
			header.NumReadonlyUnsignedAccounts++
		}
	}

	indexes := make(map[codec.PublicKey]uint8, len(ordered))
	for i, key := range ordered {
		indexes[key] = uint8(i)
	}
	compiled := make([]CompiledInstruction, len(instructions))
	for i, ix := range instructions {
		accountIndexes := make([]uint8, len(ix.Accounts))
		for j, meta := range ix.Accounts {
			accountIndexes[j] = indexes[meta.PublicKey]
		}
		compiled[i] = CompiledInstruction{
			ProgramIDIndex: indexes[ix.Program],
			AccountIndexes: accountIndexes,
			Data:           ix.Data,
		}
	}

	return &Message{
		Header:          header,
		AccountKeys:     ordered,
		RecentBlockhash: recentBlockhash,
		Instructions:    compiled,
	}, nil
}

// Serialize renders the message in wire form.
func (m *Message) Serialize() []byte {
	size := 3 + 3 + len(m.AccountKeys)*codec.PublicKeyLen + consts.HashLen
	for _, ix := range m.Instructions {
		size += 1 + 3 + len(ix.AccountIndexes) + 3 + len(ix.Data)
	}

	out := make([]byte, 0, size)
	out = append(out,
		m.Header.NumRequiredSignatures,
		m.Header.NumReadonlySignedAccounts,
		m.Header.NumReadonlyUnsignedAccounts,
	)
	out = codec.AppendShortVec(out, len(m.AccountKeys))
	for _, key := range m.AccountKeys {
		out = append(out, key[:]...)
	}
	out = append(out, m.RecentBlockhash[:]...)
	out = codec.AppendShortVec(out, len(m.Instructions))
	for _, ix := range m.Instructions {
		out = append(out, ix.ProgramIDIndex)
		out = codec.AppendShortVec(out, len(ix.AccountIndexes))
		out = append(out, ix.AccountIndexes...)
		out = codec.AppendShortVec(out, len(ix.Data))
		out = append(out, ix.Data...)
	}
	return out
}

// Transaction pairs a compiled message with its signatures, ordered to
// match the message's leading signer accounts.
type Transaction struct {
	Signatures []Signature
	Message    *Message
}

// NewTransaction wraps [msg] with empty signature slots.
func NewTransaction(msg *Message) *Transaction {
	return &Transaction{
		Signatures: make([]Signature, msg.Header.NumRequiredSignatures),
		Message:    msg,
	}
}

// Sign signs the serialized message with every key in [signers]. Each
// signer must match one of the message's signer accounts, and every
// required slot must be filled once the call returns.
func (t *Transaction) Sign(signers ...ed25519.PrivateKey) error {
	msg := t.Message.Serialize()
	required := int(t.Message.Header.NumRequiredSignatures)
	for _, signer := range signers {
		pk := codec.PublicKey(signer.PublicKey())
		slot := -1
		for i := 0; i < required; i++ {
			if t.Message.AccountKeys[i] == pk {
				slot = i
				break
			}
		}
		if slot < 0 {
			return fmt.Errorf("%w: %s", ErrUnknownSigner, pk)
		}
		t.Signatures[slot] = Signature(ed25519.Sign(msg, signer))
	}
	for i, sig := range t.Signatures {
		if sig == EmptySignature {
			return fmt.Errorf("%w: %s", ErrMissingSignature, t.Message.AccountKeys[i])
		}
	}
	return nil
}

// Signature returns the transaction's identifying signature, the fee
// payer's.
func (t *Transaction) Signature() Signature {
	if len(t.Signatures) == 0 {
		return EmptySignature
	}
	return t.Signatures[0]
}

// VerifySignatures checks every signature slot against the serialized
// message.
func (t *Transaction) VerifySignatures() error {
	msg := t.Message.Serialize()
	for i, sig := range t.Signatures {
		pk := ed25519.PublicKey(t.Message.AccountKeys[i])
		if !ed25519.Verify(msg, pk, ed25519.Signature(sig)) {
			return fmt.Errorf("%w: %s", ed25519.ErrInvalidSignature, t.Message.AccountKeys[i])
		}
	}
	return nil
}

// Serialize renders the signed transaction in wire form.
func (t *Transaction) Serialize() []byte {
	msg := t.Message.Serialize()
	out := make([]byte, 0, 1+len(t.Signatures)*consts.SignatureLen+len(msg))
	out = codec.AppendShortVec(out, len(t.Signatures))
	for _, sig := range t.Signatures {
		out = append(out, sig[:]...)
	}
	return append(out, msg...)
}
