// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	Uint8Len  = 1
	Uint32Len = 4
	Uint64Len = 8

	PublicKeyLen     = 32
	HashLen          = 32
	SignatureLen     = 64
	DiscriminatorLen = 8

	// MaxPermittedDataIncrease is the ledger's ceiling on how many bytes a
	// single realloc may add to an account.
	MaxPermittedDataIncrease = 10 * 1024
)
