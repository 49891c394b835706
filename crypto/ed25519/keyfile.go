// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"encoding/json"
	"fmt"
	"os"
)

// Keypair files follow the ledger CLI's id.json convention: a JSON array of
// the 64 private key bytes (seed followed by public key).

// LoadKeypairFile reads the keypair stored at [path].
func LoadKeypairFile(path string) (PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return EmptyPrivateKey, err
	}
	var vals []int
	if err := json.Unmarshal(raw, &vals); err != nil {
		return EmptyPrivateKey, fmt.Errorf("%w: %s", ErrMalformedKeypairFile, err)
	}
	if len(vals) != PrivateKeyLen {
		return EmptyPrivateKey, fmt.Errorf("%w: %d bytes", ErrMalformedKeypairFile, len(vals))
	}
	var pk PrivateKey
	for i, v := range vals {
		if v < 0 || v > 255 {
			return EmptyPrivateKey, fmt.Errorf("%w: value %d at index %d", ErrMalformedKeypairFile, v, i)
		}
		pk[i] = byte(v)
	}
	return pk, nil
}

// SaveKeypairFile writes [pk] to [path] in the id.json format, readable only
// by the current user.
func SaveKeypairFile(path string, pk PrivateKey) error {
	vals := make([]int, PrivateKeyLen)
	for i, b := range pk {
		vals[i] = int(b)
	}
	raw, err := json.Marshal(vals)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}
