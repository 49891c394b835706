// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "streams-admin" operates the report verifier program and its access
// registry from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/streamproofs/solana-sdk/cmd/streams-admin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "streams-admin exited with error: %+v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
