// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command tagwire encodes, decodes and inspects tagged binary streams.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/tagwire/cmd/tagwire/cli"
	"github.com/bureau-foundation/tagwire/cmd/tagwire/commands"
)

func main() {
	if err := commands.Root().Execute(os.Args[1:]); err != nil {
		// Commands that print their own outcome (digest --verify)
		// return an ExitError. Don't print a redundant "error:" line
		// for those.
		if _, ok := err.(interface{ ExitCode() int }); !ok {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(cli.ExitStatus(err))
	}
}
