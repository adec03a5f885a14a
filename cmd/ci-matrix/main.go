// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// ci-matrix generates the GitHub Actions build matrices for Python
// distributions. See "ci-matrix --help".
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/buildmatrix/cmd/ci-matrix/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own report (like validate) return
		// an error carrying the exit code. Don't print a redundant
		// "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root(os.Stdout, os.Stderr).Execute(os.Args[1:])
}
