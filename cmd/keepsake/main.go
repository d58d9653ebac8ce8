// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// keepsake generates commemorative tickets for Buray at Harbiye
// (7 November 2025). Run without arguments for the interactive editor;
// see "keepsake --help" for the headless commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/keepsake/cmd/keepsake/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output return an ExitError
		// with the desired code. Don't print a redundant "error:" line
		// for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Root().Execute(ctx, os.Args[1:])
}
