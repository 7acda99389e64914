// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jenkinsci/literate-api/cmd/literate/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that already explained themselves (like build with
		// no matching environment) return an ExitError.
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
	return commands.Root(os.Stdout, os.Stderr).Execute(ctx, os.Args[1:])
}
