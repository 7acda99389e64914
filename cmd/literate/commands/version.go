// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/jenkinsci/literate-api/cmd/literate/cli"
	"github.com/jenkinsci/literate-api/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

func versionCommand(streams streams) *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("version", &params) },
		Run: func(_ context.Context, _ []string) error {
			if done, err := params.EmitJSON(streams.stdout, version.Get()); done {
				return err
			}
			_, err := fmt.Fprintf(streams.stdout, "literate %s\n", version.Full())
			return err
		},
	}
}
