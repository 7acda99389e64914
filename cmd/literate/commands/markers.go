// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/jenkinsci/literate-api/cmd/literate/cli"
	"github.com/jenkinsci/literate-api/lib/literate"
)

type markersParams struct {
	projectParams
	cli.JSONOutput
}

func markersCommand(streams streams) *cli.Command {
	var params markersParams

	return &cli.Command{
		Name:    "markers",
		Summary: "List the files that mark a literate project",
		Description: `List the marker files whose presence makes a directory a literate
project, in the order the builders try them. Tools watching a
repository for changes use this list.`,
		Usage: "literate markers [flags]",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("markers", &params) },
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected arguments: %v", args)
			}
			session, err := params.open("markers")
			if err != nil {
				return err
			}
			markers := literate.NewSource(session.cfg, session.logger).MarkerFiles(session.cfg.Request.BaseName)

			if done, err := params.EmitJSON(streams.stdout, markers); done {
				return err
			}
			for _, marker := range markers {
				if _, err := fmt.Fprintln(streams.stdout, marker); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
