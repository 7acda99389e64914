// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jenkinsci/literate-api/cmd/literate/cli"
	"github.com/jenkinsci/literate-api/lib/model"
)

type buildParams struct {
	projectParams
	cli.JSONOutput
	Labels    []string `flag:"label,l" desc:"label the agent provides (repeatable)"`
	Variables map[string]string `flag:"var" desc:"environment variable KEY=VALUE the agent provides (repeatable)"`
}

// buildResult is the JSON form of "literate build".
type buildResult struct {
	Environment model.EnvironmentSnapshot `json:"environment"`
	Commands    []string                  `json:"commands"`
}

func buildCommand(streams streams) *cli.Command {
	var params buildParams

	return &cli.Command{
		Name:    "build",
		Summary: "Print the build commands for an environment",
		Description: `Print the build commands a project declares for an execution
environment, one per line.

The environment is described by the labels and variables of the agent
that would run the build. The commands chosen are those of the least
specific build entry the environment satisfies. Exits with status 1
when no entry matches.`,
		Usage: "literate build [dir] [flags]",
		Examples: []cli.Example{
			{
				Description: "Build commands for a linux x86 agent",
				Command:     "literate build --label linux,x86",
			},
			{
				Description: "Match an entry that requires a variable",
				Command:     "literate build ./project --label java --var JDK=17",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("build", &params) },
		Run: func(ctx context.Context, args []string) error {
			directory, _, err := directoryArgument(args, 0)
			if err != nil {
				return err
			}
			session, err := params.open("build")
			if err != nil {
				return err
			}
			project, err := session.resolve(ctx, &params.projectParams, directory)
			if err != nil {
				return err
			}

			environment := model.NewEnvironmentWithVariables(params.Labels, params.Variables)
			commands := project.BuildFor(environment)
			if commands == nil {
				fmt.Fprintf(streams.stderr, "no build commands for environment %s\n", environment)
				return &cli.ExitError{Code: 1}
			}

			if done, err := params.EmitJSON(streams.stdout, buildResult{
				Environment: environment.Snapshot(),
				Commands:    commands,
			}); done {
				return err
			}
			_, err = fmt.Fprintln(streams.stdout, strings.Join(commands, "\n"))
			return err
		},
	}
}
