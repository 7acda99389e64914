// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/ddddddO/gtree"
	"github.com/spf13/pflag"

	"github.com/jenkinsci/literate-api/cmd/literate/cli"
	"github.com/jenkinsci/literate-api/lib/model"
)

type environmentsParams struct {
	projectParams
	cli.JSONOutput
	Tree bool `flag:"tree,t" desc:"print environments as a tree of labels"`
}

func environmentsCommand(streams streams) *cli.Command {
	var params environmentsParams

	return &cli.Command{
		Name:    "environments",
		Summary: "List the execution environments of a project",
		Description: `List the execution environments a project declares, one per line.
A project without an environments section has the single unspecified
environment, printed as {any}.

With --tree, environments sharing leading labels are grouped.`,
		Usage: "literate environments [dir] [flags]",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("environments", &params) },
		Run: func(ctx context.Context, args []string) error {
			directory, _, err := directoryArgument(args, 0)
			if err != nil {
				return err
			}
			session, err := params.open("environments")
			if err != nil {
				return err
			}
			project, err := session.resolve(ctx, &params.projectParams, directory)
			if err != nil {
				return err
			}

			environments := project.Environments()
			if params.OutputJSON {
				snapshots := make([]model.EnvironmentSnapshot, 0, len(environments))
				for _, environment := range environments {
					snapshots = append(snapshots, environment.Snapshot())
				}
				_, err := params.EmitJSON(streams.stdout, snapshots)
				return err
			}
			if params.Tree {
				absolute, err := filepath.Abs(directory)
				if err != nil {
					return err
				}
				return writeEnvironmentTree(streams.stdout, filepath.Base(absolute), environments)
			}
			for _, environment := range environments {
				if _, err := fmt.Fprintln(streams.stdout, environment); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// writeEnvironmentTree prints one branch per environment: its sorted
// labels from the root, then its variables as leaves.
func writeEnvironmentTree(w io.Writer, title string, environments []model.ExecutionEnvironment) error {
	root := gtree.NewRoot(title)
	for _, environment := range environments {
		if environment.IsUnspecified() {
			root.Add(model.Any().String())
			continue
		}
		node := root
		for _, label := range environment.Labels() {
			node = node.Add(label)
		}
		variables := environment.Variables()
		names := make([]string, 0, len(variables))
		for name := range variables {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			node.Add(name + "=" + variables[name])
		}
	}
	return gtree.OutputFromRoot(w, root)
}
