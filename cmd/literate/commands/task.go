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

type taskParams struct {
	projectParams
	cli.JSONOutput
}

func taskCommand(streams streams) *cli.Command {
	var params taskParams

	return &cli.Command{
		Name:    "task",
		Summary: "Print the commands of a named task",
		Description: `Print the commands of a task section, one per line. The task id is
matched case-insensitively and is read in addition to the configured
task ids. Exits with status 1 when the project has no such task.`,
		Usage: "literate task [dir] <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Show the deploy task",
				Command:     "literate task deploy",
			},
			{
				Description: "Show a release task of another project",
				Command:     "literate task ../service release --json",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("task", &params) },
		Run: func(ctx context.Context, args []string) error {
			directory, rest, err := directoryArgument(args, 1)
			if err != nil {
				return err
			}
			if len(rest) == 0 {
				return fmt.Errorf("task id required\n\nUsage: literate task [dir] <id>")
			}
			id := strings.ToLower(rest[0])

			session, err := params.open("task")
			if err != nil {
				return err
			}
			project, err := session.resolve(ctx, &params.projectParams, directory, id)
			if err != nil {
				return err
			}

			task, ok := project.Task(id)
			if !ok || len(task.Command()) == 0 {
				fmt.Fprintf(streams.stderr, "no task %q in %s\n", id, directory)
				return &cli.ExitError{Code: 1}
			}

			if done, err := params.EmitJSON(streams.stdout, taskSnapshot(id, task)); done {
				return err
			}
			_, err = fmt.Fprintln(streams.stdout, strings.Join(task.Command(), "\n"))
			return err
		},
	}
}

func taskSnapshot(id string, task *model.TaskCommands) model.TaskSnapshot {
	snapshot := model.NewBuilder().AddTaskCommands(id, task).Build().Snapshot()
	return snapshot.Tasks[0]
}
