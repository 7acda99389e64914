// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the literate CLI command tree. Every command
// writes its results to the stdout writer given to [Root] and its
// diagnostics to stderr, so tests can run the tree against buffers.
package commands

import (
	"io"

	"github.com/jenkinsci/literate-api/cmd/literate/cli"
)

// Root builds and returns the complete literate command tree.
func Root(stdout, stderr io.Writer) *cli.Command {
	streams := streams{stdout: stdout, stderr: stderr}
	return &cli.Command{
		Name: "literate",
		Description: `Literate: resolve build models from literate project descriptions.

A literate project describes how to build it in a Markdown file
(.cloudbees.md, or README.md as a fallback) or a YAML file
(.cloudbees.yml, .travis.yml). This tool finds the description,
parses it, and answers questions about the resulting model.`,
		HelpOutput: stderr,
		Subcommands: []*cli.Command{
			resolveCommand(streams),
			buildCommand(streams),
			taskCommand(streams),
			environmentsCommand(streams),
			markersCommand(streams),
			formatCommand(streams),
			inspectCommand(streams),
			versionCommand(streams),
		},
		Examples: []cli.Example{
			{
				Description: "Summarize the model of the current directory",
				Command:     "literate resolve",
			},
			{
				Description: "Print the build commands for a linux x86 agent",
				Command:     "literate build --label linux --label x86",
			},
			{
				Description: "Save a snapshot of the model",
				Command:     "literate resolve ./project --out project.lsnap",
			},
			{
				Description: "Show the deploy task",
				Command:     "literate task deploy",
			},
		},
	}
}

// streams carries the output writers of a command tree.
type streams struct {
	stdout io.Writer
	stderr io.Writer
}
