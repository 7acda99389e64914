// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/pflag"

	"github.com/jenkinsci/literate-api/cmd/literate/cli"
	"github.com/jenkinsci/literate-api/lib/format"
)

type formatParams struct {
	projectParams
	MIMEType string `flag:"mime-type" desc:"output media type" default:"text/markdown"`
	Color    string `flag:"color" desc:"highlight output: auto, always or never" default:"auto"`
}

func formatCommand(streams streams) *cli.Command {
	var params formatParams

	return &cli.Command{
		Name:    "format",
		Summary: "Render a project model as a literate document",
		Description: `Render the project model of a directory as a document in the given
media type. Whatever format the project was described in (Markdown or
YAML), the output is a literate Markdown description that parses back
to the same environments, build commands, and tasks.

Output to a terminal is syntax highlighted.`,
		Usage: "literate format [dir] [flags]",
		Examples: []cli.Example{
			{
				Description: "Convert a .travis.yml project into .cloudbees.md",
				Command:     "literate format ./project --color never > ./project/.cloudbees.md",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("format", &params) },
		Run: func(ctx context.Context, args []string) error {
			directory, _, err := directoryArgument(args, 0)
			if err != nil {
				return err
			}
			formatter := format.ForMIME(params.MIMEType)
			if formatter == nil {
				return fmt.Errorf("no formatter for media type %q", params.MIMEType)
			}
			highlight, err := params.highlight(streams.stdout)
			if err != nil {
				return err
			}

			session, err := params.open("format")
			if err != nil {
				return err
			}
			project, err := session.resolve(ctx, &params.projectParams, directory)
			if err != nil {
				return err
			}

			document := formatter.Format(project)
			if highlight {
				return quick.Highlight(streams.stdout, document, "markdown", "terminal256", "monokai")
			}
			_, err = io.WriteString(streams.stdout, document)
			return err
		},
	}
}

func (p *formatParams) highlight(w io.Writer) (bool, error) {
	switch p.Color {
	case "auto":
		return cli.IsTerminal(w), nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color %q (want auto, always or never)", p.Color)
	}
}
