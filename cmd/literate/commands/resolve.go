// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"

	"github.com/jenkinsci/literate-api/cmd/literate/cli"
	"github.com/jenkinsci/literate-api/lib/config"
	"github.com/jenkinsci/literate-api/lib/model"
	"github.com/jenkinsci/literate-api/lib/snapshot"
)

// summaryWidth bounds command lines in the text summary.
const summaryWidth = 100

type resolveParams struct {
	projectParams
	cli.JSONOutput
	Out         string `flag:"out,o" desc:"write a snapshot of the model to this file"`
	Save        bool   `flag:"save" desc:"write a snapshot into the configured snapshot directory"`
	Compression compressionFlag `flag:"compression" desc:"snapshot compression: none, lz4 or zstd (default from config)"`
}

// compressionFlag rejects unknown compression names while flags are
// parsed. An unset flag leaves the choice to the configuration.
type compressionFlag struct {
	name string
}

func (c *compressionFlag) Set(value string) error {
	if _, err := snapshot.ParseCompression(value); err != nil {
		return err
	}
	c.name = value
	return nil
}

func (c *compressionFlag) String() string { return c.name }

func (c *compressionFlag) Type() string { return "compression" }

func resolveCommand(streams streams) *cli.Command {
	var params resolveParams

	return &cli.Command{
		Name:    "resolve",
		Summary: "Resolve and summarize a project model",
		Description: `Resolve the project model of a directory and print a summary of its
environments, build commands, and tasks.

With --json, prints the full model instead. With --out or --save, also
writes a snapshot of the model that "literate inspect" can read back.`,
		Usage: "literate resolve [dir] [flags]",
		Examples: []cli.Example{
			{
				Description: "Summarize the current directory",
				Command:     "literate resolve",
			},
			{
				Description: "Write an lz4 snapshot",
				Command:     "literate resolve ./project --out project.lsnap --compression lz4",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("resolve", &params) },
		Run: func(ctx context.Context, args []string) error {
			directory, _, err := directoryArgument(args, 0)
			if err != nil {
				return err
			}
			session, err := params.open("resolve")
			if err != nil {
				return err
			}
			project, err := session.resolve(ctx, &params.projectParams, directory)
			if err != nil {
				return err
			}

			if err := params.writeSnapshot(session, directory, project); err != nil {
				return err
			}

			if done, err := params.EmitJSON(streams.stdout, project.Snapshot()); done {
				return err
			}
			_, err = io.WriteString(streams.stdout, renderSummary(streams.stdout, project))
			return err
		},
	}
}

func (p *resolveParams) writeSnapshot(session *session, directory string, project *model.ProjectModel) error {
	var paths []string
	if p.Out != "" {
		paths = append(paths, p.Out)
	}
	if p.Save {
		path, err := savedSnapshotPath(session.cfg, directory)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating snapshot directory: %w", err)
		}
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		return nil
	}

	name := p.Compression.name
	if name == "" {
		name = session.cfg.Snapshot.Compression
	}
	compression, err := snapshot.ParseCompression(name)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := snapshot.WriteFile(path, project, compression); err != nil {
			return err
		}
		session.logger.Info("snapshot written", "path", path, "compression", compression.String())
	}
	return nil
}

// savedSnapshotPath names a snapshot after the project directory and a
// digest of its absolute path, so two projects sharing a base name do
// not collide.
func savedSnapshotPath(cfg *config.Config, directory string) (string, error) {
	absolute, err := filepath.Abs(directory)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256([]byte(absolute))
	name := fmt.Sprintf("%s-%s.lsnap", filepath.Base(absolute), hex.EncodeToString(sum[:6]))
	return filepath.Join(cfg.Snapshot.Directory, name), nil
}

// renderSummary formats the model for people. Styles only produce
// escape sequences when w is a terminal.
func renderSummary(w io.Writer, project *model.ProjectModel) string {
	renderer := lipgloss.NewRenderer(w)
	if !cli.IsTerminal(w) {
		renderer.SetColorProfile(termenv.Ascii)
	}
	heading := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	label := renderer.NewStyle().Foreground(lipgloss.Color("10"))
	faint := renderer.NewStyle().Faint(true)

	var out strings.Builder
	out.WriteString(heading.Render("Environments") + "\n")
	for _, environment := range project.Environments() {
		out.WriteString("  " + label.Render(environment.String()) + "\n")
	}

	out.WriteString(heading.Render("Build") + "\n")
	for _, entry := range project.Build().Entries() {
		out.WriteString("  " + label.Render(entry.Environment.String()) + "\n")
		writeSummaryCommands(&out, entry.Commands, faint)
	}
	writeSummaryParameters(&out, project.Build().Parameters(), faint)

	if ids := project.TaskIDs(); len(ids) > 0 {
		out.WriteString(heading.Render("Tasks") + "\n")
		for _, id := range ids {
			task, _ := project.Task(id)
			out.WriteString("  " + label.Render(id) + "\n")
			writeSummaryCommands(&out, task.Command(), faint)
			writeSummaryParameters(&out, task.Parameters(), faint)
		}
	}
	return out.String()
}

func writeSummaryCommands(out *strings.Builder, commands []string, faint lipgloss.Style) {
	if len(commands) == 0 {
		out.WriteString("    " + faint.Render("(no commands)") + "\n")
		return
	}
	for _, command := range commands {
		for line := range strings.SplitSeq(command, "\n") {
			out.WriteString("    " + ansi.Truncate(line, summaryWidth, "…") + "\n")
		}
	}
}

func writeSummaryParameters(out *strings.Builder, parameters []model.Parameter, faint lipgloss.Style) {
	for _, parameter := range parameters {
		text := "$" + parameter.Name()
		if value, ok := parameter.Default(); ok {
			text += " (default " + value + ")"
		}
		if description := parameter.Description(); description != "" {
			text += ": " + strings.ReplaceAll(description, "\n", " ")
		}
		out.WriteString("    " + faint.Render(text) + "\n")
	}
}
