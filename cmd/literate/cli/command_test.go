// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "literate",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(_ context.Context, _ []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "build",
				Run: func(_ context.Context, _ []string) error {
					called = "build"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"build"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "build" {
		t.Errorf("dispatched to %q, want %q", called, "build")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "literate",
		Subcommands: []*Command{
			{
				Name: "snapshot",
				Subcommands: []*Command{
					{
						Name: "inspect",
						Run: func(_ context.Context, args []string) error {
							called = "snapshot inspect"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"snapshot", "inspect", "model.lsnap"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "snapshot inspect" {
		t.Errorf("dispatched to %q, want %q", called, "snapshot inspect")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "model.lsnap" {
		t.Errorf("args = %v, want [model.lsnap]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var label string
	var directory string

	command := &Command{
		Name: "build",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("build", pflag.ContinueOnError)
			flagSet.StringVar(&label, "label", "any", "environment label")
			return flagSet
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				directory = args[0]
			}
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--label", "linux", "project"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if label != "linux" {
		t.Errorf("label = %q, want %q", label, "linux")
	}
	if directory != "project" {
		t.Errorf("directory = %q, want %q", directory, "project")
	}
}

func TestCommand_Execute_UnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name: "literate",
		Subcommands: []*Command{
			{Name: "resolve", Run: func(context.Context, []string) error { return nil }},
			{Name: "environments", Run: func(context.Context, []string) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"reslove"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "resolve"`) {
		t.Errorf("error = %q, want suggestion for resolve", err)
	}

	err = root.Execute(context.Background(), []string{"zzzzzzzzzz"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, want no suggestion for a distant name", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	var params struct {
		Label string `flag:"label" desc:"environment label"`
	}
	command := &Command{
		Name:  "build",
		Flags: func() *pflag.FlagSet { return FlagsFromParams("build", &params) },
		Run:   func(context.Context, []string) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--lable", "linux"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --label?") {
		t.Errorf("error = %q, want suggestion for --label", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:       "literate",
		HelpOutput: &help,
		Subcommands: []*Command{
			{Name: "resolve", Summary: "Resolve a project model"},
		},
	}

	err := root.Execute(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Fatalf("Execute() = %v, want subcommand required", err)
	}
	if !strings.Contains(help.String(), "resolve") {
		t.Errorf("help output missing subcommand listing:\n%s", help.String())
	}
}

func TestCommand_Execute_HelpGoesToInheritedOutput(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:       "literate",
		HelpOutput: &help,
		Subcommands: []*Command{
			{
				Name:        "build",
				Description: "Print the build commands for an environment.",
				Examples: []Example{
					{Description: "Build on linux", Command: "literate build --label linux"},
				},
				Run: func(context.Context, []string) error {
					t.Error("Run should not be called for --help")
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"build", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	output := help.String()
	for _, want := range []string{
		"Print the build commands for an environment.",
		"Usage:\n  literate build [flags]",
		"# Build on linux",
		"literate build --label linux",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_Execute_PropagatesRunError(t *testing.T) {
	command := &Command{
		Name: "build",
		Run: func(context.Context, []string) error {
			return &ExitError{Code: 1}
		},
	}

	err := command.Execute(context.Background(), nil)
	var exitError *ExitError
	if !errors.As(err, &exitError) {
		t.Fatalf("Execute() = %v, want *ExitError", err)
	}
	if exitError.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", exitError.ExitCode())
	}
	if exitError.Error() != "exit code 1" {
		t.Errorf("Error() = %q, want %q", exitError.Error(), "exit code 1")
	}
}

func TestCommand_Execute_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "value")

	root := &Command{
		Name: "literate",
		Subcommands: []*Command{
			{
				Name: "resolve",
				Run: func(ctx context.Context, _ []string) error {
					if ctx.Value(key{}) != "value" {
						t.Error("subcommand did not receive the caller's context")
					}
					return nil
				},
			},
		},
	}
	if err := root.Execute(ctx, []string{"resolve"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
}
