// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"slices"
	"testing"
)

func TestMatchingCommandPrefersFewestLabels(t *testing.T) {
	t.Parallel()

	table := NewCommands([]Entry{
		{Environment: NewEnvironment("linux"), Commands: []string{"a"}},
		{Environment: NewEnvironment("linux", "x86"), Commands: []string{"b"}},
	}, nil)

	got := table.MatchingCommand(NewEnvironment("linux", "x86", "extra"))
	if !slices.Equal(got, []string{"a"}) {
		t.Errorf("MatchingCommand({linux,x86,extra}) = %v, want [a]", got)
	}
	if got := table.MatchingCommand(NewEnvironment("windows")); got != nil {
		t.Errorf("MatchingCommand({windows}) = %v, want nil", got)
	}
}

func TestMatchingCommandTieKeepsFirst(t *testing.T) {
	t.Parallel()

	table := NewCommands([]Entry{
		{Environment: NewEnvironment("linux"), Commands: []string{"first"}},
		{Environment: NewEnvironment("java"), Commands: []string{"second"}},
	}, nil)

	got := table.MatchingCommand(NewEnvironment("linux", "java"))
	if !slices.Equal(got, []string{"first"}) {
		t.Errorf("MatchingCommand = %v, want [first]", got)
	}
}

func TestMatchingCommandSkipsEmptyLists(t *testing.T) {
	t.Parallel()

	table := NewCommands([]Entry{
		{Environment: Any(), Commands: nil},
		{Environment: NewEnvironment("linux"), Commands: []string{"make"}},
	}, nil)

	if got := table.MatchingCommand(NewEnvironment("linux")); !slices.Equal(got, []string{"make"}) {
		t.Errorf("MatchingCommand = %v, want [make]", got)
	}
	var nilTable *Commands
	if got := nilTable.MatchingCommand(Any()); got != nil {
		t.Errorf("nil table MatchingCommand = %v, want nil", got)
	}
}

func TestNewCommandsDropsNilEntries(t *testing.T) {
	t.Parallel()

	table := NewCommands([]Entry{
		{Environment: Any(), Commands: nil},
	}, nil)
	if !table.IsEmpty() || table.Len() != 0 {
		t.Errorf("Len() = %d, want an empty table", table.Len())
	}
	project := NewProjectModel(nil, table, nil)
	if project.HasCommands() {
		t.Error("a model whose only build entry has no command list should not have commands")
	}

	kept := NewCommands([]Entry{
		{Environment: NewEnvironment("linux"), Commands: []string{"make"}},
		{Environment: NewEnvironment("linux"), Commands: nil},
		{Environment: NewEnvironment("windows"), Commands: []string{}},
	}, nil)
	if kept.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", kept.Len())
	}
	if got := kept.MatchingCommand(NewEnvironment("linux")); !slices.Equal(got, []string{"make"}) {
		t.Errorf("MatchingCommand({linux}) = %v, want [make] (a nil repeat must not clear it)", got)
	}
}

func TestNewCommandsCopiesInput(t *testing.T) {
	t.Parallel()

	commands := []string{"make"}
	table := NewGlobalCommands(commands)
	commands[0] = "changed"

	if got := table.MatchingCommand(Any()); !slices.Equal(got, []string{"make"}) {
		t.Errorf("MatchingCommand = %v, want [make]", got)
	}
	got := table.MatchingCommand(Any())
	got[0] = "changed"
	if again := table.MatchingCommand(Any()); !slices.Equal(again, []string{"make"}) {
		t.Errorf("MatchingCommand after caller mutation = %v, want [make]", again)
	}
}

func TestNewCommandsRepeatedEnvironmentKeepsPosition(t *testing.T) {
	t.Parallel()

	table := NewCommands([]Entry{
		{Environment: NewEnvironment("a"), Commands: []string{"1"}},
		{Environment: NewEnvironment("b"), Commands: []string{"2"}},
		{Environment: NewEnvironment("a"), Commands: []string{"3"}},
	}, nil)

	entries := table.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(Entries()) = %d, want 2", len(entries))
	}
	if !entries[0].Environment.Equal(NewEnvironment("a")) || !slices.Equal(entries[0].Commands, []string{"3"}) {
		t.Errorf("Entries()[0] = %s %v, want {a} [3]", entries[0].Environment, entries[0].Commands)
	}
}

func TestMergeCommands(t *testing.T) {
	t.Parallel()

	first := NewCommands([]Entry{
		{Environment: NewEnvironment("linux"), Commands: []string{"a", "b"}},
		{Environment: NewEnvironment("windows"), Commands: []string{"w"}},
	}, []Parameter{NewParameter("X", WithDescription("first"))})
	second := NewCommands([]Entry{
		{Environment: NewEnvironment("linux"), Commands: []string{"c"}},
		{Environment: NewEnvironment("mac"), Commands: []string{"m"}},
	}, []Parameter{NewParameter("X", WithDescription("second")), NewParameter("Y")})

	merged := MergeCommands(first, second)

	tests := []struct {
		environment ExecutionEnvironment
		want        []string
	}{
		{NewEnvironment("linux"), []string{"a", "b", "c"}},
		{NewEnvironment("windows"), []string{"w"}},
		{NewEnvironment("mac"), []string{"m"}},
	}
	for _, test := range tests {
		got, ok := merged.Lookup(test.environment)
		if !ok || !slices.Equal(got, test.want) {
			t.Errorf("Lookup(%s) = %v (%v), want %v", test.environment, got, ok, test.want)
		}
	}

	parameter, ok := merged.Parameter("X")
	if !ok || parameter.Description() != "first" {
		t.Errorf("Parameter(X) description = %q, want %q", parameter.Description(), "first")
	}
	if _, ok := merged.Parameter("Y"); !ok {
		t.Error("Parameter(Y) should be present after merge")
	}
}

func TestMergeCommandsWithEmptyIsIdentity(t *testing.T) {
	t.Parallel()

	table := NewCommands([]Entry{
		{Environment: NewEnvironment("linux"), Commands: []string{"a"}},
		{Environment: NewEnvironment("x86"), Commands: []string{"b", "c"}},
	}, nil)

	for _, merged := range []*Commands{
		MergeCommands(table, nil),
		MergeCommands(nil, table),
		MergeCommands(table, NewCommands(nil, nil)),
		MergeCommands(NewCommands(nil, nil), table),
	} {
		got := merged.Entries()
		want := table.Entries()
		if len(got) != len(want) {
			t.Fatalf("len(Entries()) = %d, want %d", len(got), len(want))
		}
		for index := range want {
			if !got[index].Environment.Equal(want[index].Environment) || !slices.Equal(got[index].Commands, want[index].Commands) {
				t.Errorf("Entries()[%d] = %s %v, want %s %v", index,
					got[index].Environment, got[index].Commands, want[index].Environment, want[index].Commands)
			}
		}
	}
}

func TestTaskCommands(t *testing.T) {
	t.Parallel()

	task := NewTaskCommands([]string{"deploy.sh"}, NewParameter("TARGET"))
	if got := task.Command(); !slices.Equal(got, []string{"deploy.sh"}) {
		t.Errorf("Command() = %v, want [deploy.sh]", got)
	}

	merged := MergeTaskCommands(task, NewTaskCommands([]string{"notify.sh"}, NewParameter("CHANNEL")))
	if got := merged.Command(); !slices.Equal(got, []string{"deploy.sh", "notify.sh"}) {
		t.Errorf("merged Command() = %v, want [deploy.sh notify.sh]", got)
	}
	if got := len(merged.Parameters()); got != 2 {
		t.Errorf("len(merged Parameters()) = %d, want 2", got)
	}
	if MergeTaskCommands(nil, task) != task || MergeTaskCommands(task, nil) != task {
		t.Error("merging with nil should return the other side")
	}
}
