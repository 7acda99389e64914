// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"slices"
)

// Entry pairs an environment requirement with the commands to run in
// environments that satisfy it.
type Entry struct {
	Environment ExecutionEnvironment
	Commands    []string
}

// Commands is an ordered table from environment requirement to command
// list, plus the parameters the commands accept. Insertion order is
// preserved and significant: it breaks ties in [Commands.MatchingCommand].
type Commands struct {
	entries    []Entry
	index      map[string]int
	parameters []Parameter
}

// NewCommands builds a command table. Command lists are copied. A
// repeated environment replaces the earlier entry's commands in place,
// keeping the earlier position. Parameters are de-duplicated by name,
// first declaration winning. Entries with a nil command list are
// dropped.
func NewCommands(entries []Entry, parameters []Parameter) *Commands {
	table := &Commands{
		entries:    make([]Entry, 0, len(entries)),
		index:      make(map[string]int, len(entries)),
		parameters: UniqueParameters(parameters),
	}
	for _, entry := range entries {
		if entry.Commands == nil {
			continue
		}
		table.put(entry.Environment, entry.Commands)
	}
	return table
}

// NewGlobalCommands builds a table with a single entry for the "any"
// environment.
func NewGlobalCommands(commands []string, parameters ...Parameter) *Commands {
	return NewCommands([]Entry{{Environment: Any(), Commands: commands}}, parameters)
}

func (c *Commands) put(environment ExecutionEnvironment, commands []string) {
	copied := slices.Clone(commands)
	key := environment.Key()
	if position, exists := c.index[key]; exists {
		c.entries[position].Commands = copied
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, Entry{Environment: environment, Commands: copied})
}

// MatchingCommand returns the commands of the best entry for the query
// environment, or nil when no entry applies.
//
// An entry applies when its command list is non-empty and the query
// satisfies its environment (query.IsMatchFor(entry)). Among applicable
// entries the one with the fewest labels wins; the first inserted wins
// ties. Note this prefers the least specific applicable entry.
func (c *Commands) MatchingCommand(query ExecutionEnvironment) []string {
	if c == nil {
		return nil
	}
	best := -1
	for position, entry := range c.entries {
		if len(entry.Commands) == 0 {
			continue
		}
		if !query.IsMatchFor(entry.Environment) {
			continue
		}
		if best < 0 || c.entries[best].Environment.LabelCount() > entry.Environment.LabelCount() {
			best = position
		}
	}
	if best < 0 {
		return nil
	}
	return slices.Clone(c.entries[best].Commands)
}

// Lookup returns the commands stored for exactly this environment.
func (c *Commands) Lookup(environment ExecutionEnvironment) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	position, ok := c.index[environment.Key()]
	if !ok {
		return nil, false
	}
	return slices.Clone(c.entries[position].Commands), true
}

// Entries returns a copy of the table in insertion order.
func (c *Commands) Entries() []Entry {
	if c == nil {
		return nil
	}
	result := make([]Entry, len(c.entries))
	for position, entry := range c.entries {
		result[position] = Entry{Environment: entry.Environment, Commands: slices.Clone(entry.Commands)}
	}
	return result
}

// Len returns the number of entries.
func (c *Commands) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// IsEmpty reports whether the table has no entries at all.
func (c *Commands) IsEmpty() bool {
	return c.Len() == 0
}

// Parameters returns the declared parameters in declaration order.
func (c *Commands) Parameters() []Parameter {
	if c == nil {
		return nil
	}
	return slices.Clone(c.parameters)
}

// Parameter returns the parameter declared with the given name.
func (c *Commands) Parameter(name string) (Parameter, bool) {
	if c == nil {
		return Parameter{}, false
	}
	for _, parameter := range c.parameters {
		if parameter.name == name {
			return parameter, true
		}
	}
	return Parameter{}, false
}

// MergeCommands returns the union of two tables. Entries for the same
// environment have their command lists concatenated, first's before
// second's; an absent or empty side yields the other side unchanged.
// Parameter lists are concatenated, so a name declared by both keeps
// first's declaration. Either argument may be nil.
func MergeCommands(first, second *Commands) *Commands {
	merged := &Commands{index: make(map[string]int, first.Len()+second.Len())}
	if first != nil {
		for _, entry := range first.entries {
			merged.put(entry.Environment, entry.Commands)
		}
	}
	if second != nil {
		for _, entry := range second.entries {
			existing, _ := merged.Lookup(entry.Environment)
			merged.put(entry.Environment, JoinCommands(existing, entry.Commands))
		}
	}
	merged.parameters = UniqueParameters(append(first.Parameters(), second.Parameters()...))
	return merged
}

// JoinCommands concatenates two command lists. When either side is
// empty the other is returned as is, which may be nil.
func JoinCommands(first, second []string) []string {
	if len(first) == 0 {
		return second
	}
	if len(second) == 0 {
		return first
	}
	result := make([]string, 0, len(first)+len(second))
	result = append(result, first...)
	return append(result, second...)
}

// TaskCommands holds the commands of a named task. Tasks are not
// environment scoped, so the table has a single entry for [Any].
type TaskCommands struct {
	table *Commands
}

// NewTaskCommands returns a task with the given commands and parameters.
func NewTaskCommands(commands []string, parameters ...Parameter) *TaskCommands {
	return &TaskCommands{table: NewGlobalCommands(commands, parameters...)}
}

// Command returns the task's commands.
func (t *TaskCommands) Command() []string {
	commands, _ := t.table.Lookup(Any())
	return commands
}

// Parameters returns the task's declared parameters.
func (t *TaskCommands) Parameters() []Parameter {
	return t.table.Parameters()
}

// Parameter returns the task parameter with the given name.
func (t *TaskCommands) Parameter(name string) (Parameter, bool) {
	return t.table.Parameter(name)
}

// Table exposes the underlying single-entry command table.
func (t *TaskCommands) Table() *Commands {
	return t.table
}

// MergeTaskCommands appends second's commands to first's and
// concatenates their parameters.
func MergeTaskCommands(first, second *TaskCommands) *TaskCommands {
	if first == nil {
		return second
	}
	if second == nil {
		return first
	}
	return &TaskCommands{table: NewCommands(
		[]Entry{{Environment: Any(), Commands: JoinCommands(first.Command(), second.Command())}},
		append(first.Parameters(), second.Parameters()...),
	)}
}
