// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package model

// Snapshot is the serializable form of a [ProjectModel]. It is used for
// CLI JSON output and for CBOR-encoded snapshot files; the json tags
// drive both encodings.
type Snapshot struct {
	Environments []EnvironmentSnapshot `json:"environments"`
	Build        CommandsSnapshot      `json:"build"`
	Tasks        []TaskSnapshot        `json:"tasks,omitempty"`
}

// EnvironmentSnapshot is the serializable form of an
// [ExecutionEnvironment].
type EnvironmentSnapshot struct {
	Labels    []string          `json:"labels,omitempty"`
	Variables map[string]string `json:"variables,omitempty"`
}

// CommandsSnapshot is the serializable form of a [Commands] table.
type CommandsSnapshot struct {
	Entries    []EntrySnapshot     `json:"entries"`
	Parameters []ParameterSnapshot `json:"parameters,omitempty"`
}

// EntrySnapshot is one row of a [CommandsSnapshot].
type EntrySnapshot struct {
	Environment EnvironmentSnapshot `json:"environment"`
	Commands    []string            `json:"commands"`
}

// ParameterSnapshot is the serializable form of a [Parameter].
type ParameterSnapshot struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Default     *string  `json:"default,omitempty"`
	ValidValues []string `json:"valid_values,omitempty"`
}

// TaskSnapshot is the serializable form of a named task.
type TaskSnapshot struct {
	ID         string              `json:"id"`
	Commands   []string            `json:"commands"`
	Parameters []ParameterSnapshot `json:"parameters,omitempty"`
}

// Snapshot converts the model to its serializable form.
func (p *ProjectModel) Snapshot() Snapshot {
	snapshot := Snapshot{
		Environments: make([]EnvironmentSnapshot, 0, len(p.environments)),
		Build:        snapshotCommands(p.build),
	}
	for _, environment := range p.environments {
		snapshot.Environments = append(snapshot.Environments, environment.Snapshot())
	}
	for _, id := range p.taskIDs {
		task := p.tasks[id]
		snapshot.Tasks = append(snapshot.Tasks, TaskSnapshot{
			ID:         id,
			Commands:   task.Command(),
			Parameters: snapshotParameters(task.Parameters()),
		})
	}
	return snapshot
}

// Model rebuilds the model a snapshot was taken from.
func (s Snapshot) Model() *ProjectModel {
	environments := make([]ExecutionEnvironment, 0, len(s.Environments))
	for _, environment := range s.Environments {
		environments = append(environments, environment.Environment())
	}
	tasks := make([]Task, 0, len(s.Tasks))
	for _, task := range s.Tasks {
		tasks = append(tasks, Task{
			ID:       task.ID,
			Commands: NewTaskCommands(task.Commands, parametersFromSnapshot(task.Parameters)...),
		})
	}
	return NewProjectModel(environments, s.Build.Commands(), tasks)
}

// Environment converts back to an [ExecutionEnvironment].
func (s EnvironmentSnapshot) Environment() ExecutionEnvironment {
	return NewEnvironmentWithVariables(s.Labels, s.Variables)
}

// Commands converts back to a [Commands] table.
func (s CommandsSnapshot) Commands() *Commands {
	entries := make([]Entry, 0, len(s.Entries))
	for _, entry := range s.Entries {
		entries = append(entries, Entry{Environment: entry.Environment.Environment(), Commands: entry.Commands})
	}
	return NewCommands(entries, parametersFromSnapshot(s.Parameters))
}

// Snapshot converts the environment to its serializable form.
func (e ExecutionEnvironment) Snapshot() EnvironmentSnapshot {
	snapshot := EnvironmentSnapshot{Labels: e.Labels()}
	if len(e.variables) > 0 {
		snapshot.Variables = e.Variables()
	}
	return snapshot
}

func snapshotCommands(table *Commands) CommandsSnapshot {
	snapshot := CommandsSnapshot{Entries: make([]EntrySnapshot, 0, table.Len())}
	for _, entry := range table.Entries() {
		snapshot.Entries = append(snapshot.Entries, EntrySnapshot{
			Environment: entry.Environment.Snapshot(),
			Commands:    entry.Commands,
		})
	}
	snapshot.Parameters = snapshotParameters(table.Parameters())
	return snapshot
}

func snapshotParameters(parameters []Parameter) []ParameterSnapshot {
	if len(parameters) == 0 {
		return nil
	}
	result := make([]ParameterSnapshot, 0, len(parameters))
	for _, parameter := range parameters {
		snapshot := ParameterSnapshot{
			Name:        parameter.name,
			Description: parameter.description,
			ValidValues: parameter.ValidValues(),
		}
		if parameter.hasDefault {
			value := parameter.defaultValue
			snapshot.Default = &value
		}
		result = append(result, snapshot)
	}
	return result
}

func parametersFromSnapshot(snapshots []ParameterSnapshot) []Parameter {
	result := make([]Parameter, 0, len(snapshots))
	for _, snapshot := range snapshots {
		if snapshot.Name == "" {
			continue
		}
		options := []ParameterOption{WithDescription(snapshot.Description), WithValidValues(snapshot.ValidValues...)}
		if snapshot.Default != nil {
			options = append(options, WithDefault(*snapshot.Default))
		}
		result = append(result, NewParameter(snapshot.Name, options...))
	}
	return result
}
