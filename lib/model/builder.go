// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrMisuse is wrapped by every error reporting an invalid sequence of
// Builder calls. Such errors are never recoverable: the caller built an
// inconsistent model and retrying with another source cannot fix it.
var ErrMisuse = errors.New("project model builder misuse")

// errMixedBuild is returned when global and environment specific build
// entries would be mixed.
var errMixedBuild = fmt.Errorf("%w: cannot have a global command and environment specific commands", ErrMisuse)

// Builder accumulates the parts of a [ProjectModel]. A Builder belongs
// to a single request: it is not safe for concurrent use and should be
// discarded after [Builder.Build].
type Builder struct {
	environments    []ExecutionEnvironment
	build           []Entry
	buildIndex      map[string]int
	buildParameters []Parameter
	tasks           map[string]*TaskCommands
	taskIDs         []string
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		buildIndex: make(map[string]int),
		tasks:      make(map[string]*TaskCommands),
	}
}

// AddEnvironments appends environments to the environment list.
func (b *Builder) AddEnvironments(environments ...ExecutionEnvironment) *Builder {
	b.environments = append(b.environments, environments...)
	return b
}

// AddEnvironmentLabels appends one environment made of labels.
func (b *Builder) AddEnvironmentLabels(labels ...string) *Builder {
	return b.AddEnvironments(NewEnvironment(labels...))
}

// AddBuild adds build commands for an environment. Commands added for
// an environment that already has an entry are appended to it.
//
// A global entry (for the unspecified environment) and environment
// specific entries cannot coexist. Attempting to add one kind when the
// other is present returns an error wrapping [ErrMisuse] and leaves the
// builder unchanged.
func (b *Builder) AddBuild(environment ExecutionEnvironment, commands ...string) error {
	anyKey := Any().Key()
	_, hasGlobal := b.buildIndex[anyKey]
	if environment.IsUnspecified() {
		if len(b.build) > 1 || (len(b.build) == 1 && !hasGlobal) {
			return errMixedBuild
		}
	} else if len(b.build) == 1 && hasGlobal {
		return errMixedBuild
	}

	key := environment.Key()
	if position, exists := b.buildIndex[key]; exists {
		b.build[position].Commands = slices.Clone(JoinCommands(b.build[position].Commands, commands))
		return nil
	}
	b.buildIndex[key] = len(b.build)
	b.build = append(b.build, Entry{Environment: environment, Commands: slices.Clone(commands)})
	return nil
}

// AddBuildEntries adds each entry in order, stopping at the first
// error.
func (b *Builder) AddBuildEntries(entries ...Entry) error {
	for _, entry := range entries {
		if err := b.AddBuild(entry.Environment, entry.Commands...); err != nil {
			return fmt.Errorf("adding build for %s: %w", entry.Environment, err)
		}
	}
	return nil
}

// AddBuildParameters declares parameters of the build section.
func (b *Builder) AddBuildParameters(parameters ...Parameter) *Builder {
	b.buildParameters = append(b.buildParameters, parameters...)
	return b
}

// AddTask adds commands to the named task. A task added twice keeps
// the first commands followed by the second.
func (b *Builder) AddTask(id string, commands ...string) *Builder {
	return b.AddTaskCommands(id, NewTaskCommands(commands))
}

// AddTaskCommands merges a task table into the named task.
func (b *Builder) AddTaskCommands(id string, task *TaskCommands) *Builder {
	if existing, ok := b.tasks[id]; ok {
		b.tasks[id] = MergeTaskCommands(existing, task)
		return b
	}
	b.taskIDs = append(b.taskIDs, id)
	b.tasks[id] = task
	return b
}

// AddTaskParameters declares parameters of the named task, creating the
// task with no commands if needed.
func (b *Builder) AddTaskParameters(id string, parameters ...Parameter) *Builder {
	return b.AddTaskCommands(id, NewTaskCommands(nil, parameters...))
}

// Build finalizes the model. An empty environment list becomes [Any].
func (b *Builder) Build() *ProjectModel {
	tasks := make([]Task, 0, len(b.taskIDs))
	for _, id := range b.taskIDs {
		tasks = append(tasks, Task{ID: id, Commands: b.tasks[id]})
	}
	return NewProjectModel(b.environments, NewCommands(b.build, b.buildParameters), tasks)
}

// String summarizes the staging state for debug logging.
func (b *Builder) String() string {
	return fmt.Sprintf("Builder{environments=%d build=%d tasks=[%s]}",
		len(b.environments), len(b.build), strings.Join(b.taskIDs, ","))
}
