// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"slices"
)

// ProjectModel is the resolved build model of a project.
type ProjectModel struct {
	environments []ExecutionEnvironment
	build        *Commands
	tasks        map[string]*TaskCommands
	taskIDs      []string
}

// Task pairs a task identifier with its commands, for constructing a
// model directly.
type Task struct {
	ID       string
	Commands *TaskCommands
}

// NewProjectModel assembles a model. An empty environment list becomes
// [Any]; a nil build table becomes a single empty command for [Any].
// Tasks with a nil command table are dropped; a repeated task id keeps
// the last definition.
func NewProjectModel(environments []ExecutionEnvironment, build *Commands, tasks []Task) *ProjectModel {
	project := &ProjectModel{
		tasks: make(map[string]*TaskCommands, len(tasks)),
	}
	if len(environments) == 0 {
		project.environments = []ExecutionEnvironment{Any()}
	} else {
		project.environments = slices.Clone(environments)
	}
	if build == nil {
		build = NewGlobalCommands([]string{""})
	}
	project.build = build
	for _, task := range tasks {
		if task.Commands == nil {
			continue
		}
		if _, exists := project.tasks[task.ID]; !exists {
			project.taskIDs = append(project.taskIDs, task.ID)
		}
		project.tasks[task.ID] = task.Commands
	}
	return project
}

// Environments returns the environments the project targets, in
// declaration order. Never empty.
func (p *ProjectModel) Environments() []ExecutionEnvironment {
	return slices.Clone(p.environments)
}

// Build returns the build command table.
func (p *ProjectModel) Build() *Commands {
	return p.build
}

// BuildFor returns the build commands for the environment, or nil when
// no build entry applies.
func (p *ProjectModel) BuildFor(environment ExecutionEnvironment) []string {
	return p.build.MatchingCommand(environment)
}

// BuildForLabels is BuildFor with an environment made of labels only.
// With no labels it queries the "any" environment.
func (p *ProjectModel) BuildForLabels(labels ...string) []string {
	return p.BuildFor(NewEnvironment(labels...))
}

// TaskIDs returns the task identifiers in the order they were added.
func (p *ProjectModel) TaskIDs() []string {
	return slices.Clone(p.taskIDs)
}

// Task returns the named task.
func (p *ProjectModel) Task(id string) (*TaskCommands, bool) {
	task, ok := p.tasks[id]
	return task, ok
}

// HasCommands reports whether the model carries any build entry or any
// task.
func (p *ProjectModel) HasCommands() bool {
	return !p.build.IsEmpty() || len(p.taskIDs) > 0
}
