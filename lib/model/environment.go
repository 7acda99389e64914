// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"maps"
	"slices"
	"sort"
	"strings"
)

// ExecutionEnvironment is a slice of the build matrix: a set of labels
// and a map of variable assignments. Labels are kept sorted and
// de-duplicated. The zero value is the unspecified "any" environment.
//
// ExecutionEnvironment is not comparable with ==; use [Equal] or
// compare [ExecutionEnvironment.Key] values.
type ExecutionEnvironment struct {
	labels    []string
	variables map[string]string
}

// Any returns the unspecified environment. It has no labels and no
// variables, and is satisfied by every environment.
func Any() ExecutionEnvironment {
	return ExecutionEnvironment{}
}

// NewEnvironment returns an environment with the given labels. Empty
// labels are dropped.
func NewEnvironment(labels ...string) ExecutionEnvironment {
	return ExecutionEnvironment{labels: normalizeLabels(labels)}
}

// NewEnvironmentWithVariables returns an environment with the given
// labels and variables. The variables map is copied.
func NewEnvironmentWithVariables(labels []string, variables map[string]string) ExecutionEnvironment {
	environment := ExecutionEnvironment{labels: normalizeLabels(labels)}
	if len(variables) > 0 {
		environment.variables = maps.Clone(variables)
	}
	return environment
}

// WithLabels returns a copy of the environment with additional labels.
func (e ExecutionEnvironment) WithLabels(labels ...string) ExecutionEnvironment {
	if len(labels) == 0 {
		return e
	}
	combined := make([]string, 0, len(e.labels)+len(labels))
	combined = append(combined, e.labels...)
	combined = append(combined, labels...)
	return ExecutionEnvironment{labels: normalizeLabels(combined), variables: e.variables}
}

// WithVariables returns a copy of the environment whose variables are
// extended by delta. Keys present in both take the value from delta.
func (e ExecutionEnvironment) WithVariables(delta map[string]string) ExecutionEnvironment {
	if len(delta) == 0 {
		return e
	}
	variables := make(map[string]string, len(e.variables)+len(delta))
	maps.Copy(variables, e.variables)
	maps.Copy(variables, delta)
	return ExecutionEnvironment{labels: e.labels, variables: variables}
}

// Labels returns the sorted labels. The returned slice is a copy.
func (e ExecutionEnvironment) Labels() []string {
	return slices.Clone(e.labels)
}

// LabelCount returns the number of labels without copying them.
func (e ExecutionEnvironment) LabelCount() int {
	return len(e.labels)
}

// HasLabel reports whether label is one of the environment's labels.
func (e ExecutionEnvironment) HasLabel(label string) bool {
	_, found := slices.BinarySearch(e.labels, label)
	return found
}

// Variables returns a copy of the variable map. Never nil.
func (e ExecutionEnvironment) Variables() map[string]string {
	variables := make(map[string]string, len(e.variables))
	maps.Copy(variables, e.variables)
	return variables
}

// Variable returns the value of a single variable.
func (e ExecutionEnvironment) Variable(name string) (string, bool) {
	value, ok := e.variables[name]
	return value, ok
}

// IsUnspecified reports whether the environment has neither labels nor
// variables.
func (e ExecutionEnvironment) IsUnspecified() bool {
	return len(e.labels) == 0 && len(e.variables) == 0
}

// IsMatchFor reports whether e satisfies the requirement: every label
// of requirement is a label of e, and every variable of requirement is
// set in e to the same value.
func (e ExecutionEnvironment) IsMatchFor(requirement ExecutionEnvironment) bool {
	for _, label := range requirement.labels {
		if !e.HasLabel(label) {
			return false
		}
	}
	for name, value := range requirement.variables {
		if actual, ok := e.variables[name]; !ok || actual != value {
			return false
		}
	}
	return true
}

// Equal reports whether two environments have the same labels and the
// same variables.
func (e ExecutionEnvironment) Equal(other ExecutionEnvironment) bool {
	return slices.Equal(e.labels, other.labels) && maps.Equal(e.variables, other.variables)
}

// Key returns a canonical string for the environment, suitable as a map
// key. Two environments have the same key exactly when they are Equal.
func (e ExecutionEnvironment) Key() string {
	var builder strings.Builder
	for index, label := range e.labels {
		if index > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(escapeKey(label))
	}
	names := make([]string, 0, len(e.variables))
	for name := range e.variables {
		names = append(names, name)
	}
	sort.Strings(names)
	builder.WriteByte('|')
	for index, name := range names {
		if index > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(escapeKey(name))
		builder.WriteByte('=')
		builder.WriteString(escapeKey(e.variables[name]))
	}
	return builder.String()
}

// String renders the environment for logs and error messages, for
// example "{linux,x86 A=b}" or "{any}".
func (e ExecutionEnvironment) String() string {
	if e.IsUnspecified() {
		return "{any}"
	}
	var builder strings.Builder
	builder.WriteByte('{')
	builder.WriteString(strings.Join(e.labels, ","))
	names := make([]string, 0, len(e.variables))
	for name := range e.variables {
		names = append(names, name)
	}
	sort.Strings(names)
	for index, name := range names {
		if index > 0 || len(e.labels) > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(name)
		builder.WriteByte('=')
		builder.WriteString(e.variables[name])
	}
	builder.WriteByte('}')
	return builder.String()
}

// normalizeLabels sorts, de-duplicates and drops empty labels. Returns
// nil for an empty result so that the zero value stays canonical.
func normalizeLabels(labels []string) []string {
	result := make([]string, 0, len(labels))
	for _, label := range labels {
		if label != "" {
			result = append(result, label)
		}
	}
	if len(result) == 0 {
		return nil
	}
	sort.Strings(result)
	return slices.Compact(result)
}

var keyEscaper = strings.NewReplacer(`\`, `\\`, `,`, `\,`, `|`, `\|`, `=`, `\=`)

func escapeKey(s string) string {
	return keyEscaper.Replace(s)
}
