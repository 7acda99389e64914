// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package yamlmodel

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jenkinsci/literate-api/lib/model"
)

// parseEnvironments expands an environments section. ancestors are the
// labels contributed by enclosing mapping keys.
func parseEnvironments(value *Value, ancestors []string) []model.ExecutionEnvironment {
	switch {
	case value.IsNull():
		return []model.ExecutionEnvironment{model.NewEnvironment(ancestors...)}

	case value.Kind == KindScalar:
		return []model.ExecutionEnvironment{model.NewEnvironment(withLabel(ancestors, value.Scalar)...)}

	case value.Kind == KindList:
		if isFlatList(value) {
			labels := slices.Clone(ancestors)
			for _, item := range value.Items {
				if !item.IsNull() {
					labels = append(labels, item.Scalar)
				}
			}
			return []model.ExecutionEnvironment{model.NewEnvironment(labels...)}
		}
		var environments []model.ExecutionEnvironment
		for _, item := range value.Items {
			environments = append(environments, parseEnvironments(item, ancestors)...)
		}
		return environments

	default:
		var environments []model.ExecutionEnvironment
		for _, key := range value.Keys() {
			child, _ := value.Get(key)
			environments = append(environments, parseEnvironments(child, withLabel(ancestors, key))...)
		}
		return environments
	}
}

// isFlatList reports whether a list holds only scalars.
func isFlatList(value *Value) bool {
	for _, item := range value.Items {
		if !item.IsNull() && item.Kind != KindScalar {
			return false
		}
	}
	return true
}

func withLabel(ancestors []string, label string) []string {
	labels := make([]string, 0, len(ancestors)+1)
	labels = append(labels, ancestors...)
	return append(labels, label)
}

// uniqueEnvironments drops repeated environments, keeping the first.
func uniqueEnvironments(environments []model.ExecutionEnvironment) []model.ExecutionEnvironment {
	seen := make(map[string]struct{}, len(environments))
	result := make([]model.ExecutionEnvironment, 0, len(environments))
	for _, environment := range environments {
		key := environment.Key()
		if _, duplicate := seen[key]; duplicate {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, environment)
	}
	return result
}

// EnvironmentDecorator derives environments from a named section of
// variable assignments.
type EnvironmentDecorator interface {
	// AcceptsSection reports whether the decorator handles the section.
	AcceptsSection(name string) bool

	// Decorate returns the environments derived from one environment
	// and the section's "KEY=VALUE ..." strings.
	Decorate(environment model.ExecutionEnvironment, assignments []string) ([]model.ExecutionEnvironment, error)
}

// GlobalDecorator applies every assignment of the "global" section to
// each environment.
type GlobalDecorator struct{}

func (GlobalDecorator) AcceptsSection(name string) bool { return name == "global" }

func (GlobalDecorator) Decorate(environment model.ExecutionEnvironment, assignments []string) ([]model.ExecutionEnvironment, error) {
	variables := make(map[string]string)
	for _, assignment := range assignments {
		properties, err := ParseAssignments(assignment)
		if err != nil {
			return nil, err
		}
		for name, value := range properties {
			variables[name] = value
		}
	}
	return []model.ExecutionEnvironment{environment.WithVariables(variables)}, nil
}

// MatrixDecorator clones each environment once per assignment string of
// the "matrix" section.
type MatrixDecorator struct{}

func (MatrixDecorator) AcceptsSection(name string) bool { return name == "matrix" }

func (MatrixDecorator) Decorate(environment model.ExecutionEnvironment, assignments []string) ([]model.ExecutionEnvironment, error) {
	result := make([]model.ExecutionEnvironment, 0, len(assignments))
	for _, assignment := range assignments {
		properties, err := ParseAssignments(assignment)
		if err != nil {
			return nil, err
		}
		result = append(result, environment.WithVariables(properties))
	}
	return uniqueEnvironments(result), nil
}

// ParseAssignments splits "KEY=VALUE KEY2=VALUE2" on whitespace and
// each token on its first "=". A token without "=" or with an empty
// key is an error.
func ParseAssignments(assignments string) (map[string]string, error) {
	result := make(map[string]string)
	for _, token := range strings.Fields(assignments) {
		name, value, found := strings.Cut(token, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid variable assignment %q: properties must have format KEY=VALUE", token)
		}
		result[name] = value
	}
	return result, nil
}
