// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"slices"
	"strings"
)

// Parameter is a named input declared by a build or task section.
type Parameter struct {
	name         string
	description  string
	defaultValue string
	hasDefault   bool
	validValues  []string
}

// ParameterOption configures optional fields of a [Parameter].
type ParameterOption func(*Parameter)

// WithDescription sets the description. A blank description is
// treated as absent.
func WithDescription(description string) ParameterOption {
	return func(parameter *Parameter) {
		if strings.TrimSpace(description) == "" {
			parameter.description = ""
			return
		}
		parameter.description = description
	}
}

// WithDefault sets the default value.
func WithDefault(value string) ParameterOption {
	return func(parameter *Parameter) {
		parameter.defaultValue = value
		parameter.hasDefault = true
	}
}

// WithValidValues sets the enumerated set of accepted values.
func WithValidValues(values ...string) ParameterOption {
	return func(parameter *Parameter) {
		parameter.validValues = slices.Clone(values)
	}
}

// NewParameter returns a parameter declaration. The name is required;
// an empty name is a programming error and panics.
//
// The valid value set collapses to absent when it is empty, or when it
// holds exactly one value equal to the default.
func NewParameter(name string, options ...ParameterOption) Parameter {
	if name == "" {
		panic("model.NewParameter: name is required")
	}
	parameter := Parameter{name: name}
	for _, option := range options {
		option(&parameter)
	}
	if len(parameter.validValues) == 0 ||
		(parameter.hasDefault && len(parameter.validValues) == 1 && parameter.validValues[0] == parameter.defaultValue) {
		parameter.validValues = nil
	}
	return parameter
}

// Name returns the parameter name.
func (p Parameter) Name() string { return p.name }

// Description returns the description, or "" when absent.
func (p Parameter) Description() string { return p.description }

// Default returns the default value and whether one was declared.
func (p Parameter) Default() (string, bool) { return p.defaultValue, p.hasDefault }

// ValidValues returns a copy of the enumerated values, or nil when the
// parameter accepts any value.
func (p Parameter) ValidValues() []string { return slices.Clone(p.validValues) }

// Equal reports whether two parameters declare the same name,
// description, default and valid values.
func (p Parameter) Equal(other Parameter) bool {
	return p.name == other.name &&
		p.description == other.description &&
		p.hasDefault == other.hasDefault &&
		p.defaultValue == other.defaultValue &&
		slices.Equal(p.validValues, other.validValues)
}

// UniqueParameters drops later declarations of an already seen name.
// The first declaration of each name wins and order is preserved.
func UniqueParameters(parameters []Parameter) []Parameter {
	if len(parameters) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(parameters))
	result := make([]Parameter, 0, len(parameters))
	for _, parameter := range parameters {
		if parameter.name == "" {
			continue
		}
		if _, duplicate := seen[parameter.name]; duplicate {
			continue
		}
		seen[parameter.name] = struct{}{}
		result = append(result, parameter)
	}
	return result
}

// ParameterMap returns the name to parameter mapping, first
// declaration winning.
func ParameterMap(parameters []Parameter) map[string]Parameter {
	result := make(map[string]Parameter, len(parameters))
	for _, parameter := range UniqueParameters(parameters) {
		result[parameter.name] = parameter
	}
	return result
}
