// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package yamlmodel

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ValueKind identifies the shape of a [Value].
type ValueKind int

const (
	KindNull ValueKind = iota
	KindScalar
	KindList
	KindMapping
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMapping:
		return "mapping"
	}
	return "unknown"
}

// Value is a node of a loaded YAML document. Mappings keep their keys
// in document order. A nil *Value behaves as null.
type Value struct {
	Kind    ValueKind
	Scalar  string
	Items   []*Value
	keys    []string
	entries map[string]*Value
}

// NewScalar returns a scalar value.
func NewScalar(scalar string) *Value {
	return &Value{Kind: KindScalar, Scalar: scalar}
}

// NewList returns a list of scalars.
func NewList(scalars ...string) *Value {
	list := &Value{Kind: KindList}
	for _, scalar := range scalars {
		list.Items = append(list.Items, NewScalar(scalar))
	}
	return list
}

// NewMapping returns an empty mapping.
func NewMapping() *Value {
	return &Value{Kind: KindMapping, entries: make(map[string]*Value)}
}

// Set adds or replaces a mapping entry. Replaced keys keep their
// position.
func (v *Value) Set(key string, value *Value) {
	if _, exists := v.entries[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.entries[key] = value
}

// Get returns the mapping entry for key.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.Kind != KindMapping {
		return nil, false
	}
	value, ok := v.entries[key]
	return value, ok
}

// Keys returns the mapping keys in document order.
func (v *Value) Keys() []string {
	if v == nil {
		return nil
	}
	return slices.Clone(v.keys)
}

// IsNull reports whether the value is absent or null.
func (v *Value) IsNull() bool {
	return v == nil || v.Kind == KindNull
}

// Clone returns a shallow copy of a mapping: entries can be added to
// the copy without affecting the original. Other kinds are returned as
// is, since values are never mutated after loading.
func (v *Value) Clone() *Value {
	if v == nil || v.Kind != KindMapping {
		return v
	}
	clone := NewMapping()
	for _, key := range v.keys {
		clone.Set(key, v.entries[key])
	}
	return clone
}

// Strings returns the scalars of a scalar or a list of scalars.
func (v *Value) Strings() ([]string, error) {
	switch {
	case v.IsNull():
		return nil, nil
	case v.Kind == KindScalar:
		return []string{v.Scalar}, nil
	case v.Kind == KindList:
		result := make([]string, 0, len(v.Items))
		for index, item := range v.Items {
			if item.IsNull() {
				continue
			}
			if item.Kind != KindScalar {
				return nil, fmt.Errorf("item %d is a %s, want a scalar", index, item.Kind)
			}
			result = append(result, item.Scalar)
		}
		return result, nil
	}
	return nil, fmt.Errorf("value is a %s, want a scalar or a list", v.Kind)
}

// Alias expansion may produce at most aliasExpansionRatio times the
// number of nodes written in the document, and never less than
// minimumNodeBudget nodes.
const (
	aliasExpansionRatio = 100
	minimumNodeBudget   = 10000
)

// ErrAliasExpansion is wrapped by errors for documents whose aliases
// expand beyond the node budget.
var ErrAliasExpansion = errors.New("alias expansion exceeds node budget")

// Load parses a YAML document. An empty document loads as null.
// Aliases are expanded; an anchor that contains an alias to itself,
// or aliases that would grow the document past its node budget, fail
// the load.
func Load(data []byte) (*Value, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, err
	}
	if document.Kind == 0 {
		return &Value{Kind: KindNull}, nil
	}
	loader := &loader{
		budget:    max(aliasExpansionRatio*countNodes(&document), minimumNodeBudget),
		expanding: make(map[*yaml.Node]bool),
	}
	return loader.fromNode(&document)
}

// countNodes counts the nodes written in the document, without
// following aliases.
func countNodes(node *yaml.Node) int {
	count := 1
	for _, child := range node.Content {
		count += countNodes(child)
	}
	return count
}

// loader converts one document. expanding holds the alias targets on
// the current path.
type loader struct {
	budget    int
	produced  int
	expanding map[*yaml.Node]bool
}

func (l *loader) fromNode(node *yaml.Node) (*Value, error) {
	l.produced++
	if l.produced > l.budget {
		return nil, fmt.Errorf("line %d: %w (%d nodes)", node.Line, ErrAliasExpansion, l.budget)
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return &Value{Kind: KindNull}, nil
		}
		return l.fromNode(node.Content[0])
	case yaml.AliasNode:
		target := node.Alias
		if target == nil {
			return nil, fmt.Errorf("line %d: alias %q has no anchor", node.Line, node.Value)
		}
		if l.expanding[target] {
			return nil, fmt.Errorf("line %d: anchor %q contains itself", node.Line, target.Anchor)
		}
		l.expanding[target] = true
		defer delete(l.expanding, target)
		return l.fromNode(target)
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return &Value{Kind: KindNull}, nil
		}
		return NewScalar(node.Value), nil
	case yaml.SequenceNode:
		list := &Value{Kind: KindList}
		for _, child := range node.Content {
			item, err := l.fromNode(child)
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
		}
		return list, nil
	case yaml.MappingNode:
		return l.mappingFromNode(node)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
}

// mappingFromNode converts a mapping, applying "<<" merge keys: merged
// entries never override keys written in the mapping itself.
func (l *loader) mappingFromNode(node *yaml.Node) (*Value, error) {
	mapping := NewMapping()
	var merged []*Value
	for index := 0; index+1 < len(node.Content); index += 2 {
		keyNode, valueNode := node.Content[index], node.Content[index+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}
		value, err := l.fromNode(valueNode)
		if err != nil {
			return nil, err
		}
		if keyNode.ShortTag() == "!!merge" {
			merged = append(merged, value)
			continue
		}
		mapping.Set(keyNode.Value, value)
	}
	for _, source := range merged {
		sources := []*Value{source}
		if source.Kind == KindList {
			sources = source.Items
		}
		for _, inherited := range sources {
			if inherited.IsNull() || inherited.Kind != KindMapping {
				continue
			}
			for _, key := range inherited.keys {
				if _, exists := mapping.entries[key]; !exists {
					mapping.Set(key, inherited.entries[key])
				}
			}
		}
	}
	return mapping, nil
}
