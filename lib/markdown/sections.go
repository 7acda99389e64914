// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"slices"
	"strings"

	"github.com/jenkinsci/literate-api/lib/model"
)

// Sections names the headings a document is searched for.
type Sections struct {
	EnvironmentsID string
	BuildID        string
	TaskIDs        []string
}

// minimumLength is the size of the shortest document that could hold
// a build section: a one character heading marker, the build id, and
// a one character indented command.
func (s Sections) minimumLength() int {
	return len("#") + len(s.BuildID) + len("\n    a")
}

// BuildModel parses a document and assembles its model. Documents too
// short to hold a build section produce an empty model. The only error
// is a [model.ErrMisuse] raised when a build section mixes global and
// environment specific commands.
func BuildModel(source []byte, sections Sections) (*model.ProjectModel, error) {
	builder := model.NewBuilder()
	if len(source) < sections.minimumLength() {
		return builder.Build(), nil
	}
	document := Parse(source)
	if len(document.Children) == 0 {
		return builder.Build(), nil
	}

	if section, ok := findSection(document, sections.EnvironmentsID); ok {
		consumeEnvironments(section, builder)
	}
	if section, ok := findSection(document, sections.BuildID); ok {
		if err := consumeBuild(section, builder); err != nil {
			return nil, err
		}
	}
	for _, id := range sections.TaskIDs {
		if section, ok := findSection(document, id); ok {
			consumeTask(section, builder, strings.ToLower(id))
		}
	}
	return builder.Build(), nil
}

// findSection returns the top-level nodes following the first heading
// whose text contains id, up to the next heading.
func findSection(document *Node, id string) ([]*Node, bool) {
	start := slices.IndexFunc(document.Children, func(node *Node) bool {
		return isHeadingContaining(node, id)
	})
	if start < 0 {
		return nil, false
	}
	rest := document.Children[start+1:]
	end := slices.IndexFunc(rest, isHeading)
	if end < 0 {
		return rest, true
	}
	return rest[:end], true
}

func consumeEnvironments(section []*Node, builder *model.Builder) {
	for _, node := range section {
		if isBulletList(node) {
			builder.AddEnvironments(parseEnvironmentList(node)...)
		}
	}
}

func parseEnvironmentList(list *Node) []model.ExecutionEnvironment {
	var environments []model.ExecutionEnvironment
	for _, item := range list.Children {
		if isListItem(item) {
			environments = append(environments, parseEnvironmentItem(item)...)
		}
	}
	return environments
}

// parseEnvironmentItem returns one environment per leaf of the item.
// Labels written on the item itself apply to every nested environment.
func parseEnvironmentItem(item *Node) []model.ExecutionEnvironment {
	var shared []string
	var nested []model.ExecutionEnvironment
	for _, child := range item.Children {
		switch {
		case isBulletList(child):
			nested = append(nested, parseEnvironmentList(child)...)
		case child.Kind == KindParagraph:
			shared = append(shared, codeSpans(child)...)
		}
	}
	if len(nested) == 0 {
		return []model.ExecutionEnvironment{model.NewEnvironment(shared...)}
	}
	for index := range nested {
		nested[index] = nested[index].WithLabels(shared...)
	}
	return nested
}

func consumeBuild(section []*Node, builder *model.Builder) error {
	for _, node := range section {
		switch {
		case isVerbatim(node):
			if err := builder.AddBuild(model.Any(), node.Value); err != nil {
				return err
			}
		case isBulletList(node):
			for _, item := range node.Children {
				entry, ok := parseBuildItem(item)
				if !ok {
					continue
				}
				if err := builder.AddBuild(entry.Environment, entry.Commands...); err != nil {
					return err
				}
			}
		case isDefinitionList(node):
			builder.AddBuildParameters(parseDefinitions(node)...)
		}
	}
	return nil
}

// parseBuildItem reads one bullet of a build list. Code spans before
// the first code block label the environment; every code block in the
// item is a command. Items without a code block are prose.
func parseBuildItem(item *Node) (model.Entry, bool) {
	if !isListItem(item) || !hasDescendant(item, isVerbatim) {
		return model.Entry{}, false
	}
	var labels, commands []string
	var visit func(*Node)
	visit = func(node *Node) {
		switch node.Kind {
		case KindVerbatim:
			commands = append(commands, node.Value)
			return
		case KindCode:
			if len(commands) == 0 {
				labels = append(labels, node.Value)
			}
			return
		}
		for _, child := range node.Children {
			visit(child)
		}
	}
	visit(item)
	return model.Entry{Environment: model.NewEnvironment(labels...), Commands: commands}, true
}

func consumeTask(section []*Node, builder *model.Builder, id string) {
	for _, node := range section {
		switch {
		case isVerbatim(node):
			builder.AddTask(id, node.Value)
		case isDefinitionList(node):
			builder.AddTaskParameters(id, parseDefinitions(node)...)
		}
	}
}

// parseDefinitions turns a definition list into parameters. Only the
// first definition following a term is read.
func parseDefinitions(list *Node) []model.Parameter {
	var parameters []model.Parameter
	var term *Node
	for _, node := range list.Children {
		switch node.Kind {
		case KindDefinitionTerm:
			term = node
		case KindDefinition:
			if term == nil {
				continue
			}
			name := strings.TrimSpace(term.Text())
			term = nil
			if name == "" {
				continue
			}
			parameters = append(parameters, definitionParameter(name, node))
		}
	}
	return parameters
}

// definitionParameter reads the description and values of one
// definition. The first code span is the default; when further spans
// follow, the accepted values are every distinct span in order,
// starting with the default.
func definitionParameter(name string, definition *Node) model.Parameter {
	options := []model.ParameterOption{model.WithDescription(strings.TrimSpace(definition.Text()))}
	spans := codeSpans(definition)
	if len(spans) > 0 {
		options = append(options, model.WithDefault(spans[0]))
	}
	if len(spans) > 1 {
		var values []string
		for _, span := range spans {
			if !slices.Contains(values, span) {
				values = append(values, span)
			}
		}
		options = append(options, model.WithValidValues(values...))
	}
	return model.NewParameter(name, options...)
}
