// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package yamlmodel

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/jenkinsci/literate-api/lib/model"
	"github.com/jenkinsci/literate-api/lib/repository"
	"github.com/jenkinsci/literate-api/lib/source"
)

// Priority places the YAML builder behind the Markdown builder.
const Priority = -1000

// Reserved top-level keys that never become tasks.
const (
	languageKey    = "language"
	environmentKey = "env"
)

// DefaultBuildKeys are accepted as build keys in addition to the
// request's build id.
var DefaultBuildKeys = []string{"script"}

// Builder is the [source.Builder] for YAML projects.
type Builder struct {
	logger     *slog.Logger
	buildKeys  []string
	languages  []Language
	decorators []EnvironmentDecorator
}

// Option configures a [Builder].
type Option func(*Builder)

// WithBuildKeys replaces [DefaultBuildKeys].
func WithBuildKeys(keys ...string) Option {
	return func(builder *Builder) {
		builder.buildKeys = slices.Clone(keys)
	}
}

// WithLanguages replaces the built-in language decorators.
func WithLanguages(languages ...Language) Option {
	return func(builder *Builder) {
		builder.languages = slices.Clone(languages)
	}
}

// New returns a YAML builder. A nil logger discards.
func New(logger *slog.Logger, options ...Option) *Builder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	builder := &Builder{
		logger:     logger,
		buildKeys:  slices.Clone(DefaultBuildKeys),
		languages:  DefaultLanguages(),
		decorators: []EnvironmentDecorator{GlobalDecorator{}, MatrixDecorator{}},
	}
	for _, option := range options {
		option(builder)
	}
	return builder
}

func (b *Builder) Name() string { return "yaml" }

func (b *Builder) Priority() int { return Priority }

// MarkerFiles returns ".{baseName}.yml" and ".travis.yml".
func (b *Builder) MarkerFiles(baseName string) []string {
	return []string{"." + baseName + ".yml", ".travis.yml"}
}

// Build reads the first marker file present in the repository.
func (b *Builder) Build(ctx context.Context, request source.Request) (*model.ProjectModel, error) {
	repo := request.Repository()
	for _, marker := range b.MarkerFiles(request.BaseName()) {
		isFile, err := repo.IsFile(ctx, marker)
		if err != nil {
			return nil, fmt.Errorf("probing %s: %w", marker, err)
		}
		if isFile {
			return b.buildFile(ctx, request, marker)
		}
	}
	return nil, source.NewBuildingError("not a YAML based literate project")
}

func (b *Builder) buildFile(ctx context.Context, request source.Request, path string) (*model.ProjectModel, error) {
	logger := b.logger.With("file", path)
	content, err := repository.ReadFile(ctx, request.Repository(), path)
	if err != nil {
		return nil, err
	}
	document, err := Load(content)
	if err != nil {
		return nil, source.NewBuildingError("parsing %s: %w", path, err)
	}
	if document.Kind != KindMapping {
		return nil, source.NewBuildingError("%s is a YAML %s, want a mapping", path, document.Kind)
	}

	buildKeys := b.requestBuildKeys(request)
	if language, ok := document.Get(languageKey); ok && language.Kind == KindScalar {
		if decorator, found := findLanguage(b.languages, language.Scalar); found {
			document, err = decorator.Decorate(ctx, document, request.Repository(), buildKeys)
			if err != nil {
				return nil, err
			}
			logger.Debug("applied language defaults", "language", language.Scalar)
		} else {
			logger.Debug("no defaults for language", "language", language.Scalar)
		}
	}

	environments := []model.ExecutionEnvironment{model.Any()}
	if section, ok := document.Get(request.EnvironmentsID()); ok {
		environments = uniqueEnvironments(parseEnvironments(section, nil))
	}
	if section, ok := document.Get(environmentKey); ok {
		environments, err = b.decorate(logger, environments, section)
		if err != nil {
			return nil, source.NewBuildingError("%s: %w", path, err)
		}
	}

	builder := model.NewBuilder().AddEnvironments(environments...)
	for _, environment := range environments {
		var commands []string
		for _, key := range buildKeys {
			if value, ok := document.Get(key); ok {
				commands = append(commands, resolve(value, environment)...)
			}
		}
		if len(commands) == 0 {
			continue
		}
		if err := builder.AddBuild(environment, commands...); err != nil {
			return nil, fmt.Errorf("building model from %s: %w", path, err)
		}
	}

	reserved := append([]string{languageKey, environmentKey, request.EnvironmentsID()}, buildKeys...)
	for _, key := range document.Keys() {
		if slices.Contains(reserved, key) {
			continue
		}
		value, _ := document.Get(key)
		if commands := resolve(value, model.Any()); len(commands) > 0 {
			builder.AddTask(key, commands...)
		}
	}

	project := builder.Build()
	if !project.HasCommands() {
		return nil, source.NewBuildingError("%s declares neither build commands nor tasks", path)
	}
	logger.Debug("parsed yaml model",
		"environments", len(project.Environments()),
		"build_entries", project.Build().Len(),
		"tasks", len(project.TaskIDs()))
	return project, nil
}

// requestBuildKeys returns the request's build ids followed by the
// configured build keys, without repeats.
func (b *Builder) requestBuildKeys(request source.Request) []string {
	keys := strings.FieldsFunc(request.BuildID(), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for _, key := range b.buildKeys {
		if key != "" && !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// decorate applies the sections of the "env" key in order. A list or a
// scalar is the matrix section.
func (b *Builder) decorate(logger *slog.Logger, environments []model.ExecutionEnvironment, section *Value) ([]model.ExecutionEnvironment, error) {
	sections := section
	if section.Kind != KindMapping {
		sections = NewMapping()
		sections.Set("matrix", section)
	}
	for _, name := range sections.Keys() {
		value, _ := sections.Get(name)
		index := slices.IndexFunc(b.decorators, func(decorator EnvironmentDecorator) bool {
			return decorator.AcceptsSection(name)
		})
		if index < 0 {
			logger.Debug("ignoring unknown env section", "section", name)
			continue
		}
		assignments, err := value.Strings()
		if err != nil {
			return nil, fmt.Errorf("env section %q: %w", name, err)
		}
		var decorated []model.ExecutionEnvironment
		for _, environment := range environments {
			derived, err := b.decorators[index].Decorate(environment, assignments)
			if err != nil {
				return nil, fmt.Errorf("env section %q: %w", name, err)
			}
			decorated = append(decorated, derived...)
		}
		logger.Debug("applied env section", "section", name,
			"before", len(environments), "after", len(decorated))
		environments = decorated
	}
	return environments, nil
}

// resolve returns the commands of value that apply to environment. A
// mapping dispatches on labels: only keys naming a label of the
// environment are followed.
func resolve(value *Value, environment model.ExecutionEnvironment) []string {
	switch {
	case value.IsNull():
		return nil
	case value.Kind == KindScalar:
		return []string{value.Scalar}
	case value.Kind == KindList:
		var commands []string
		for _, item := range value.Items {
			commands = append(commands, resolve(item, environment)...)
		}
		return commands
	}
	var commands []string
	for _, label := range value.Keys() {
		if !environment.HasLabel(label) {
			continue
		}
		child, _ := value.Get(label)
		commands = append(commands, resolve(child, environment)...)
	}
	return commands
}
