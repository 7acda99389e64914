// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/jenkinsci/literate-api/lib/model"
	"github.com/jenkinsci/literate-api/lib/repository"
	"github.com/jenkinsci/literate-api/lib/source"
)

// DefaultFallbackFile is read when the marker file has no build
// section.
const DefaultFallbackFile = "README.md"

// Priority places the Markdown builder ahead of every other builder.
const Priority = math.MaxInt

// invalidBuildSection is the body of the validation error returned when
// neither the marker file nor the fallback yields commands.
const invalidBuildSection = "check that it contains a valid build section\n" +
	"valid build sections include:\n" +
	"- verbatim (starts by 4 spaces or tab)\n" +
	"- bullet list (starts by *, +, -, or a number)\n" +
	"- definition list"

// Builder is the [source.Builder] for literate Markdown projects.
type Builder struct {
	logger       *slog.Logger
	fallbackFile string
}

// Option configures a [Builder].
type Option func(*Builder)

// WithFallbackFile sets the file read when the marker file has no
// build section. An empty name keeps the default.
func WithFallbackFile(name string) Option {
	return func(builder *Builder) {
		if name != "" {
			builder.fallbackFile = name
		}
	}
}

// New returns a Markdown builder. A nil logger discards.
func New(logger *slog.Logger, options ...Option) *Builder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	builder := &Builder{logger: logger, fallbackFile: DefaultFallbackFile}
	for _, option := range options {
		option(builder)
	}
	return builder
}

func (b *Builder) Name() string { return "markdown" }

func (b *Builder) Priority() int { return Priority }

// MarkerFiles returns ".{baseName}.md".
func (b *Builder) MarkerFiles(baseName string) []string {
	return []string{"." + baseName + ".md"}
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
	return nil, source.NewBuildingError("not a Markdown based literate project")
}

func (b *Builder) buildFile(ctx context.Context, request source.Request, path string) (*model.ProjectModel, error) {
	logger := b.logger.With("file", path)
	content, err := repository.ReadFile(ctx, request.Repository(), path)
	if err != nil {
		return nil, err
	}

	project, err := BuildModel(content, Sections{
		EnvironmentsID: request.EnvironmentsID(),
		BuildID:        request.BuildID(),
		TaskIDs:        request.TaskIDs(),
	})
	if err != nil {
		return nil, fmt.Errorf("building model from %s: %w", path, err)
	}
	if project.HasCommands() {
		logger.Debug("parsed markdown model",
			"build_entries", project.Build().Len(),
			"tasks", len(project.TaskIDs()))
		return project, nil
	}

	if path != b.fallbackFile {
		hasFallback, err := request.Repository().IsFile(ctx, b.fallbackFile)
		if err != nil {
			return nil, fmt.Errorf("probing %s: %w", b.fallbackFile, err)
		}
		if hasFallback {
			logger.Debug("no build section, trying fallback", "fallback", b.fallbackFile)
			return b.buildFile(ctx, request, b.fallbackFile)
		}
	}
	return nil, source.NewValidationError("unable to turn %s into a valid model; %s", path, invalidBuildSection)
}
