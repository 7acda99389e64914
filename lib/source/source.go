// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/jenkinsci/literate-api/lib/model"
)

// Builder turns the documents of a project into a model.
type Builder interface {
	// Name identifies the builder in logs.
	Name() string

	// Priority orders builders: higher values are tried first.
	Priority() int

	// MarkerFiles returns the file names whose presence signals that
	// this builder applies, for the given base name.
	MarkerFiles(baseName string) []string

	// Build produces a model for the request or reports why it cannot.
	// See the package documentation for the error contract.
	Build(ctx context.Context, request Request) (*model.ProjectModel, error)
}

// Source tries builders in priority order.
type Source struct {
	builders []Builder
	logger   *slog.Logger
}

// New returns a Source over builders. Builders with equal priority
// keep the order given. A nil logger discards.
func New(logger *slog.Logger, builders ...Builder) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sorted := slices.Clone(builders)
	slices.SortStableFunc(sorted, func(a, b Builder) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})
	return &Source{builders: sorted, logger: logger}
}

// Builders returns the builders in the order they are tried.
func (s *Source) Builders() []Builder {
	return slices.Clone(s.builders)
}

// MarkerFiles returns every marker file name of every builder, in
// builder order, without duplicates.
func (s *Source) MarkerFiles(baseName string) []string {
	var markers []string
	for _, builder := range s.builders {
		for _, marker := range builder.MarkerFiles(baseName) {
			if !slices.Contains(markers, marker) {
				markers = append(markers, marker)
			}
		}
	}
	return markers
}

// Submit resolves the request with the first builder that succeeds.
func (s *Source) Submit(ctx context.Context, request Request) (*model.ProjectModel, error) {
	var firstTransport, firstBuilding error
	for _, builder := range s.builders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger := s.logger.With("builder", builder.Name())
		logger.Debug("trying builder", "priority", builder.Priority())

		project, err := builder.Build(ctx, request)
		if err == nil {
			logger.Debug("builder produced model",
				"environments", len(project.Environments()),
				"tasks", len(project.TaskIDs()))
			return project, nil
		}
		if isFatal(err) {
			return nil, err
		}
		var building *BuildingError
		if errors.As(err, &building) {
			logger.Debug("builder does not apply", "reason", err)
			if firstBuilding == nil {
				firstBuilding = err
			}
			continue
		}
		logger.Debug("builder failed reading repository", "error", err)
		if firstTransport == nil {
			firstTransport = err
		}
	}
	if firstTransport != nil {
		return nil, firstTransport
	}
	if firstBuilding != nil {
		return nil, firstBuilding
	}
	return nil, ErrNoBuilder
}

func isFatal(err error) bool {
	var validation *ValidationError
	return errors.As(err, &validation) ||
		errors.Is(err, model.ErrMisuse) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
