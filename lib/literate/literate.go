// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

// Package literate wires the built-in builders into a ready to use
// [source.Source].
//
//	cfg, err := config.Load()
//	src := literate.NewSource(cfg, logger)
//	project, err := src.Submit(ctx, literate.NewRequest(cfg, repository.NewFilesystem(dir)))
package literate

import (
	"log/slog"

	"github.com/jenkinsci/literate-api/lib/config"
	"github.com/jenkinsci/literate-api/lib/markdown"
	"github.com/jenkinsci/literate-api/lib/repository"
	"github.com/jenkinsci/literate-api/lib/source"
	"github.com/jenkinsci/literate-api/lib/yamlmodel"
)

// NewSource returns a source trying the Markdown builder, then the
// YAML builder. A nil cfg uses [config.Default].
func NewSource(cfg *config.Config, logger *slog.Logger) *source.Source {
	if cfg == nil {
		cfg = config.Default()
	}
	return source.New(logger,
		markdown.New(logger, markdown.WithFallbackFile(cfg.Markdown.FallbackFile)),
		yamlmodel.New(logger, yamlmodel.WithBuildKeys(cfg.YAML.BuildKeys...)),
	)
}

// NewRequest returns a request using the configured naming
// conventions. Options override the configured names; task ids given
// as options are added to the configured ones.
func NewRequest(cfg *config.Config, repo repository.Repository, options ...source.RequestOption) source.Request {
	if cfg == nil {
		cfg = config.Default()
	}
	defaults := []source.RequestOption{
		source.WithBaseName(cfg.Request.BaseName),
		source.WithEnvironmentsID(cfg.Request.EnvironmentsID),
		source.WithBuildID(cfg.Request.BuildID),
	}
	if len(cfg.Request.TaskIDs) > 0 {
		defaults = append(defaults, source.WithTaskIDs(cfg.Request.TaskIDs...))
	}
	return source.NewRequest(repo, append(defaults, options...)...)
}
