// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/jenkinsci/literate-api/cmd/literate/cli"
	"github.com/jenkinsci/literate-api/lib/config"
	"github.com/jenkinsci/literate-api/lib/git"
	"github.com/jenkinsci/literate-api/lib/literate"
	"github.com/jenkinsci/literate-api/lib/model"
	"github.com/jenkinsci/literate-api/lib/repository"
	"github.com/jenkinsci/literate-api/lib/source"
)

// projectParams are the flags shared by every command that reads a
// configuration. Empty values keep the configured setting.
type projectParams struct {
	Config         string   `flag:"config" desc:"config file (default: $LITERATE_CONFIG)"`
	BaseName       string   `flag:"base-name" desc:"base name of the marker files (default from config: cloudbees)"`
	EnvironmentsID string   `flag:"environments-id" desc:"heading of the environments section"`
	BuildID        string   `flag:"build-id" desc:"heading of the build section, or comma separated YAML build keys"`
	TaskIDs        []string `flag:"task" desc:"additional task section to read (repeatable)"`
	LogLevel       string   `flag:"log-level" desc:"log level: debug, info, warn or error"`
	Revision       string   `flag:"revision,r" desc:"read the project as of this git revision instead of the working tree"`
}

// load returns the configuration with flag overrides applied.
func (p *projectParams) load() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if p.Config != "" {
		cfg, err = config.LoadFile(p.Config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if p.BaseName != "" {
		cfg.Request.BaseName = p.BaseName
	}
	if p.EnvironmentsID != "" {
		cfg.Request.EnvironmentsID = p.EnvironmentsID
	}
	if p.BuildID != "" {
		cfg.Request.BuildID = p.BuildID
	}
	if p.LogLevel != "" {
		cfg.Log.Level = p.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

// session is a loaded configuration with its logger.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
}

func (p *projectParams) open(command string) (*session, error) {
	cfg, err := p.load()
	if err != nil {
		return nil, err
	}
	logger, err := cli.NewCommandLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger.With("command", command)}, nil
}

// resolve builds the model of the project in directory. Task ids are
// added to the configured and flagged ones.
func (s *session) resolve(ctx context.Context, params *projectParams, directory string, taskIDs ...string) (*model.ProjectModel, error) {
	info, err := os.Stat(directory)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", directory)
	}

	var options []source.RequestOption
	if tasks := slices.Concat(params.TaskIDs, taskIDs); len(tasks) > 0 {
		options = append(options, source.WithTaskIDs(tasks...))
	}
	logger := s.logger.With("directory", directory)
	repo, err := openRepository(ctx, logger, directory, params.Revision)
	if err != nil {
		return nil, err
	}
	request := literate.NewRequest(s.cfg, repo, options...)

	logger.Debug("resolving project model",
		"base_name", request.BaseName(),
		"environments_id", request.EnvironmentsID(),
		"build_id", request.BuildID(),
		"tasks", request.TaskIDs(),
	)
	project, err := literate.NewSource(s.cfg, logger).Submit(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", directory, err)
	}
	return project, nil
}

// openRepository serves the working tree of directory, or the files of
// a commit when revision is set.
func openRepository(ctx context.Context, logger *slog.Logger, directory, revision string) (repository.Repository, error) {
	if revision == "" {
		return repository.NewFilesystem(directory), nil
	}
	tree, err := git.NewRepository(directory).Tree(ctx, revision)
	if err != nil {
		return nil, fmt.Errorf("reading revision %s: %w", revision, err)
	}
	logger.Debug("reading project from commit", "revision", revision, "commit", tree.Commit())
	return tree, nil
}

// directoryArgument returns the optional leading directory argument.
func directoryArgument(args []string, extra int) (string, []string, error) {
	switch {
	case len(args) > extra+1:
		return "", nil, fmt.Errorf("unexpected arguments: %v", args[extra+1:])
	case len(args) == extra+1:
		return args[0], args[1:], nil
	default:
		return ".", args, nil
	}
}
