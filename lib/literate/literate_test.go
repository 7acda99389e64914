// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package literate

import (
	"context"
	"errors"
	"testing"

	"github.com/jenkinsci/literate-api/lib/config"
	"github.com/jenkinsci/literate-api/lib/model"
	"github.com/jenkinsci/literate-api/lib/repository"
	"github.com/jenkinsci/literate-api/lib/source"
	"github.com/jenkinsci/literate-api/lib/testutil"
)

const markdownProject = "# Build\n\n    mvn verify\n\n# Deploy\n\n    ./deploy.sh\n"

func resolve(t *testing.T, cfg *config.Config, files map[string]string, options ...source.RequestOption) (*model.ProjectModel, error) {
	t.Helper()
	repo := repository.NewFilesystem(testutil.WriteTree(t, files))
	return NewSource(cfg, testutil.DiscardLogger()).Submit(context.Background(), NewRequest(cfg, repo, options...))
}

func TestMarkdownWinsOverYAML(t *testing.T) {
	t.Parallel()

	project, err := resolve(t, nil, map[string]string{
		".cloudbees.md":  markdownProject,
		".cloudbees.yml": "script: make\n",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	testutil.RequireStrings(t, project.BuildFor(model.Any()), []string{"mvn verify"}, "markdown build")
}

func TestYAMLWhenNoMarkdown(t *testing.T) {
	t.Parallel()

	project, err := resolve(t, nil, map[string]string{".travis.yml": "language: go\n"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	testutil.RequireStrings(t, project.BuildFor(model.Any()), []string{"go test ./..."}, "go defaults")
}

func TestNoBuilderApplies(t *testing.T) {
	t.Parallel()

	_, err := resolve(t, nil, map[string]string{"main.go": "package main\n"})
	var building *source.BuildingError
	if !errors.As(err, &building) {
		t.Fatalf("Submit = %v, want the first BuildingError", err)
	}
	if err.Error() != "not a Markdown based literate project" {
		t.Errorf("error = %q, want the Markdown builder's reason", err)
	}
}

func TestConfiguredConventions(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Request.BaseName = "acme"
	cfg.Request.TaskIDs = []string{"Release"}
	cfg.Markdown.FallbackFile = "BUILD.md"

	project, err := resolve(t, cfg, map[string]string{
		".acme.md": "# Notes\n\nNothing to build here.\n",
		"BUILD.md": "# Build\n\n    make\n\n# Release\n\n    ./release.sh\n",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	testutil.RequireStrings(t, project.BuildFor(model.Any()), []string{"make"}, "fallback build")
	testutil.RequireStrings(t, project.TaskIDs(), []string{"release"}, "task ids")
}

func TestConfiguredBuildKeys(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.YAML.BuildKeys = []string{"before_script", "script"}
	project, err := resolve(t, cfg, map[string]string{".cloudbees.yml": "before_script: ./setup.sh\nscript: make\n"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	testutil.RequireStrings(t, project.BuildFor(model.Any()), []string{"./setup.sh", "make"}, "build keys")
	testutil.RequireStrings(t, project.TaskIDs(), nil, "task ids")
}

func TestNewRequestOptionsOverride(t *testing.T) {
	t.Parallel()

	request := NewRequest(config.Default(), repository.NewMemory(nil),
		source.WithBaseName("other"), source.WithTaskIDs("release"))
	if request.BaseName() != "other" {
		t.Errorf("BaseName() = %q, want other", request.BaseName())
	}
	testutil.RequireStrings(t, request.TaskIDs(), []string{"deploy", "release"}, "task ids")
}

func TestMarkerFiles(t *testing.T) {
	t.Parallel()

	testutil.RequireStrings(t, NewSource(nil, nil).MarkerFiles("cloudbees"),
		[]string{".cloudbees.md", ".cloudbees.yml", ".travis.yml"}, "marker files")
}
