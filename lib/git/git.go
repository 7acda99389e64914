// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

// Package git provides typed access to the git CLI. Literate uses it to
// read a project as of a commit rather than from the working tree: a
// [Tree] serves the files of one commit as a repository.Repository.
// All commands target a specific repository directory via the -C flag,
// which is automatically injected by all Repository methods.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Repository represents a git repository at a specific directory. All
// operations target this directory via "git -C <dir>".
type Repository struct {
	dir string
}

// NewRepository returns a Repository targeting the given directory.
// The directory may be a working tree, a subdirectory of one, or a bare
// repository.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// Dir returns the repository directory.
func (r *Repository) Dir() string {
	return r.dir
}

// Run executes a git command targeting this repository and returns
// stdout. Stderr is captured separately and included in error messages
// on failure.
func (r *Repository) Run(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	command := r.Command(ctx, args...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("git %s in %s: %w (stderr: %s)",
			strings.Join(args, " "), r.dir, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Command returns an *exec.Cmd for a git command without running it.
// The -C flag targeting this repository is automatically prepended.
func (r *Repository) Command(ctx context.Context, args ...string) *exec.Cmd {
	fullArgs := append([]string{"-C", r.dir}, args...)
	return exec.CommandContext(ctx, "git", fullArgs...)
}

// ResolveCommit returns the full commit id a revision names.
func (r *Repository) ResolveCommit(ctx context.Context, revision string) (string, error) {
	if revision == "" || strings.HasPrefix(revision, "-") {
		return "", fmt.Errorf("invalid revision %q", revision)
	}
	output, err := r.Run(ctx, "rev-parse", "--verify", "--quiet", revision+"^{commit}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// prefix returns the path of the repository directory relative to the
// top of its working tree, with a trailing slash, or "" at the top and
// in bare repositories.
func (r *Repository) prefix(ctx context.Context) (string, error) {
	bare, err := r.Run(ctx, "rev-parse", "--is-bare-repository")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(bare) == "true" {
		return "", nil
	}
	output, err := r.Run(ctx, "rev-parse", "--show-prefix")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}
