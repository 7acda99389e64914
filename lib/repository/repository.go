// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrPathNotFound is wrapped by errors for paths that do not exist or
// that resolve outside of the repository.
var ErrPathNotFound = errors.New("path not found")

// Repository is read access to a project's files.
type Repository interface {
	// Get opens the file at path. The caller must close the reader.
	// Returns an error wrapping [ErrPathNotFound] when no file exists.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// IsFile reports whether path names a regular file.
	IsFile(ctx context.Context, path string) (bool, error)

	// IsDirectory reports whether path names a directory.
	IsDirectory(ctx context.Context, path string) (bool, error)

	// Paths lists the children of the directory at path. Each child is
	// returned as an absolute repository path ("/dir/name"), with
	// directories suffixed by "/". The result is sorted.
	Paths(ctx context.Context, path string) ([]string, error)
}

// ReadFile reads the whole file at path.
func ReadFile(ctx context.Context, repo Repository, path string) ([]byte, error) {
	reader, err := repo.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
