// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Filesystem is a [Repository] rooted at a local directory.
type Filesystem struct {
	root string
}

// NewFilesystem returns a repository serving the directory at root.
// The directory is not checked until the first access.
func NewFilesystem(root string) *Filesystem {
	return &Filesystem{root: filepath.Clean(root)}
}

// Root returns the directory the repository serves.
func (f *Filesystem) Root() string {
	return f.root
}

// resolve maps a repository path to a local path. Empty, "/" and "."
// name the root. Paths that escape the root are rejected.
func (f *Filesystem) resolve(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed == "/" {
		return f.root, nil
	}
	resolved := filepath.Join(f.root, filepath.FromSlash(strings.TrimPrefix(trimmed, "/")))
	relative, err := filepath.Rel(f.root, resolved)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrPathNotFound, path, err)
	}
	if relative == ".." || strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q: path is outside of repository", ErrPathNotFound, path)
	}
	return resolved, nil
}

func (f *Filesystem) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resolved, err := f.resolve(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	return file, nil
}

func (f *Filesystem) IsFile(ctx context.Context, path string) (bool, error) {
	info, err := f.stat(ctx, path)
	if err != nil || info == nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func (f *Filesystem) IsDirectory(ctx context.Context, path string) (bool, error) {
	info, err := f.stat(ctx, path)
	if err != nil || info == nil {
		return false, err
	}
	return info.IsDir(), nil
}

// stat returns nil info and a nil error when path does not exist.
func (f *Filesystem) stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resolved, err := f.resolve(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}
	return info, nil
}

func (f *Filesystem) Paths(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resolved, err := f.resolve(path)
	if err != nil {
		return nil, err
	}
	prefix := "/"
	if resolved != f.root {
		relative, _ := filepath.Rel(f.root, resolved)
		prefix = "/" + filepath.ToSlash(relative) + "/"
	}
	entries, err := os.ReadDir(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q: path does not exist or is not a directory", ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("listing %q: %w", path, err)
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := prefix + entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		paths = append(paths, name)
	}
	sort.Strings(paths)
	return paths, nil
}
