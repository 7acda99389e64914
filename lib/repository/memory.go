// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
)

// Memory is a [Repository] backed by a map of file contents.
// Directories exist implicitly as prefixes of file paths. It is safe
// for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemory returns a repository holding a copy of files, keyed by
// slash separated path.
func NewMemory(files map[string]string) *Memory {
	memory := &Memory{files: make(map[string][]byte, len(files))}
	for name, content := range files {
		memory.files[cleanPath(name)] = []byte(content)
	}
	return memory
}

// Put adds or replaces a file.
func (m *Memory) Put(name string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[cleanPath(name)] = bytes.Clone(content)
}

// cleanPath maps any spelling of a path to its canonical key: no
// leading slash, no trailing slash, "" for the root.
func cleanPath(name string) string {
	cleaned := path.Clean("/" + strings.TrimSpace(name))
	return strings.TrimPrefix(cleaned, "/")
}

func (m *Memory) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	content, ok := m.files[cleanPath(name)]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPathNotFound, name)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (m *Memory) IsFile(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[cleanPath(name)]
	return ok, nil
}

func (m *Memory) IsDirectory(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	key := cleanPath(name)
	if key == "" {
		return true, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for file := range m.files {
		if strings.HasPrefix(file, key+"/") {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) Paths(ctx context.Context, name string) ([]string, error) {
	isDirectory, err := m.IsDirectory(ctx, name)
	if err != nil {
		return nil, err
	}
	if !isDirectory {
		return nil, fmt.Errorf("%w: %q: path does not exist or is not a directory", ErrPathNotFound, name)
	}
	prefix := cleanPath(name)
	if prefix != "" {
		prefix += "/"
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	children := make(map[string]struct{})
	for file := range m.files {
		rest, ok := strings.CutPrefix(file, prefix)
		if !ok {
			continue
		}
		if child, _, nested := strings.Cut(rest, "/"); nested {
			children["/"+prefix+child+"/"] = struct{}{}
		} else {
			children["/"+prefix+rest] = struct{}{}
		}
	}
	paths := make([]string, 0, len(children))
	for child := range children {
		paths = append(paths, child)
	}
	sort.Strings(paths)
	return paths, nil
}
